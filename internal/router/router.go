package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/mentora-lambda/internal/auth"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"github.com/saulo-duarte/mentora-lambda/internal/enrollment"
	"github.com/saulo-duarte/mentora-lambda/internal/middlewares"
	"github.com/saulo-duarte/mentora-lambda/internal/quiz"
	"github.com/saulo-duarte/mentora-lambda/internal/review"
	"github.com/saulo-duarte/mentora-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	CurriculumHandler *curriculum.Handler
	EnrollmentHandler *enrollment.Handler
	QuizHandler       *quiz.Handler
	ReviewHandler     *review.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", cfg.UserHandler.GoogleLogin)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/curricula", curriculum.Routes(cfg.CurriculumHandler))
		r.Mount("/enrollments", enrollment.Routes(cfg.EnrollmentHandler))
		r.Mount("/quiz", quiz.Routes(cfg.QuizHandler))
		r.Mount("/reviews", review.Routes(cfg.ReviewHandler))
		r.Mount("/users", user.Routes(cfg.UserHandler))
	})

	return r
}

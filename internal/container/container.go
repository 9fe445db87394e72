package container

import (
	"context"
	"log"
	"os"

	"github.com/saulo-duarte/mentora-lambda/internal/auth"
	"github.com/saulo-duarte/mentora-lambda/internal/config"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"github.com/saulo-duarte/mentora-lambda/internal/enrollment"
	"github.com/saulo-duarte/mentora-lambda/internal/quiz"
	"github.com/saulo-duarte/mentora-lambda/internal/review"
	"github.com/saulo-duarte/mentora-lambda/internal/user"
)

type Container struct {
	UserContainer       *user.UserContainer
	CurriculumContainer *curriculum.CurriculumContainer
	EnrollmentContainer *enrollment.EnrollmentContainer
	QuizContainer       *quiz.QuizContainer
	ReviewContainer     *review.ReviewContainer
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&curriculum.Curriculum{},
		&curriculum.SyllabusUnit{},
		&curriculum.Topic{},
		&curriculum.Resource{},
		&enrollment.Enrollment{},
		&enrollment.ProgressEntry{},
		&quiz.Question{},
		&quiz.Option{},
		&quiz.Attempt{},
		&review.Review{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)
	curriculumContainer := curriculum.NewCurriculumContainer(config.DB)
	enrollmentContainer := enrollment.NewEnrollmentContainer(config.DB, curriculumContainer.Repo)

	quizContainer := quiz.NewQuizContainer(
		config.DB,
		enrollmentContainer.Repo,
		enrollmentContainer.Aggregator,
		curriculumContainer.Repo,
		config.QuizRetryInterval(),
	)

	reviewContainer := review.NewReviewContainer(
		config.DB,
		enrollmentContainer.Repo,
		curriculumContainer.Repo,
		review.NewHTTPClassifier(),
	)

	return &Container{
		UserContainer:       userContainer,
		CurriculumContainer: curriculumContainer,
		EnrollmentContainer: enrollmentContainer,
		QuizContainer:       quizContainer,
		ReviewContainer:     reviewContainer,
	}
}

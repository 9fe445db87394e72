package enrollment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Enroll)
	r.Get("/", h.List)
	r.Get("/{curriculumSlug}", h.GetProgress)

	return r
}

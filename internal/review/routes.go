package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/{curriculumSlug}", h.ListByCurriculum)
	r.Post("/{curriculumSlug}", h.CreateReview)

	return r
}

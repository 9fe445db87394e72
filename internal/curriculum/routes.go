package curriculum

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{slug}", h.Get)
	r.Post("/", h.Create)
	r.Post("/{slug}/units", h.AddUnit)
	r.Post("/units/{unitSlug}/topics", h.AddTopic)
	r.Post("/topics/{topicSlug}/resources", h.AddResource)

	return r
}

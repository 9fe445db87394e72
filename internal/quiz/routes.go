package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/topics/{topicSlug}", h.GetTopicQuiz)
	r.Get("/topics/{topicSlug}/state", h.GetState)
	r.Get("/topics/{topicSlug}/attempts", h.ListAttempts)
	r.Post("/topics/{topicSlug}/submit", h.SubmitAnswers)

	r.Post("/topics/{topicSlug}/questions", h.CreateQuestion)
	r.Delete("/questions/{questionID}", h.RemoveQuestion)

	return r
}

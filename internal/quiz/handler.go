package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mentora-lambda/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetTopicQuiz(w http.ResponseWriter, r *http.Request) {
	topicSlug := chi.URLParam(r, "topicSlug")
	if topicSlug == "" {
		http.Error(w, "topic slug required", http.StatusBadRequest)
		return
	}

	response, err := h.service.GetTopicQuiz(r.Context(), topicSlug)
	if err != nil {
		h.writeError(w, r, err, "Failed to load topic quiz")
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	topicSlug := chi.URLParam(r, "topicSlug")
	if topicSlug == "" {
		http.Error(w, "topic slug required", http.StatusBadRequest)
		return
	}

	state, err := h.service.GetState(r.Context(), topicSlug)
	if err != nil {
		h.writeError(w, r, err, "Failed to load quiz state")
		return
	}

	config.JSON(w, http.StatusOK, state)
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	topicSlug := chi.URLParam(r, "topicSlug")
	if topicSlug == "" {
		http.Error(w, "topic slug required", http.StatusBadRequest)
		return
	}

	attempts, err := h.service.ListAttempts(r.Context(), topicSlug)
	if err != nil {
		h.writeError(w, r, err, "Failed to load quiz attempts")
		return
	}

	config.JSON(w, http.StatusOK, attempts)
}

func (h *Handler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	topicSlug := chi.URLParam(r, "topicSlug")
	if topicSlug == "" {
		http.Error(w, "topic slug required", http.StatusBadRequest)
		return
	}

	var dto SubmitQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body for quiz submission")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.service.SubmitAnswers(r.Context(), topicSlug, dto.Answers)
	if err != nil {
		h.writeError(w, r, err, "Failed to score quiz submission")
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	topicSlug := chi.URLParam(r, "topicSlug")
	if topicSlug == "" {
		http.Error(w, "topic slug required", http.StatusBadRequest)
		return
	}

	var dto CreateQuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body for question creation")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	question, err := h.service.CreateQuestion(r.Context(), topicSlug, dto)
	if err != nil {
		h.writeError(w, r, err, "Failed to create quiz question")
		return
	}

	config.JSON(w, http.StatusCreated, question)
}

func (h *Handler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")
	if questionID == "" {
		http.Error(w, "question id required", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveQuestion(r.Context(), questionID); err != nil {
		h.writeError(w, r, err, "Failed to remove quiz question")
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "question removed successfully",
	})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := config.WithContext(r.Context())

	var cooldown *CooldownError
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.As(err, &cooldown):
		config.JSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":          "quiz retake cooldown is active",
			"remaining_time": cooldown.RemainingSeconds,
		})
	case errors.Is(err, ErrProgressEntryNotFound):
		http.Error(w, "progress entry not found", http.StatusNotFound)
	case errors.Is(err, ErrTopicNotFound):
		http.Error(w, "topic not found", http.StatusNotFound)
	case errors.Is(err, ErrQuestionNotFound):
		http.Error(w, "question not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidAnswerFormat):
		http.Error(w, "invalid answer format", http.StatusBadRequest)
	case errors.Is(err, ErrUnknownQuestionOrOption):
		http.Error(w, "question or option does not belong to this topic", http.StatusBadRequest)
	default:
		log.WithError(err).Error(msg)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

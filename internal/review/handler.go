package review

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mentora-lambda/internal/config"
)

type Handler struct {
	service ReviewService
}

func NewHandler(s ReviewService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	curriculumSlug := chi.URLParam(r, "curriculumSlug")
	if curriculumSlug == "" {
		http.Error(w, "curriculum slug required", http.StatusBadRequest)
		return
	}

	var dto CreateReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body for review creation")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	review, err := h.service.CreateReview(r.Context(), curriculumSlug, dto)
	if err != nil {
		h.writeError(w, r, err, "Failed to create review")
		return
	}

	config.JSON(w, http.StatusCreated, review)
}

func (h *Handler) ListByCurriculum(w http.ResponseWriter, r *http.Request) {
	curriculumSlug := chi.URLParam(r, "curriculumSlug")
	if curriculumSlug == "" {
		http.Error(w, "curriculum slug required", http.StatusBadRequest)
		return
	}

	reviews, err := h.service.ListByCurriculum(r.Context(), curriculumSlug)
	if err != nil {
		h.writeError(w, r, err, "Failed to list reviews")
		return
	}

	config.JSON(w, http.StatusOK, reviews)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := config.WithContext(r.Context())

	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrInvalidReview):
		http.Error(w, "invalid review", http.StatusBadRequest)
	case errors.Is(err, ErrNotEnrolled):
		http.Error(w, "not enrolled in this curriculum", http.StatusForbidden)
	case errors.Is(err, ErrCurriculumNotFound):
		http.Error(w, "curriculum not found", http.StatusNotFound)
	default:
		log.WithError(err).Error(msg)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

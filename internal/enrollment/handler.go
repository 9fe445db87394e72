package enrollment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mentora-lambda/internal/config"
)

type Handler struct {
	service EnrollmentService
}

func NewHandler(s EnrollmentService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto EnrollDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Curriculum == "" {
		log.Warn("Enroll request without curriculum slug")
		http.Error(w, "curriculum slug required", http.StatusBadRequest)
		return
	}

	e, err := h.service.Enroll(r.Context(), dto.Curriculum)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		case errors.Is(err, ErrCurriculumNotFound):
			http.Error(w, "curriculum not found", http.StatusNotFound)
		case errors.Is(err, ErrAlreadyEnrolled):
			http.Error(w, "already enrolled in this curriculum", http.StatusConflict)
		default:
			log.WithError(err).Error("Failed to enroll learner")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusCreated, e)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	summaries, err := h.service.ListByUser(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Failed to list enrollments")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, summaries)
}

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	slug := chi.URLParam(r, "curriculumSlug")
	if slug == "" {
		http.Error(w, "curriculum slug required", http.StatusBadRequest)
		return
	}

	progress, err := h.service.GetProgress(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		case errors.Is(err, ErrEnrollmentNotFound):
			http.Error(w, "enrollment not found", http.StatusNotFound)
		default:
			log.WithError(err).Error("Failed to load enrollment progress")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, progress)
}

package curriculum

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/mentora-lambda/internal/config"
)

type Handler struct {
	service CurriculumService
}

func NewHandler(s CurriculumService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	summaries, err := h.service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		log.WithError(err).Error("Failed to list curricula")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, summaries)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		http.Error(w, "curriculum slug required", http.StatusBadRequest)
		return
	}

	c, err := h.service.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrCurriculumNotFound) {
			http.Error(w, "curriculum not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load curriculum")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateCurriculumDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.Create(r.Context(), dto)
	if err != nil {
		h.writeError(w, r, err, "Failed to create curriculum")
		return
	}

	config.JSON(w, http.StatusCreated, c)
}

func (h *Handler) AddUnit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		http.Error(w, "curriculum slug required", http.StatusBadRequest)
		return
	}

	var dto CreateUnitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	unit, err := h.service.AddUnit(r.Context(), slug, dto)
	if err != nil {
		h.writeError(w, r, err, "Failed to create syllabus unit")
		return
	}

	config.JSON(w, http.StatusCreated, unit)
}

func (h *Handler) AddTopic(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	unitSlug := chi.URLParam(r, "unitSlug")
	if unitSlug == "" {
		http.Error(w, "unit slug required", http.StatusBadRequest)
		return
	}

	var dto CreateTopicDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	topic, err := h.service.AddTopic(r.Context(), unitSlug, dto)
	if err != nil {
		h.writeError(w, r, err, "Failed to create topic")
		return
	}

	config.JSON(w, http.StatusCreated, topic)
}

func (h *Handler) AddResource(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	topicSlug := chi.URLParam(r, "topicSlug")
	if topicSlug == "" {
		http.Error(w, "topic slug required", http.StatusBadRequest)
		return
	}

	var dto CreateResourceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resource, err := h.service.AddResource(r.Context(), topicSlug, dto)
	if err != nil {
		h.writeError(w, r, err, "Failed to create resource")
		return
	}

	config.JSON(w, http.StatusCreated, resource)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := config.WithContext(r.Context())

	switch {
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrCurriculumNotFound):
		http.Error(w, "curriculum not found", http.StatusNotFound)
	case errors.Is(err, ErrUnitNotFound):
		http.Error(w, "syllabus unit not found", http.StatusNotFound)
	case errors.Is(err, ErrTopicNotFound):
		http.Error(w, "topic not found", http.StatusNotFound)
	default:
		log.WithError(err).Error(msg)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

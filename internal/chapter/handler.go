package chapter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizlytics/quizlytics-api/internal/config"
)

type Handler struct {
	service ChapterService
}

func NewHandler(s ChapterService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var payload ChapterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Create(r.Context(), payload)
	switch {
	case errors.Is(err, ErrSubjectNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNameRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNameTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case err != nil:
		log.WithError(err).Error("Failed to create chapter")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		config.JSON(w, http.StatusCreated, resp)
	}
}

func (h *Handler) ListBySubject(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	dto, err := h.service.ListBySubject(r.Context(), chi.URLParam(r, "subjectID"))
	switch {
	case errors.Is(err, ErrSubjectNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		log.WithError(err).Error("Failed to list chapters")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		config.JSON(w, http.StatusOK, dto)
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var payload ChapterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), payload)
	switch {
	case errors.Is(err, ErrChapterNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNameRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNameTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case err != nil:
		log.WithError(err).Error("Failed to update chapter")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		config.JSON(w, http.StatusOK, resp)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, ErrChapterNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		log.WithError(err).Error("Failed to delete chapter")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		config.JSON(w, http.StatusOK, map[string]string{
			"message": "chapter and all associated quizzes deleted successfully",
		})
	}
}

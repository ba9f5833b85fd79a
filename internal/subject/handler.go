package subject

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizlytics/quizlytics-api/internal/config"
)

type Handler struct {
	service SubjectService
}

func NewHandler(s SubjectService) *Handler {
	return &Handler{service: s}
}

type subjectPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var payload subjectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	subj, err := h.service.Create(r.Context(), payload.Name, payload.Description)
	switch {
	case errors.Is(err, ErrNameRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNameTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case err != nil:
		log.WithError(err).Error("Failed to create subject")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		config.JSON(w, http.StatusCreated, subj)
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	subjects, err := h.service.List(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list subjects")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, subjects)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var payload subjectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	subj, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), payload.Name, payload.Description)
	switch {
	case errors.Is(err, ErrSubjectNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNameRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNameTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case err != nil:
		log.WithError(err).Error("Failed to update subject")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		config.JSON(w, http.StatusOK, subj)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, ErrSubjectNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		log.WithError(err).Error("Failed to delete subject")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		config.JSON(w, http.StatusOK, map[string]string{
			"message": "subject and all associated data deleted successfully",
		})
	}
}

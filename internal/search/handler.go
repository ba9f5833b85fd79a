package search

import (
	"errors"
	"net/http"

	"github.com/quizlytics/quizlytics-api/internal/config"
)

type Handler struct {
	service SearchService
}

func NewHandler(service SearchService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, results)
}

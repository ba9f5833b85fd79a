package analytics

import (
	"errors"
	"net/http"

	"github.com/quizlytics/quizlytics-api/internal/config"
)

type Handler struct {
	service AnalyticsService
}

func NewHandler(service AnalyticsService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	dto, err := h.service.Summary(r.Context(), r.URL.Query().Get("days"))
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, dto)
}

func (h *Handler) UserGrowth(w http.ResponseWriter, r *http.Request) {
	dto, err := h.service.UserGrowth(r.Context(), r.URL.Query().Get("days"))
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, dto)
}

func (h *Handler) SubjectPerformance(w http.ResponseWriter, r *http.Request) {
	dto, err := h.service.SubjectPerformance(r.Context())
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, dto)
}

func (h *Handler) QuizActivity(w http.ResponseWriter, r *http.Request) {
	dto, err := h.service.QuizActivity(r.Context(), r.URL.Query().Get("days"))
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, dto)
}

func (h *Handler) PerformanceDistribution(w http.ResponseWriter, r *http.Request) {
	dto, err := h.service.PerformanceDistribution(r.Context())
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, dto)
}

func writeAnalyticsError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidWindow) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

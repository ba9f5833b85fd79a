package analytics

import (
	"github.com/go-chi/chi/v5"

	"github.com/quizlytics/quizlytics-api/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.AdminMiddleware)

	r.Get("/summary", h.Summary)
	r.Get("/user-growth", h.UserGrowth)
	r.Get("/subject-performance", h.SubjectPerformance)
	r.Get("/quiz-activity", h.QuizActivity)
	r.Get("/performance-distribution", h.PerformanceDistribution)

	return r
}

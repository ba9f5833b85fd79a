package jobs

import (
	"github.com/go-chi/chi/v5"

	"github.com/quizlytics/quizlytics-api/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/export/performance", h.TriggerOwnPerformanceExport)

	r.Group(func(r chi.Router) {
		r.Use(auth.AdminMiddleware)

		r.Post("/export/scores", h.TriggerScoresExport)
		r.Post("/export/performance/all", h.TriggerAllPerformanceExport)
		r.Post("/reports/monthly", h.TriggerMonthlyReports)
	})

	return r
}

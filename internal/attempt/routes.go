package attempt

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/quiz/{quizId}/start", h.Start)
	r.Post("/quiz/{quizId}/submit", h.Submit)
	r.Get("/quiz/{quizId}", h.AttemptForQuiz)
	r.Get("/chapter/{chapterId}/status", h.ChapterStatus)
	r.Get("/history", h.History)
	r.Get("/{attemptId}/results", h.Results)

	return r
}

package quiz

import (
	"github.com/go-chi/chi/v5"

	"github.com/quizlytics/quizlytics-api/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/chapter/{chapterId}", h.ListByChapter)
	r.Get("/{id}", h.GetQuiz)

	r.Group(func(r chi.Router) {
		r.Use(auth.AdminMiddleware)

		r.Post("/", h.CreateQuiz)
		r.Put("/{id}", h.UpdateQuiz)
		r.Delete("/{id}", h.DeleteQuiz)

		r.Post("/{id}/questions", h.AddQuestion)
		r.Put("/questions/{questionId}", h.UpdateQuestion)
		r.Delete("/questions/{questionId}", h.RemoveQuestion)
	})

	return r
}

package user

import (
	"github.com/go-chi/chi/v5"

	"github.com/quizlytics/quizlytics-api/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.GetUser)
	r.Put("/reminder", h.UpdateReminder)

	r.Group(func(r chi.Router) {
		r.Use(auth.AdminMiddleware)
		r.Get("/", h.ListUsers)
		r.Delete("/{id}", h.DeleteUser)
	})

	return r
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quizlytics/quizlytics-api/internal/analytics"
	"github.com/quizlytics/quizlytics-api/internal/attempt"
	"github.com/quizlytics/quizlytics-api/internal/auth"
	"github.com/quizlytics/quizlytics-api/internal/chapter"
	"github.com/quizlytics/quizlytics-api/internal/jobs"
	"github.com/quizlytics/quizlytics-api/internal/middlewares"
	"github.com/quizlytics/quizlytics-api/internal/quiz"
	"github.com/quizlytics/quizlytics-api/internal/search"
	"github.com/quizlytics/quizlytics-api/internal/subject"
	"github.com/quizlytics/quizlytics-api/internal/user"
)

type RouterConfig struct {
	UserHandler      *user.Handler
	SubjectHandler   *subject.Handler
	ChapterHandler   *chapter.Handler
	QuizHandler      *quiz.Handler
	AttemptHandler   *attempt.Handler
	AnalyticsHandler *analytics.Handler
	SearchHandler    *search.Handler
	JobsHandler      *jobs.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.UserHandler.Register)
		r.Post("/login", cfg.UserHandler.Login)
		r.Post("/google", cfg.UserHandler.GoogleLogin)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/subjects", subject.Routes(cfg.SubjectHandler))
		r.Mount("/chapters", chapter.Routes(cfg.ChapterHandler))
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
		r.Mount("/attempts", attempt.Routes(cfg.AttemptHandler))
		r.Mount("/analytics", analytics.Routes(cfg.AnalyticsHandler))
		r.Mount("/search", search.Routes(cfg.SearchHandler))
		r.Mount("/jobs", jobs.Routes(cfg.JobsHandler))
	})

	return r
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quizlytics/quizlytics-api/internal/config"
	"github.com/quizlytics/quizlytics-api/internal/container"
	"github.com/quizlytics/quizlytics-api/internal/router"
)

func main() {
	c := container.New()
	log := config.Logger()

	handler := router.New(router.RouterConfig{
		UserHandler:      c.UserContainer.Handler,
		SubjectHandler:   c.SubjectContainer.Handler,
		ChapterHandler:   c.ChapterContainer.Handler,
		QuizHandler:      c.QuizContainer.Handler,
		AttemptHandler:   c.AttemptContainer.Handler,
		AnalyticsHandler: c.AnalyticsContainer.Handler,
		SearchHandler:    c.SearchContainer.Handler,
		JobsHandler:      c.JobsContainer.Handler,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c.JobsContainer.Scheduler.Start(ctx, 4)

	addr := ":" + config.Getenv("PORT", "8080")
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}

	c.JobsContainer.Scheduler.Stop()
	log.Info("Server stopped")
}

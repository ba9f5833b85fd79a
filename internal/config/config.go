package config

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger

	quizWindowEnforced = true
)

// Init loads .env (if present) and configures the process-wide logger.
func Init() {
	_ = godotenv.Load()

	logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}

	if v := os.Getenv("QUIZ_WINDOW_ENFORCED"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			quizWindowEnforced = parsed
		}
	}
}

func Logger() *logrus.Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return logger
}

// WithContext returns a log entry carrying the chi request id when present.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(Logger())
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	return entry
}

// QuizWindowEnforced reports whether attempt starts are gated to the quiz's
// availability window. Disabled deployments accept starts at any time.
func QuizWindowEnforced() bool {
	return quizWindowEnforced
}

// SetQuizWindowEnforced overrides the window policy, primarily for tests.
func SetQuizWindowEnforced(enforced bool) {
	quizWindowEnforced = enforced
}

func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			Logger().WithError(err).Error("Failed to encode response body")
		}
	}
}

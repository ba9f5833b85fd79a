package attempt

import (
	"gorm.io/gorm"

	"github.com/quizlytics/quizlytics-api/internal/quiz"
)

type AttemptContainer struct {
	Repo    AttemptRepository
	Service AttemptService
	Handler *Handler
}

func NewAttemptContainer(db *gorm.DB, quizRepo quiz.QuizRepository) *AttemptContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, quizRepo)
	handler := NewHandler(service)

	return &AttemptContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

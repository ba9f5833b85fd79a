package quiz

import (
	"gorm.io/gorm"

	"github.com/quizlytics/quizlytics-api/internal/cache"
	"github.com/quizlytics/quizlytics-api/internal/chapter"
)

type QuizContainer struct {
	Repo    QuizRepository
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(db *gorm.DB, chapterRepo chapter.ChapterRepository, c *cache.Cache) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(repo, chapterRepo, c)
	handler := NewHandler(service)

	return &QuizContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

package chapter

import (
	"gorm.io/gorm"

	"github.com/quizlytics/quizlytics-api/internal/cache"
	"github.com/quizlytics/quizlytics-api/internal/subject"
)

type ChapterContainer struct {
	Repo    ChapterRepository
	Service ChapterService
	Handler *Handler
}

func NewChapterContainer(db *gorm.DB, subjectRepo subject.SubjectRepository, c *cache.Cache) *ChapterContainer {
	repo := NewRepository(db)
	service := NewService(repo, subjectRepo, c)
	handler := NewHandler(service)

	return &ChapterContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

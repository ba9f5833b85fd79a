package subject

import (
	"gorm.io/gorm"

	"github.com/quizlytics/quizlytics-api/internal/cache"
)

type SubjectContainer struct {
	Repo    SubjectRepository
	Service SubjectService
	Handler *Handler
}

func NewSubjectContainer(db *gorm.DB, c *cache.Cache) *SubjectContainer {
	repo := NewRepository(db)
	service := NewService(repo, c)
	handler := NewHandler(service)

	return &SubjectContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

package analytics

import (
	"gorm.io/gorm"

	"github.com/quizlytics/quizlytics-api/internal/subject"
)

type AnalyticsContainer struct {
	Repo    AnalyticsRepository
	Service AnalyticsService
	Handler *Handler
}

func NewAnalyticsContainer(db *gorm.DB, subjectRepo subject.SubjectRepository) *AnalyticsContainer {
	repo := NewRepository(db)
	service := NewService(repo, subjectRepo)
	handler := NewHandler(service)

	return &AnalyticsContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

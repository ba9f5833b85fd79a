package report

import (
	"gorm.io/gorm"

	"github.com/quizlytics/quizlytics-api/internal/user"
)

type ReportContainer struct {
	Repo    ReportRepository
	Service ReportService
}

func NewReportContainer(db *gorm.DB, userRepo user.UserRepository, narrative NarrativeProvider, mailer Mailer) *ReportContainer {
	repo := NewRepository(db)
	service := NewService(repo, userRepo, narrative, mailer)

	return &ReportContainer{
		Repo:    repo,
		Service: service,
	}
}

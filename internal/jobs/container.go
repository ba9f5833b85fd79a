package jobs

import (
	"github.com/quizlytics/quizlytics-api/internal/quiz"
	"github.com/quizlytics/quizlytics-api/internal/report"
	"github.com/quizlytics/quizlytics-api/internal/user"
)

type JobsContainer struct {
	Pool      *WorkerPool
	Scheduler *Scheduler
	Handler   *Handler
}

func NewJobsContainer(
	userRepo user.UserRepository,
	quizRepo quiz.QuizRepository,
	reports report.ReportService,
	mailer report.Mailer,
) (*JobsContainer, error) {
	pool := NewWorkerPool(64)

	reminders := NewReminderJob(userRepo, quizRepo, mailer)
	monthly := NewMonthlyReportJob(userRepo, reports)
	exports := NewExportJobs(reports)

	scheduler, err := NewScheduler(pool, reminders, monthly)
	if err != nil {
		return nil, err
	}

	handler := NewHandler(pool, exports, monthly, userRepo)

	return &JobsContainer{
		Pool:      pool,
		Scheduler: scheduler,
		Handler:   handler,
	}, nil
}

package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/quizlytics/quizlytics-api/internal/config"
	"github.com/quizlytics/quizlytics-api/internal/report"
	"github.com/quizlytics/quizlytics-api/internal/user"
	util "github.com/quizlytics/quizlytics-api/internal/utils"
)

// MonthlyReportJob sends every USER-role user the previous calendar month's
// performance report. Per-user failures are logged and skipped; a user with
// no completed attempts in the period gets nothing.
type MonthlyReportJob struct {
	userRepo user.UserRepository
	reports  report.ReportService
	now      func() time.Time
}

func NewMonthlyReportJob(userRepo user.UserRepository, reports report.ReportService) *MonthlyReportJob {
	return &MonthlyReportJob{userRepo: userRepo, reports: reports, now: time.Now}
}

// previousMonth returns [start, end) of the previous calendar month in the
// reporting timezone.
func (j *MonthlyReportJob) previousMonth() (time.Time, time.Time) {
	now := j.now().In(util.ReportingLocation())
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, util.ReportingLocation())
	start := end.AddDate(0, -1, 0)
	return start, end
}

func (j *MonthlyReportJob) Run(ctx context.Context) error {
	log := config.WithContext(ctx)
	start, end := j.previousMonth()

	users, err := j.userRepo.FindByRole(user.RoleUser)
	if err != nil {
		return err
	}

	sent, skipped := 0, 0
	for _, u := range users {
		err := j.reports.SendMonthlyReport(ctx, u.ID, start, end)
		switch {
		case err == nil:
			sent++
		case errors.Is(err, report.ErrNothingToReport):
			skipped++
		default:
			log.WithError(err).WithField("user_id", u.ID).
				Error("Failed to send monthly report, skipping user")
		}
	}

	log.WithFields(map[string]interface{}{
		"period_start": util.DateLabel(start),
		"sent":         sent,
		"skipped":      skipped,
	}).Info("Monthly report batch finished")
	return nil
}

package jobs

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/quizlytics/quizlytics-api/internal/config"
	util "github.com/quizlytics/quizlytics-api/internal/utils"
)

// Scheduler owns the cron beat: reminder matching runs every minute so any
// configured HH:MM fires, and the monthly report batch runs on the first of
// each month. Fired schedules only enqueue; the worker pool does the work.
type Scheduler struct {
	cron *cron.Cron
	pool *WorkerPool
}

func NewScheduler(pool *WorkerPool, reminders *ReminderJob, monthly *MonthlyReportJob) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(util.ReportingLocation()))

	if _, err := c.AddFunc("* * * * *", func() {
		enqueue(pool, Job{Name: "daily_reminders", Run: reminders.Run})
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc("0 8 1 * *", func() {
		enqueue(pool, Job{Name: "monthly_reports", Run: monthly.Run})
	}); err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, pool: pool}, nil
}

func enqueue(pool *WorkerPool, job Job) {
	if err := pool.Enqueue(job); err != nil {
		config.Logger().WithError(err).WithField("job", job.Name).
			Warn("Dropping scheduled job")
	}
}

func (s *Scheduler) Start(ctx context.Context, workers int) {
	s.pool.Start(ctx, workers)
	s.cron.Start()
}

// Stop halts the beat and drains in-flight jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.pool.Stop()
}

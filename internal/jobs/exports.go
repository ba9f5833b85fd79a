package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quizlytics/quizlytics-api/internal/report"
)

// ExportJobs builds the CSV export jobs the trigger endpoints enqueue. Each
// job produces the file and mails it to the requesting user.
type ExportJobs struct {
	reports report.ReportService
}

func NewExportJobs(reports report.ReportService) *ExportJobs {
	return &ExportJobs{reports: reports}
}

func exportFilename(prefix string) string {
	return fmt.Sprintf("%s_%s.csv", prefix, time.Now().UTC().Format("20060102_150405"))
}

func (e *ExportJobs) ScoresExport(toEmail string) Job {
	return Job{
		Name: "export_scores",
		Run: func(ctx context.Context) error {
			data, err := e.reports.ScoresCSV(ctx)
			if err != nil {
				return err
			}
			return e.reports.SendCSVExport(ctx, toEmail, exportFilename("scores"), data)
		},
	}
}

func (e *ExportJobs) UserPerformanceExport(userID uuid.UUID, toEmail string) Job {
	return Job{
		Name: "export_user_performance",
		Run: func(ctx context.Context) error {
			data, err := e.reports.PerformanceCSV(ctx, &userID)
			if err != nil {
				return err
			}
			return e.reports.SendCSVExport(ctx, toEmail, exportFilename("performance"), data)
		},
	}
}

func (e *ExportJobs) AllPerformanceExport(toEmail string) Job {
	return Job{
		Name: "export_all_performance",
		Run: func(ctx context.Context) error {
			data, err := e.reports.PerformanceCSV(ctx, nil)
			if err != nil {
				return err
			}
			return e.reports.SendCSVExport(ctx, toEmail, exportFilename("all_performance"), data)
		},
	}
}

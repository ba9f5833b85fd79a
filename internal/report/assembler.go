package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/quizlytics/quizlytics-api/internal/config"
	"github.com/quizlytics/quizlytics-api/internal/scoring"
	"github.com/quizlytics/quizlytics-api/internal/user"
	util "github.com/quizlytics/quizlytics-api/internal/utils"
)

type ReportService interface {
	// BuildMonthlyPerformance assembles the report for completed attempts
	// with end_time in [periodStart, periodEnd). No narrative is attached.
	BuildMonthlyPerformance(ctx context.Context, userID uuid.UUID, periodStart, periodEnd time.Time) (*MonthlyReport, error)
	// SendMonthlyReport builds the report, attaches the narrative (falling
	// back to a fixed notice when generation fails) and emails it.
	SendMonthlyReport(ctx context.Context, userID uuid.UUID, periodStart, periodEnd time.Time) error
	ScoresCSV(ctx context.Context) ([]byte, error)
	PerformanceCSV(ctx context.Context, userID *uuid.UUID) ([]byte, error)
	SendCSVExport(ctx context.Context, toEmail, filename string, data []byte) error
}

type reportService struct {
	repo      ReportRepository
	userRepo  user.UserRepository
	narrative NarrativeProvider
	mailer    Mailer
}

func NewService(repo ReportRepository, userRepo user.UserRepository, narrative NarrativeProvider, mailer Mailer) ReportService {
	return &reportService{repo: repo, userRepo: userRepo, narrative: narrative, mailer: mailer}
}

func (s *reportService) BuildMonthlyPerformance(ctx context.Context, userID uuid.UUID, periodStart, periodEnd time.Time) (*MonthlyReport, error) {
	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	attempts, err := s.repo.CompletedAttempts(userID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, ErrNothingToReport
	}

	report := &MonthlyReport{
		UserID:    u.ID,
		UserName:  u.FullName,
		UserEmail: u.Email,
		Period:    util.MonthLabel(periodStart),
		Quizzes:   make([]*QuizRow, 0, len(attempts)),
	}

	var overall scoring.Tally
	subjectTallies := make(map[string]*scoring.Tally)
	var bestExact float64

	for _, a := range attempts {
		scores, err := s.repo.ScoresByAttempt(a.ID)
		if err != nil {
			return nil, err
		}

		var tally scoring.Tally
		for _, sc := range scores {
			tally.Add(sc.SelectedOption, sc.Question.CorrectOption)
		}

		row := &QuizRow{
			QuizID:     a.QuizID,
			Label:      fmt.Sprintf("%s - %s", a.Quiz.Chapter.Subject.Name, a.Quiz.Chapter.Name),
			Percentage: tally.Percent1(),
			Correct:    tally.Correct,
			Total:      tally.Total,
		}
		if a.EndTime != nil {
			row.CompletionDate = util.DateLabel(*a.EndTime)
		}
		report.Quizzes = append(report.Quizzes, row)

		overall.Merge(tally)
		subjectName := a.Quiz.Chapter.Subject.Name
		st, ok := subjectTallies[subjectName]
		if !ok {
			st = &scoring.Tally{}
			subjectTallies[subjectName] = st
		}
		st.Merge(tally)

		// First encountered wins ties.
		if report.BestQuiz == nil || tally.Exact() > bestExact {
			report.BestQuiz = row
			bestExact = tally.Exact()
		}
	}

	report.Totals = Totals{
		AttemptCount:   len(attempts),
		Accuracy:       overall.Percent1(),
		TotalCorrect:   overall.Correct,
		TotalQuestions: overall.Total,
	}

	for name, t := range subjectTallies {
		report.Subjects = append(report.Subjects, &SubjectRow{
			SubjectName: name,
			Accuracy:    t.Percent1(),
			Correct:     t.Correct,
			Total:       t.Total,
		})
	}
	// Weakest subjects first.
	sort.SliceStable(report.Subjects, func(i, j int) bool {
		if report.Subjects[i].Accuracy != report.Subjects[j].Accuracy {
			return report.Subjects[i].Accuracy < report.Subjects[j].Accuracy
		}
		return report.Subjects[i].SubjectName < report.Subjects[j].SubjectName
	})

	return report, nil
}

func (s *reportService) SendMonthlyReport(ctx context.Context, userID uuid.UUID, periodStart, periodEnd time.Time) error {
	log := config.WithContext(ctx)

	report, err := s.BuildMonthlyPerformance(ctx, userID, periodStart, periodEnd)
	if err != nil {
		return err
	}

	narrative, err := s.narrative.Generate(ctx, report)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).
			Warn("Narrative generation failed, using fallback notice")
		narrative = FallbackNarrative
	}
	report.Narrative = narrative

	body, err := RenderMonthlyHTML(report)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Your Quiz Performance Report - %s", report.Period)
	if err := s.mailer.Send(report.UserEmail, subject, body, nil); err != nil {
		return err
	}

	log.WithField("user_id", userID).Info("Monthly report sent")
	return nil
}

func (s *reportService) ScoresCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.repo.ExportRows(nil)
	if err != nil {
		return nil, err
	}
	return buildScoresCSV(rows)
}

func (s *reportService) PerformanceCSV(ctx context.Context, userID *uuid.UUID) ([]byte, error) {
	rows, err := s.repo.ExportRows(userID)
	if err != nil {
		return nil, err
	}
	return buildPerformanceCSV(rows)
}

func (s *reportService) SendCSVExport(ctx context.Context, toEmail, filename string, data []byte) error {
	log := config.WithContext(ctx)

	body := "<p>Hi,</p><p>Your requested data export is attached.</p>"
	att := &Attachment{Filename: filename, ContentType: "text/csv", Data: data}
	if err := s.mailer.Send(toEmail, "Your Quizlytics data export", body, att); err != nil {
		return err
	}

	log.WithField("filename", filename).Info("CSV export sent")
	return nil
}

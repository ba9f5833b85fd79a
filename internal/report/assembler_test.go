package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quizlytics/quizlytics-api/internal/attempt"
	"github.com/quizlytics/quizlytics-api/internal/chapter"
	"github.com/quizlytics/quizlytics-api/internal/quiz"
	"github.com/quizlytics/quizlytics-api/internal/subject"
	"github.com/quizlytics/quizlytics-api/internal/user"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&user.User{},
		&subject.Subject{},
		&chapter.Chapter{},
		&quiz.Quiz{},
		&quiz.Question{},
		&attempt.QuizAttempt{},
		&attempt.Score{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *user.User {
	t.Helper()

	u := &user.User{
		ID:       uuid.New(),
		Email:    "student@example.com",
		FullName: "Sample Student",
		Role:     user.RoleUser,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

// seedAttempt creates a completed attempt under the named subject where the
// first `correct` of `total` questions are right.
func seedAttempt(t *testing.T, db *gorm.DB, u *user.User, subjectName string, correct, total int, endTime time.Time) {
	t.Helper()

	var s subject.Subject
	err := db.Where("name = ?", subjectName).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = subject.Subject{ID: uuid.New(), Name: subjectName}
		err = db.Create(&s).Error
	}
	if err != nil {
		t.Fatalf("failed to seed subject: %v", err)
	}

	var ch chapter.Chapter
	err = db.Where("subject_id = ? AND name = ?", s.ID, "Basics").First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ch = chapter.Chapter{ID: uuid.New(), Name: "Basics", SubjectID: s.ID}
		err = db.Create(&ch).Error
	}
	if err != nil {
		t.Fatalf("failed to seed chapter: %v", err)
	}
	q := &quiz.Quiz{
		ID:              uuid.New(),
		ChapterID:       ch.ID,
		StartTime:       endTime.Add(-time.Hour),
		EndTime:         endTime.Add(time.Hour),
		DurationMinutes: 30,
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("failed to seed quiz: %v", err)
	}

	a := &attempt.QuizAttempt{
		ID:        uuid.New(),
		UserID:    u.ID,
		QuizID:    q.ID,
		StartTime: endTime.Add(-10 * time.Minute),
		EndTime:   &endTime,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("failed to seed attempt: %v", err)
	}

	for i := 0; i < total; i++ {
		question := &quiz.Question{
			ID:            uuid.New(),
			QuizID:        q.ID,
			Statement:     "question",
			Option1:       "a",
			Option2:       "b",
			Option3:       "c",
			Option4:       "d",
			CorrectOption: 1,
		}
		if err := db.Create(question).Error; err != nil {
			t.Fatalf("failed to seed question: %v", err)
		}
		score := &attempt.Score{
			ID:         uuid.New(),
			AttemptID:  a.ID,
			UserID:     u.ID,
			QuizID:     q.ID,
			QuestionID: question.ID,
		}
		if i < correct {
			selected := 1
			score.SelectedOption = &selected
		}
		if err := db.Create(score).Error; err != nil {
			t.Fatalf("failed to seed score: %v", err)
		}
	}
}

type stubNarrative struct {
	text string
	err  error
}

func (s *stubNarrative) Generate(ctx context.Context, report *MonthlyReport) (string, error) {
	return s.text, s.err
}

type recordingMailer struct {
	to      string
	subject string
	body    string
}

func (m *recordingMailer) Send(to, subject, htmlBody string, attachment *Attachment) error {
	m.to = to
	m.subject = subject
	m.body = htmlBody
	return nil
}

func period() (time.Time, time.Time) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func TestBuildMonthlyPerformance(t *testing.T) {
	ctx := context.Background()

	t.Run("NothingToReport", func(t *testing.T) {
		db := setupDB(t)
		u := seedUser(t, db)
		svc := NewService(NewRepository(db), user.NewRepository(db), &stubNarrative{}, &recordingMailer{})

		start, end := period()
		if _, err := svc.BuildMonthlyPerformance(ctx, u.ID, start, end); !errors.Is(err, ErrNothingToReport) {
			t.Errorf("expected ErrNothingToReport, got %v", err)
		}
	})

	t.Run("PooledTotalsAndOrdering", func(t *testing.T) {
		db := setupDB(t)
		u := seedUser(t, db)
		svc := NewService(NewRepository(db), user.NewRepository(db), &stubNarrative{}, &recordingMailer{})

		start, end := period()
		seedAttempt(t, db, u, "Mathematics", 1, 1, start.Add(24*time.Hour))
		seedAttempt(t, db, u, "Physics", 1, 9, start.Add(48*time.Hour))
		// Outside the period, must be ignored.
		seedAttempt(t, db, u, "Chemistry", 5, 5, end.Add(time.Hour))

		report, err := svc.BuildMonthlyPerformance(ctx, u.ID, start, end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Totals.AttemptCount != 2 {
			t.Errorf("expected 2 attempts, got %d", report.Totals.AttemptCount)
		}
		// Pooled: 2/10 = 20.0, not (100+11.1)/2.
		if report.Totals.Accuracy != 20.0 {
			t.Errorf("expected pooled accuracy 20.0, got %v", report.Totals.Accuracy)
		}
		if report.Totals.TotalCorrect != 2 || report.Totals.TotalQuestions != 10 {
			t.Errorf("unexpected totals %d/%d", report.Totals.TotalCorrect, report.Totals.TotalQuestions)
		}

		// Weakest subject first.
		if len(report.Subjects) != 2 || report.Subjects[0].SubjectName != "Physics" {
			t.Errorf("expected Physics first, got %+v", report.Subjects)
		}

		if report.BestQuiz == nil || !strings.HasPrefix(report.BestQuiz.Label, "Mathematics") {
			t.Errorf("expected Mathematics as best quiz, got %+v", report.BestQuiz)
		}
		if report.Period != "July 2025" {
			t.Errorf("unexpected period label %q", report.Period)
		}
	})

	t.Run("BestQuizFirstTieWins", func(t *testing.T) {
		db := setupDB(t)
		u := seedUser(t, db)
		svc := NewService(NewRepository(db), user.NewRepository(db), &stubNarrative{}, &recordingMailer{})

		start, end := period()
		seedAttempt(t, db, u, "Mathematics", 2, 2, start.Add(24*time.Hour))
		seedAttempt(t, db, u, "Physics", 3, 3, start.Add(48*time.Hour))

		report, err := svc.BuildMonthlyPerformance(ctx, u.ID, start, end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.BestQuiz == nil || !strings.HasPrefix(report.BestQuiz.Label, "Mathematics") {
			t.Errorf("expected earliest 100%% attempt to win the tie, got %+v", report.BestQuiz)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		db := setupDB(t)
		svc := NewService(NewRepository(db), user.NewRepository(db), &stubNarrative{}, &recordingMailer{})

		start, end := period()
		if _, err := svc.BuildMonthlyPerformance(ctx, uuid.New(), start, end); !errors.Is(err, user.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestSendMonthlyReport(t *testing.T) {
	ctx := context.Background()

	t.Run("NarrativeIncluded", func(t *testing.T) {
		db := setupDB(t)
		u := seedUser(t, db)
		mailer := &recordingMailer{}
		svc := NewService(NewRepository(db), user.NewRepository(db),
			&stubNarrative{text: "Great month, keep it up."}, mailer)

		start, end := period()
		seedAttempt(t, db, u, "Mathematics", 2, 3, start.Add(24*time.Hour))

		if err := svc.SendMonthlyReport(ctx, u.ID, start, end); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mailer.to != u.Email {
			t.Errorf("expected mail to %s, got %s", u.Email, mailer.to)
		}
		if !strings.Contains(mailer.body, "Great month, keep it up.") {
			t.Error("expected narrative in email body")
		}
		if !strings.Contains(mailer.subject, "July 2025") {
			t.Errorf("expected period in subject, got %q", mailer.subject)
		}
	})

	t.Run("NarrativeFailureFallsBack", func(t *testing.T) {
		db := setupDB(t)
		u := seedUser(t, db)
		mailer := &recordingMailer{}
		svc := NewService(NewRepository(db), user.NewRepository(db),
			&stubNarrative{err: errors.New("model unavailable")}, mailer)

		start, end := period()
		seedAttempt(t, db, u, "Mathematics", 2, 3, start.Add(24*time.Hour))

		if err := svc.SendMonthlyReport(ctx, u.ID, start, end); err != nil {
			t.Fatalf("expected send to succeed despite narrative failure, got %v", err)
		}
		if !strings.Contains(mailer.body, FallbackNarrative) {
			t.Error("expected fallback notice in email body")
		}
	})

	t.Run("NothingToReportSkipsMail", func(t *testing.T) {
		db := setupDB(t)
		u := seedUser(t, db)
		mailer := &recordingMailer{}
		svc := NewService(NewRepository(db), user.NewRepository(db), &stubNarrative{}, mailer)

		start, end := period()
		if err := svc.SendMonthlyReport(ctx, u.ID, start, end); !errors.Is(err, ErrNothingToReport) {
			t.Fatalf("expected ErrNothingToReport, got %v", err)
		}
		if mailer.to != "" {
			t.Error("expected no mail to be sent")
		}
	})
}

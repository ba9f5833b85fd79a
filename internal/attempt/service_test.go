package attempt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quizlytics/quizlytics-api/internal/chapter"
	"github.com/quizlytics/quizlytics-api/internal/config"
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
		&QuizAttempt{},
		&Score{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type fixture struct {
	user      *user.User
	quiz      *quiz.Quiz
	questions []*quiz.Question
}

// seedScenario creates one user and a currently-open three-question quiz.
// Correct options are 1, 2 and 3 respectively.
func seedScenario(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	u := &user.User{
		ID:       uuid.New(),
		Email:    "taker@example.com",
		FullName: "Quiz Taker",
		Password: "irrelevant",
		Role:     user.RoleUser,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	s := &subject.Subject{ID: uuid.New(), Name: "Mathematics"}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("failed to seed subject: %v", err)
	}
	ch := &chapter.Chapter{ID: uuid.New(), Name: "Algebra", SubjectID: s.ID}
	if err := db.Create(ch).Error; err != nil {
		t.Fatalf("failed to seed chapter: %v", err)
	}

	q := &quiz.Quiz{
		ID:              uuid.New(),
		ChapterID:       ch.ID,
		StartTime:       time.Now().UTC().Add(-time.Hour),
		EndTime:         time.Now().UTC().Add(time.Hour),
		DurationMinutes: 30,
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("failed to seed quiz: %v", err)
	}

	questions := make([]*quiz.Question, 0, 3)
	for i := 1; i <= 3; i++ {
		question := &quiz.Question{
			ID:            uuid.New(),
			QuizID:        q.ID,
			Statement:     "question",
			Option1:       "a",
			Option2:       "b",
			Option3:       "c",
			Option4:       "d",
			CorrectOption: i,
		}
		if err := db.Create(question).Error; err != nil {
			t.Fatalf("failed to seed question: %v", err)
		}
		questions = append(questions, question)
	}
	return fixture{user: u, quiz: q, questions: questions}
}

func newService(db *gorm.DB) AttemptService {
	return NewService(db, NewRepository(db), quiz.NewRepository(db))
}

func TestStart(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesAttempt", func(t *testing.T) {
		db := setupDB(t)
		fx := seedScenario(t, db)
		svc := newService(db)

		resp, err := svc.Start(ctx, fx.user.ID, fx.quiz.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.QuizID != fx.quiz.ID {
			t.Errorf("expected quiz id %s, got %s", fx.quiz.ID, resp.QuizID)
		}
		if resp.Completed {
			t.Error("new attempt should not be completed")
		}
	})

	t.Run("IdempotentWhileOpen", func(t *testing.T) {
		db := setupDB(t)
		fx := seedScenario(t, db)
		svc := newService(db)

		first, err := svc.Start(ctx, fx.user.ID, fx.quiz.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.Start(ctx, fx.user.ID, fx.quiz.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.ID != second.ID {
			t.Errorf("expected same attempt id, got %s and %s", first.ID, second.ID)
		}
	})

	t.Run("QuizNotFound", func(t *testing.T) {
		db := setupDB(t)
		fx := seedScenario(t, db)
		svc := newService(db)

		if _, err := svc.Start(ctx, fx.user.ID, uuid.New()); !errors.Is(err, ErrQuizNotFound) {
			t.Errorf("expected ErrQuizNotFound, got %v", err)
		}
	})

	t.Run("WindowEnforced", func(t *testing.T) {
		db := setupDB(t)
		fx := seedScenario(t, db)
		svc := newService(db)

		future := &quiz.Quiz{
			ID:              uuid.New(),
			ChapterID:       fx.quiz.ChapterID,
			StartTime:       time.Now().UTC().Add(time.Hour),
			EndTime:         time.Now().UTC().Add(2 * time.Hour),
			DurationMinutes: 30,
		}
		if err := db.Create(future).Error; err != nil {
			t.Fatalf("failed to seed quiz: %v", err)
		}
		past := &quiz.Quiz{
			ID:              uuid.New(),
			ChapterID:       fx.quiz.ChapterID,
			StartTime:       time.Now().UTC().Add(-2 * time.Hour),
			EndTime:         time.Now().UTC().Add(-time.Hour),
			DurationMinutes: 30,
		}
		if err := db.Create(past).Error; err != nil {
			t.Fatalf("failed to seed quiz: %v", err)
		}

		if _, err := svc.Start(ctx, fx.user.ID, future.ID); !errors.Is(err, ErrQuizNotStarted) {
			t.Errorf("expected ErrQuizNotStarted, got %v", err)
		}
		if _, err := svc.Start(ctx, fx.user.ID, past.ID); !errors.Is(err, ErrQuizEnded) {
			t.Errorf("expected ErrQuizEnded, got %v", err)
		}

		config.SetQuizWindowEnforced(false)
		defer config.SetQuizWindowEnforced(true)
		if _, err := svc.Start(ctx, fx.user.ID, past.ID); err != nil {
			t.Errorf("expected start to succeed with window disabled, got %v", err)
		}
	})

	t.Run("CompletedAttemptNotRetryable", func(t *testing.T) {
		db := setupDB(t)
		fx := seedScenario(t, db)
		svc := newService(db)

		if _, err := svc.Start(ctx, fx.user.ID, fx.quiz.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Submit(ctx, fx.user.ID, fx.quiz.ID, SubmitPayload{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Start(ctx, fx.user.ID, fx.quiz.ID); !errors.Is(err, ErrAlreadyAttempted) {
			t.Errorf("expected ErrAlreadyAttempted, got %v", err)
		}
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	answered := func(v int) *int { return &v }

	t.Run("ScoresEveryQuestion", func(t *testing.T) {
		db := setupDB(t)
		fx := seedScenario(t, db)
		svc := newService(db)

		started, err := svc.Start(ctx, fx.user.ID, fx.quiz.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// First question right, second wrong, third unanswered.
		payload := SubmitPayload{
			Answers: map[string]*int{
				fx.questions[0].ID.String(): answered(1),
				fx.questions[1].ID.String(): answered(4),
			},
			TimeRemainingSeconds: 600,
		}
		results, err := svc.Submit(ctx, fx.user.ID, fx.quiz.ID, payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if results.CorrectAnswers != 1 {
			t.Errorf("expected 1 correct answer, got %d", results.CorrectAnswers)
		}
		if results.TotalQuestions != 3 {
			t.Errorf("expected 3 total questions, got %d", results.TotalQuestions)
		}
		if results.ScorePercentage != 33 {
			t.Errorf("expected 33%%, got %d%%", results.ScorePercentage)
		}
		if results.TimeSpent == nil || *results.TimeSpent != 30*60-600 {
			t.Errorf("unexpected time_spent: %v", results.TimeSpent)
		}

		var count int64
		if err := db.Model(&Score{}).Where("attempt_id = ?", started.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count scores: %v", err)
		}
		if count != 3 {
			t.Errorf("expected one score row per question, got %d", count)
		}

		var unanswered Score
		if err := db.Where("question_id = ?", fx.questions[2].ID).First(&unanswered).Error; err != nil {
			t.Fatalf("failed to load score: %v", err)
		}
		if unanswered.SelectedOption != nil {
			t.Errorf("expected nil selected_option, got %v", *unanswered.SelectedOption)
		}
	})

	t.Run("RequiresOpenAttempt", func(t *testing.T) {
		db := setupDB(t)
		fx := seedScenario(t, db)
		svc := newService(db)

		if _, err := svc.Submit(ctx, fx.user.ID, fx.quiz.ID, SubmitPayload{}); !errors.Is(err, ErrNoAttempt) {
			t.Errorf("expected ErrNoAttempt, got %v", err)
		}

		if _, err := svc.Start(ctx, fx.user.ID, fx.quiz.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Submit(ctx, fx.user.ID, fx.quiz.ID, SubmitPayload{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Submit(ctx, fx.user.ID, fx.quiz.ID, SubmitPayload{}); !errors.Is(err, ErrAlreadySubmitted) {
			t.Errorf("expected ErrAlreadySubmitted, got %v", err)
		}
	})
}

func TestResults(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	fx := seedScenario(t, db)
	svc := newService(db)

	started, err := svc.Start(ctx, fx.user.ID, fx.quiz.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("NotSubmittedYet", func(t *testing.T) {
		if _, err := svc.Results(ctx, started.ID, fx.user.ID); !errors.Is(err, ErrNotSubmitted) {
			t.Errorf("expected ErrNotSubmitted, got %v", err)
		}
	})

	selected := 1
	if _, err := svc.Submit(ctx, fx.user.ID, fx.quiz.ID, SubmitPayload{
		Answers: map[string]*int{fx.questions[0].ID.String(): &selected},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("OwnerSeesDetail", func(t *testing.T) {
		results, err := svc.Results(ctx, started.ID, fx.user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results.Questions) != 3 {
			t.Fatalf("expected 3 question results, got %d", len(results.Questions))
		}
		if results.QuizLabel != "Mathematics - Algebra" {
			t.Errorf("unexpected label %q", results.QuizLabel)
		}
		var correct int
		for _, q := range results.Questions {
			if q.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			t.Errorf("expected 1 correct question, got %d", correct)
		}
	})

	t.Run("OtherUserRejected", func(t *testing.T) {
		if _, err := svc.Results(ctx, started.ID, uuid.New()); !errors.Is(err, ErrNotOwner) {
			t.Errorf("expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("UnknownAttempt", func(t *testing.T) {
		if _, err := svc.Results(ctx, uuid.New(), fx.user.ID); !errors.Is(err, ErrAttemptNotFound) {
			t.Errorf("expected ErrAttemptNotFound, got %v", err)
		}
	})
}

func TestChapterStatusAndHistory(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	fx := seedScenario(t, db)
	svc := newService(db)

	if _, err := svc.Start(ctx, fx.user.ID, fx.quiz.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	selected := 2
	if _, err := svc.Submit(ctx, fx.user.ID, fx.quiz.ID, SubmitPayload{
		Answers: map[string]*int{fx.questions[1].ID.String(): &selected},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("ChapterStatus", func(t *testing.T) {
		statuses, err := svc.ChapterStatus(ctx, fx.user.ID, fx.quiz.ChapterID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(statuses) != 1 || statuses[0].QuizID != fx.quiz.ID || !statuses[0].Attempted {
			t.Errorf("unexpected statuses: %+v", statuses)
		}
	})

	t.Run("AttemptForQuiz", func(t *testing.T) {
		dto, err := svc.AttemptForQuiz(ctx, fx.user.ID, fx.quiz.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dto.HasAttempt || dto.Attempt == nil || !dto.Attempt.Completed {
			t.Errorf("unexpected dto: %+v", dto)
		}

		none, err := svc.AttemptForQuiz(ctx, uuid.New(), fx.quiz.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if none.HasAttempt {
			t.Error("expected has_attempt=false for unknown user")
		}
	})

	t.Run("History", func(t *testing.T) {
		entries, err := svc.History(ctx, fx.user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 history entry, got %d", len(entries))
		}
		entry := entries[0]
		if entry.Label != "Mathematics - Algebra" {
			t.Errorf("unexpected label %q", entry.Label)
		}
		if entry.CorrectAnswers != 1 || entry.TotalQuestions != 3 || entry.ScorePercentage != 33 {
			t.Errorf("unexpected score %d/%d (%d%%)", entry.CorrectAnswers, entry.TotalQuestions, entry.ScorePercentage)
		}
	})
}

package analytics

import (
	"context"
	"errors"
	"sort"
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

type seeder struct {
	t       *testing.T
	db      *gorm.DB
	user    *user.User
	chapter *chapter.Chapter
}

func newSeeder(t *testing.T, db *gorm.DB, subjectName string) *seeder {
	t.Helper()

	u := &user.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		FullName: "Test User",
		Role:     user.RoleUser,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	s := &subject.Subject{ID: uuid.New(), Name: subjectName}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("failed to seed subject: %v", err)
	}
	ch := &chapter.Chapter{ID: uuid.New(), Name: "Chapter 1", SubjectID: s.ID}
	if err := db.Create(ch).Error; err != nil {
		t.Fatalf("failed to seed chapter: %v", err)
	}
	return &seeder{t: t, db: db, user: u, chapter: ch}
}

// completedAttempt seeds a submitted attempt where the first `correct` of
// `total` questions were answered right and the rest left unanswered.
func (s *seeder) completedAttempt(correct, total int, endTime time.Time) {
	s.t.Helper()

	q := &quiz.Quiz{
		ID:              uuid.New(),
		ChapterID:       s.chapter.ID,
		StartTime:       endTime.Add(-time.Hour),
		EndTime:         endTime.Add(time.Hour),
		DurationMinutes: 30,
	}
	if err := s.db.Create(q).Error; err != nil {
		s.t.Fatalf("failed to seed quiz: %v", err)
	}

	a := &attempt.QuizAttempt{
		ID:        uuid.New(),
		UserID:    s.user.ID,
		QuizID:    q.ID,
		StartTime: endTime.Add(-10 * time.Minute),
		EndTime:   &endTime,
	}
	if err := s.db.Create(a).Error; err != nil {
		s.t.Fatalf("failed to seed attempt: %v", err)
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
		if err := s.db.Create(question).Error; err != nil {
			s.t.Fatalf("failed to seed question: %v", err)
		}

		score := &attempt.Score{
			ID:         uuid.New(),
			AttemptID:  a.ID,
			UserID:     s.user.ID,
			QuizID:     q.ID,
			QuestionID: question.ID,
		}
		if i < correct {
			selected := 1
			score.SelectedOption = &selected
		}
		if err := s.db.Create(score).Error; err != nil {
			s.t.Fatalf("failed to seed score: %v", err)
		}
	}
}

func TestParseWindow(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc := NewService(NewRepository(db), subject.NewRepository(db))

	for _, bad := range []string{"0", "-7", "week", "7.5"} {
		if _, err := svc.Summary(ctx, bad); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("days=%q: expected ErrInvalidWindow, got %v", bad, err)
		}
	}
	for _, good := range []string{"", "all", "30"} {
		if _, err := svc.Summary(ctx, good); err != nil {
			t.Errorf("days=%q: unexpected error %v", good, err)
		}
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc := NewService(NewRepository(db), subject.NewRepository(db))

	seed := newSeeder(t, db, "Mathematics")
	now := time.Now().UTC()
	// Pooled accuracy: (1+1)/(1+9) = 20%, not the 55% a mean of the two
	// per-attempt percentages would give.
	seed.completedAttempt(1, 1, now.Add(-time.Hour))
	seed.completedAttempt(1, 9, now.Add(-2*time.Hour))

	summary, err := svc.Summary(ctx, "all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalUsers != 1 {
		t.Errorf("expected 1 user, got %d", summary.TotalUsers)
	}
	if summary.QuizzesTaken != 2 {
		t.Errorf("expected 2 completed attempts, got %d", summary.QuizzesTaken)
	}
	if summary.AvgScore != 20.0 {
		t.Errorf("expected pooled avg 20.0, got %v", summary.AvgScore)
	}
}

func TestSummaryWindowExcludesOldAttempts(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc := NewService(NewRepository(db), subject.NewRepository(db))

	seed := newSeeder(t, db, "Mathematics")
	now := time.Now().UTC()
	seed.completedAttempt(3, 3, now.Add(-time.Hour))
	seed.completedAttempt(0, 3, now.AddDate(0, 0, -30))

	summary, err := svc.Summary(ctx, "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.QuizzesTaken != 1 {
		t.Errorf("expected 1 attempt inside window, got %d", summary.QuizzesTaken)
	}
	if summary.AvgScore != 100.0 {
		t.Errorf("expected 100.0, got %v", summary.AvgScore)
	}
}

func TestSubjectPerformance(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc := NewService(NewRepository(db), subject.NewRepository(db))

	strong := newSeeder(t, db, "Mathematics")
	strong.completedAttempt(3, 4, time.Now().UTC())

	weak := newSeeder(t, db, "Physics")
	weak.completedAttempt(1, 3, time.Now().UTC())

	// Subject with no attempts at all.
	if err := db.Create(&subject.Subject{ID: uuid.New(), Name: "Chemistry"}).Error; err != nil {
		t.Fatalf("failed to seed subject: %v", err)
	}

	out, err := svc.SubjectPerformance(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 subjects, got %d", len(out))
	}
	if out[0].SubjectName != "Mathematics" || out[0].AvgScore != 75.0 {
		t.Errorf("unexpected first entry: %+v", out[0])
	}
	if out[1].SubjectName != "Physics" || out[1].AvgScore != 33.3 {
		t.Errorf("unexpected second entry: %+v", out[1])
	}
	if out[2].SubjectName != "Chemistry" || out[2].AvgScore != 0 {
		t.Errorf("expected no-data subject last with 0, got %+v", out[2])
	}
}

func TestPerformanceDistribution(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc := NewService(NewRepository(db), subject.NewRepository(db))

	seed := newSeeder(t, db, "Mathematics")
	now := time.Now().UTC()
	seed.completedAttempt(10, 10, now) // 100 -> excellent
	seed.completedAttempt(9, 10, now)  // 90 -> excellent (boundary)
	seed.completedAttempt(8, 10, now)  // 80 -> good
	seed.completedAttempt(6, 10, now)  // 60 -> average (boundary)
	seed.completedAttempt(1, 10, now)  // 10 -> needs_improvement
	seed.completedAttempt(0, 0, now)   // zero questions, excluded

	out, err := svc.PerformanceDistribution(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(out))
	}

	got := map[string]int{}
	total := 0
	for _, b := range out {
		got[b.Label] = b.Count
		total += b.Count
	}
	want := map[string]int{"excellent": 2, "good": 1, "average": 1, "needs_improvement": 1}
	for label, count := range want {
		if got[label] != count {
			t.Errorf("bucket %s: expected %d, got %d", label, count, got[label])
		}
	}
	if total != 5 {
		t.Errorf("expected bucket counts to sum to 5 scored attempts, got %d", total)
	}
}

func TestQuizActivityChart(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	svc := NewService(NewRepository(db), subject.NewRepository(db))

	seed := newSeeder(t, db, "Mathematics")
	now := time.Now().UTC()
	seed.completedAttempt(1, 1, now.AddDate(0, 0, -2))
	seed.completedAttempt(1, 1, now.AddDate(0, 0, -1))
	seed.completedAttempt(1, 1, now.AddDate(0, 0, -1))

	chart, err := svc.QuizActivity(ctx, "all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Labels) != len(chart.Values) {
		t.Fatalf("labels/values length mismatch: %d vs %d", len(chart.Labels), len(chart.Values))
	}
	if !sort.StringsAreSorted(chart.Labels) {
		t.Errorf("expected ascending date labels, got %v", chart.Labels)
	}
	total := 0
	for _, v := range chart.Values {
		total += v
	}
	if total != 3 {
		t.Errorf("expected 3 attempts across buckets, got %d", total)
	}
}

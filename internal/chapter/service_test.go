package chapter

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quizlytics/quizlytics-api/internal/cache"
	"github.com/quizlytics/quizlytics-api/internal/subject"
)

func setupService(t *testing.T) (ChapterService, *subject.Subject, *subject.Subject) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&subject.Subject{}, &Chapter{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	maths := &subject.Subject{ID: uuid.New(), Name: "Mathematics"}
	physics := &subject.Subject{ID: uuid.New(), Name: "Physics"}
	for _, s := range []*subject.Subject{maths, physics} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("failed to seed subject: %v", err)
		}
	}

	svc := NewService(NewRepository(db), subject.NewRepository(db), cache.New("", 0))
	return svc, maths, physics
}

func TestCreateChapter(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		svc, maths, _ := setupService(t)
		resp, err := svc.Create(ctx, ChapterPayload{Name: "Algebra", SubjectID: maths.ID.String()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.SubjectID != maths.ID {
			t.Errorf("unexpected subject id %s", resp.SubjectID)
		}
	})

	t.Run("UnknownSubject", func(t *testing.T) {
		svc, _, _ := setupService(t)
		payload := ChapterPayload{Name: "Algebra", SubjectID: uuid.New().String()}
		if _, err := svc.Create(ctx, payload); !errors.Is(err, ErrSubjectNotFound) {
			t.Errorf("expected ErrSubjectNotFound, got %v", err)
		}
	})

	t.Run("DuplicateNameWithinSubject", func(t *testing.T) {
		svc, maths, _ := setupService(t)
		payload := ChapterPayload{Name: "Algebra", SubjectID: maths.ID.String()}
		if _, err := svc.Create(ctx, payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Create(ctx, payload); !errors.Is(err, ErrNameTaken) {
			t.Errorf("expected ErrNameTaken, got %v", err)
		}
	})

	t.Run("SameNameInAnotherSubject", func(t *testing.T) {
		svc, maths, physics := setupService(t)
		if _, err := svc.Create(ctx, ChapterPayload{Name: "Waves", SubjectID: maths.ID.String()}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Create(ctx, ChapterPayload{Name: "Waves", SubjectID: physics.ID.String()}); err != nil {
			t.Errorf("same name under a different subject should be allowed, got %v", err)
		}
	})
}

func TestUpdateChapter(t *testing.T) {
	ctx := context.Background()
	svc, maths, _ := setupService(t)

	if _, err := svc.Create(ctx, ChapterPayload{Name: "Algebra", SubjectID: maths.ID.String()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	geometry, err := svc.Create(ctx, ChapterPayload{Name: "Geometry", SubjectID: maths.ID.String()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := ChapterPayload{Name: "Algebra", SubjectID: maths.ID.String()}
	if _, err := svc.Update(ctx, geometry.ID.String(), payload); !errors.Is(err, ErrNameTaken) {
		t.Errorf("expected ErrNameTaken, got %v", err)
	}
}

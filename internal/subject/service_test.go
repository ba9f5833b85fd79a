package subject

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quizlytics/quizlytics-api/internal/cache"
)

func setupService(t *testing.T) SubjectService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Subject{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewService(NewRepository(db), cache.New("", 0))
}

func TestCreateSubject(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		svc := setupService(t)
		subj, err := svc.Create(ctx, "  Mathematics  ", "numbers and shapes")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if subj.Name != "Mathematics" {
			t.Errorf("expected trimmed name, got %q", subj.Name)
		}
	})

	t.Run("RejectsEmptyName", func(t *testing.T) {
		svc := setupService(t)
		if _, err := svc.Create(ctx, "   ", ""); !errors.Is(err, ErrNameRequired) {
			t.Errorf("expected ErrNameRequired, got %v", err)
		}
	})

	t.Run("RejectsDuplicateName", func(t *testing.T) {
		svc := setupService(t)
		if _, err := svc.Create(ctx, "Physics", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Create(ctx, "Physics", "again"); !errors.Is(err, ErrNameTaken) {
			t.Errorf("expected ErrNameTaken, got %v", err)
		}
	})
}

func TestUpdateSubject(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	if _, err := svc.Create(ctx, "Physics", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chem, err := svc.Create(ctx, "Chemistry", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Update(ctx, chem.ID.String(), "Physics", ""); !errors.Is(err, ErrNameTaken) {
		t.Errorf("expected ErrNameTaken, got %v", err)
	}

	updated, err := svc.Update(ctx, chem.ID.String(), "Organic Chemistry", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Organic Chemistry" {
		t.Errorf("unexpected name after update: %q", updated.Name)
	}
}

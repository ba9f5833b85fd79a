package attempt

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(a *QuizAttempt) error
	FindByID(id uuid.UUID) (*QuizAttempt, error)
	FindByUserAndQuiz(userID, quizID uuid.UUID) (*QuizAttempt, error)
	FindByUser(userID uuid.UUID) ([]*QuizAttempt, error)
	AttemptedQuizIDs(userID, chapterID uuid.UUID) ([]uuid.UUID, error)
	// Complete closes the attempt with a guarded UPDATE; the WHERE on
	// end_time IS NULL makes the open-check atomic. Returns the number of
	// rows updated (0 means another submit already closed it).
	Complete(attemptID uuid.UUID, endTime time.Time, timeSpent int) (int64, error)
	CreateScores(scores []*Score) error
	ScoresByAttempt(attemptID uuid.UUID) ([]*Score, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(a *QuizAttempt) error {
	return r.db.Create(a).Error
}

func (r *attemptRepository) FindByID(id uuid.UUID) (*QuizAttempt, error) {
	var a QuizAttempt
	if err := r.db.
		Preload("Quiz").
		Preload("Quiz.Chapter").
		Preload("Quiz.Chapter.Subject").
		First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepository) FindByUserAndQuiz(userID, quizID uuid.UUID) (*QuizAttempt, error) {
	var a QuizAttempt
	if err := r.db.
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepository) FindByUser(userID uuid.UUID) ([]*QuizAttempt, error) {
	var attempts []*QuizAttempt
	if err := r.db.
		Preload("Quiz").
		Preload("Quiz.Chapter").
		Preload("Quiz.Chapter.Subject").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) AttemptedQuizIDs(userID, chapterID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.
		Model(&QuizAttempt{}).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quiz_attempts.user_id = ? AND quizzes.chapter_id = ?", userID, chapterID).
		Pluck("quiz_attempts.quiz_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *attemptRepository) Complete(attemptID uuid.UUID, endTime time.Time, timeSpent int) (int64, error) {
	res := r.db.
		Model(&QuizAttempt{}).
		Where("id = ? AND end_time IS NULL", attemptID).
		Updates(map[string]interface{}{
			"end_time":   endTime,
			"time_spent": timeSpent,
		})
	return res.RowsAffected, res.Error
}

func (r *attemptRepository) CreateScores(scores []*Score) error {
	if len(scores) == 0 {
		return nil
	}
	return r.db.Create(scores).Error
}

func (r *attemptRepository) ScoresByAttempt(attemptID uuid.UUID) ([]*Score, error) {
	var scores []*Score
	if err := r.db.
		Preload("Question").
		Where("attempt_id = ?", attemptID).
		Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

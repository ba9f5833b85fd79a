package analytics

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizlytics/quizlytics-api/internal/attempt"
	"github.com/quizlytics/quizlytics-api/internal/user"
)

// ScoreDetail is one score row joined to its question's answer key and the
// subject the quiz belongs to. All aggregation happens in Go so that
// calendar-day grouping uses the reporting timezone.
type ScoreDetail struct {
	AttemptID      uuid.UUID
	SelectedOption *int
	CorrectOption  int
	SubjectID      uuid.UUID
	SubjectName    string
	EndTime        *time.Time
}

type AnalyticsRepository interface {
	CountUsers() (int64, error)
	CountActiveUsers(since time.Time) (int64, error)
	CountCompletedAttempts(since *time.Time) (int64, error)
	UserCreationTimes() ([]time.Time, error)
	CompletedAttemptTimes(since *time.Time) ([]time.Time, error)
	// ScoreDetails returns score rows of completed attempts, newest first,
	// optionally limited to attempts finished at or after since.
	ScoreDetails(since *time.Time) ([]*ScoreDetail, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&user.User{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountActiveUsers(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&user.User{}).
		Where("last_visited >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountCompletedAttempts(since *time.Time) (int64, error) {
	q := r.db.Model(&attempt.QuizAttempt{}).Where("end_time IS NOT NULL")
	if since != nil {
		q = q.Where("end_time >= ?", *since)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *analyticsRepository) UserCreationTimes() ([]time.Time, error) {
	var times []time.Time
	err := r.db.Model(&user.User{}).
		Order("created_at ASC").
		Pluck("created_at", &times).Error
	return times, err
}

func (r *analyticsRepository) CompletedAttemptTimes(since *time.Time) ([]time.Time, error) {
	q := r.db.Model(&attempt.QuizAttempt{}).Where("end_time IS NOT NULL")
	if since != nil {
		q = q.Where("end_time >= ?", *since)
	}
	var times []time.Time
	err := q.Order("end_time ASC").Pluck("end_time", &times).Error
	return times, err
}

func (r *analyticsRepository) ScoreDetails(since *time.Time) ([]*ScoreDetail, error) {
	q := r.db.Model(&attempt.Score{}).
		Select(`scores.attempt_id,
			scores.selected_option,
			questions.correct_option,
			subjects.id AS subject_id,
			subjects.name AS subject_name,
			quiz_attempts.end_time`).
		Joins("JOIN questions ON questions.id = scores.question_id").
		Joins("JOIN quizzes ON quizzes.id = scores.quiz_id").
		Joins("JOIN chapters ON chapters.id = quizzes.chapter_id").
		Joins("JOIN subjects ON subjects.id = chapters.subject_id").
		Joins("JOIN quiz_attempts ON quiz_attempts.id = scores.attempt_id").
		Where("quiz_attempts.end_time IS NOT NULL")
	if since != nil {
		q = q.Where("quiz_attempts.end_time >= ?", *since)
	}

	var details []*ScoreDetail
	if err := q.Scan(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

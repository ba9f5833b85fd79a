package report

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizlytics/quizlytics-api/internal/attempt"
)

// ExportRow is one score row joined to everything the CSV exports need.
type ExportRow struct {
	UserID            uuid.UUID
	UserName          string
	UserEmail         string
	QuizID            uuid.UUID
	SubjectName       string
	ChapterName       string
	QuestionStatement string
	SelectedOption    *int
	CorrectOption     int
	AttemptID         uuid.UUID
	AttemptStart      time.Time
	AttemptEnd        *time.Time
	TimeSpent         *int
	CreatedAt         time.Time
}

type ReportRepository interface {
	// CompletedAttempts returns the user's attempts with end_time in
	// [start, end), oldest first, with the quiz chain preloaded.
	CompletedAttempts(userID uuid.UUID, start, end time.Time) ([]*attempt.QuizAttempt, error)
	ScoresByAttempt(attemptID uuid.UUID) ([]*attempt.Score, error)
	// ExportRows returns all score rows of completed attempts, optionally
	// limited to one user.
	ExportRows(userID *uuid.UUID) ([]*ExportRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CompletedAttempts(userID uuid.UUID, start, end time.Time) ([]*attempt.QuizAttempt, error) {
	var attempts []*attempt.QuizAttempt
	if err := r.db.
		Preload("Quiz").
		Preload("Quiz.Chapter").
		Preload("Quiz.Chapter.Subject").
		Where("user_id = ? AND end_time >= ? AND end_time < ?", userID, start, end).
		Order("end_time ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *reportRepository) ScoresByAttempt(attemptID uuid.UUID) ([]*attempt.Score, error) {
	var scores []*attempt.Score
	if err := r.db.
		Preload("Question").
		Where("attempt_id = ?", attemptID).
		Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *reportRepository) ExportRows(userID *uuid.UUID) ([]*ExportRow, error) {
	q := r.db.Model(&attempt.Score{}).
		Select(`scores.user_id,
			users.full_name AS user_name,
			users.email AS user_email,
			scores.quiz_id,
			subjects.name AS subject_name,
			chapters.name AS chapter_name,
			questions.statement AS question_statement,
			scores.selected_option,
			questions.correct_option,
			scores.attempt_id,
			quiz_attempts.start_time AS attempt_start,
			quiz_attempts.end_time AS attempt_end,
			quiz_attempts.time_spent,
			scores.created_at`).
		Joins("JOIN users ON users.id = scores.user_id").
		Joins("JOIN questions ON questions.id = scores.question_id").
		Joins("JOIN quizzes ON quizzes.id = scores.quiz_id").
		Joins("JOIN chapters ON chapters.id = quizzes.chapter_id").
		Joins("JOIN subjects ON subjects.id = chapters.subject_id").
		Joins("JOIN quiz_attempts ON quiz_attempts.id = scores.attempt_id").
		Where("quiz_attempts.end_time IS NOT NULL").
		Order("quiz_attempts.start_time ASC, scores.created_at ASC")
	if userID != nil {
		q = q.Where("scores.user_id = ?", *userID)
	}

	var rows []*ExportRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Package report assembles per-user monthly performance summaries, renders
// them as HTML email and produces CSV exports of the raw score data.
package report

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNothingToReport marks a period with no completed attempts. It is a
// terminal outcome, not a failure: batch jobs skip the user and move on.
var ErrNothingToReport = errors.New("no completed attempts in the reporting period")

type QuizRow struct {
	QuizID         uuid.UUID `json:"quiz_id"`
	Label          string    `json:"label"`
	Percentage     float64   `json:"percentage"`
	Correct        int       `json:"correct"`
	Total          int       `json:"total"`
	CompletionDate string    `json:"completion_date"`
}

type SubjectRow struct {
	SubjectName string  `json:"subject_name"`
	Accuracy    float64 `json:"accuracy"`
	Correct     int     `json:"correct"`
	Total       int     `json:"total"`
}

type Totals struct {
	AttemptCount   int     `json:"attempt_count"`
	Accuracy       float64 `json:"accuracy"`
	TotalCorrect   int     `json:"total_correct"`
	TotalQuestions int     `json:"total_questions"`
}

// MonthlyReport is the assembled monthly performance summary for one user.
// Subjects is sorted ascending by accuracy so areas needing attention come
// first; both the narrative prompt and the email template rely on that order.
type MonthlyReport struct {
	UserID    uuid.UUID     `json:"user_id"`
	UserName  string        `json:"user_name"`
	UserEmail string        `json:"user_email"`
	Period    string        `json:"period"`
	Quizzes   []*QuizRow    `json:"quizzes"`
	Subjects  []*SubjectRow `json:"subjects"`
	Totals    Totals        `json:"totals"`
	BestQuiz  *QuizRow      `json:"best_quiz,omitempty"`
	Narrative string        `json:"narrative,omitempty"`
}

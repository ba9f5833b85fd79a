package attempt

import (
	"time"

	"github.com/google/uuid"

	"github.com/quizlytics/quizlytics-api/internal/quiz"
	"github.com/quizlytics/quizlytics-api/internal/user"
)

// QuizAttempt is one user's run at one quiz. The composite unique index makes
// a concurrent double-start resolve to a single row.
type QuizAttempt struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_quiz" json:"user_id"`
	QuizID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_quiz" json:"quiz_id"`
	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	// TimeSpent is seconds between allotted duration and what the client
	// reported as remaining. Stored as submitted.
	TimeSpent *int `json:"time_spent,omitempty"`

	User user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Quiz quiz.Quiz `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
}

func (a *QuizAttempt) Completed() bool {
	return a.EndTime != nil
}

// Score is one row per question of a submitted attempt. SelectedOption is
// nil when the question was left unanswered; correctness is derived from the
// question at read time, never stored.
type Score struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AttemptID      uuid.UUID `gorm:"type:uuid;not null;index" json:"attempt_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	QuizID         uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	QuestionID     uuid.UUID `gorm:"type:uuid;not null" json:"question_id"`
	SelectedOption *int      `json:"selected_option"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Attempt  QuizAttempt   `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"-"`
	User     user.User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Quiz     quiz.Quiz     `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	Question quiz.Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
}

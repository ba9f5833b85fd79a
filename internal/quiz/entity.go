package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/quizlytics/quizlytics-api/internal/chapter"
)

type Quiz struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ChapterID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"chapter_id"`
	Chapter         chapter.Chapter `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE" json:"-"`
	StartTime       time.Time       `gorm:"not null" json:"start_time"`
	EndTime         time.Time       `gorm:"not null" json:"end_time"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
	Remarks         string          `gorm:"type:varchar(200)" json:"remarks,omitempty"`

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID        uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Statement     string    `gorm:"type:varchar(500);not null" json:"statement"`
	Option1       string    `gorm:"type:text;not null" json:"option1"`
	Option2       string    `gorm:"type:text;not null" json:"option2"`
	Option3       string    `gorm:"type:text;not null" json:"option3"`
	Option4       string    `gorm:"type:text;not null" json:"option4"`
	CorrectOption int       `gorm:"not null" json:"correct_option"`
}

// Options returns the four choices in display order; option numbers used
// elsewhere are 1-based indexes into this slice.
func (q *Question) Options() []string {
	return []string{q.Option1, q.Option2, q.Option3, q.Option4}
}

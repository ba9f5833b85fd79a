package chapter

import (
	"github.com/google/uuid"

	"github.com/quizlytics/quizlytics-api/internal/subject"
)

type Chapter struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_subject_chapter,priority:2" json:"name"`
	Description string          `gorm:"type:varchar(200)" json:"description,omitempty"`
	SubjectID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_subject_chapter,priority:1" json:"subject_id"`
	Subject     subject.Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"-"`
}

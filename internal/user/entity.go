package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	Email         string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	FullName      string     `gorm:"type:varchar(100);not null" json:"full_name"`
	Password      string     `gorm:"type:varchar(200)" json:"-"`
	Provider      *string    `gorm:"type:varchar(100)" json:"provider,omitempty"`
	ProviderID    *string    `gorm:"type:varchar(100)" json:"provider_id,omitempty"`
	ProviderToken *string    `gorm:"type:text" json:"-"`
	Role          Role       `gorm:"type:varchar(10);not null;default:USER" json:"role"`
	LastVisited   *time.Time `json:"last_visited,omitempty"`
	ReminderTime  *string    `gorm:"type:varchar(5)" json:"reminder_time,omitempty"`
}

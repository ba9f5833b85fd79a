package user

import (
	"time"

	"github.com/google/uuid"
)

type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginDTO struct {
	Code string `json:"code"`
}

type ReminderDTO struct {
	ReminderTime string `json:"reminder_time"`
}

type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastVisited  *time.Time `json:"last_visited,omitempty"`
	ReminderTime *string    `json:"reminder_time,omitempty"`
}

func toResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		LastVisited:  u.LastVisited,
		ReminderTime: u.ReminderTime,
	}
}

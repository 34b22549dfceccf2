package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds auxiliary per-user data, separate from the identity record.
// Exactly one profile exists per user; it is created empty at registration
// and filled in later through the edit-profile form.
type Profile struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio         string         `gorm:"type:text;default:''" json:"bio"`
	DateOfBirth *time.Time     `json:"date_of_birth,omitempty"`
	Photo       string         `json:"photo"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

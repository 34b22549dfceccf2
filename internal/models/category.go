package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups posts under a label. Deleting a category never deletes its
// posts; their category reference is nulled instead.
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Posts       []Post         `gorm:"foreignKey:CategoryID" json:"posts,omitempty"`
}

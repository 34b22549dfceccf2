package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog post. The default listing order is most-recently
// updated first, ties broken by most-recently created.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	Image      string    `json:"image"`
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID" json:"author"`
	// Participants is the set of users who have commented on this post.
	// It grows monotonically; there is no removal path.
	Participants []User         `gorm:"many2many:post_participants" json:"participants,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Comments     []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is one user's score for one book.
type Rating struct {
	Model
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_ratings_user_book" json:"user_id"`
	BookID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_ratings_user_book;index" json:"book_id"`
	Score     int       `gorm:"not null" json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

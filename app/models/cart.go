package models

import "github.com/google/uuid"

// CartItem is a line of a user's cart.
type CartItem struct {
	Model
	UserID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_cart_user_book" json:"user_id"`
	BookID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_cart_user_book;index" json:"book_id"`
	Quantity int       `gorm:"not null" json:"quantity"`
}

package models

import "github.com/google/uuid"

// Payment records that a user paid for a book's PDF. No amount is kept;
// the row's existence is the entitlement.
type Payment struct {
	Model
	UserID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_payments_user_book" json:"user_id"`
	BookID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_payments_user_book;index" json:"book_id"`
}

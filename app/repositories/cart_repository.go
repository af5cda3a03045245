package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) Find(ctx context.Context, userID, bookID uuid.UUID) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).First(&item).Error
	return item, err
}

func (r *CartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at, id").Find(&items).Error
	return items, err
}

func (r *CartRepository) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *CartRepository) SetQuantity(ctx context.Context, id uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", qty).Error
}

// Delete removes one line and reports whether it existed.
func (r *CartRepository) Delete(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&models.CartItem{})
	return res.RowsAffected > 0, res.Error
}

func (r *CartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func (r *CartRepository) DeleteByBook(ctx context.Context, bookID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("book_id = ?", bookID).Delete(&models.CartItem{}).Error
}

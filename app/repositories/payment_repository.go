package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Find(ctx context.Context, userID, bookID uuid.UUID) (models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).First(&p).Error
	return p, err
}

func (r *PaymentRepository) Exists(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).Count(&n).Error
	return n > 0, err
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) DeleteByBook(ctx context.Context, bookID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("book_id = ?", bookID).Delete(&models.Payment{}).Error
}

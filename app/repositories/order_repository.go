package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and its items.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Find loads one order with its items.
func (r *OrderRepository) Find(ctx context.Context, id uuid.UUID) (models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items", orderItems).Where("id = ?", id).First(&order).Error
	return order, err
}

// ListByUser returns the user's orders with items, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items", orderItems).
		Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error
	return orders, err
}

// ListAll returns every order with items, newest first.
func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items", orderItems).Order("created_at desc").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes the order's items, then the order.
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{}).Error
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

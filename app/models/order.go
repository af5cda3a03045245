package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/bookstore/pkg/collection"
)

// OrderStatus is the fulfillment state of an order. It only moves forward:
// placed → processed → shipped → delivered.
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusProcessed OrderStatus = "processed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
)

// Next returns the status that follows s, and false once s is terminal or unknown.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusPlaced:
		return StatusProcessed, true
	case StatusProcessed:
		return StatusShipped, true
	case StatusShipped:
		return StatusDelivered, true
	}
	return s, false
}

type Order struct {
	Model
	UserID    uuid.UUID   `gorm:"type:char(36);not null;index" json:"user_id"`
	Status    OrderStatus `gorm:"size:20;not null;default:placed" json:"status"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total     float64     `gorm:"-" json:"total"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ComputeTotal sums price × quantity over the loaded items into Total.
func (o *Order) ComputeTotal() {
	o.Total = collection.Sum(o.Items, func(it OrderItem) float64 {
		return it.Price * float64(it.Quantity)
	})
}

// OrderItem snapshots a book's title and price at purchase time. BookID is
// deliberately not a foreign key: items outlive deleted books.
type OrderItem struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  uuid.UUID `gorm:"type:char(36);not null;index" json:"order_id"`
	BookID   uuid.UUID `gorm:"type:char(36);not null;index" json:"book_id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Price    float64   `gorm:"not null" json:"price"`
	Quantity int       `gorm:"not null" json:"quantity"`
}

// Package migrations registers the bookstore schema with pkg/migration.
// Importing it for side effects makes the migrations available to the
// runner:
//
//	import _ "github.com/shashiranjanraj/bookstore/database/migrations"
package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", table(&models.User{}, "users"))
	migration.Register("20260101000100_create_books_table", table(&models.Book{}, "books"))
	migration.Register("20260101000200_create_orders_table", table(&models.Order{}, "orders"))
	migration.Register("20260101000300_create_order_items_table", table(&models.OrderItem{}, "order_items"))
	migration.Register("20260101000400_create_ratings_table", table(&models.Rating{}, "ratings"))
	migration.Register("20260101000500_create_cart_items_table", table(&models.CartItem{}, "cart_items"))
	migration.Register("20260101000600_create_payments_table", table(&models.Payment{}, "payments"))
}

// createTable migrates one model up and drops its table down.
type createTable struct {
	model interface{}
	name  string
}

func table(model interface{}, name string) *createTable {
	return &createTable{model: model, name: name}
}

func (m *createTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(m.model)
}

func (m *createTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(m.name)
}

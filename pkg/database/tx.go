package database

import (
	"context"

	"gorm.io/gorm"
)

// Transact runs fn in a transaction bound to ctx. It commits when fn returns
// nil and rolls back when fn returns an error or panics. Repositories built
// on tx see the transaction's view only.
func Transact(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

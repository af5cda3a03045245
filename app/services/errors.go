// Package services holds the bookstore's business rules. Every operation
// that reads and then writes runs inside one database transaction.
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy. Services wrap these with detail, e.g.
// fmt.Errorf("book %w", ErrNotFound) reads "book not found"; the HTTP layer
// maps them to status codes with errors.Is and shows the message.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
)

// notFound converts gorm's missing-row error into ErrNotFound naming what.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}

var errBookNotFound = fmt.Errorf("book %w", ErrNotFound)

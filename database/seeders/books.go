package seeders

import (
	"context"
	"fmt"
	"io"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/routes"
	"github.com/shashiranjanraj/bookstore/app/services"
)

func init() {
	Register("books", SeedBooks)
}

// placeholderCover is a 1x1 transparent PNG.
var placeholderCover = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

var sampleBooks = []services.NewBook{
	{Title: "The Go Programming Language", Author: "Alan Donovan", Price: 34.99,
		Description: "A thorough tour of Go."},
	{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Price: 42.5,
		Description: "Reliable, scalable and maintainable systems."},
	{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Price: 29.95},
}

// SeedBooks adds the sample catalog to an empty books table.
func SeedBooks(ctx context.Context, svc routes.Deps, out io.Writer) error {
	var n int64
	if err := svc.DB.WithContext(ctx).Model(&models.Book{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		fmt.Fprintf(out, "(%d books present, skipped) ", n)
		return nil
	}

	for _, b := range sampleBooks {
		b.Image = &services.Asset{Data: placeholderCover, ContentType: "image/png"}
		if _, err := svc.Catalog.Create(ctx, b); err != nil {
			return fmt.Errorf("%s: %w", b.Title, err)
		}
	}
	return nil
}

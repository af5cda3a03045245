package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/pkg/storage"
)

// AssetKind names one of a book's binary assets.
type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetPDF   AssetKind = "pdf"
)

// Asset is an uploaded or stored file.
type Asset struct {
	Data        []byte
	ContentType string
}

// AssetStore decides where a book's image and PDF bytes live.
type AssetStore interface {
	// Attach stores a on behalf of book and records the reference on the
	// book's fields. The caller saves the book.
	Attach(ctx context.Context, book *models.Book, kind AssetKind, a Asset) error

	// Load returns the asset, with ok false when the book has none.
	Load(ctx context.Context, book models.Book, kind AssetKind) (a Asset, ok bool, err error)

	// Release drops whatever a deleted book referenced. It runs after the
	// delete has committed.
	Release(ctx context.Context, db *gorm.DB, book models.Book) error
}

// NewAssetStore returns the store selected by ASSET_DRIVER.
func NewAssetStore(driver string, disk storage.Disk) (AssetStore, error) {
	switch driver {
	case "", "row":
		return RowAssets{}, nil
	case "disk":
		if disk == nil {
			return nil, errors.New("assets: disk driver needs a storage disk")
		}
		return &DiskAssets{disk: disk}, nil
	default:
		return nil, fmt.Errorf("assets: unknown driver %q (supported: row, disk)", driver)
	}
}

// RowAssets keeps bytes in the book row itself.
type RowAssets struct{}

func (RowAssets) Attach(_ context.Context, book *models.Book, kind AssetKind, a Asset) error {
	switch kind {
	case AssetImage:
		book.ImageData, book.ImageType, book.HasImage = a.Data, a.ContentType, true
	case AssetPDF:
		book.PDFData, book.HasPDF = a.Data, true
	}
	return nil
}

func (RowAssets) Load(_ context.Context, book models.Book, kind AssetKind) (Asset, bool, error) {
	switch kind {
	case AssetImage:
		if len(book.ImageData) == 0 {
			return Asset{}, false, nil
		}
		return Asset{Data: book.ImageData, ContentType: imageType(book)}, true, nil
	case AssetPDF:
		if len(book.PDFData) == 0 {
			return Asset{}, false, nil
		}
		return Asset{Data: book.PDFData, ContentType: pdfContentType}, true, nil
	}
	return Asset{}, false, nil
}

func (RowAssets) Release(context.Context, *gorm.DB, models.Book) error { return nil }

// DiskAssets stores content-addressed blobs on a storage disk and keeps only
// the key on the book. Identical uploads share one blob.
type DiskAssets struct {
	disk storage.Disk
}

func (s *DiskAssets) Attach(ctx context.Context, book *models.Book, kind AssetKind, a Asset) error {
	key := blobKey(kind, a.Data)
	exists, err := s.disk.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("assets: stat %s: %w", key, err)
	}
	if !exists {
		if err := s.disk.Put(ctx, key, a.Data, a.ContentType); err != nil {
			return fmt.Errorf("assets: put %s: %w", key, err)
		}
	}

	switch kind {
	case AssetImage:
		book.ImageKey, book.ImageType, book.HasImage = key, a.ContentType, true
	case AssetPDF:
		book.PDFKey, book.HasPDF = key, true
	}
	return nil
}

func (s *DiskAssets) Load(ctx context.Context, book models.Book, kind AssetKind) (Asset, bool, error) {
	key, contentType := book.ImageKey, imageType(book)
	if kind == AssetPDF {
		key, contentType = book.PDFKey, pdfContentType
	}
	if key == "" {
		return Asset{}, false, nil
	}

	data, err := s.disk.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return Asset{}, false, nil
	}
	if err != nil {
		return Asset{}, false, fmt.Errorf("assets: get %s: %w", key, err)
	}
	return Asset{Data: data, ContentType: contentType}, true, nil
}

// Release deletes the book's blobs unless another book still references them.
func (s *DiskAssets) Release(ctx context.Context, db *gorm.DB, book models.Book) error {
	for _, ref := range []struct{ column, key string }{
		{"image_key", book.ImageKey},
		{"pdf_key", book.PDFKey},
	} {
		if ref.key == "" {
			continue
		}
		var n int64
		if err := db.WithContext(ctx).Model(&models.Book{}).Where(ref.column+" = ?", ref.key).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := s.disk.Delete(ctx, ref.key); err != nil {
			return fmt.Errorf("assets: delete %s: %w", ref.key, err)
		}
	}
	return nil
}

const pdfContentType = "application/pdf"

func imageType(book models.Book) string {
	if book.ImageType == "" {
		return "image/jpeg"
	}
	return book.ImageType
}

// blobKey is kind/<first two hex chars>/<sha256 hex>.
func blobKey(kind AssetKind, data []byte) string {
	sum := sha256.Sum256(data)
	h := hex.EncodeToString(sum[:])
	return string(kind) + "/" + h[:2] + "/" + h
}

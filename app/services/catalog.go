package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/pkg/cache"
	"github.com/shashiranjanraj/bookstore/pkg/database"
	"github.com/shashiranjanraj/bookstore/pkg/event"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
)

// CatalogCacheKey holds the cached book listing.
const CatalogCacheKey = "books:all"

// CatalogService manages books and their assets.
type CatalogService struct {
	db     *gorm.DB
	assets AssetStore
	access *AccessService
	cache  cache.Store
	ttl    time.Duration
	events *event.Dispatcher
	now    Clock
}

func NewCatalogService(db *gorm.DB, assets AssetStore, access *AccessService, store cache.Store, ttl time.Duration, events *event.Dispatcher, now Clock) *CatalogService {
	if store == nil {
		store = cache.NewMemory()
	}
	return &CatalogService{
		db:     db,
		assets: assets,
		access: access,
		cache:  store,
		ttl:    ttl,
		events: events,
		now:    clockOrDefault(now),
	}
}

// NewBook is the input of Create. Image is required; PDF is optional.
type NewBook struct {
	Title       string
	Author      string
	Price       float64
	Description string
	Image       *Asset
	PDF         *Asset
}

// BookChanges lists the fields of an update; nil keeps the current value.
type BookChanges struct {
	Title       *string
	Author      *string
	Price       *float64
	Description *string
}

// List returns every book without assets. The result is cached until a book
// changes or CATALOG_CACHE_TTL passes.
func (s *CatalogService) List(ctx context.Context) ([]models.Book, error) {
	books := []models.Book{}
	err := cache.Remember(ctx, s.cache, CatalogCacheKey, s.ttl, &books, func() error {
		var err error
		books, err = repositories.NewBookRepository(s.db).List(ctx)
		return err
	})
	return books, err
}

// Get returns one book without assets.
func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (models.Book, error) {
	book, err := repositories.NewBookRepository(s.db).FindMeta(ctx, id)
	return book, notFound(err, "book")
}

func (s *CatalogService) Create(ctx context.Context, in NewBook) (models.Book, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	switch {
	case in.Title == "" || in.Author == "":
		return models.Book{}, fmt.Errorf("%w: title and author are required", ErrValidation)
	case in.Price < 0:
		return models.Book{}, fmt.Errorf("%w: price must not be negative", ErrValidation)
	case in.Image == nil || len(in.Image.Data) == 0:
		return models.Book{}, fmt.Errorf("%w: image is required", ErrValidation)
	case !strings.HasPrefix(in.Image.ContentType, "image/"):
		return models.Book{}, fmt.Errorf("%w: image must be an image file", ErrValidation)
	case in.PDF != nil && in.PDF.ContentType != pdfContentType:
		return models.Book{}, fmt.Errorf("%w: pdf must be application/pdf", ErrValidation)
	}

	now := s.now()
	book := models.Book{
		Title:       in.Title,
		Author:      in.Author,
		Price:       in.Price,
		Description: in.Description,
		UpdatedAt:   now,
	}
	book.CreatedAt = now

	if err := s.assets.Attach(ctx, &book, AssetImage, *in.Image); err != nil {
		return models.Book{}, err
	}
	if in.PDF != nil && len(in.PDF.Data) > 0 {
		if err := s.assets.Attach(ctx, &book, AssetPDF, *in.PDF); err != nil {
			return models.Book{}, err
		}
	}

	err := database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		return repositories.NewBookRepository(tx).Create(ctx, &book)
	})
	if err != nil {
		return models.Book{}, err
	}

	logger.WithCtx(ctx).Info("book created", "book_id", book.ID.String(), "title", book.Title)
	s.events.Fire(ctx, event.BookChanged, BookChanged{BookID: book.ID, Action: "created"})
	return book, nil
}

// Update applies the non-nil fields of ch and touches updated_at.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, ch BookChanges) (models.Book, error) {
	fields := map[string]interface{}{"updated_at": s.now()}
	if ch.Title != nil {
		if strings.TrimSpace(*ch.Title) == "" {
			return models.Book{}, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		fields["title"] = strings.TrimSpace(*ch.Title)
	}
	if ch.Author != nil {
		if strings.TrimSpace(*ch.Author) == "" {
			return models.Book{}, fmt.Errorf("%w: author must not be empty", ErrValidation)
		}
		fields["author"] = strings.TrimSpace(*ch.Author)
	}
	if ch.Price != nil {
		if *ch.Price < 0 {
			return models.Book{}, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		fields["price"] = *ch.Price
	}
	if ch.Description != nil {
		fields["description"] = *ch.Description
	}

	var book models.Book
	err := database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		books := repositories.NewBookRepository(tx)
		ok, err := books.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("book %w", ErrNotFound)
		}
		if err := books.Update(ctx, id, fields); err != nil {
			return err
		}
		book, err = books.FindMeta(ctx, id)
		return err
	})
	if err != nil {
		return models.Book{}, err
	}

	s.events.Fire(ctx, event.BookChanged, BookChanged{BookID: id, Action: "updated"})
	return book, nil
}

// Delete removes the book with its ratings, cart lines and payments. Order
// items keep their snapshot.
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	var book models.Book
	err := database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		books := repositories.NewBookRepository(tx)

		var err error
		if book, err = books.FindMeta(ctx, id); err != nil {
			return notFound(err, "book")
		}
		if err := repositories.NewRatingRepository(tx).DeleteByBook(ctx, id); err != nil {
			return err
		}
		if err := repositories.NewCartRepository(tx).DeleteByBook(ctx, id); err != nil {
			return err
		}
		if err := repositories.NewPaymentRepository(tx).DeleteByBook(ctx, id); err != nil {
			return err
		}
		return books.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if err := s.assets.Release(ctx, s.db, book); err != nil {
		logger.WithCtx(ctx).Warn("book assets not released", "book_id", id.String(), "error", err)
	}
	logger.WithCtx(ctx).Info("book deleted", "book_id", id.String())
	s.events.Fire(ctx, event.BookChanged, BookChanged{BookID: id, Action: "deleted"})
	return nil
}

// Image returns the book's cover. It is public.
func (s *CatalogService) Image(ctx context.Context, id uuid.UUID) (Asset, error) {
	book, err := repositories.NewBookRepository(s.db).Find(ctx, id)
	if err != nil {
		return Asset{}, notFound(err, "book")
	}
	a, ok, err := s.assets.Load(ctx, book, AssetImage)
	if err != nil {
		return Asset{}, err
	}
	if !ok {
		return Asset{}, fmt.Errorf("image %w", ErrNotFound)
	}
	return a, nil
}

// PDF returns the book's PDF to a user who has paid for it. A missing book
// is ErrNotFound, a missing payment ErrForbidden, a book without a PDF
// ErrNotFound.
func (s *CatalogService) PDF(ctx context.Context, userID, id uuid.UUID) (Asset, error) {
	book, err := repositories.NewBookRepository(s.db).Find(ctx, id)
	if err != nil {
		return Asset{}, notFound(err, "book")
	}

	ok, err := s.access.HasAccess(ctx, userID, id)
	if err != nil {
		return Asset{}, err
	}
	if !ok {
		s.events.Fire(ctx, event.AccessDenied, AccessDenied{UserID: userID, BookID: id})
		return Asset{}, fmt.Errorf("%w: payment required to access this PDF", ErrForbidden)
	}

	a, ok, err := s.assets.Load(ctx, book, AssetPDF)
	if err != nil {
		return Asset{}, err
	}
	if !ok {
		return Asset{}, fmt.Errorf("pdf %w", ErrNotFound)
	}
	return a, nil
}

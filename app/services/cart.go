package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/pkg/collection"
	"github.com/shashiranjanraj/bookstore/pkg/database"
)

// CartService manages the caller's cart. There is one line per book.
type CartService struct {
	db  *gorm.DB
	now Clock
}

func NewCartService(db *gorm.DB, now Clock) *CartService {
	return &CartService{db: db, now: clockOrDefault(now)}
}

// CartLine is a cart item joined with the book's current title and price.
type CartLine struct {
	BookID   uuid.UUID `json:"book_id"`
	Title    string    `json:"title"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	Subtotal float64   `json:"subtotal"`
}

type Cart struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

// Add puts quantity copies of bookID in the cart, merging with an existing line.
func (s *CartService) Add(ctx context.Context, userID, bookID uuid.UUID, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	var item models.CartItem
	err := database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		ok, err := repositories.NewBookRepository(tx).Exists(ctx, bookID)
		if err != nil {
			return err
		}
		if !ok {
			return errBookNotFound
		}

		items := repositories.NewCartRepository(tx)
		item, err = items.Find(ctx, userID, bookID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{UserID: userID, BookID: bookID, Quantity: quantity}
			item.CreatedAt = s.now()
			return items.Create(ctx, &item)
		case err != nil:
			return err
		}
		item.Quantity += quantity
		return items.SetQuantity(ctx, item.ID, item.Quantity)
	})
	if err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

// SetQuantity replaces the quantity of bookID's line. A quantity of zero or
// less removes the line, and removed reports true.
func (s *CartService) SetQuantity(ctx context.Context, userID, bookID uuid.UUID, quantity int) (item models.CartItem, removed bool, err error) {
	err = database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		items := repositories.NewCartRepository(tx)

		var err error
		if item, err = items.Find(ctx, userID, bookID); err != nil {
			return notFound(err, "cart item")
		}
		if quantity <= 0 {
			removed = true
			_, err = items.Delete(ctx, userID, bookID)
			return err
		}
		item.Quantity = quantity
		return items.SetQuantity(ctx, item.ID, quantity)
	})
	if err != nil {
		return models.CartItem{}, false, err
	}
	return item, removed, nil
}

// List returns the cart priced at current book prices. Lines whose book no
// longer exists are skipped.
func (s *CartService) List(ctx context.Context, userID uuid.UUID) (Cart, error) {
	items, err := repositories.NewCartRepository(s.db).ListByUser(ctx, userID)
	if err != nil {
		return Cart{}, err
	}

	ids := collection.Map(items, func(it models.CartItem) uuid.UUID { return it.BookID })
	books, err := repositories.NewBookRepository(s.db).FindMany(ctx, ids)
	if err != nil {
		return Cart{}, err
	}

	cart := Cart{Items: []CartLine{}}
	for _, it := range items {
		b, ok := books[it.BookID]
		if !ok {
			continue
		}
		line := CartLine{
			BookID:   it.BookID,
			Title:    b.Title,
			Price:    b.Price,
			Quantity: it.Quantity,
			Subtotal: b.Price * float64(it.Quantity),
		}
		cart.Items = append(cart.Items, line)
	}
	cart.Total = collection.Sum(cart.Items, func(l CartLine) float64 { return l.Subtotal })
	return cart, nil
}

func (s *CartService) Remove(ctx context.Context, userID, bookID uuid.UUID) error {
	existed, err := repositories.NewCartRepository(s.db).Delete(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if !existed {
		return fmt.Errorf("cart item %w", ErrNotFound)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return repositories.NewCartRepository(s.db).Clear(ctx, userID)
}

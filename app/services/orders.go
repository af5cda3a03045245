package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/pkg/auth"
	"github.com/shashiranjanraj/bookstore/pkg/collection"
	"github.com/shashiranjanraj/bookstore/pkg/database"
	"github.com/shashiranjanraj/bookstore/pkg/event"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
	"github.com/shashiranjanraj/bookstore/pkg/rbac"
)

// OrderService places orders and moves them through their lifecycle when
// they are read.
type OrderService struct {
	db         *gorm.DB
	events     *event.Dispatcher
	now        Clock
	thresholds Thresholds
	catchUp    bool
}

type OrderOption func(*OrderService)

// WithThresholds overrides DefaultThresholds.
func WithThresholds(t Thresholds) OrderOption {
	return func(s *OrderService) { s.thresholds = t }
}

// WithCatchUp lets one read apply every transition the order's age allows.
func WithCatchUp(on bool) OrderOption {
	return func(s *OrderService) { s.catchUp = on }
}

func NewOrderService(db *gorm.DB, events *event.Dispatcher, now Clock, opts ...OrderOption) *OrderService {
	s := &OrderService{
		db:         db,
		events:     events,
		now:        clockOrDefault(now),
		thresholds: DefaultThresholds,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LineItem is one requested book and quantity.
type LineItem struct {
	BookID   uuid.UUID
	Quantity int
}

// Place creates an order for userID. Titles and prices are copied from the
// books as they are now.
func (s *OrderService) Place(ctx context.Context, userID uuid.UUID, lines []LineItem) (models.Order, error) {
	if err := checkLines(lines); err != nil {
		return models.Order{}, err
	}

	var order models.Order
	err := database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		order, err = s.create(ctx, tx, userID, lines)
		return err
	})
	if err != nil {
		return models.Order{}, err
	}

	s.placed(ctx, order)
	return order, nil
}

// Checkout turns the caller's cart into an order and empties the cart.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID) (models.Order, error) {
	var order models.Order
	err := database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		cart := repositories.NewCartRepository(tx)
		items, err := cart.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: cart is empty", ErrValidation)
		}

		lines := collection.Map(items, func(it models.CartItem) LineItem {
			return LineItem{BookID: it.BookID, Quantity: it.Quantity}
		})
		if order, err = s.create(ctx, tx, userID, lines); err != nil {
			return err
		}
		return cart.Clear(ctx, userID)
	})
	if err != nil {
		return models.Order{}, err
	}

	s.placed(ctx, order)
	return order, nil
}

// Get returns one order to its owner or an admin. Reading an order is what
// advances its status; the new status is saved before it is returned.
func (s *OrderService) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (models.Order, error) {
	var (
		order models.Order
		from  models.OrderStatus
	)
	err := database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		orders := repositories.NewOrderRepository(tx)

		var err error
		if order, err = orders.Find(ctx, id); err != nil {
			return notFound(err, "order")
		}
		if order.UserID != p.UserID && !rbac.Can(rbac.Role(p.Role), rbac.ManageOrders) {
			return fmt.Errorf("%w: not your order", ErrForbidden)
		}

		from = order.Status
		next := Advance(order.Status, order.CreatedAt, s.now(), s.thresholds, s.catchUp)
		if next == order.Status {
			return nil
		}
		order.Status = next
		return orders.SetStatus(ctx, order.ID, next)
	})
	if err != nil {
		return models.Order{}, err
	}

	for st := from; st != order.Status; {
		next, _ := st.Next()
		logger.WithCtx(ctx).Info("order advanced", "order_id", order.ID.String(), "from", string(st), "to", string(next))
		s.events.Fire(ctx, event.OrderAdvanced, OrderAdvanced{OrderID: order.ID, From: string(st), To: string(next)})
		st = next
	}

	order.ComputeTotal()
	return order, nil
}

// List returns the caller's orders, or every order for an admin. Statuses
// are returned as stored.
func (s *OrderService) List(ctx context.Context, p auth.Principal) ([]models.Order, error) {
	orders := repositories.NewOrderRepository(s.db)

	var (
		list []models.Order
		err  error
	)
	if rbac.Can(rbac.Role(p.Role), rbac.ManageOrders) {
		list, err = orders.ListAll(ctx)
	} else {
		list, err = orders.ListByUser(ctx, p.UserID)
	}
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].ComputeTotal()
	}
	return list, nil
}

// Delete removes an order and its items.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	err := database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		orders := repositories.NewOrderRepository(tx)
		if _, err := orders.Find(ctx, id); err != nil {
			return notFound(err, "order")
		}
		return orders.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("order deleted", "order_id", id.String())
	return nil
}

func (s *OrderService) create(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lines []LineItem) (models.Order, error) {
	ids := collection.Unique(collection.Map(lines, func(l LineItem) uuid.UUID { return l.BookID }))
	books, err := repositories.NewBookRepository(tx).FindMany(ctx, ids)
	if err != nil {
		return models.Order{}, err
	}

	now := s.now()
	order := models.Order{UserID: userID, Status: models.StatusPlaced, UpdatedAt: now}
	order.CreatedAt = now
	for _, l := range lines {
		b, ok := books[l.BookID]
		if !ok {
			return models.Order{}, fmt.Errorf("book %s %w", l.BookID, ErrNotFound)
		}
		order.Items = append(order.Items, models.OrderItem{
			BookID:   b.ID,
			Title:    b.Title,
			Price:    b.Price,
			Quantity: l.Quantity,
		})
	}

	if err := repositories.NewOrderRepository(tx).Create(ctx, &order); err != nil {
		return models.Order{}, err
	}
	order.ComputeTotal()
	return order, nil
}

func (s *OrderService) placed(ctx context.Context, order models.Order) {
	logger.WithCtx(ctx).Info("order placed", "order_id", order.ID.String(), "items", len(order.Items), "total", order.Total)
	s.events.Fire(ctx, event.OrderPlaced, OrderPlaced{
		OrderID: order.ID,
		UserID:  order.UserID,
		Items:   len(order.Items),
		Total:   order.Total,
	})
}

func checkLines(lines []LineItem) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: an order needs at least one item", ErrValidation)
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
	}
	return nil
}

package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/event"
	"github.com/shashiranjanraj/bookstore/pkg/testkit"
)

func TestOrderAdvancesOneStepPerRead(t *testing.T) {
	db := testkit.NewDB(t)
	clk := newClock()
	events := event.NewDispatcher()
	rec := record(events, event.OrderPlaced, event.OrderAdvanced)
	svc := services.NewOrderService(db, events, clk.Now)

	ann := seedUser(t, db, "ann", models.RoleUser)
	book := seedBook(t, db, "Dune", 10)

	order, err := svc.Place(ctx, ann.UserID, []services.LineItem{{BookID: book.ID, Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.Equal(t, 20.0, order.Total)
	assert.Len(t, rec.get(event.OrderPlaced), 1)

	steps := []struct {
		at   time.Duration
		want models.OrderStatus
	}{
		{30 * time.Second, models.StatusPlaced},
		{90 * time.Second, models.StatusProcessed},
		{150 * time.Second, models.StatusShipped},
		{time.Hour, models.StatusDelivered},
		{2 * time.Hour, models.StatusDelivered},
	}
	for _, st := range steps {
		clk.Set(t0.Add(st.at))
		got, err := svc.Get(ctx, ann, order.ID)
		require.NoError(t, err)
		assert.Equal(t, st.want, got.Status, "after %s", st.at)

		stored, err := repositories.NewOrderRepository(db).Find(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, st.want, stored.Status, "persisted after %s", st.at)
	}
	assert.Len(t, rec.get(event.OrderAdvanced), 3)
}

func TestOrderCatchUp(t *testing.T) {
	db := testkit.NewDB(t)
	clk := newClock()
	events := event.NewDispatcher()
	rec := record(events, event.OrderAdvanced)
	svc := services.NewOrderService(db, events, clk.Now, services.WithCatchUp(true))

	ann := seedUser(t, db, "ann", models.RoleUser)
	book := seedBook(t, db, "Dune", 10)
	order, err := svc.Place(ctx, ann.UserID, []services.LineItem{{BookID: book.ID, Quantity: 1}})
	require.NoError(t, err)

	clk.Set(t0.Add(time.Hour))
	got, err := svc.Get(ctx, ann, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, got.Status)
	assert.Len(t, rec.get(event.OrderAdvanced), 3)
}

func TestOrderListDoesNotAdvance(t *testing.T) {
	db := testkit.NewDB(t)
	clk := newClock()
	svc := services.NewOrderService(db, nil, clk.Now)

	ann := seedUser(t, db, "ann", models.RoleUser)
	bob := seedUser(t, db, "bob", models.RoleUser)
	admin := seedUser(t, db, "root", models.RoleAdmin)
	book := seedBook(t, db, "Dune", 10)

	_, err := svc.Place(ctx, ann.UserID, []services.LineItem{{BookID: book.ID, Quantity: 1}})
	require.NoError(t, err)
	_, err = svc.Place(ctx, bob.UserID, []services.LineItem{{BookID: book.ID, Quantity: 3}})
	require.NoError(t, err)

	clk.Set(t0.Add(time.Hour))
	mine, err := svc.List(ctx, ann)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.StatusPlaced, mine[0].Status)
	assert.Equal(t, 10.0, mine[0].Total)

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrderAccess(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewOrderService(db, nil, nil)

	ann := seedUser(t, db, "ann", models.RoleUser)
	bob := seedUser(t, db, "bob", models.RoleUser)
	admin := seedUser(t, db, "root", models.RoleAdmin)
	book := seedBook(t, db, "Dune", 10)

	order, err := svc.Place(ctx, ann.UserID, []services.LineItem{{BookID: book.ID, Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, order.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = svc.Get(ctx, admin, order.ID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, ann, uuid.New())
	assert.ErrorIs(t, err, services.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, order.ID))
	assert.EqualValues(t, 0, count(t, db, &models.Order{}))
	assert.EqualValues(t, 0, count(t, db, &models.OrderItem{}))
	assert.ErrorIs(t, svc.Delete(ctx, order.ID), services.ErrNotFound)
}

func TestOrderPlaceValidates(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewOrderService(db, nil, nil)
	ann := seedUser(t, db, "ann", models.RoleUser)
	book := seedBook(t, db, "Dune", 10)

	_, err := svc.Place(ctx, ann.UserID, nil)
	assert.ErrorIs(t, err, services.ErrValidation)
	_, err = svc.Place(ctx, ann.UserID, []services.LineItem{{BookID: book.ID, Quantity: 0}})
	assert.ErrorIs(t, err, services.ErrValidation)
	_, err = svc.Place(ctx, ann.UserID, []services.LineItem{{BookID: book.ID, Quantity: 1}, {BookID: uuid.New(), Quantity: 1}})
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.EqualValues(t, 0, count(t, db, &models.Order{}))
	assert.EqualValues(t, 0, count(t, db, &models.OrderItem{}))
}

func TestOrderItemsKeepSnapshot(t *testing.T) {
	db := testkit.NewDB(t)
	svc := services.NewOrderService(db, nil, nil)
	ann := seedUser(t, db, "ann", models.RoleUser)
	book := seedBook(t, db, "Dune", 10)

	order, err := svc.Place(ctx, ann.UserID, []services.LineItem{{BookID: book.ID, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, repositories.NewBookRepository(db).Update(ctx, book.ID, map[string]interface{}{"title": "Dune Messiah", "price": 99.0}))

	got, err := svc.Get(ctx, ann, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Dune", got.Items[0].Title)
	assert.Equal(t, 10.0, got.Items[0].Price)
}

func TestCheckoutEmptiesCart(t *testing.T) {
	db := testkit.NewDB(t)
	cart := services.NewCartService(db, nil)
	svc := services.NewOrderService(db, nil, nil)

	ann := seedUser(t, db, "ann", models.RoleUser)
	dune := seedBook(t, db, "Dune", 10)
	emma := seedBook(t, db, "Emma", 4)

	_, err := svc.Checkout(ctx, ann.UserID)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = cart.Add(ctx, ann.UserID, dune.ID, 2)
	require.NoError(t, err)
	_, err = cart.Add(ctx, ann.UserID, emma.ID, 1)
	require.NoError(t, err)

	order, err := svc.Checkout(ctx, ann.UserID)
	require.NoError(t, err)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 24.0, order.Total)
	assert.EqualValues(t, 0, count(t, db, &models.CartItem{}))
}

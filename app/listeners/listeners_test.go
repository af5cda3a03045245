package listeners_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/bookstore/app/listeners"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/cache"
	"github.com/shashiranjanraj/bookstore/pkg/event"
	"github.com/shashiranjanraj/bookstore/pkg/metrics"
)

func TestBookChangesInvalidateCatalog(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	d := event.NewDispatcher()
	listeners.Register(d, store)

	for _, name := range []string{event.BookChanged, event.RatingSubmitted} {
		_ = store.Set(ctx, services.CatalogCacheKey, []string{"cached"}, 0)
		d.Fire(ctx, name, nil)

		var got []string
		assert.False(t, store.Get(ctx, services.CatalogCacheKey, &got), name)
	}
}

func TestDomainCounters(t *testing.T) {
	ctx := context.Background()
	d := event.NewDispatcher()
	listeners.Register(d, cache.NewMemory())

	placed := testutil.ToFloat64(metrics.OrdersPlaced)
	shipped := testutil.ToFloat64(metrics.OrderTransitions.WithLabelValues("shipped"))
	denied := testutil.ToFloat64(metrics.PDFAccessDenied)

	d.Fire(ctx, event.OrderPlaced, services.OrderPlaced{OrderID: uuid.New()})
	d.Fire(ctx, event.OrderAdvanced, services.OrderAdvanced{From: "processed", To: "shipped"})
	d.Fire(ctx, event.AccessDenied, services.AccessDenied{UserID: uuid.New(), BookID: uuid.New()})

	assert.Equal(t, placed+1, testutil.ToFloat64(metrics.OrdersPlaced))
	assert.Equal(t, shipped+1, testutil.ToFloat64(metrics.OrderTransitions.WithLabelValues("shipped")))
	assert.Equal(t, denied+1, testutil.ToFloat64(metrics.PDFAccessDenied))
}

// Package listeners reacts to domain events: it keeps the catalog cache
// fresh, counts business metrics and writes audit log lines.
package listeners

import (
	"context"

	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/cache"
	"github.com/shashiranjanraj/bookstore/pkg/event"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
	"github.com/shashiranjanraj/bookstore/pkg/metrics"
)

// Register attaches every listener to d. Cache invalidation runs inline so
// the next read after a write sees it; the rest may run on d's pool.
func Register(d *event.Dispatcher, store cache.Store) {
	invalidate := func(ctx context.Context, _ interface{}) {
		if err := store.Del(ctx, services.CatalogCacheKey); err != nil {
			logger.WithCtx(ctx).Warn("catalog cache not invalidated", "error", err)
		}
	}
	d.Listen(event.BookChanged, invalidate)
	d.Listen(event.RatingSubmitted, invalidate)

	d.ListenAsync(event.OrderPlaced, func(context.Context, interface{}) {
		metrics.OrdersPlaced.Inc()
	})
	d.ListenAsync(event.OrderAdvanced, func(_ context.Context, p interface{}) {
		if e, ok := p.(services.OrderAdvanced); ok {
			metrics.OrderTransitions.WithLabelValues(e.To).Inc()
		}
	})
	d.ListenAsync(event.PaymentRecorded, func(context.Context, interface{}) {
		metrics.PaymentsRecorded.Inc()
	})
	d.ListenAsync(event.RatingSubmitted, func(context.Context, interface{}) {
		metrics.RatingsSubmitted.Inc()
	})
	d.ListenAsync(event.AccessDenied, func(ctx context.Context, p interface{}) {
		metrics.PDFAccessDenied.Inc()
		if e, ok := p.(services.AccessDenied); ok {
			logger.WithCtx(ctx).Warn("pdf access denied", "user_id", e.UserID.String(), "book_id", e.BookID.String())
		}
	})
	d.ListenAsync(event.BookChanged, func(ctx context.Context, p interface{}) {
		if e, ok := p.(services.BookChanged); ok {
			logger.WithCtx(ctx).Info("catalog changed", "book_id", e.BookID.String(), "action", e.Action)
		}
	})
}

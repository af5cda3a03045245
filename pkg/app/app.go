// Package app assembles the bookstore from configuration: database, cache,
// asset storage, event dispatch and the services behind the HTTP routes.
//
//	a, err := app.New(ctx)
//	if err != nil { ... }
//	defer a.Close()
//	err = a.Serve(ctx)
package app

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/listeners"
	"github.com/shashiranjanraj/bookstore/app/routes"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/config"
	"github.com/shashiranjanraj/bookstore/pkg/cache"
	"github.com/shashiranjanraj/bookstore/pkg/database"
	"github.com/shashiranjanraj/bookstore/pkg/event"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
	"github.com/shashiranjanraj/bookstore/pkg/storage"
	"github.com/shashiranjanraj/bookstore/pkg/workerpool"
)

// listenerWorkers sizes the pool that runs async event listeners.
const listenerWorkers = 4

// Application holds every long-lived dependency of a running bookstore.
type Application struct {
	DB       *gorm.DB
	Cache    cache.Store
	Events   *event.Dispatcher
	Services routes.Deps

	pool    *workerpool.Pool
	closers []func()
}

// New connects to the configured backends and builds the services.
func New(ctx context.Context) (*Application, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	a := &Application{}
	if uri := config.LogMongoURI(); uri != "" {
		closeSink, err := logger.EnableMongoSink(uri)
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			a.closers = append(a.closers, closeSink)
		}
	}

	db, err := database.Connect()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.DB = db
	a.closers = append(a.closers, func() { _ = database.Close(db) })

	assets, err := openAssets(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Cache = cache.Connect(ctx)
	if c, ok := a.Cache.(io.Closer); ok {
		a.closers = append(a.closers, func() { _ = c.Close() })
	}

	a.pool = workerpool.New(listenerWorkers)
	a.Events = event.NewDispatcher()
	a.Events.UsePool(a.pool)
	listeners.Register(a.Events, a.Cache)

	a.Services = Wire(db, assets, a.Cache, a.Events)
	return a, nil
}

// Wire builds the services over db. Tests call it with an in-memory
// database and cache.
func Wire(db *gorm.DB, assets services.AssetStore, store cache.Store, events *event.Dispatcher) routes.Deps {
	access := services.NewAccessService(db, events, nil)
	return routes.Deps{
		DB:      db,
		Auth:    services.NewAuthService(db, nil),
		Catalog: services.NewCatalogService(db, assets, access, store, config.CatalogCacheTTL(), events, nil),
		Access:  access,
		Ratings: services.NewRatingService(db, events, nil),
		Cart:    services.NewCartService(db, nil),
		Orders: services.NewOrderService(db, events, nil,
			services.WithThresholds(services.ThresholdsFromConfig()),
			services.WithCatchUp(config.OrderCatchUp()),
		),
	}
}

func openAssets(ctx context.Context) (services.AssetStore, error) {
	driver := config.AssetDriver()
	var disk storage.Disk
	if driver == "disk" {
		var err error
		if disk, err = storage.Open(ctx, config.StorageDisk()); err != nil {
			return nil, err
		}
	}
	return services.NewAssetStore(driver, disk)
}

// Close drains async listeners, then releases connections in reverse order.
func (a *Application) Close() {
	if a.pool != nil {
		a.pool.Shutdown()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

package app

import (
	"context"

	"github.com/shashiranjanraj/bookstore/config"
	"github.com/shashiranjanraj/bookstore/internal/server"
)

// Serve listens on APP_PORT until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	return server.Start(ctx, ":"+config.AppPort(), a.Handler())
}

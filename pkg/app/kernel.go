package app

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/bookstore/app/routes"
	"github.com/shashiranjanraj/bookstore/config"
	"github.com/shashiranjanraj/bookstore/pkg/metrics"
	"github.com/shashiranjanraj/bookstore/pkg/middleware"
	"github.com/shashiranjanraj/bookstore/pkg/reqid"
	"github.com/shashiranjanraj/bookstore/pkg/router"
)

// Handler builds the HTTP handler.
//
// Global middleware, outermost first:
//  1. metrics: sees the full latency and every status
//  2. recovery: turns panics into 500s
//  3. request ID: set before anything logs
//  4. logger
//  5. CORS
//  6. rate limit
func Handler(deps routes.Deps) http.Handler {
	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimitPerMinute(), time.Minute))

	routes.Register(r, deps)
	return r.Handler()
}

// Handler builds the HTTP handler over a's services.
func (a *Application) Handler() http.Handler {
	return Handler(a.Services)
}

// RouteTable lists every route without connecting to anything.
func RouteTable() []router.Route {
	r := router.New()
	routes.Register(r, routes.Deps{})
	return r.Routes()
}

// Package routes declares the HTTP API.
package routes

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/controllers"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
	"github.com/shashiranjanraj/bookstore/pkg/metrics"
	"github.com/shashiranjanraj/bookstore/pkg/middleware"
	"github.com/shashiranjanraj/bookstore/pkg/rbac"
	"github.com/shashiranjanraj/bookstore/pkg/response"
	"github.com/shashiranjanraj/bookstore/pkg/router"
)

// Deps are the services behind the routes. Register only stores them, so a
// zero Deps is enough to list the route table.
type Deps struct {
	DB      *gorm.DB
	Auth    *services.AuthService
	Catalog *services.CatalogService
	Access  *services.AccessService
	Ratings *services.RatingService
	Cart    *services.CartService
	Orders  *services.OrderService
}

func Register(r *router.Router, d Deps) {
	authc := controllers.NewAuthController(d.Auth)
	books := controllers.NewBookController(d.Catalog, d.Access)
	cart := controllers.NewCartController(d.Cart)
	orders := controllers.NewOrderController(d.Orders)
	ratings := controllers.NewRatingController(d.Ratings)
	health := controllers.NewHealthController(d.DB)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/healthz", "health", ctx.Wrap(health.Show))
	r.Handle("/metrics", "metrics", metrics.Handler())

	r.Post("/register", "auth.register", ctx.Wrap(authc.Register))
	r.Post("/token", "auth.token", ctx.Wrap(authc.Token))

	r.Get("/books", "books.index", ctx.Wrap(books.Index))
	r.Get("/books/{id}", "books.show", ctx.Wrap(books.Show))
	r.Get("/books/{id}/image", "books.image", ctx.Wrap(books.Image))

	user := r.Group("", middleware.Authenticate(d.Auth.Resolve), rbac.RequireCapability(rbac.ShopAndRate))
	user.Get("/users/me", "users.me", ctx.Wrap(authc.Me))

	user.Get("/books/{id}/pdf", "books.pdf", ctx.Wrap(books.PDF))
	user.Get("/books/{id}/access", "books.access", ctx.Wrap(books.Access))
	user.Post("/pay/{book_id}", "payments.store", ctx.Wrap(books.Pay))
	user.Post("/ratings", "ratings.store", ctx.Wrap(ratings.Store))

	user.Get("/orders", "orders.index", ctx.Wrap(orders.Index))
	user.Post("/orders", "orders.store", ctx.Wrap(orders.Store))
	user.Post("/orders/checkout", "orders.checkout", ctx.Wrap(orders.Checkout))
	user.Get("/orders/{id}", "orders.show", ctx.Wrap(orders.Show))
	user.Delete("/orders/{id}", "orders.destroy", ctx.Wrap(orders.Destroy), rbac.RequireCapability(rbac.ManageOrders))

	user.Get("/cart", "cart.index", ctx.Wrap(cart.Index))
	user.Post("/cart", "cart.store", ctx.Wrap(cart.Store))
	user.Delete("/cart", "cart.clear", ctx.Wrap(cart.Clear))
	user.Put("/cart/{book_id}", "cart.update", ctx.Wrap(cart.Update))
	user.Delete("/cart/{book_id}", "cart.destroy", ctx.Wrap(cart.Destroy))

	admin := r.Group("", middleware.Authenticate(d.Auth.Resolve))
	admin.Post("/books", "books.store", ctx.Wrap(books.Store), rbac.RequireCapability(rbac.ManageBooks))
	admin.Put("/books/{id}", "books.update", ctx.Wrap(books.Update), rbac.RequireCapability(rbac.ManageBooks))
	admin.Delete("/books/{id}", "books.destroy", ctx.Wrap(books.Destroy), rbac.RequireCapability(rbac.ManageBooks))
	admin.Put("/users/{username}/make-admin", "users.make_admin", ctx.Wrap(authc.MakeAdmin), rbac.RequireCapability(rbac.ManageUsers))
}

// Package rbac maps roles to the capabilities they grant.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/bookstore/pkg/auth"
	"github.com/shashiranjanraj/bookstore/pkg/response"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Capability names an action guarded by role.
type Capability string

const (
	ShopAndRate  Capability = "shop"          // cart, orders, ratings, payments
	ManageBooks  Capability = "books.manage"  // create, update, delete books
	ManageUsers  Capability = "users.manage"  // promote users to admin
	ManageOrders Capability = "orders.manage" // view all orders, delete any order
)

var grants = map[Role]map[Capability]bool{
	RoleUser: {
		ShopAndRate: true,
	},
	RoleAdmin: {
		ShopAndRate:  true,
		ManageBooks:  true,
		ManageUsers:  true,
		ManageOrders: true,
	},
}

// Can reports whether role is granted c. Unknown roles are granted nothing.
func Can(role Role, c Capability) bool {
	return grants[role][c]
}

// RequireCapability returns middleware that lets the request through only
// when the authenticated caller's role grants c. It must run after the
// auth middleware.
func RequireCapability(c Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.PrincipalFrom(r.Context())
			if !ok {
				response.Unauthorized(w, "Not authenticated")
				return
			}
			if !Can(Role(p.Role), c) {
				response.Forbidden(w, "Not enough permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

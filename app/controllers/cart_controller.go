package controllers

import (
	"github.com/google/uuid"

	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
	"github.com/shashiranjanraj/bookstore/pkg/resource"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// Index handles GET /cart.
func (h *CartController) Index(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	cart, err := h.cart.List(c.Context(), p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cart)
}

type cartAdd struct {
	BookID   string `json:"book_id"  validate:"required,uuid"`
	Quantity *int   `json:"quantity" validate:"nullable,gte=1"`
}

// Store handles POST /cart. Adding a book already in the cart raises its
// quantity.
func (h *CartController) Store(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	var in cartAdd
	if !c.BindJSON(&in) {
		return
	}
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	item, err := h.cart.Add(c.Context(), p.UserID, uuid.MustParse(in.BookID), qty)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.Item(item, cartItemResource))
}

type cartSet struct {
	Quantity *int `json:"quantity"`
}

// Update handles PUT /cart/{book_id}. A quantity of zero or less removes
// the line.
func (h *CartController) Update(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	bookID, ok := idParam(c, "book_id", "cart item")
	if !ok {
		return
	}
	var in cartSet
	if !c.BindJSON(&in) {
		return
	}
	if in.Quantity == nil {
		c.ValidationError(map[string]string{"quantity": "The quantity field is required."})
		return
	}
	item, removed, err := h.cart.SetQuantity(c.Context(), p.UserID, bookID, *in.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	if removed {
		c.Success(map[string]string{"message": "Item removed from cart"})
		return
	}
	c.Success(resource.Item(item, cartItemResource))
}

// Destroy handles DELETE /cart/{book_id}.
func (h *CartController) Destroy(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	bookID, ok := idParam(c, "book_id", "cart item")
	if !ok {
		return
	}
	if err := h.cart.Remove(c.Context(), p.UserID, bookID); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Item removed from cart"})
}

// Clear handles DELETE /cart.
func (h *CartController) Clear(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	if err := h.cart.Clear(c.Context(), p.UserID); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Cart cleared"})
}

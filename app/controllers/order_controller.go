package controllers

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/collection"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
	"github.com/shashiranjanraj/bookstore/pkg/resource"
	"github.com/shashiranjanraj/bookstore/pkg/validate"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type orderLine struct {
	BookID   string `json:"book_id"  validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

type orderRequest struct {
	Items []orderLine `json:"items" validate:"required"`
}

// Store handles POST /orders.
func (h *OrderController) Store(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	var in orderRequest
	if !c.BindJSON(&in) {
		return
	}
	for i, line := range in.Items {
		if errs := validate.Struct(line); validate.HasErrors(errs) {
			c.ValidationError(prefixed(errs, i))
			return
		}
	}

	lines := collection.Map(in.Items, func(l orderLine) services.LineItem {
		return services.LineItem{BookID: uuid.MustParse(l.BookID), Quantity: l.Quantity}
	})
	order, err := h.orders.Place(c.Context(), p.UserID, lines)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.Item(order, orderResource))
}

func prefixed(errs map[string]string, i int) map[string]string {
	out := make(map[string]string, len(errs))
	for k, v := range errs {
		out[fmt.Sprintf("items.%d.%s", i, k)] = v
	}
	return out
}

// Checkout handles POST /orders/checkout, turning the cart into an order.
func (h *OrderController) Checkout(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	order, err := h.orders.Checkout(c.Context(), p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.Item(order, orderResource))
}

// Index handles GET /orders.
func (h *OrderController) Index(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	orders, err := h.orders.List(c.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Collection(orders, orderResource))
}

// Show handles GET /orders/{id}. Reading an order may advance its status.
func (h *OrderController) Show(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id", "order")
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Context(), p, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(order, orderResource))
}

// Destroy handles DELETE /orders/{id}.
func (h *OrderController) Destroy(c *ctx.Context) {
	id, ok := idParam(c, "id", "order")
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Order deleted"})
}

// Package event is an in-process event dispatcher. Services fire after
// their transaction has committed. Listen handlers run on the caller's
// goroutine; ListenAsync handlers run on a worker pool when one is attached.
package event

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/bookstore/pkg/workerpool"
)

// Event names fired by the bookstore services.
const (
	OrderPlaced     = "order.placed"
	OrderAdvanced   = "order.advanced"
	PaymentRecorded = "payment.recorded"
	RatingSubmitted = "rating.submitted"
	BookChanged     = "book.changed"
	AccessDenied    = "access.denied"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload interface{})

// Dispatcher holds listeners by event name.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	pool     *workerpool.Pool
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (d *Dispatcher) Listen(event string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[event] = append(d.handlers[event], handler)
}

// UsePool runs ListenAsync handlers on p. Without a pool they run inline.
func (d *Dispatcher) UsePool(p *workerpool.Pool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pool = p
}

// ListenAsync registers a handler that may run after Fire returns. The
// handler's context is not cancelled with the request.
func (d *Dispatcher) ListenAsync(event string, handler Handler) {
	d.Listen(event, func(ctx context.Context, payload interface{}) {
		d.mu.RLock()
		p := d.pool
		d.mu.RUnlock()

		ctx = context.WithoutCancel(ctx)
		p.Go(func() { handler(ctx, payload) })
	})
}

// Fire dispatches an event to all registered listeners in order.
// A nil Dispatcher drops the event.
func (d *Dispatcher) Fire(ctx context.Context, event string, payload interface{}) {
	if d == nil {
		return
	}
	d.mu.RLock()
	hs := append([]Handler(nil), d.handlers[event]...)
	d.mu.RUnlock()

	for _, h := range hs {
		h(ctx, payload)
	}
}

// Flush removes all listeners.
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = map[string][]Handler{}
}

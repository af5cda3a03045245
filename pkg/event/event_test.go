package event_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/bookstore/pkg/event"
	"github.com/shashiranjanraj/bookstore/pkg/workerpool"
)

func TestFireRunsListenersInOrder(t *testing.T) {
	d := event.NewDispatcher()
	var got []string
	d.Listen(event.OrderPlaced, func(_ context.Context, p interface{}) { got = append(got, "a:"+p.(string)) })
	d.Listen(event.OrderPlaced, func(_ context.Context, p interface{}) { got = append(got, "b:"+p.(string)) })
	d.Listen(event.BookChanged, func(context.Context, interface{}) { got = append(got, "other") })

	d.Fire(context.Background(), event.OrderPlaced, "o1")
	assert.Equal(t, []string{"a:o1", "b:o1"}, got)

	d.Flush()
	d.Fire(context.Background(), event.OrderPlaced, "o2")
	assert.Len(t, got, 2)
}

func TestNilDispatcherDrops(t *testing.T) {
	var d *event.Dispatcher
	assert.NotPanics(t, func() { d.Fire(context.Background(), event.OrderPlaced, nil) })
}

func TestListenAsyncUsesPool(t *testing.T) {
	pool := workerpool.New(2)
	d := event.NewDispatcher()
	d.UsePool(pool)

	var n atomic.Int64
	for i := 0; i < 3; i++ {
		d.ListenAsync(event.PaymentRecorded, func(context.Context, interface{}) { n.Add(1) })
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.Fire(ctx, event.PaymentRecorded, nil)
	cancel()
	pool.Shutdown()

	assert.EqualValues(t, 3, n.Load())
}

func TestListenAsyncWithoutPoolRunsInline(t *testing.T) {
	d := event.NewDispatcher()
	ran := false
	d.ListenAsync(event.BookChanged, func(context.Context, interface{}) { ran = true })
	d.Fire(context.Background(), event.BookChanged, nil)
	assert.True(t, ran)
}

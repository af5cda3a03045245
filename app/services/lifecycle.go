package services

import (
	"time"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/config"
)

// Thresholds are the ages after which an order reaches each status.
type Thresholds struct {
	Processed time.Duration
	Shipped   time.Duration
	Delivered time.Duration
}

// DefaultThresholds are 1m, 2m and 3m.
var DefaultThresholds = Thresholds{
	Processed: time.Minute,
	Shipped:   2 * time.Minute,
	Delivered: 3 * time.Minute,
}

// ThresholdsFromConfig reads ORDER_*_AFTER.
func ThresholdsFromConfig() Thresholds {
	p, s, d := config.OrderThresholds()
	return Thresholds{Processed: p, Shipped: s, Delivered: d}
}

func (t Thresholds) after(target models.OrderStatus) time.Duration {
	switch target {
	case models.StatusProcessed:
		return t.Processed
	case models.StatusShipped:
		return t.Shipped
	default:
		return t.Delivered
	}
}

// Advance returns the status an order created at createdAt should have at
// now. Without catchUp it moves at most one step, so an order read rarely
// trails its age. Elapsed time must strictly exceed a threshold.
func Advance(status models.OrderStatus, createdAt, now time.Time, t Thresholds, catchUp bool) models.OrderStatus {
	elapsed := now.UTC().Sub(createdAt.UTC())
	for {
		next, ok := status.Next()
		if !ok || elapsed <= t.after(next) {
			return status
		}
		status = next
		if !catchUp {
			return status
		}
	}
}

package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/services"
)

func TestAdvance(t *testing.T) {
	th := services.DefaultThresholds
	cases := []struct {
		name    string
		from    models.OrderStatus
		age     time.Duration
		catchUp bool
		want    models.OrderStatus
	}{
		{"fresh order stays placed", models.StatusPlaced, 30 * time.Second, false, models.StatusPlaced},
		{"exactly one minute is not enough", models.StatusPlaced, time.Minute, false, models.StatusPlaced},
		{"past one minute", models.StatusPlaced, 61 * time.Second, false, models.StatusProcessed},
		{"one step per read", models.StatusPlaced, time.Hour, false, models.StatusProcessed},
		{"processed to shipped", models.StatusProcessed, 150 * time.Second, false, models.StatusShipped},
		{"processed waits for two minutes", models.StatusProcessed, 90 * time.Second, false, models.StatusProcessed},
		{"shipped to delivered", models.StatusShipped, 181 * time.Second, false, models.StatusDelivered},
		{"delivered is terminal", models.StatusDelivered, time.Hour, true, models.StatusDelivered},
		{"catch up to delivered", models.StatusPlaced, time.Hour, true, models.StatusDelivered},
		{"catch up stops at shipped", models.StatusPlaced, 150 * time.Second, true, models.StatusShipped},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := services.Advance(tc.from, t0, t0.Add(tc.age), th, tc.catchUp)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAdvanceComparesInUTC(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := created.Add(90 * time.Second).In(time.FixedZone("IST", 5*3600+1800))
	assert.Equal(t, models.StatusProcessed,
		services.Advance(models.StatusPlaced, created, now, services.DefaultThresholds, false))
}

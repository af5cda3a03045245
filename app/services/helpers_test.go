package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/pkg/auth"
	"github.com/shashiranjanraj/bookstore/pkg/event"
)

var ctx = context.Background()

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// clock is a settable test clock.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: t0} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// recorder collects fired events by name.
type recorder struct {
	mu     sync.Mutex
	events map[string][]interface{}
}

func record(d *event.Dispatcher, names ...string) *recorder {
	r := &recorder{events: map[string][]interface{}{}}
	for _, name := range names {
		name := name
		d.Listen(name, func(_ context.Context, p interface{}) {
			r.mu.Lock()
			r.events[name] = append(r.events[name], p)
			r.mu.Unlock()
		})
	}
	return r
}

func (r *recorder) get(name string) []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[name]
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) auth.Principal {
	t.Helper()
	u := models.User{Username: username, Email: username + "@example.com", HashedPassword: "x", Role: role}
	require.NoError(t, repositories.NewUserRepository(db).Create(ctx, &u))
	return auth.Principal{UserID: u.ID, Username: u.Username, Role: string(u.Role)}
}

func seedBook(t *testing.T, db *gorm.DB, title string, price float64) models.Book {
	t.Helper()
	b := models.Book{
		Title:     title,
		Author:    "Author of " + title,
		Price:     price,
		ImageData: []byte("jpeg:" + title),
		ImageType: "image/jpeg",
		HasImage:  true,
	}
	require.NoError(t, repositories.NewBookRepository(db).Create(ctx, &b))
	return b
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

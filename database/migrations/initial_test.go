package migrations_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/shashiranjanraj/bookstore/database/migrations"
	"github.com/shashiranjanraj/bookstore/pkg/database"
	"github.com/shashiranjanraj/bookstore/pkg/migration"
)

func TestMigrateStatusRollback(t *testing.T) {
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	runner := migration.New(db, nil)

	ran, err := runner.Run()
	require.NoError(t, err)
	assert.Equal(t, 7, ran)

	for _, table := range []string{"users", "books", "orders", "order_items", "ratings", "cart_items", "payments"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	again, err := runner.Run()
	require.NoError(t, err)
	assert.Zero(t, again)

	status, err := runner.Status()
	require.NoError(t, err)
	require.Len(t, status, 7)
	for _, s := range status {
		assert.True(t, s.Ran, s.Name)
		assert.Equal(t, 1, s.Batch)
	}

	rolled, err := runner.Rollback()
	require.NoError(t, err)
	assert.Equal(t, 7, rolled)
	assert.False(t, db.Migrator().HasTable("books"))
}

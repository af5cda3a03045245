package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/pkg/database"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func count(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&widget{}).Count(&n).Error)
	return n
}

func TestTransactCommits(t *testing.T) {
	db := openTestDB(t)
	err := database.Transact(context.Background(), db, func(tx *gorm.DB) error {
		return tx.Create(&widget{Name: "a"}).Error
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count(t, db))
}

func TestTransactRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	boom := errors.New("boom")
	err := database.Transact(context.Background(), db, func(tx *gorm.DB) error {
		require.NoError(t, tx.Create(&widget{Name: "a"}).Error)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 0, count(t, db))
}

func TestTransactRollsBackOnPanic(t *testing.T) {
	db := openTestDB(t)
	assert.Panics(t, func() {
		_ = database.Transact(context.Background(), db, func(tx *gorm.DB) error {
			tx.Create(&widget{Name: "a"})
			panic("boom")
		})
	})
	assert.EqualValues(t, 0, count(t, db))
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := database.Open("oracle", "")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestPing(t *testing.T) {
	assert.NoError(t, database.Ping(context.Background(), openTestDB(t)))
}

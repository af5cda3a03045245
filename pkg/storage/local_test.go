package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bookstore/pkg/storage"
)

func TestLocalDisk(t *testing.T) {
	ctx := context.Background()
	disk := storage.NewLocal(t.TempDir())

	ok, err := disk.Exists(ctx, "pdfs/ab/abc")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = disk.Get(ctx, "pdfs/ab/abc")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, disk.Put(ctx, "pdfs/ab/abc", []byte("%PDF"), "application/pdf"))
	got, err := disk.Get(ctx, "pdfs/ab/abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), got)

	ok, err = disk.Exists(ctx, "pdfs/ab/abc")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, disk.Delete(ctx, "pdfs/ab/abc"))
	require.NoError(t, disk.Delete(ctx, "pdfs/ab/abc"))
}

func TestLocalDiskRejectsEscapingKeys(t *testing.T) {
	disk := storage.NewLocal(t.TempDir())
	assert.Error(t, disk.Put(context.Background(), "../outside", []byte("x"), ""))
}

func TestOpenUnknownDisk(t *testing.T) {
	_, err := storage.Open(context.Background(), "ftp")
	assert.ErrorContains(t, err, "unknown disk")
}

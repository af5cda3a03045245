// Package storage is a blob store for book assets with two drivers:
//   - "local": a directory on the local filesystem (default)
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2)
//
//	disk, err := storage.Open(ctx, config.StorageDisk())
//	err = disk.Put(ctx, "images/ab/abcdef…", data, "image/png")
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get for a key that does not exist.
var ErrNotFound = errors.New("storage: object not found")

// Disk is implemented by every driver. Keys are slash-separated paths.
type Disk interface {
	// Put writes content under key, replacing any existing object.
	Put(ctx context.Context, key string, content []byte, contentType string) error

	// Get returns the full content stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Open returns the named disk configured from the environment.
func Open(ctx context.Context, name string) (Disk, error) {
	switch name {
	case "", "local":
		return NewLocal(localRoot()), nil
	case "s3":
		return NewS3(ctx, S3ConfigFromEnv())
	default:
		return nil, fmt.Errorf("storage: unknown disk %q (supported: local, s3)", name)
	}
}

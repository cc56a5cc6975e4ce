// Package storage holds the object-storage boundary for product image
// assets.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrObjectNotFound is returned when a key does not resolve to a
// stored object.
var ErrObjectNotFound = errors.New("storage: object not found")

// ObjectStore abstracts the bucket holding product images. The store
// is a fallible remote dependency; no call is retried here.
type ObjectStore interface {
	// Put writes an object under key with the given content type and
	// public cache TTL, overwriting any existing object.
	Put(ctx context.Context, key string, data []byte, contentType string, cacheTTL time.Duration) error

	// Move relocates an object to a new key as one logical rename.
	// When the underlying copy fails the object stays at the old key.
	Move(ctx context.Context, oldKey, newKey string) error

	// Delete removes the object under key. Deleting a missing key
	// returns ErrObjectNotFound.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key resolves to a stored object.
	Exists(ctx context.Context, key string) (bool, error)
}

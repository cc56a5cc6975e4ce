package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	gcs "cloud.google.com/go/storage"
)

// GCSStore implements ObjectStore on a single Cloud Storage bucket.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSStore constructs a GCSStore backed by the provided client.
func NewGCSStore(client *gcs.Client, bucket string) (*GCSStore, error) {
	if client == nil {
		return nil, errors.New("storage: client is required")
	}
	if bucket == "" {
		return nil, errors.New("storage: bucket name is required")
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

// Put writes an object under key, overwriting any existing object.
func (s *GCSStore) Put(ctx context.Context, key string, data []byte, contentType string, cacheTTL time.Duration) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = fmt.Sprintf("public, max-age=%d", int(cacheTTL.Seconds()))

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize object %q: %w", key, err)
	}
	return nil
}

// Move relocates an object by copying it to the new key and deleting
// the source. A failed copy leaves the object at the old key. A failed
// source delete is reported, with the object already live at the new
// key.
func (s *GCSStore) Move(ctx context.Context, oldKey, newKey string) error {
	if oldKey == newKey {
		return nil
	}

	bucket := s.client.Bucket(s.bucket)
	src := bucket.Object(oldKey)
	dst := bucket.Object(newKey)

	if _, err := dst.CopierFrom(src).Run(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return fmt.Errorf("move %q to %q: %w", oldKey, newKey, ErrObjectNotFound)
		}
		return fmt.Errorf("failed to copy object %q to %q: %w", oldKey, newKey, err)
	}

	if err := src.Delete(ctx); err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("moved object to %q but failed to delete source %q: %w", newKey, oldKey, err)
	}
	return nil
}

// Delete removes the object under key.
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("delete %q: %w", key, ErrObjectNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}

// Exists reports whether key resolves to a stored object.
func (s *GCSStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.Bucket(s.bucket).Object(key).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object %q: %w", key, err)
	}
	return true, nil
}

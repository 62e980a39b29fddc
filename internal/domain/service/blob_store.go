package service

import (
	"context"
	"io"
)

// BlobStore abstracts the object storage holding product images and videos.
type BlobStore interface {
	// Upload writes a binary under the given key and returns its durable
	// public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes the binary stored under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error
}

// Package storage implements the media blob store on top of gocloud.dev,
// so the same code serves local disk, S3 and GCS buckets.
package storage

import (
	"context"
	"io"
	"log/slog"

	"atelier/config"
	"atelier/internal/domain/lifecycle"
	"atelier/internal/domain/service"
	"atelier/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

// Media binaries are immutable once written; keys never get reused.
const blobCacheControl = "public, max-age=31536000"

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// bucketStore is a concrete implementation of the BlobStore interface.
type bucketStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// New opens the configured bucket and wires its lifecycle.
func New(params Params) (service.BlobStore, error) {
	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open media bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &bucketStore{
		bucket:        bucket,
		publicBaseURL: params.Config.Storage.PublicBaseURL,
	}, nil
}

// Upload streams the body into the bucket under the given key and returns
// the durable public URL of the blob.
func (s *bucketStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: blobCacheControl,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open blob writer")
	}

	if _, err := io.Copy(writer, body); err != nil {
		_ = writer.Close()

		return "", errors.Wrap(err, "failed to write blob")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize blob")
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes a blob. A missing key is not an error so deletes stay
// idempotent across retries and compensations.
func (s *bucketStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrap(err, "failed to delete blob")
	}

	return nil
}

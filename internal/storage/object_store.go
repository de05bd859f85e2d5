package storage

import (
	"context"
	"io"
)

// ObjectStore is the blob storage surface the pipeline depends on.
type ObjectStore interface {
	CreateBucket(ctx context.Context, bucket string) error

	Exists(ctx context.Context, bucket, key string) (bool, error)

	GetObjectStream(ctx context.Context, bucket, key string) (io.ReadCloser, error)

	PutObject(ctx context.Context, bucket, key string, data io.Reader) error
}

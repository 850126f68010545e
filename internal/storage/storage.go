package storage

import (
	"context"
	"io"
)

// ImageStore persists uploaded meal images and returns a URL clients can load.
type ImageStore interface {
	Store(ctx context.Context, key string, r io.Reader, size int64, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
}

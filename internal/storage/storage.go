package storage

import (
	"context"
	"io"
)

// MediaStore persists uploaded media and returns a public URL for it.
type MediaStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

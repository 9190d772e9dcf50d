package model

import (
	"context"
	"io"
)

// Storage holds uploaded import files between upload and processing.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

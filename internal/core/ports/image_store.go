package ports

import (
	"context"
	"io"
)

// ImageStore holds uploaded listing images.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (key string, err error)
	URL(ctx context.Context, key string) (string, error)
}

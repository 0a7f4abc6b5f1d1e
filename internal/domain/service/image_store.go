package service

import (
	"context"
	"io"

	"giftlink/internal/errors"
)

// ErrUnsupportedImageType is returned for uploads that are not jpeg/jpg/png.
var ErrUnsupportedImageType = errors.New("unsupported image type")

// ImageStore defines the interface for persisting uploaded gift images.
// Implementations return the public URL the stored image is served from.
type ImageStore interface {
	// Save writes the image content to durable storage under a fresh key
	// derived from filename's extension.
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

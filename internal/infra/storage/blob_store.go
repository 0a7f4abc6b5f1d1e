// Package storage persists uploaded gift images on a gocloud.dev blob bucket,
// so the same code serves a local directory in development and an object
// store in production.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selectable via the storage.bucketUrl scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"

	"giftlink/config"
	"giftlink/internal/domain/service"
	"giftlink/internal/errors"
)

// keyPrefix mirrors the folder layout of the original image hosting setup.
const keyPrefix = "gift_images/"

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
}

type blobImageStore struct {
	bucket  *blob.Bucket
	baseURL string
	logger  *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and registers its close with the app lifecycle.
func New(params Params) (service.ImageStore, error) {
	bucket, err := blob.OpenBucket(context.Background(), params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image bucket %q", params.Config.Storage.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return newBlobImageStore(bucket, params.Config.Storage.PublicBaseURL, params.Logger), nil
}

func newBlobImageStore(bucket *blob.Bucket, baseURL string, logger *slog.Logger) *blobImageStore {
	return &blobImageStore{
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// Save writes the image under a fresh key and returns its public URL.
func (s *blobImageStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", errors.Wrapf(service.ErrUnsupportedImageType, "extension %q", ext)
	}

	key := keyPrefix + uuid.New().String() + ext

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, r); err != nil {
		// Abort the write so no partial object is left behind.
		_ = writer.Close()
		return "", errors.Wrap(err, "failed to write image content")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize image write")
	}

	s.logger.Debug("Stored gift image", slog.String("key", key))

	return s.baseURL + "/" + key, nil
}

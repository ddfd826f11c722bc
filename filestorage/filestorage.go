package filestorage

import (
	"candideit/config"
	"context"
	"fmt"
	"io"
)

// FileStorage stores uploaded assets under slash separated keys.
type FileStorage interface {
	// Save writes the content of r under key and returns its public URL.
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New returns the backend selected by MEDIA_BACKEND.
func New(ctx context.Context, cfg *config.Config) (FileStorage, error) {
	switch cfg.MediaBackend {
	case config.MediaBackendLocal:
		return NewLocalStorage(cfg.MediaRoot, cfg.MediaURL), nil
	case config.MediaBackendS3:
		return NewS3Storage(cfg.S3Bucket, cfg.S3Region, cfg.AWSAccessKeyID, cfg.AWSSecretKey)
	case config.MediaBackendGCS:
		return NewGCSStorage(ctx, cfg.GCSBucket)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.MediaBackend)
	}
}

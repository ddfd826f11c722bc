package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

const timeout = time.Second * 50

// GCSClient stores assets in a Google Cloud Storage bucket.
type GCSClient struct {
	bucket string
	client *storage.Client
}

func NewGCSStorage(ctx context.Context, bucket string) (FileStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}
	return &GCSClient{bucket: bucket, client: client}, nil
}

func (g *GCSClient) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	wc := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(wc, r); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to copy %s to gcs bucket %s: %w", key, g.bucket, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finish %s in gcs bucket %s: %w", key, g.bucket, err)
	}
	return g.URL(key), nil
}

func (g *GCSClient) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return g.client.Bucket(g.bucket).Object(key).NewReader(ctx)
}

func (g *GCSClient) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete %s from gcs bucket %s: %w", key, g.bucket, err)
	}
	return nil
}

func (g *GCSClient) URL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, key)
}

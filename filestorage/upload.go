package filestorage

import (
	"candideit/metrics"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	KindLogo  = "logos"
	KindPhoto = "photos"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("file too large")
)

var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// NewKey returns a fresh key for an asset of the given kind keeping the
// original extension.
func NewKey(kind, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, e := range allowedExtensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	return kind + "/" + uuid.NewString() + ext, nil
}

// StoreUpload validates and saves an uploaded image, returning its key.
func StoreUpload(ctx context.Context, storage FileStorage, kind string, header *multipart.FileHeader, maxBytes int64) (string, error) {
	if maxBytes > 0 && header.Size > maxBytes {
		return "", fmt.Errorf("%w: %d bytes, at most %d allowed", ErrTooLarge, header.Size, maxBytes)
	}
	key, err := NewKey(kind, header.Filename)
	if err != nil {
		return "", err
	}
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %s: %w", header.Filename, err)
	}
	defer file.Close()
	if err := sniffImage(file); err != nil {
		return "", err
	}
	if _, err := storage.Save(ctx, key, file); err != nil {
		return "", err
	}
	metrics.UploadedBytesCounter.WithLabelValues(kind).Add(float64(header.Size))
	return key, nil
}

// sniffImage checks the upload content is one of the allowed image types and
// rewinds it for the caller.
func sniffImage(file multipart.File) error {
	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind upload: %w", err)
	}
	for _, t := range allowedTypes {
		if detected.Is(t) {
			return nil
		}
	}
	return fmt.Errorf("%w: content is %s", ErrUnsupportedType, detected.String())
}

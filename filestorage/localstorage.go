package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type localStorage struct {
	root    string
	baseURL string
}

// NewLocalStorage keeps assets below root and serves them from baseURL.
func NewLocalStorage(root, baseURL string) FileStorage {
	return &localStorage{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (l *localStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid asset key %q", key)
	}
	return filepath.Join(l.root, clean), nil
}

// Save writes to a temporary file next to the target and renames it into
// place, so a failed write never leaves a partial asset under key.
func (l *localStorage) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	name, err := l.path(key)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: r}); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return "", fmt.Errorf("failed to move %s into place: %w", key, err)
	}
	return l.URL(key), nil
}

func (l *localStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	name, err := l.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(name)
}

func (l *localStorage) Delete(ctx context.Context, key string) error {
	name, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (l *localStorage) URL(key string) string {
	return l.baseURL + "/" + key
}

// ctxReader stops a copy once the context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

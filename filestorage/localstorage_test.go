package filestorage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	content := "en un lugar de la mancha de cuyo nombre no quiero acordarme"
	root := t.TempDir()
	storage := NewLocalStorage(root, "/media/")

	url, err := storage.Save(context.Background(), "photos/a.png", strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "/media/photos/a.png", url)

	b, err := os.ReadFile(filepath.Join(root, "photos", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, content, string(b))

	r, err := storage.Open(context.Background(), "photos/a.png")
	require.NoError(t, err)
	defer r.Close()
	b, err = io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(b))
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestSaveFailureLeavesNothingBehind(t *testing.T) {
	root := t.TempDir()
	storage := NewLocalStorage(root, "/media")

	_, err := storage.Save(context.Background(), "logos/b.png", io.MultiReader(bytes.NewReader([]byte("half")), failingReader{}))
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "logos"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDelete(t *testing.T) {
	root := t.TempDir()
	storage := NewLocalStorage(root, "/media")
	_, err := storage.Save(context.Background(), "logos/c.png", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, storage.Delete(context.Background(), "logos/c.png"))
	_, err = os.Stat(filepath.Join(root, "logos", "c.png"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, storage.Delete(context.Background(), "logos/c.png"))
}

func TestRejectsEscapingKeys(t *testing.T) {
	storage := NewLocalStorage(t.TempDir(), "/media")
	_, err := storage.Save(context.Background(), "../outside.png", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestNewKey(t *testing.T) {
	key, err := NewKey(KindPhoto, "Retrato.JPG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "photos/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	_, err = NewKey(KindLogo, "script.sh")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

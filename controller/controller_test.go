package controller

import (
	"candideit/events"
	"candideit/filestorage"
	"candideit/testutil"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewTestDB(t)
	r := gin.New()
	SetRoutes(r, db, filestorage.NewLocalStorage(t.TempDir(), "/media"), events.NoopPublisher{})
	return r, db
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, 302, w.Code, w.Body.String())
	assert.Equal(t, location, w.Header().Get("Location"))
}

func formOf(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()
	form, ok := body[key].(map[string]any)
	require.True(t, ok, "%s missing from %v", key, body)
	return form
}

func formErrors(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	errors, ok := formOf(t, body, "form")["errors"].(map[string]any)
	require.True(t, ok)
	return errors
}

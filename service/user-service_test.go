package service

import (
	"candideit/app_error"
	"candideit/auth"
	"candideit/testutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := NewUserService(db)

	user, err := s.Register("joe", "joe@doe.cl", "doe")
	require.NoError(t, err)
	assert.NotEqual(t, []byte("doe"), user.PasswordHash)

	_, err = s.Register("joe", "other@doe.cl", "doe")
	validation, ok := app_error.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, "username", validation.Field)

	authenticated, err := s.Authenticate("joe", "doe")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authenticated.ID)

	for _, credentials := range [][2]string{{"joe", "wrong"}, {"nobody", "doe"}} {
		_, err = s.Authenticate(credentials[0], credentials[1])
		validation, ok = app_error.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Usuario o contraseña incorrectos.", validation.Message)
	}
}

func TestGetUserFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewTestDB(t)
	s := NewUserService(db)
	user := testutil.CreateUser(t, db, "joe", "doe")
	token, err := auth.CreateToken(user)
	require.NoError(t, err)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	found, err := s.GetUserFromRequest(c)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)
	found, err = s.GetUserFromRequest(c)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = s.GetUserFromRequest(c)
	assert.Error(t, err)
}

package auth

import (
	"testing"
	"time"

	"candideit/config"
	"candideit/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken(&repository.User{ID: 7, Username: "fiera"})
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserId)
	assert.Equal(t, "fiera", claims.Username)
	assert.InDelta(t, time.Now().Add(TokenLifetime).Unix(), claims.Exp, 5)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(config.Env().JWTSecret))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("someone-else"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("feroz")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "feroz"))
	assert.False(t, CheckPassword(hash, "fiera"))
}

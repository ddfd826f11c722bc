package auth

import (
	"fmt"
	"time"

	"candideit/config"
	"candideit/repository"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName    = "auth"
	TokenLifetime = time.Hour * 24 * 21
)

type Claims struct {
	UserId   uint   `json:"user_id"`
	Username string `json:"username"`
	Exp      int64  `json:"exp"`
}

func (claims *Claims) FromJWTClaims(jwtClaims jwt.Claims) error {
	mapClaims, ok := jwtClaims.(jwt.MapClaims)
	if !ok {
		return jwt.ErrTokenInvalidClaims
	}
	userId, ok := mapClaims["user_id"].(float64)
	if !ok {
		return fmt.Errorf("%w: user_id", jwt.ErrTokenInvalidClaims)
	}
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return fmt.Errorf("%w: exp", jwt.ErrTokenInvalidClaims)
	}
	username, _ := mapClaims["username"].(string)
	claims.UserId = uint(userId)
	claims.Username = username
	claims.Exp = int64(exp)
	return nil
}

func (claims *Claims) Valid() error {
	if time.Now().Unix() > claims.Exp {
		return jwt.ErrTokenExpired
	}
	return nil
}

func CreateToken(user *repository.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"user_id":  user.ID,
			"username": user.Username,
			"exp":      time.Now().Add(TokenLifetime).Unix(),
		})

	tokenString, err := token.SignedString([]byte(config.Env().JWTSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(config.Env().JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	claims := &Claims{}
	if err := claims.FromJWTClaims(token.Claims); err != nil {
		return nil, err
	}
	if err := claims.Valid(); err != nil {
		return nil, err
	}
	return claims, nil
}

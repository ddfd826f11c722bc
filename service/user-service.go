package service

import (
	"candideit/app_error"
	"candideit/auth"
	"candideit/repository"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "Usuario o contraseña incorrectos."

type UserService struct {
	userRepository *repository.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userRepository: repository.NewUserRepository(db),
	}
}

func (s *UserService) Register(username string, email string, password string) (*repository.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, app_error.Validation("username", requiredMessage)
	}
	if password == "" {
		return nil, app_error.Validation("password", requiredMessage)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepository.CreateUser(&repository.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, app_error.WrapValidation(err, "username", "Ya existe un usuario con ese nombre.")
	}
	return user, err
}

func (s *UserService) Authenticate(username string, password string) (*repository.User, error) {
	user, err := s.userRepository.GetUserByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_error.Validation("__all__", invalidCredentialsMessage)
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, app_error.Validation("__all__", invalidCredentialsMessage)
	}
	return user, nil
}

func (s *UserService) GetUserById(id uint) (*repository.User, error) {
	user, err := s.userRepository.GetUserById(id)
	return user, notFound(err, "user")
}

func (s *UserService) GetUserFromToken(tokenString string) (*repository.User, error) {
	claims, err := auth.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	return s.GetUserById(claims.UserId)
}

// GetUserFromRequest reads the token from the auth cookie, falling back to a
// bearer Authorization header.
func (s *UserService) GetUserFromRequest(c *gin.Context) (*repository.User, error) {
	if token, err := c.Cookie(auth.CookieName); err == nil && token != "" {
		return s.GetUserFromToken(token)
	}
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, fmt.Errorf("no credentials in request")
	}
	return s.GetUserFromToken(authHeader[7:])
}

package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"not null;uniqueIndex"`
	Email        string    `gorm:"null"`
	PasswordHash []byte    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetUserById(userId uint) (*User, error) {
	var user User
	result := r.DB.First(&user, userId)
	if result.Error != nil {
		return nil, fmt.Errorf("user with id %d: %w", userId, result.Error)
	}
	return &user, nil
}

func (r *UserRepository) GetUserByUsername(username string) (*User, error) {
	var user User
	result := r.DB.First(&user, "username = ?", username)
	if result.Error != nil {
		return nil, fmt.Errorf("user %s: %w", username, result.Error)
	}
	return &user, nil
}

func (r *UserRepository) CreateUser(user *User) (*User, error) {
	result := r.DB.Create(user)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create user: %w", result.Error)
	}
	return user, nil
}

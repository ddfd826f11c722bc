package service

import (
	"candideit/app_error"
	"errors"

	"gorm.io/gorm"
)

const (
	requiredMessage    = "Este campo es obligatorio."
	invalidNameMessage = "El nombre debe contener al menos una letra o número."
)

// notFound maps a missing row to a 404 and leaves other errors untouched.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return app_error.NotFound(what)
	}
	return err
}

package app_error

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrDuplicateSlugForOwner = errors.New("an election with this slug already exists for this owner")
)

type statusError struct {
	error
	status int
}

func (e statusError) Unwrap() error {
	return e.error
}

func (e statusError) HTTPStatus() int {
	return e.status
}

// NotFound is also used for resources that exist but belong to someone else.
func NotFound(what string) error {
	return statusError{fmt.Errorf("%s: %w", what, ErrNotFound), http.StatusNotFound}
}

// ValidationError is reported back as a form field error, not as a failed request.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func Validation(field string, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func WrapValidation(err error, field string, message string) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

func HTTPStatus(err error) int {
	var withStatus interface{ HTTPStatus() int }
	if errors.As(err, &withStatus) {
		return withStatus.HTTPStatus()
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if _, ok := AsValidation(err); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func WithHTTPStatus(c *gin.Context, err error, status int) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// Abort writes err with the status it resolves to.
func Abort(c *gin.Context, err error) {
	WithHTTPStatus(c, err, HTTPStatus(err))
}

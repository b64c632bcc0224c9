package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain error with a transport status. Handlers translate it into
// the {status, message} response shape; services only raise and wrap it.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets wrapped errors match their sentinel via errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Status == t.Status && e.Message == t.Message
}

var (
	ErrDuplicateUser         = &Error{Status: http.StatusConflict, Message: "user already exists"}
	ErrUserNotFound          = &Error{Status: http.StatusNotFound, Message: "user not found"}
	ErrInvalidCredential     = &Error{Status: http.StatusUnauthorized, Message: "invalid credentials"}
	ErrUpstreamNormalization = &Error{Status: http.StatusBadGateway, Message: "ai normalization failed"}
	ErrValidation            = &Error{Status: http.StatusBadRequest, Message: "validation failed"}
)

// Wrap attaches context to a sentinel while keeping errors.Is matching.
func Wrap(sentinel *Error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, sentinel)...)
}

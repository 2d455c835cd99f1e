package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/physref/internal/domain"
	"github.com/phrazzld/physref/internal/service/auth"
	"github.com/phrazzld/physref/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to visitors.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// SafeMessage returns a sanitized, user-friendly message for err.
func SafeMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return "Input error"

	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid username or password"

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Please log in to continue"

	case errors.Is(err, domain.ErrTopicNotFound):
		return "Section not found"

	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Page not found"

	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, store.ErrUsernameExists):
		return "Username is already taken"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid data"

	default:
		return "An unexpected error occurred"
	}
}

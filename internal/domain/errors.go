package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when user input fails validation.
	// It is usually carried by a *ValidationError with per-field detail.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTopicNotFound is returned when a formula topic is not in the catalog.
	ErrTopicNotFound = fmt.Errorf("%w: topic", ErrNotFound)

	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned for any failed login, whether the
	// username is unknown or the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when an operation requires an authenticated session.
	ErrUnauthorized = errors.New("authentication required")
)

package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("session token has expired")

	// ErrWrongTokenType indicates a validly signed token was presented where
	// a different token type is expected, e.g. a flash token as a session.
	ErrWrongTokenType = errors.New("wrong token type")
)

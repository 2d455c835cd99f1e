package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// Username length bounds, counted in characters.
const (
	UsernameMinLength = 4
	UsernameMaxLength = 25
)

// User validation errors
var (
	ErrUsernameLength      = errors.New("username must be between 4 and 25 characters")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User is a registered account. The ID is assigned by the store on insert.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates a User ready to be inserted. The password must already be hashed.
func NewUser(username, passwordHash string) (*User, error) {
	user := &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the invariants a stored user must satisfy.
func (u *User) Validate() error {
	n := utf8.RuneCountInString(u.Username)
	if n < UsernameMinLength || n > UsernameMaxLength {
		return ErrUsernameLength
	}

	if u.PasswordHash == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

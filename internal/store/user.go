package store

import (
	"context"

	"github.com/phrazzld/physref/internal/domain"
)

// UserStore defines the interface for user data persistence.
// The store, not its callers, is the authority on username uniqueness.
type UserStore interface {
	// Create inserts a new user and sets user.ID to the assigned identifier.
	// The insert is a single statement guarded by the unique constraint on
	// username; concurrent creates of the same username yield exactly one success.
	// Returns ErrUsernameExists if the username is already taken.
	// Returns ErrInvalidEntity if the user fails domain validation.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

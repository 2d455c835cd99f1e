package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("alice", "$2a$10$hash")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.Zero(t, user.ID, "ID is assigned by the store")
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		hash     string
		wantErr  error
	}{
		{"minimum length", "abcd", "h", nil},
		{"maximum length", strings.Repeat("a", 25), "h", nil},
		{"too short", "abc", "h", ErrUsernameLength},
		{"too long", strings.Repeat("a", 26), "h", ErrUsernameLength},
		{"multibyte counted as characters", "юзер", "h", nil},
		{"empty hash", "alice", "", ErrEmptyHashedPassword},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := &User{Username: tc.username, PasswordHash: tc.hash}
			err := u.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

package sqlite_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/physref/internal/domain"
	"github.com/phrazzld/physref/internal/platform/sqlite"
	"github.com/phrazzld/physref/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.SQLiteUserStore {
	t.Helper()
	s, err := sqlite.NewSQLiteUserStore(openTestDB(t), nil)
	require.NoError(t, err)
	return s
}

func TestSQLiteUserStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	user, err := domain.NewUser("alice", "$2a$10$hash")
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, user))
	assert.Equal(t, int64(1), user.ID)

	byName, err := s.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "$2a$10$hash", byName.PasswordHash)
	assert.WithinDuration(t, user.CreatedAt, byName.CreatedAt, time.Second)

	byID, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestSQLiteUserStore_UsernameIsCaseSensitive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	lower, err := domain.NewUser("alice", "$2a$10$a")
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, lower))

	upper, err := domain.NewUser("Alice", "$2a$10$b")
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, upper))
	assert.NotEqual(t, lower.ID, upper.ID)
}

func TestSQLiteUserStore_DuplicateUsername(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	first, err := domain.NewUser("alice", "$2a$10$first")
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, first))

	second, err := domain.NewUser("alice", "$2a$10$second")
	require.NoError(t, err)
	assert.ErrorIs(t, s.Create(ctx, second), store.ErrUsernameExists)

	stored, err := s.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$first", stored.PasswordHash)
}

func TestSQLiteUserStore_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = s.GetByID(ctx, 42)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestSQLiteUserStore_InvalidEntity(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	err := s.Create(context.Background(), &domain.User{Username: "bob", PasswordHash: "x"})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestSQLiteUserStore_ConcurrentRegistration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	const attempts = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		errs    []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user, err := domain.NewUser("racer", "$2a$10$hash")
			if err == nil {
				err = s.Create(ctx, user)
			}
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	require.Len(t, errs, attempts-1)
	for _, err := range errs {
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	}
}

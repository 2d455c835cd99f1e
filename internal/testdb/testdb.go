package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/physref/internal/platform/migrate"
	"github.com/phrazzld/physref/internal/platform/postgres"
	"github.com/phrazzld/physref/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds setup work against a test database.
const TestTimeout = 30 * time.Second

// GetTestDatabaseURL returns the postgres URL for integration tests.
// It checks DATABASE_URL and PHYSREF_TEST_DB_URL in that order.
func GetTestDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("PHYSREF_TEST_DB_URL")
}

// IsIntegrationTestEnvironment reports whether a postgres test database is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// OpenPostgres connects to the configured test database and applies all
// migrations. It returns nil, nil when no database is configured.
func OpenPostgres(ctx context.Context) (*sql.DB, error) {
	url := GetTestDatabaseURL()
	if url == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}
	if err := migrate.Run(ctx, db, postgres.Dialect, postgres.Migrations(), migrate.CommandUp, nil); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}
	return db, nil
}

// SQLite opens a migrated database file in a temporary directory. It is
// closed when the test finishes.
func SQLite(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "physics.db"))
	require.NoError(t, err, "failed to open sqlite test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t,
		migrate.Run(ctx, db, sqlite.Dialect, sqlite.Migrations(), migrate.CommandUp, nil),
		"failed to migrate sqlite test database")
	return db
}

// WithTx runs fn within a transaction that is rolled back afterwards, even
// when fn panics. A nil db skips the test.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()
	if db == nil {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

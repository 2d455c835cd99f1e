package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Dialect is the goose dialect for this backend.
const Dialect = goose.DialectSQLite3

// Scheme is the URL scheme that selects this backend.
const Scheme = "sqlite"

// Migrations returns the embedded schema migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		// ALLOW-PANIC: the embedded directory is fixed at compile time
		panic(err)
	}
	return sub
}

// ParseURL extracts the database file path from a sqlite URL.
// sqlite:///physics.db names a relative path, sqlite:////var/lib/physics.db
// an absolute one.
func ParseURL(url string) (string, error) {
	rest, ok := strings.CutPrefix(url, Scheme+"://")
	if !ok {
		return "", fmt.Errorf("not a sqlite url: %q", url)
	}
	path := strings.TrimPrefix(rest, "/")
	if path == "" {
		return "", fmt.Errorf("sqlite url has no database path: %q", url)
	}
	return path, nil
}

// Open opens the database file at path, creating it when missing, and
// verifies the connection.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return db, nil
}

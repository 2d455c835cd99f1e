// Package migrate applies the embedded goose migrations of a storage backend.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Supported commands
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
)

// Run executes a migration command against db using the migrations in fsys.
// fsys must contain the goose .sql files at its root.
func Run(
	ctx context.Context,
	db *sql.DB,
	dialect goose.Dialect,
	fsys fs.FS,
	command string,
	logger *slog.Logger,
) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "migrate"), slog.String("dialect", string(dialect)))

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	switch command {
	case CommandUp:
		results, err := provider.Up(ctx)
		for _, r := range results {
			log.Info("migration applied",
				slog.Int64("version", r.Source.Version),
				slog.String("path", r.Source.Path),
				slog.Duration("duration", r.Duration))
		}
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		if len(results) == 0 {
			log.Debug("schema is up to date")
		}
	case CommandDown:
		r, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		if r != nil && r.Source != nil {
			log.Info("migration rolled back",
				slog.Int64("version", r.Source.Version),
				slog.String("path", r.Source.Path))
		}
	case CommandStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		for _, s := range statuses {
			log.Info("migration status",
				slog.Int64("version", s.Source.Version),
				slog.String("path", s.Source.Path),
				slog.String("state", string(s.State)),
				slog.Time("applied_at", s.AppliedAt))
		}
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}

	return nil
}

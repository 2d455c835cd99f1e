package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/phrazzld/physref/internal/config"
	"github.com/phrazzld/physref/internal/platform/migrate"
	"github.com/phrazzld/physref/internal/platform/postgres"
	"github.com/phrazzld/physref/internal/platform/sqlite"
	"github.com/phrazzld/physref/internal/store"
	"github.com/pressly/goose/v3"
)

// database is an open connection together with the backend it speaks.
type database struct {
	*sql.DB
	backend    string
	dialect    goose.Dialect
	migrations fs.FS
}

// openDatabase connects to the backend selected by the URL scheme.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*database, error) {
	d := &database{backend: cfg.Backend()}

	var err error
	switch d.backend {
	case config.BackendSQLite:
		path, perr := sqlite.ParseURL(cfg.URL)
		if perr != nil {
			return nil, perr
		}
		d.DB, err = sqlite.Open(ctx, path)
		d.dialect, d.migrations = sqlite.Dialect, sqlite.Migrations()
	case config.BackendPostgres:
		d.DB, err = postgres.Open(ctx, cfg.URL)
		d.dialect, d.migrations = postgres.Dialect, postgres.Migrations()
	default:
		return nil, fmt.Errorf("unsupported database url scheme")
	}
	if err != nil {
		return nil, err
	}

	logger.Info("database connection established", "backend", d.backend)
	return d, nil
}

func (d *database) migrate(ctx context.Context, command string, logger *slog.Logger) error {
	return migrate.Run(ctx, d.DB, d.dialect, d.migrations, command, logger)
}

// userStore returns the credential store for the backend.
func (d *database) userStore(logger *slog.Logger) (store.UserStore, error) {
	switch d.backend {
	case config.BackendSQLite:
		return sqlite.NewSQLiteUserStore(d.DB, logger)
	default:
		return postgres.NewPostgresUserStore(d.DB, logger), nil
	}
}

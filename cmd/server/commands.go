package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/physref/internal/config"
	"github.com/phrazzld/physref/internal/platform/logger"
	"github.com/phrazzld/physref/internal/platform/migrate"
	"github.com/phrazzld/physref/internal/service/auth"
	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by all commands.
type rootOptions struct {
	ConfigPath string
}

// newRootCommand builds the command tree. Running it without a subcommand serves the site.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	serve := newServeCommand(opts)

	cmd := &cobra.Command{
		Use:           "physref",
		Short:         "Physics reference site",
		Long:          "Serves the physics formula catalog, the calculators and user accounts.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "",
		"path to a config file (yaml, json or toml); environment variables override it")

	cmd.AddCommand(serve)
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newHashPasswordCommand())

	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply pending migrations and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, log, err := loadAppConfig(opts.ConfigPath)
			if err != nil {
				return err
			}

			db, err := openDatabase(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			if err := db.migrate(ctx, migrate.CommandUp, log); err != nil {
				_ = db.Close()
				return err
			}

			app, err := newApplication(cfg, log, db)
			if err != nil {
				_ = db.Close()
				return err
			}
			return app.Run(ctx)
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Manage the database schema",
		Long: `Apply, roll back or inspect the database migrations for the configured backend.

Example:
  physref migrate up
  PHYSREF_DATABASE_URL=postgres://localhost/physref physref migrate status`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{migrate.CommandUp, migrate.CommandDown, migrate.CommandStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, log, err := loadAppConfig(opts.ConfigPath)
			if err != nil {
				return err
			}

			db, err := openDatabase(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Error("failed to close database", "error", err)
				}
			}()

			return db.migrate(ctx, args[0], log)
		},
	}
}

func newHashPasswordCommand() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print the bcrypt hash of a password read from stdin",
		Long: `Reads one password per line from stdin and prints its bcrypt hash,
as stored in the users table. Useful for seeding accounts.

Example:
  echo 'secret1' | physref hash-password --cost 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return hashPasswords(cmd.InOrStdin(), cmd.OutOrStdout(), auth.NewBcryptHasher(cost))
		},
	}

	cmd.Flags().IntVar(&cost, "cost", config.DefaultBcryptCost, "bcrypt cost factor (4-31)")

	return cmd
}

func hashPasswords(in io.Reader, out io.Writer, hasher auth.PasswordHasher) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		password := strings.TrimRight(scanner.Text(), "\r")
		if password == "" {
			continue
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if _, err := fmt.Fprintln(out, hash); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// loadAppConfig loads the configuration and sets up the logger it names.
func loadAppConfig(path string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"backend", cfg.Database.Backend())

	return cfg, log, nil
}

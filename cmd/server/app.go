package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/physref/internal/api"
	"github.com/phrazzld/physref/internal/api/middleware"
	"github.com/phrazzld/physref/internal/catalog"
	"github.com/phrazzld/physref/internal/config"
	"github.com/phrazzld/physref/internal/service/auth"
	"github.com/phrazzld/physref/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *database

	catalog   *catalog.Catalog
	userStore store.UserStore

	authService *auth.Service
	sessions    *middleware.SessionMiddleware
	views       *api.Renderer
}

// newApplication wires the stores, services and views around an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *database) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		catalog: catalog.Default(),
	}

	var err error
	app.userStore, err = db.userStore(logger.With("component", "user_store"))
	if err != nil {
		return nil, fmt.Errorf("failed to create user store: %w", err)
	}

	app.authService, err = auth.NewService(
		app.userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		logger.With("component", "auth_service"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	sessionManager, err := auth.NewSessionManager(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session manager: %w", err)
	}
	app.sessions = middleware.NewSessionMiddleware(
		sessionManager,
		cfg.Auth.SessionLifetime(),
		cfg.Server.SecureCookies,
	)
	logger.Info("session manager initialized",
		"session_lifetime_minutes", cfg.Auth.SessionLifetimeMinutes,
		"secure_cookies", cfg.Server.SecureCookies)

	app.views, err = api.NewRenderer(app.catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down and releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}

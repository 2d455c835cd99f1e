package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/physref/internal/api"
	apiMiddleware "github.com/phrazzld/physref/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(app.sessions.Load)

	api.RegisterRoutes(r, api.Handlers{
		Pages:       api.NewPageHandler(app.catalog, app.authService, app.sessions, app.views),
		Calculators: api.NewCalculatorHandler(app.views),
		Auth:        api.NewAuthHandler(app.authService, app.sessions, app.views),
	}, app.sessions)

	return r
}

package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/physref/internal/api/middleware"
)

// Handlers groups the route handlers.
type Handlers struct {
	Pages       *PageHandler
	Calculators *CalculatorHandler
	Auth        *AuthHandler
}

// RegisterRoutes mounts the site's routes on r. sessions.Load must already
// be in r's middleware chain.
func RegisterRoutes(r chi.Router, h Handlers, sessions *middleware.SessionMiddleware) {
	r.Get("/", h.Pages.Home)
	r.Get("/formulas/{topic}", h.Pages.Formulas)

	r.Get("/calculator/mechanics", h.Calculators.MechanicsForm)
	r.Post("/calculator/mechanics", h.Calculators.Mechanics)
	r.Get("/calculator/electromagnetism", h.Calculators.ElectromagnetismForm)
	r.Post("/calculator/electromagnetism", h.Calculators.Electromagnetism)

	r.Get("/register", h.Auth.RegisterForm)
	r.Post("/register", h.Auth.Register)
	r.Get("/login", h.Auth.LoginForm)
	r.Post("/login", h.Auth.Login)
	r.Get("/logout", h.Auth.Logout)

	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireAuth)
		r.Get("/account", h.Pages.Account)
	})

	r.Get("/health", h.Pages.Health)
	r.NotFound(h.Pages.NotFound)
}

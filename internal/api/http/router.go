package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Accounts *handlers.AccountsHandler
	Auth     *handlers.AuthHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Accounts.Home)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/users", cfg.Accounts.List)
	app.Post("/users", cfg.Accounts.Create)
	app.Get("/user/:id", cfg.Accounts.Get)
	app.Put("/user/:id", cfg.Accounts.Update)
	app.Delete("/user/:id", cfg.Accounts.Delete)
	app.Get("/search", cfg.Accounts.Search)

	app.Post("/login", cfg.Auth.Login)
}

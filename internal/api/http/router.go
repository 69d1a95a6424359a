package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workspace-service/internal/api/http/handlers"
	"github.com/spec-kit/workspace-service/internal/api/ws"
	"github.com/spec-kit/workspace-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Todos          *handlers.TodosHandler
	Notes          *handlers.NotesHandler
	Chat           *ws.ChatHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Get("/todos", cfg.Todos.List)
	api.Post("/todos", cfg.Todos.Create)
	api.Patch("/todos/:id", cfg.Todos.Update)
	api.Delete("/todos/:id", cfg.Todos.Delete)

	api.Get("/notes", cfg.Notes.List)
	api.Post("/notes", cfg.Notes.Create)
	api.Put("/notes/:id", cfg.Notes.Update)
	api.Delete("/notes/:id", cfg.Notes.Delete)

	app.Get("/ws/chat", cfg.Chat.Upgrade(), cfg.Chat.Serve())
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nkarpov/gemini-chat/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, chat *handlers.ChatHandler, health *handlers.HealthHandler) {
	api := app.Group("/api")

	// Liveness endpoint for probes/monitoring
	api.Get("/health", health.Health)

	// Chat proxy
	api.Post("/chat", chat.Chat)
}

// @title         gemini-chat API
// @version       1.0
// @description   Thin HTTP proxy that forwards chat prompts to the Gemini API and relays the generated text.
// @BasePath      /api
// @schemes       http
// @host          localhost:8080
package main

import (
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"

	_ "github.com/nkarpov/gemini-chat/docs"

	// internal imports
	"github.com/nkarpov/gemini-chat/api/http"
	"github.com/nkarpov/gemini-chat/api/http/handlers"
	"github.com/nkarpov/gemini-chat/pkg/config"
	"github.com/nkarpov/gemini-chat/pkg/llm/gemini"
	"github.com/nkarpov/gemini-chat/pkg/logging"
)

func main() {
	logging.Init(logrus.DebugLevel)
	log := logging.L()

	app := fiber.New()

	// Load configuration from env/.env.local
	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		// The handler answers 500 until a key is configured; don't crash here.
		log.Warn("GEMINI_API_KEY is not set; chat requests will fail")
	}

	// Gemini client and chat handler
	llmClient := gemini.New(cfg.GeminiAPIKey, "", cfg.GeminiModel)
	chatHandler := handlers.NewChatHandler(llmClient, cfg.GeminiAPIKey)
	healthHandler := handlers.NewHealthHandler()

	// Register routes
	http.Register(app, chatHandler, healthHandler)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Start server
	log.Infof("HTTP server listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

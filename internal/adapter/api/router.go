package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BuildInfo is reported by the health endpoint.
type BuildInfo struct {
	Version string
	Env     string
}

func SetupRouter(app *fiber.App, handler *SuggestionHandler, auth fiber.Handler, info BuildInfo) {
	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": info.Version,
			"env":     info.Env,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", auth)
	api.Post("/gift-suggestions", handler.HandleSuggest)
}

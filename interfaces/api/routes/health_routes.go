package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Get("/health", h.HealthHandler.Health)
	app.Get("/api/v1/health", h.HealthHandler.Health)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Todolist API",
			"docs":    "/api/v1",
			"health":  "/health",
		})
	})
}

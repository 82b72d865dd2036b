package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/interfaces/api/handlers"
)

func SetupCategoryRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	categories := api.Group("/categories", protected)
	categories.Get("/", h.CategoryHandler.List)
	categories.Post("/", h.CategoryHandler.Create)
	categories.Put("/:id", h.CategoryHandler.Update)
	categories.Delete("/:id", h.CategoryHandler.Delete)
}

func SetupPriorityRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	priorities := api.Group("/priorities", protected)
	priorities.Get("/", h.PriorityHandler.List)
	priorities.Post("/", h.PriorityHandler.Create)
	priorities.Put("/:id", h.PriorityHandler.Update)
	priorities.Delete("/:id", h.PriorityHandler.Delete)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/interfaces/api/handlers"
)

func SetupTodoRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	todos := api.Group("/todos", protected)
	todos.Get("/", h.TodoHandler.List)
	todos.Post("/", h.TodoHandler.Create)
	todos.Get("/:id", h.TodoHandler.Get)
	todos.Put("/:id", h.TodoHandler.Update)
	todos.Delete("/:id", h.TodoHandler.Delete)
	todos.Patch("/:id/complete", h.TodoHandler.Complete)
	todos.Patch("/:id/priority", h.TodoHandler.ChangePriority)
	todos.Patch("/:id/category", h.TodoHandler.ChangeCategory)
}

func SetupTodoLogRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	logs := api.Group("/logs", protected)
	logs.Get("/", h.TodoLogHandler.List)
	logs.Delete("/", h.TodoLogHandler.Clear)
	logs.Get("/todo/:todoId", h.TodoLogHandler.ListForTodo)
	logs.Delete("/:id", h.TodoLogHandler.Delete)
}

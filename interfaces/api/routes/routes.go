package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/interfaces/api/handlers"
	"github.com/pinkcat015/todolist/interfaces/api/middleware"
	wshandler "github.com/pinkcat015/todolist/interfaces/api/websocket"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, ws *wshandler.ActivityHandler, jwtSecret string) {
	SetupHealthRoutes(app, h)

	api := app.Group("/api/v1")
	protected := middleware.Protected(jwtSecret)

	SetupAuthRoutes(api, h, protected)
	SetupUserRoutes(api, h, protected)
	SetupTodoRoutes(api, h, protected)
	SetupCategoryRoutes(api, h, protected)
	SetupPriorityRoutes(api, h, protected)
	SetupTodoLogRoutes(api, h, protected)

	if ws != nil {
		SetupWebSocketRoutes(app, ws, jwtSecret)
	}
}

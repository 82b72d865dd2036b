package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/pinkcat015/todolist/interfaces/api/middleware"
	wshandler "github.com/pinkcat015/todolist/interfaces/api/websocket"
)

func SetupWebSocketRoutes(app *fiber.App, ws *wshandler.ActivityHandler, jwtSecret string) {
	app.Use("/ws", middleware.QueryToken(jwtSecret), ws.Upgrade)
	app.Get("/ws/activity", websocket.New(ws.Handle))
}

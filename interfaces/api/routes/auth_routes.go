package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/interfaces/api/handlers"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	auth := api.Group("/auth")
	auth.Post("/register", h.AuthHandler.Register)
	auth.Post("/login", h.AuthHandler.Login)
	auth.Post("/forgot-password", h.AuthHandler.ForgotPassword)
	auth.Post("/reset-password", h.AuthHandler.ResetPassword)
	auth.Get("/me", protected, h.AuthHandler.Me)
}

func SetupUserRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	users := api.Group("/users", protected)
	users.Get("/profile", h.UserHandler.GetProfile)
	users.Put("/profile", h.UserHandler.UpdateProfile)
	users.Put("/change-password", h.UserHandler.ChangePassword)
}

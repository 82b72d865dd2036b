package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/interfaces/api/handlers"
	"github.com/pinkcat015/todolist/interfaces/api/middleware"
	"github.com/pinkcat015/todolist/interfaces/api/routes"
	wshandler "github.com/pinkcat015/todolist/interfaces/api/websocket"
	"github.com/pinkcat015/todolist/pkg/di"
	"github.com/pinkcat015/todolist/pkg/logger"
)

func main() {
	container := di.NewContainer()

	if err := container.Initialize(); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	cfg := container.GetConfig()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      cfg.App.Name,
		// avatar uploads plus form overhead
		BodyLimit: int(cfg.Storage.MaxAvatarSize) + 1024*1024,
	})

	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware(cfg.App.CORSOrigins))

	if cfg.Storage.Type != "s3" {
		app.Static("/uploads", cfg.Storage.BasePath, fiber.Static{MaxAge: 3600})
	}

	h := handlers.NewHandlers(container.GetHandlerServices())
	ws := wshandler.NewActivityHandler(container.ActivityHub)
	routes.SetupRoutes(app, h, ws, cfg.JWT.Secret)

	setupGracefulShutdown(app, container)

	port := cfg.App.Port
	logger.Info("Server starting",
		"port", port,
		"env", cfg.App.Env,
		"app", cfg.App.Name,
	)
	logger.Info("Endpoints available",
		"health", "http://localhost:"+port+"/health",
		"api", "http://localhost:"+port+"/api/v1",
		"websocket", "ws://localhost:"+port+"/ws/activity",
	)

	if err := app.Listen(":" + port); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(app *fiber.App, container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")

		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}

		if err := container.Cleanup(); err != nil {
			logger.Error("Error during cleanup", "error", err)
		}

		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}

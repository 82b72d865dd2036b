package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pinkcat015/todolist/pkg/scheduler"
)

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	appName   string
	db        Pinger
	scheduler scheduler.EventScheduler
	jobID     string
}

func NewHealthHandler(appName string, db Pinger, sched scheduler.EventScheduler, reminderJobID string) *HealthHandler {
	return &HealthHandler{
		appName:   appName,
		db:        db,
		scheduler: sched,
		jobID:     reminderJobID,
	}
}

// Health reports 503 when the database does not answer within two seconds.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := "ok"
	database := "up"
	code := fiber.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			status, database, code = "degraded", "down", fiber.StatusServiceUnavailable
		}
	}

	body := fiber.Map{
		"status":   status,
		"service":  h.appName,
		"database": database,
	}

	if h.scheduler != nil {
		reminder := fiber.Map{"running": h.scheduler.IsRunning()}
		if job, ok := h.scheduler.GetJob(h.jobID); ok {
			reminder["lastRun"] = job.LastRun
			reminder["nextRun"] = job.NextRun
			reminder["busy"] = job.Running
		}
		body["reminder"] = reminder
	}

	return c.Status(code).JSON(body)
}

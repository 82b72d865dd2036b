package handlers

import (
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/scheduler"
)

// Services contains everything the HTTP handlers depend on.
type Services struct {
	UserService     services.UserService
	TodoService     services.TodoService
	CategoryService services.CategoryService
	PriorityService services.PriorityService
	TodoLogService  services.TodoLogService

	AppName       string
	DB            Pinger
	Scheduler     scheduler.EventScheduler
	ReminderJobID string
}

type Handlers struct {
	AuthHandler     *AuthHandler
	UserHandler     *UserHandler
	TodoHandler     *TodoHandler
	CategoryHandler *CategoryHandler
	PriorityHandler *PriorityHandler
	TodoLogHandler  *TodoLogHandler
	HealthHandler   *HealthHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:     NewAuthHandler(services.UserService),
		UserHandler:     NewUserHandler(services.UserService),
		TodoHandler:     NewTodoHandler(services.TodoService),
		CategoryHandler: NewCategoryHandler(services.CategoryService),
		PriorityHandler: NewPriorityHandler(services.PriorityService),
		TodoLogHandler:  NewTodoLogHandler(services.TodoLogService),
		HealthHandler:   NewHealthHandler(services.AppName, services.DB, services.Scheduler, services.ReminderJobID),
	}
}

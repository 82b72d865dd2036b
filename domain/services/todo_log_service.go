package services

import (
	"context"

	"github.com/pinkcat015/todolist/domain/models"
)

type TodoLogService interface {
	ListLogs(ctx context.Context, userID int64) ([]models.TodoLogEntry, error)
	ListTodoLogs(ctx context.Context, userID, todoID int64) ([]models.TodoLogEntry, error)
	DeleteLog(ctx context.Context, userID, logID int64) error
	ClearLogs(ctx context.Context, userID int64) (int64, error)
}

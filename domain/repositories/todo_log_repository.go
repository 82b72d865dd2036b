package repositories

import (
	"context"

	"github.com/pinkcat015/todolist/domain/models"
)

type TodoLogRepository interface {
	Create(ctx context.Context, log *models.TodoLog) error
	ListByUser(ctx context.Context, userID int64) ([]models.TodoLogEntry, error)
	ListByTodo(ctx context.Context, todoID int64) ([]models.TodoLogEntry, error)
	// DeleteForUser removes one log if its todo belongs to userID.
	DeleteForUser(ctx context.Context, logID, userID int64) error
	DeleteAllForUser(ctx context.Context, userID int64) (int64, error)
}

package serviceimpl

import (
	"context"
	"errors"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/repositories"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/logger"
)

type TodoLogServiceImpl struct {
	logRepo  repositories.TodoLogRepository
	todoRepo repositories.TodoRepository
}

func NewTodoLogService(logRepo repositories.TodoLogRepository, todoRepo repositories.TodoRepository) services.TodoLogService {
	return &TodoLogServiceImpl{
		logRepo:  logRepo,
		todoRepo: todoRepo,
	}
}

func (s *TodoLogServiceImpl) ListLogs(ctx context.Context, userID int64) ([]models.TodoLogEntry, error) {
	return s.logRepo.ListByUser(ctx, userID)
}

func (s *TodoLogServiceImpl) ListTodoLogs(ctx context.Context, userID, todoID int64) ([]models.TodoLogEntry, error) {
	if _, err := s.todoRepo.GetByIDForUser(ctx, todoID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrTodoNotFound
		}
		return nil, err
	}
	return s.logRepo.ListByTodo(ctx, todoID)
}

func (s *TodoLogServiceImpl) DeleteLog(ctx context.Context, userID, logID int64) error {
	if err := s.logRepo.DeleteForUser(ctx, logID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.WarnContext(ctx, "Log not found", "log_id", logID, "user_id", userID)
			return services.ErrLogNotFound
		}
		return err
	}
	return nil
}

func (s *TodoLogServiceImpl) ClearLogs(ctx context.Context, userID int64) (int64, error) {
	deleted, err := s.logRepo.DeleteAllForUser(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to clear logs", "user_id", userID, "error", err)
		return 0, err
	}
	logger.InfoContext(ctx, "Logs cleared", "user_id", userID, "deleted", deleted)
	return deleted, nil
}

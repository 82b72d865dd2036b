package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pinkcat015/todolist/domain/dto"
	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/domain/repositories"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/logger"
)

type TodoServiceImpl struct {
	todoRepo        repositories.TodoRepository
	queryRepo       repositories.TodoQueryRepository
	logRepo         repositories.TodoLogRepository
	categoryRepo    repositories.CategoryRepository
	priorityService services.PriorityService
	activity        ports.ActivityPublisherPort // optional
}

func NewTodoService(
	todoRepo repositories.TodoRepository,
	queryRepo repositories.TodoQueryRepository,
	logRepo repositories.TodoLogRepository,
	categoryRepo repositories.CategoryRepository,
	priorityService services.PriorityService,
	activity ports.ActivityPublisherPort,
) services.TodoService {
	return &TodoServiceImpl{
		todoRepo:        todoRepo,
		queryRepo:       queryRepo,
		logRepo:         logRepo,
		categoryRepo:    categoryRepo,
		priorityService: priorityService,
		activity:        activity,
	}
}

func (s *TodoServiceImpl) ListTodos(ctx context.Context, filter repositories.TodoListFilter) ([]models.TodoListItem, int64, error) {
	items, total, err := s.queryRepo.List(ctx, filter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list todos", "user_id", filter.UserID, "error", err)
		return nil, 0, fmt.Errorf("list todos: %w", err)
	}
	return items, total, nil
}

func (s *TodoServiceImpl) CreateTodo(ctx context.Context, userID int64, req *dto.CreateTodoRequest) (*models.Todo, error) {
	todo := &models.Todo{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Deadline:    req.Deadline,
	}

	status := models.TodoStatusPending
	if req.Status != "" {
		status = models.TodoStatus(req.Status)
	}
	todo.SetStatus(status)

	if req.PriorityID != nil {
		if err := s.assignPriority(ctx, todo, *req.PriorityID); err != nil {
			return nil, err
		}
	} else {
		defaultID, err := s.priorityService.DefaultPriorityID(ctx)
		if err != nil {
			logger.WarnContext(ctx, "Default priority lookup failed", "error", err)
		}
		todo.PriorityID = defaultID
	}

	if req.CategoryID != nil {
		if err := s.assignCategory(ctx, todo, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		logger.ErrorContext(ctx, "Failed to create todo", "user_id", userID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Todo created", "todo_id", todo.ID, "user_id", userID)
	s.record(ctx, todo, models.LogActionCreate, ports.ActivityTodoCreated)

	return todo, nil
}

func (s *TodoServiceImpl) GetTodo(ctx context.Context, userID, todoID int64) (*models.Todo, error) {
	return s.getOwned(ctx, userID, todoID)
}

func (s *TodoServiceImpl) UpdateTodo(ctx context.Context, userID, todoID int64, req *dto.UpdateTodoRequest) (*models.Todo, error) {
	todo, err := s.getOwned(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	todo.Title = strings.TrimSpace(req.Title)
	todo.Description = req.Description
	todo.SetStatus(req.ResolvedStatus(todo.Status))

	if req.PriorityID != nil {
		if err := s.assignPriority(ctx, todo, *req.PriorityID); err != nil {
			return nil, err
		}
	} else {
		todo.PriorityID, todo.Priority = nil, nil
	}

	if req.CategoryID != nil {
		if err := s.assignCategory(ctx, todo, *req.CategoryID); err != nil {
			return nil, err
		}
	} else {
		todo.CategoryID, todo.Category = nil, nil
	}

	rearm := todo.ApplyDeadline(req.Deadline)
	if rearm {
		logger.InfoContext(ctx, "Todo deadline changed, reminder re-armed", "todo_id", todo.ID)
	}

	if err := s.save(ctx, todo, rearm); err != nil {
		logger.ErrorContext(ctx, "Failed to update todo", "todo_id", todo.ID, "error", err)
		return nil, err
	}

	s.record(ctx, todo, models.LogActionUpdate, ports.ActivityTodoUpdated)
	return todo, nil
}

func (s *TodoServiceImpl) DeleteTodo(ctx context.Context, userID, todoID int64) error {
	todo, err := s.getOwned(ctx, userID, todoID)
	if err != nil {
		return err
	}

	// the log row is written first and then removed with the todo's history
	s.record(ctx, todo, models.LogActionDelete, ports.ActivityTodoDeleted)

	if err := s.todoRepo.Delete(ctx, todo.ID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return services.ErrTodoNotFound
		}
		logger.ErrorContext(ctx, "Failed to delete todo", "todo_id", todo.ID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Todo deleted", "todo_id", todo.ID, "user_id", userID)
	return nil
}

func (s *TodoServiceImpl) CompleteTodo(ctx context.Context, userID, todoID int64) (*models.Todo, error) {
	todo, err := s.getOwned(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	todo.SetStatus(models.TodoStatusCompleted)
	if err := s.save(ctx, todo, false); err != nil {
		logger.ErrorContext(ctx, "Failed to complete todo", "todo_id", todo.ID, "error", err)
		return nil, err
	}

	s.record(ctx, todo, models.LogActionComplete, ports.ActivityTodoCompleted)
	return todo, nil
}

func (s *TodoServiceImpl) ChangePriority(ctx context.Context, userID, todoID, priorityID int64) (*models.Todo, error) {
	todo, err := s.getOwned(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if err := s.assignPriority(ctx, todo, priorityID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, todo, false); err != nil {
		logger.ErrorContext(ctx, "Failed to change todo priority", "todo_id", todo.ID, "error", err)
		return nil, err
	}

	s.record(ctx, todo, models.LogActionChangePriority(todo.Priority.Name), ports.ActivityTodoPriorityChanged)
	return todo, nil
}

func (s *TodoServiceImpl) ChangeCategory(ctx context.Context, userID, todoID, categoryID int64) (*models.Todo, error) {
	todo, err := s.getOwned(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if err := s.assignCategory(ctx, todo, categoryID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, todo, false); err != nil {
		logger.ErrorContext(ctx, "Failed to change todo category", "todo_id", todo.ID, "error", err)
		return nil, err
	}

	s.record(ctx, todo, models.LogActionChangeCategory(todo.Category.Name), ports.ActivityTodoCategoryChanged)
	return todo, nil
}

// save maps a todo deleted since it was read to ErrTodoNotFound.
func (s *TodoServiceImpl) save(ctx context.Context, todo *models.Todo, rearmReminder bool) error {
	if err := s.todoRepo.Update(ctx, todo, rearmReminder); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return services.ErrTodoNotFound
		}
		return err
	}
	return nil
}

func (s *TodoServiceImpl) getOwned(ctx context.Context, userID, todoID int64) (*models.Todo, error) {
	todo, err := s.todoRepo.GetByIDForUser(ctx, todoID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.WarnContext(ctx, "Todo not found", "todo_id", todoID, "user_id", userID)
			return nil, services.ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

func (s *TodoServiceImpl) assignPriority(ctx context.Context, todo *models.Todo, priorityID int64) error {
	priority, err := s.priorityService.GetPriority(ctx, priorityID)
	if err != nil {
		return err
	}
	todo.PriorityID = &priority.ID
	todo.Priority = priority
	return nil
}

// assignCategory only accepts categories owned by the todo's owner.
func (s *TodoServiceImpl) assignCategory(ctx context.Context, todo *models.Todo, categoryID int64) error {
	category, err := s.categoryRepo.GetByIDForUser(ctx, categoryID, todo.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return services.ErrCategoryNotFound
		}
		return err
	}
	todo.CategoryID = &category.ID
	todo.Category = category
	return nil
}

// record writes the activity log entry and publishes the event. Both are best effort:
// a failure is logged and never fails the mutation that triggered it.
func (s *TodoServiceImpl) record(ctx context.Context, todo *models.Todo, action, eventType string) {
	if err := s.logRepo.Create(ctx, &models.TodoLog{TodoID: todo.ID, Action: action}); err != nil {
		logger.WarnContext(ctx, "Failed to write todo log", "todo_id", todo.ID, "action", action, "error", err)
	}

	if s.activity == nil {
		return
	}
	event := &ports.ActivityEvent{
		Type:      eventType,
		UserID:    todo.UserID,
		TodoID:    todo.ID,
		Title:     todo.Title,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	if err := s.activity.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish todo activity", "todo_id", todo.ID, "type", eventType, "error", err)
	}
}

package services

import (
	"context"

	"github.com/pinkcat015/todolist/domain/dto"
	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/repositories"
)

type TodoService interface {
	ListTodos(ctx context.Context, filter repositories.TodoListFilter) ([]models.TodoListItem, int64, error)
	CreateTodo(ctx context.Context, userID int64, req *dto.CreateTodoRequest) (*models.Todo, error)
	GetTodo(ctx context.Context, userID, todoID int64) (*models.Todo, error)
	UpdateTodo(ctx context.Context, userID, todoID int64, req *dto.UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID int64) error
	CompleteTodo(ctx context.Context, userID, todoID int64) (*models.Todo, error)
	ChangePriority(ctx context.Context, userID, todoID, priorityID int64) (*models.Todo, error)
	ChangeCategory(ctx context.Context, userID, todoID, categoryID int64) (*models.Todo, error)
}

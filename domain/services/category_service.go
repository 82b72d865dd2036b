package services

import (
	"context"

	"github.com/pinkcat015/todolist/domain/models"
)

type CategoryService interface {
	ListCategories(ctx context.Context, userID int64) ([]*models.Category, error)
	CreateCategory(ctx context.Context, userID int64, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID int64, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID int64) error
}

type PriorityService interface {
	ListPriorities(ctx context.Context) ([]*models.Priority, error)
	GetPriority(ctx context.Context, id int64) (*models.Priority, error)
	// DefaultPriorityID resolves the "low" priority, nil when it does not exist.
	DefaultPriorityID(ctx context.Context) (*int64, error)
	CreatePriority(ctx context.Context, name string) (*models.Priority, error)
	UpdatePriority(ctx context.Context, id int64, name string) (*models.Priority, error)
	DeletePriority(ctx context.Context, id int64) error
}

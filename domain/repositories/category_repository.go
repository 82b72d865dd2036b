package repositories

import (
	"context"

	"github.com/pinkcat015/todolist/domain/models"
)

type CategoryRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.Category, error)
	GetByIDForUser(ctx context.Context, id, userID int64) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id, userID int64) error
}

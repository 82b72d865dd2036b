package repositories

import (
	"context"

	"github.com/pinkcat015/todolist/domain/models"
)

type PriorityRepository interface {
	List(ctx context.Context) ([]*models.Priority, error)
	GetByID(ctx context.Context, id int64) (*models.Priority, error)
	GetByName(ctx context.Context, name string) (*models.Priority, error)
	Create(ctx context.Context, priority *models.Priority) error
	Update(ctx context.Context, priority *models.Priority) error
	Delete(ctx context.Context, id int64) error
}

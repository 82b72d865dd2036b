package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/repositories"
)

type PriorityRepositoryImpl struct {
	db *gorm.DB
}

func NewPriorityRepository(db *gorm.DB) repositories.PriorityRepository {
	return &PriorityRepositoryImpl{db: db}
}

func (r *PriorityRepositoryImpl) List(ctx context.Context) ([]*models.Priority, error) {
	var priorities []*models.Priority
	err := r.db.WithContext(ctx).Order("id ASC").Find(&priorities).Error
	return priorities, err
}

func (r *PriorityRepositoryImpl) GetByID(ctx context.Context, id int64) (*models.Priority, error) {
	var priority models.Priority
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&priority).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &priority, nil
}

func (r *PriorityRepositoryImpl) GetByName(ctx context.Context, name string) (*models.Priority, error) {
	var priority models.Priority
	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&priority).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &priority, nil
}

func (r *PriorityRepositoryImpl) Create(ctx context.Context, priority *models.Priority) error {
	return r.db.WithContext(ctx).Create(priority).Error
}

func (r *PriorityRepositoryImpl) Update(ctx context.Context, priority *models.Priority) error {
	return r.db.WithContext(ctx).Save(priority).Error
}

func (r *PriorityRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Priority{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

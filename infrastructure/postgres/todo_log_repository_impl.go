package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/repositories"
)

type TodoLogRepositoryImpl struct {
	db *gorm.DB
}

func NewTodoLogRepository(db *gorm.DB) repositories.TodoLogRepository {
	return &TodoLogRepositoryImpl{db: db}
}

func (r *TodoLogRepositoryImpl) Create(ctx context.Context, log *models.TodoLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *TodoLogRepositoryImpl) ListByUser(ctx context.Context, userID int64) ([]models.TodoLogEntry, error) {
	entries := []models.TodoLogEntry{}
	err := r.entries(ctx).
		Where("t.user_id = ?", userID).
		Order("l.log_time DESC, l.id DESC").
		Scan(&entries).Error
	return entries, err
}

func (r *TodoLogRepositoryImpl) ListByTodo(ctx context.Context, todoID int64) ([]models.TodoLogEntry, error) {
	entries := []models.TodoLogEntry{}
	err := r.entries(ctx).
		Where("l.todo_id = ?", todoID).
		Order("l.log_time DESC, l.id DESC").
		Scan(&entries).Error
	return entries, err
}

func (r *TodoLogRepositoryImpl) DeleteForUser(ctx context.Context, logID, userID int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND todo_id IN (?)", logID, r.ownedTodoIDs(ctx, userID)).
		Delete(&models.TodoLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TodoLogRepositoryImpl) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("todo_id IN (?)", r.ownedTodoIDs(ctx, userID)).
		Delete(&models.TodoLog{})
	return result.RowsAffected, result.Error
}

func (r *TodoLogRepositoryImpl) entries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("todo_logs AS l").
		Select("l.id, l.todo_id, l.action, l.log_time, t.title AS todo_title").
		Joins("JOIN todos t ON t.id = l.todo_id")
}

func (r *TodoLogRepositoryImpl) ownedTodoIDs(ctx context.Context, userID int64) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Todo{}).Select("id").Where("user_id = ?", userID)
}

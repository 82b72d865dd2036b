package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/repositories"
)

type TodoRepositoryImpl struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) repositories.TodoRepository {
	return &TodoRepositoryImpl{db: db}
}

func (r *TodoRepositoryImpl) Create(ctx context.Context, todo *models.Todo) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(todo).Error
}

func (r *TodoRepositoryImpl) GetByIDForUser(ctx context.Context, id, userID int64) (*models.Todo, error) {
	var todo models.Todo
	err := r.db.WithContext(ctx).
		Preload("Priority").
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&todo).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &todo, nil
}

var todoEditableColumns = []string{
	"title",
	"description",
	"status",
	"completed",
	"priority_id",
	"category_id",
	"deadline",
	"updated_at",
}

func (r *TodoRepositoryImpl) Update(ctx context.Context, todo *models.Todo, rearmReminder bool) error {
	columns := todoEditableColumns
	if rearmReminder {
		columns = append(append([]string{}, todoEditableColumns...), "is_notified")
	}

	result := r.db.WithContext(ctx).
		Model(todo).
		Select(columns).
		Where("user_id = ?", todo.UserID).
		Updates(todo)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete removes the todo and its log history in one transaction.
func (r *TodoRepositoryImpl) Delete(ctx context.Context, id, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("todo_id IN (?)",
			tx.Model(&models.Todo{}).Select("id").Where("id = ? AND user_id = ?", id, userID),
		).Delete(&models.TodoLog{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Todo{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repositories.ErrNotFound
		}
		return nil
	})
}

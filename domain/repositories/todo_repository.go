package repositories

import (
	"context"
	"math"

	"github.com/pinkcat015/todolist/domain/models"
)

// TodoRepository handles single-row writes. Every lookup is scoped to the owner.
type TodoRepository interface {
	Create(ctx context.Context, todo *models.Todo) error
	GetByIDForUser(ctx context.Context, id, userID int64) (*models.Todo, error)
	// Update writes the editable columns. is_notified is written only when rearmReminder is set,
	// so a concurrent reminder mark is never overwritten by a stale read.
	Update(ctx context.Context, todo *models.Todo, rearmReminder bool) error
	Delete(ctx context.Context, id, userID int64) error
}

// TodoListFilter is the normalized input of the list query. Nil fields are not filtered on.
type TodoListFilter struct {
	UserID     int64
	Page       int
	Limit      int
	Search     string
	Status     *models.TodoStatus
	PriorityID *int64
	CategoryID *int64
	Completed  *bool
}

// Offset is (Page-1)*Limit, saturated at the largest value PostgreSQL accepts.
func (f TodoListFilter) Offset() uint64 {
	if f.Page < 1 || f.Limit < 1 {
		return 0
	}
	skipped, limit := uint64(f.Page-1), uint64(f.Limit)
	if skipped > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return skipped * limit
}

// TodoQueryRepository serves the paginated, filtered todo list.
type TodoQueryRepository interface {
	List(ctx context.Context, filter TodoListFilter) ([]models.TodoListItem, int64, error)
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/repositories"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var todoListColumns = []string{
	"t.id",
	"t.user_id",
	"t.title",
	"t.description",
	"t.status",
	"t.completed",
	"t.priority_id",
	"t.category_id",
	"t.deadline",
	"t.is_notified",
	"t.created_at",
	"t.updated_at",
	"p.name AS priority_name",
	"c.name AS category_name",
}

// TodoQueryRepositoryImpl builds the filtered todo list. Every value is bound as a parameter.
type TodoQueryRepositoryImpl struct {
	db *sqlx.DB
}

func NewTodoQueryRepository(db *sqlx.DB) repositories.TodoQueryRepository {
	return &TodoQueryRepositoryImpl{db: db}
}

func (r *TodoQueryRepositoryImpl) List(ctx context.Context, filter repositories.TodoListFilter) ([]models.TodoListItem, int64, error) {
	countSQL, countArgs, err := BuildTodoCountQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count todos: %w", err)
	}

	items := []models.TodoListItem{}
	if total == 0 || filter.Offset() >= uint64(total) {
		return items, total, nil
	}

	listSQL, listArgs, err := BuildTodoListQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	if err := r.db.SelectContext(ctx, &items, listSQL, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("select todos: %w", err)
	}

	return items, total, nil
}

// BuildTodoCountQuery counts the rows matching the filter, ignoring pagination.
func BuildTodoCountQuery(filter repositories.TodoListFilter) (string, []any, error) {
	return applyTodoFilter(psql.Select("COUNT(*)").From("todos t"), filter).ToSql()
}

// BuildTodoListQuery selects one page, newest first.
func BuildTodoListQuery(filter repositories.TodoListFilter) (string, []any, error) {
	q := psql.Select(todoListColumns...).
		From("todos t").
		LeftJoin("priorities p ON p.id = t.priority_id").
		LeftJoin("categories c ON c.id = t.category_id")

	return applyTodoFilter(q, filter).
		OrderBy("t.created_at DESC", "t.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(filter.Offset()).
		ToSql()
}

func applyTodoFilter(q squirrel.SelectBuilder, filter repositories.TodoListFilter) squirrel.SelectBuilder {
	q = q.Where(squirrel.Eq{"t.user_id": filter.UserID})

	if filter.Search != "" {
		q = q.Where(squirrel.Expr("t.title ILIKE ?", "%"+escapeLike(filter.Search)+"%"))
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"t.status": string(*filter.Status)})
	}
	if filter.PriorityID != nil {
		q = q.Where(squirrel.Eq{"t.priority_id": *filter.PriorityID})
	}
	if filter.CategoryID != nil {
		q = q.Where(squirrel.Eq{"t.category_id": *filter.CategoryID})
	}
	if filter.Completed != nil {
		q = q.Where(squirrel.Eq{"t.completed": *filter.Completed})
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the search text match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

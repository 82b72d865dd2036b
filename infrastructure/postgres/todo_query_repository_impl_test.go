package postgres

import (
	"context"
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/repositories"
)

var listColumns = []string{
	"id", "user_id", "title", "description", "status", "completed", "priority_id", "category_id",
	"deadline", "is_notified", "created_at", "updated_at", "priority_name", "category_name",
}

func newMockSQLX(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func addTodoRows(rows *sqlmock.Rows, from, to int, completed bool) *sqlmock.Rows {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	status := "pending"
	if completed {
		status = "completed"
	}
	for i := from; i <= to; i++ {
		rows.AddRow(int64(i), int64(7), "todo", nil, status, completed, int64(1), nil, nil, false, now, now, "Low", nil)
	}
	return rows
}

func TestBuildTodoCountQuery(t *testing.T) {
	status := models.TodoStatusInProgress
	priority := int64(2)
	category := int64(5)
	completed := false

	query, args, err := BuildTodoCountQuery(repositories.TodoListFilter{
		UserID:     7,
		Page:       2,
		Limit:      10,
		Search:     "50%_off",
		Status:     &status,
		PriorityID: &priority,
		CategoryID: &category,
		Completed:  &completed,
	})

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT COUNT(*) FROM todos t WHERE t.user_id = $1 AND t.title ILIKE $2 AND t.status = $3 "+
			"AND t.priority_id = $4 AND t.category_id = $5 AND t.completed = $6",
		query)
	assert.Equal(t, []any{int64(7), `%50\%\_off%`, "in_progress", int64(2), int64(5), false}, args)
}

func TestBuildTodoListQuery(t *testing.T) {
	query, args, err := BuildTodoListQuery(repositories.TodoListFilter{UserID: 7, Page: 3, Limit: 10})

	require.NoError(t, err)
	assert.Contains(t, query, "FROM todos t LEFT JOIN priorities p ON p.id = t.priority_id LEFT JOIN categories c ON c.id = t.category_id")
	assert.Contains(t, query, "p.name AS priority_name, c.name AS category_name")
	assert.Contains(t, query, "WHERE t.user_id = $1 ORDER BY t.created_at DESC, t.id DESC LIMIT 10 OFFSET 20")
	assert.Equal(t, []any{int64(7)}, args)
}

func TestBuildTodoListQuery_HugePageKeepsOffsetInRange(t *testing.T) {
	query, _, err := BuildTodoListQuery(repositories.TodoListFilter{UserID: 7, Page: math.MaxInt, Limit: 10})

	require.NoError(t, err)
	assert.Contains(t, query, "LIMIT 10 OFFSET 9223372036854775807")
}

func TestBuildTodoListQuery_SearchIsParameterized(t *testing.T) {
	query, args, err := BuildTodoListQuery(repositories.TodoListFilter{UserID: 7, Page: 1, Limit: 10, Search: "'; DROP TABLE todos; --"})

	require.NoError(t, err)
	assert.NotContains(t, query, "DROP TABLE")
	assert.Equal(t, "%'; DROP TABLE todos; --%", args[1])
}

func TestTodoQueryRepository_List(t *testing.T) {
	ctx := context.Background()
	countSQL := regexp.QuoteMeta("SELECT COUNT(*) FROM todos t WHERE t.user_id = $1")

	t.Run("completed filter returns one full page", func(t *testing.T) {
		db, mock := newMockSQLX(t)
		repo := NewTodoQueryRepository(db)
		completed := true

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM todos t WHERE t.user_id = $1 AND t.completed = $2")).
			WithArgs(int64(7), true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
		mock.ExpectQuery(regexp.QuoteMeta("AND t.completed = $2 ORDER BY t.created_at DESC, t.id DESC LIMIT 10 OFFSET 0")).
			WithArgs(int64(7), true).
			WillReturnRows(addTodoRows(sqlmock.NewRows(listColumns), 1, 10, true))

		items, total, err := repo.List(ctx, repositories.TodoListFilter{UserID: 7, Page: 1, Limit: 10, Completed: &completed})

		require.NoError(t, err)
		assert.Equal(t, int64(10), total)
		assert.Len(t, items, 10)
		for _, item := range items {
			assert.True(t, item.Completed)
			assert.Equal(t, "Low", *item.PriorityName)
			assert.Nil(t, item.CategoryName)
		}
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no match skips the page query", func(t *testing.T) {
		db, mock := newMockSQLX(t)
		repo := NewTodoQueryRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM todos t WHERE t.user_id = $1 AND t.title ILIKE $2")).
			WithArgs(int64(7), "%xyz%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		items, total, err := repo.List(ctx, repositories.TodoListFilter{UserID: 7, Page: 1, Limit: 10, Search: "xyz"})

		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("last partial page", func(t *testing.T) {
		db, mock := newMockSQLX(t)
		repo := NewTodoQueryRepository(db)

		mock.ExpectQuery(countSQL).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
		mock.ExpectQuery(regexp.QuoteMeta("LIMIT 10 OFFSET 20")).
			WithArgs(int64(7)).
			WillReturnRows(addTodoRows(sqlmock.NewRows(listColumns), 21, 25, false))

		items, total, err := repo.List(ctx, repositories.TodoListFilter{UserID: 7, Page: 3, Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		require.Len(t, items, 5)
		assert.Equal(t, int64(21), items[0].ID)
		assert.Equal(t, int64(25), items[4].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page past the total skips the select", func(t *testing.T) {
		db, mock := newMockSQLX(t)
		repo := NewTodoQueryRepository(db)

		mock.ExpectQuery(countSQL).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

		items, total, err := repo.List(ctx, repositories.TodoListFilter{UserID: 7, Page: math.MaxInt, Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error is returned whole", func(t *testing.T) {
		db, mock := newMockSQLX(t)
		repo := NewTodoQueryRepository(db)

		mock.ExpectQuery(countSQL).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery(regexp.QuoteMeta("LIMIT 10 OFFSET 0")).
			WithArgs(int64(7)).
			WillReturnError(errors.New("canceling statement due to statement timeout"))

		items, total, err := repo.List(ctx, repositories.TodoListFilter{UserID: 7, Page: 1, Limit: 10})

		assert.ErrorContains(t, err, "statement timeout")
		assert.Nil(t, items)
		assert.Zero(t, total)
	})
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\\b\%c\_d`, escapeLike(`a\b%c_d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

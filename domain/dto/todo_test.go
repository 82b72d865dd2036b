package dto

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkcat015/todolist/domain/models"
)

func TestTodoListQuery_ToFilter_Defaults(t *testing.T) {
	cases := []struct {
		name           string
		query          TodoListQuery
		page, limit    int
		expectedOffset uint64
	}{
		{"missing", TodoListQuery{}, 1, 10, 0},
		{"non numeric", TodoListQuery{Page: "abc", Limit: "ten"}, 1, 10, 0},
		{"zero and negative", TodoListQuery{Page: "0", Limit: "-5"}, 1, 10, 0},
		{"third page", TodoListQuery{Page: "3", Limit: "10"}, 3, 10, 20},
		{"limit capped", TodoListQuery{Page: "2", Limit: "1000"}, 2, MaxLimit, MaxLimit},
		{"offset saturates", TodoListQuery{Page: strconv.Itoa(math.MaxInt), Limit: "10"}, math.MaxInt, 10, math.MaxInt64},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := tc.query.ToFilter(9)
			require.NoError(t, err)
			assert.Equal(t, int64(9), f.UserID)
			assert.Equal(t, tc.page, f.Page)
			assert.Equal(t, tc.limit, f.Limit)
			assert.Equal(t, tc.expectedOffset, f.Offset())
			assert.Nil(t, f.Status)
			assert.Nil(t, f.Completed)
		})
	}
}

func TestTodoListQuery_ToFilter_Filters(t *testing.T) {
	f, err := TodoListQuery{
		Q:         "  report ",
		Status:    "in_progress",
		Priority:  "2",
		Category:  "5",
		Completed: "false",
	}.ToFilter(1)
	require.NoError(t, err)

	assert.Equal(t, "report", f.Search)
	require.NotNil(t, f.Status)
	assert.Equal(t, models.TodoStatusInProgress, *f.Status)
	assert.Equal(t, int64(2), *f.PriorityID)
	assert.Equal(t, int64(5), *f.CategoryID)
	assert.False(t, *f.Completed)
}

func TestTodoListQuery_ToFilter_Malformed(t *testing.T) {
	for _, q := range []TodoListQuery{
		{Status: "done"},
		{Priority: "high"},
		{Category: "-1"},
		{Completed: "yes"},
	} {
		_, err := q.ToFilter(1)
		assert.True(t, IsFieldError(err), "%+v", q)
	}
}

func TestUpdateTodoRequest_ResolvedStatus(t *testing.T) {
	yes, no := true, false

	assert.Equal(t, models.TodoStatusInProgress,
		(&UpdateTodoRequest{Status: "in_progress", Completed: &yes}).ResolvedStatus(models.TodoStatusPending))
	assert.Equal(t, models.TodoStatusCompleted,
		(&UpdateTodoRequest{Completed: &yes}).ResolvedStatus(models.TodoStatusPending))
	assert.Equal(t, models.TodoStatusPending,
		(&UpdateTodoRequest{Completed: &no}).ResolvedStatus(models.TodoStatusCompleted))
	assert.Equal(t, models.TodoStatusInProgress,
		(&UpdateTodoRequest{Completed: &no}).ResolvedStatus(models.TodoStatusInProgress))
	assert.Equal(t, models.TodoStatusInProgress,
		(&UpdateTodoRequest{}).ResolvedStatus(models.TodoStatusInProgress))
}

package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkcat015/todolist/domain/models"
)

func TestLoadFixtures(t *testing.T) {
	fx, err := LoadFixtures()
	require.NoError(t, err)

	assert.Equal(t, []string{"Low", "Medium", "High"}, fx.Priorities)
	assert.Len(t, fx.Categories, 8)
	assert.Len(t, fx.Users, 3)
	assert.Equal(t, "pinkcat", fx.Users[2].Username)
	assert.Equal(t, "Write unit tests", fx.Todos[0][0])
}

func TestParseFixtures_RequiresPrioritiesAndTodos(t *testing.T) {
	_, err := ParseFixtures([]byte("categories: [Work]\n"))
	assert.Error(t, err)

	_, err = ParseFixtures([]byte("priorities: [\n"))
	assert.Error(t, err)
}

func TestBuildTodos(t *testing.T) {
	fx, err := LoadFixtures()
	require.NoError(t, err)

	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	s := NewSeeder(nil, fx).WithRand(1)
	s.now = func() time.Time { return now }

	todos := s.BuildTodos(7, []int64{1, 2, 3}, []int64{10, 11}, 50)
	require.Len(t, todos, 50)

	for _, todo := range todos {
		assert.Equal(t, int64(7), todo.UserID)
		assert.True(t, todo.Status.Valid())
		assert.Equal(t, todo.Status == models.TodoStatusCompleted, todo.Completed)
		assert.Contains(t, []int64{1, 2, 3}, *todo.PriorityID)
		assert.Contains(t, []int64{10, 11}, *todo.CategoryID)
		require.NotNil(t, todo.Deadline)
		assert.False(t, todo.Deadline.Before(now))
		assert.True(t, todo.Deadline.Before(now.Add(30*24*time.Hour)))
		assert.False(t, todo.IsNotified)
	}
}

func TestBuildTodos_NoLookups(t *testing.T) {
	fx, err := LoadFixtures()
	require.NoError(t, err)

	todos := NewSeeder(nil, fx).WithRand(1).BuildTodos(1, nil, nil, 3)
	for _, todo := range todos {
		assert.Nil(t, todo.PriorityID)
		assert.Nil(t, todo.CategoryID)
	}
}

func TestBuildLogs(t *testing.T) {
	fx, err := LoadFixtures()
	require.NoError(t, err)
	s := NewSeeder(nil, fx).WithRand(2)

	todos := []models.Todo{{ID: 4}, {ID: 5}}
	logs := s.BuildLogs(todos, 150)
	require.Len(t, logs, 150)
	for _, l := range logs {
		assert.Contains(t, []int64{4, 5}, l.TodoID)
		assert.Contains(t, fx.LogActions, l.Action)
	}

	assert.Empty(t, s.BuildLogs(nil, 10))
}

func TestBuildTodos_Reproducible(t *testing.T) {
	fx, err := LoadFixtures()
	require.NoError(t, err)
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	a := NewSeeder(nil, fx).WithRand(42)
	a.now = func() time.Time { return now }
	b := NewSeeder(nil, fx).WithRand(42)
	b.now = func() time.Time { return now }

	assert.Equal(t, a.BuildTodos(1, []int64{1}, []int64{2}, 5), b.BuildTodos(1, []int64{1}, []int64{2}, 5))
}

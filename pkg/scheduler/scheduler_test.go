package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddJob_RejectsDuplicateID(t *testing.T) {
	s := NewEventScheduler()

	require.NoError(t, s.AddIntervalJob("deadline_reminder", time.Hour, func() {}))
	err := s.AddIntervalJob("deadline_reminder", time.Hour, func() {})
	assert.Error(t, err)
}

func TestAddIntervalJob_RejectsNonPositive(t *testing.T) {
	s := NewEventScheduler()
	assert.Error(t, s.AddIntervalJob("x", 0, func() {}))
}

func TestGetJob_ReturnsSnapshot(t *testing.T) {
	s := NewEventScheduler()
	require.NoError(t, s.AddIntervalJob("deadline_reminder", time.Minute, func() {}))

	info, ok := s.GetJob("deadline_reminder")
	require.True(t, ok)
	assert.Equal(t, "@every 1m0s", info.CronExpr)
	assert.True(t, info.IsActive)
	assert.Nil(t, info.LastRun)
	require.NotNil(t, info.NextRun)

	_, ok = s.GetJob("missing")
	assert.False(t, ok)

	assert.Len(t, s.ListJobs(), 1)
}

func TestRemoveJob(t *testing.T) {
	s := NewEventScheduler()
	require.NoError(t, s.AddIntervalJob("a", time.Hour, func() {}))

	require.NoError(t, s.RemoveJob("a"))
	assert.Error(t, s.RemoveJob("a"))
	assert.Empty(t, s.ListJobs())
}

func TestStartStop(t *testing.T) {
	s := NewEventScheduler()
	assert.False(t, s.IsRunning())
	s.Start()
	assert.True(t, s.IsRunning())
	s.Stop()
	assert.False(t, s.IsRunning())
}

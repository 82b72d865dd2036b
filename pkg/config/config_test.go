package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("REMINDER_INTERVAL", "")
	t.Setenv("REMINDER_SEND_TIMEOUT", "")
	t.Setenv("DB_NAME", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "todolist", cfg.Database.DBName)
	assert.Equal(t, time.Minute, cfg.Reminder.Interval)
	assert.Equal(t, 10*time.Second, cfg.Reminder.SendTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, int64(2*1024*1024), cfg.Storage.MaxAvatarSize)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("REMINDER_INTERVAL", "30s")
	t.Setenv("REMINDER_SEND_TIMEOUT", "5")
	t.Setenv("TELEGRAM_POLL_UPDATES", "true")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("FRONTEND_URL", "https://todo.example/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Reminder.Interval)
	assert.Equal(t, 5*time.Second, cfg.Reminder.SendTimeout)
	assert.True(t, cfg.Telegram.PollUpdates)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSOrigins)
	assert.Equal(t, "https://todo.example", cfg.App.FrontendURL)
}

func TestGetEnvDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_DURATION", "soon")
	assert.Equal(t, time.Hour, getEnvDuration("SOME_DURATION", time.Hour))
}

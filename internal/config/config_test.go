package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhafrantharif/ram-assistant/internal/i18n"
)

var allKeys = []string{
	"TELEGRAM_BOT_TOKEN", "DATABASE_URL", "ANTHROPIC_API_KEY", "TIMEZONE", "DEFAULT_LANGUAGE",
	"MIGRATIONS_URL", "LOG_LEVEL", "RECURRING_WEEKS", "FOCUS_MINUTES", "BREAK_MINUTES",
	"SCHEDULER_INTERVAL_SEC", "TIMER_INTERVAL_SEC", "SESSION_CACHE_SIZE", "RATE_LIMIT_PER_MINUTE",
}

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"TELEGRAM_BOT_TOKEN": "token",
		"DATABASE_URL":       "postgres://localhost/ram",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, i18n.English, cfg.DefaultLanguage)
	assert.Equal(t, "file://migrations", cfg.MigrationsURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 4, cfg.RecurringWeeks)
	assert.Equal(t, 25, cfg.FocusMinutes)
	assert.Equal(t, 5, cfg.BreakMinutes)
	assert.Equal(t, 30, cfg.SchedulerIntervalSec)
	assert.Equal(t, 5, cfg.TimerIntervalSec)
	assert.Equal(t, 1024, cfg.SessionCacheSize)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Empty(t, cfg.AnthropicAPIKey)
}

func TestLoadOverrides(t *testing.T) {
	setEnv(t, map[string]string{
		"TELEGRAM_BOT_TOKEN": "token",
		"DATABASE_URL":       "postgres://localhost/ram",
		"TIMEZONE":           "Europe/Madrid",
		"DEFAULT_LANGUAGE":   "es",
		"LOG_LEVEL":          "debug",
		"RECURRING_WEEKS":    "8",
		"FOCUS_MINUTES":      "50",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Madrid", cfg.Timezone)
	assert.Equal(t, i18n.Spanish, cfg.DefaultLanguage)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 8, cfg.RecurringWeeks)
	assert.Equal(t, 50, cfg.FocusMinutes)
}

func TestLoadErrors(t *testing.T) {
	base := map[string]string{"TELEGRAM_BOT_TOKEN": "token", "DATABASE_URL": "postgres://localhost/ram"}
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{"missing token", map[string]string{"DATABASE_URL": "x"}, "TELEGRAM_BOT_TOKEN"},
		{"missing database", map[string]string{"TELEGRAM_BOT_TOKEN": "x"}, "DATABASE_URL"},
		{"bad integer", map[string]string{"FOCUS_MINUTES": "lots"}, "FOCUS_MINUTES"},
		{"bad language", map[string]string{"DEFAULT_LANGUAGE": "fr"}, "DEFAULT_LANGUAGE"},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"zero weeks", map[string]string{"RECURRING_WEEKS": "0"}, "RECURRING_WEEKS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{}
			if tt.name != "missing token" && tt.name != "missing database" {
				for k, v := range base {
					env[k] = v
				}
			}
			for k, v := range tt.env {
				env[k] = v
			}
			setEnv(t, env)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

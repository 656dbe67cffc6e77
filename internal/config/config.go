package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/zhafrantharif/ram-assistant/internal/i18n"
)

type Config struct {
	TelegramBotToken     string
	DatabaseURL          string
	AnthropicAPIKey      string
	Timezone             string
	DefaultLanguage      i18n.Language
	MigrationsURL        string
	LogLevel             slog.Level
	RecurringWeeks       int
	FocusMinutes         int
	BreakMinutes         int
	SchedulerIntervalSec int
	TimerIntervalSec     int
	SessionCacheSize     int
	RateLimitPerMinute   int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		Timezone:         os.Getenv("TIMEZONE"),
		MigrationsURL:    os.Getenv("MIGRATIONS_URL"),
	}

	if cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.MigrationsURL == "" {
		cfg.MigrationsURL = "file://migrations"
	}

	cfg.DefaultLanguage = i18n.English
	if v := os.Getenv("DEFAULT_LANGUAGE"); v != "" {
		lang, ok := i18n.Parse(v)
		if !ok {
			return nil, fmt.Errorf("invalid DEFAULT_LANGUAGE: %q", v)
		}
		cfg.DefaultLanguage = lang
	}

	cfg.LogLevel = slog.LevelInfo
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	ints := []struct {
		key string
		def int
		dst *int
	}{
		{"RECURRING_WEEKS", 4, &cfg.RecurringWeeks},
		{"FOCUS_MINUTES", 25, &cfg.FocusMinutes},
		{"BREAK_MINUTES", 5, &cfg.BreakMinutes},
		{"SCHEDULER_INTERVAL_SEC", 30, &cfg.SchedulerIntervalSec},
		{"TIMER_INTERVAL_SEC", 5, &cfg.TimerIntervalSec},
		{"SESSION_CACHE_SIZE", 1024, &cfg.SessionCacheSize},
		{"RATE_LIMIT_PER_MINUTE", 30, &cfg.RateLimitPerMinute},
	}
	for _, f := range ints {
		*f.dst = f.def
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = n
	}

	if cfg.RecurringWeeks < 1 {
		return nil, fmt.Errorf("RECURRING_WEEKS must be positive, got %d", cfg.RecurringWeeks)
	}
	if cfg.FocusMinutes < 1 || cfg.BreakMinutes < 1 {
		return nil, fmt.Errorf("FOCUS_MINUTES and BREAK_MINUTES must be positive")
	}
	if cfg.SchedulerIntervalSec < 1 || cfg.TimerIntervalSec < 1 {
		return nil, fmt.Errorf("SCHEDULER_INTERVAL_SEC and TIMER_INTERVAL_SEC must be positive")
	}

	return cfg, nil
}

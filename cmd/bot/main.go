package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/zhafrantharif/ram-assistant/internal/bot"
	"github.com/zhafrantharif/ram-assistant/internal/config"
	"github.com/zhafrantharif/ram-assistant/internal/db"
	"github.com/zhafrantharif/ram-assistant/internal/module/event"
	"github.com/zhafrantharif/ram-assistant/internal/module/focus"
	"github.com/zhafrantharif/ram-assistant/internal/module/profile"
	"github.com/zhafrantharif/ram-assistant/internal/nlp"
	"github.com/zhafrantharif/ram-assistant/internal/reminder"
	"github.com/zhafrantharif/ram-assistant/internal/session"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	// Load timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("failed to load timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	// Connect to database
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := db.RunMigrations(database, cfg.MigrationsURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize Telegram bot
	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		slog.Error("failed to create telegram bot", "error", err)
		os.Exit(1)
	}

	sessions, err := session.NewStore(cfg.SessionCacheSize, cfg.RateLimitPerMinute, cfg.DefaultLanguage)
	if err != nil {
		slog.Error("failed to create session store", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	eventRepo := event.NewRepository(database)
	focusRepo := focus.NewRepository(database)
	profileRepo := profile.NewRepository(database)

	// Initialize services
	var fallback nlp.Completer
	if cfg.AnthropicAPIKey != "" {
		fallback = nlp.NewAnthropicCompleter(cfg.AnthropicAPIKey)
	} else {
		slog.Info("ANTHROPIC_API_KEY not set, language model fallback disabled")
	}
	nlpSvc := nlp.NewService(nlp.NewParser(), fallback, loc)
	eventSvc := event.NewService(eventRepo, cfg.RecurringWeeks, loc)
	timer := focus.NewTimer(
		time.Duration(cfg.FocusMinutes)*time.Minute,
		time.Duration(cfg.BreakMinutes)*time.Minute,
	)

	// Register bot handlers
	handler := bot.NewHandler(nlpSvc, eventSvc, profileRepo, focusRepo, timer, sessions, loc)
	handler.Register(b)

	// Start follow-up scheduler
	schedulerInterval := time.Duration(cfg.SchedulerIntervalSec) * time.Second
	followUps := reminder.NewScheduler(eventRepo, b, sessions.Language, schedulerInterval, loc)
	go followUps.Start()

	// Start focus timer scheduler
	timerInterval := time.Duration(cfg.TimerIntervalSec) * time.Second
	focusScheduler := focus.NewScheduler(timer, focusRepo, b, sessions.Language, timerInterval, loc)
	go focusScheduler.Start()

	// Start daily agenda scheduler (07:30 local)
	dailyScheduler := bot.NewDailyScheduler(b, eventRepo, eventSvc, sessions.Language, loc)
	go dailyScheduler.Start()

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("received shutdown signal", "signal", sig)

		followUps.Stop()
		focusScheduler.Stop()
		dailyScheduler.Stop()
		b.Stop()
		database.Close()
		slog.Info("shutdown complete")
		os.Exit(0)
	}()

	slog.Info("bot started",
		"timezone", cfg.Timezone,
		"language", cfg.DefaultLanguage,
		"scheduler_interval", schedulerInterval,
		"timer_interval", timerInterval,
	)
	b.Start()
}

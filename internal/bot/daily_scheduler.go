package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/zhafrantharif/ram-assistant/internal/i18n"
	"github.com/zhafrantharif/ram-assistant/internal/module/event"
)

type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type scheduledTask struct {
	hour   int
	minute int
	name   string
	fn     func()
}

type UserLister interface {
	ListActiveUserIDs(ctx context.Context) ([]int64, error)
}

type AgendaSource interface {
	Agenda(ctx context.Context, userID int64, day time.Time) ([]event.Event, error)
}

// DailyScheduler sends every user with events a morning agenda.
type DailyScheduler struct {
	sender   Sender
	users    UserLister
	agenda   AgendaSource
	language func(userID int64) i18n.Language
	timezone *time.Location
	stopCh   chan struct{}
	once     sync.Once
}

func NewDailyScheduler(sender Sender, users UserLister, agenda AgendaSource, language func(int64) i18n.Language, timezone *time.Location) *DailyScheduler {
	return &DailyScheduler{
		sender:   sender,
		users:    users,
		agenda:   agenda,
		language: language,
		timezone: timezone,
		stopCh:   make(chan struct{}),
	}
}

func (s *DailyScheduler) Start() {
	slog.Info("daily scheduler started", "agenda", "07:30")

	tasks := []scheduledTask{
		{hour: 7, minute: 30, name: "daily_agenda", fn: func() { s.sendAgenda(time.Now().In(s.timezone)) }},
	}

	for {
		now := time.Now().In(s.timezone)
		nextTask, waitDuration := s.findNextTask(now, tasks)

		slog.Info("daily scheduler next run",
			"task", nextTask.name,
			"at", now.Add(waitDuration).Format("2006-01-02 15:04"),
			"in", waitDuration.Round(time.Second),
		)

		select {
		case <-time.After(waitDuration):
			nextTask.fn()
		case <-s.stopCh:
			slog.Info("daily scheduler stopped")
			return
		}
	}
}

func (s *DailyScheduler) findNextTask(now time.Time, tasks []scheduledTask) (scheduledTask, time.Duration) {
	var best scheduledTask
	var bestDuration time.Duration
	first := true

	for _, t := range tasks {
		target := time.Date(now.Year(), now.Month(), now.Day(), t.hour, t.minute, 0, 0, s.timezone)
		if !target.After(now) {
			target = target.AddDate(0, 0, 1)
		}
		d := target.Sub(now)
		if first || d < bestDuration {
			best = t
			bestDuration = d
			first = false
		}
	}

	return best, bestDuration
}

func (s *DailyScheduler) Stop() {
	s.once.Do(func() { close(s.stopCh) })
}

// sendAgenda messages each user who has something on today. Users with an
// empty day are skipped.
func (s *DailyScheduler) sendAgenda(now time.Time) {
	ctx := context.Background()

	userIDs, err := s.users.ListActiveUserIDs(ctx)
	if err != nil {
		slog.Error("daily agenda: failed to list users", "error", err)
		return
	}

	for _, userID := range userIDs {
		events, err := s.agenda.Agenda(ctx, userID, now)
		if err != nil {
			slog.Error("daily agenda: failed to list events", "user_id", userID, "error", err)
			continue
		}
		if len(events) == 0 {
			continue
		}

		msg := FormatAgenda(now, events, s.language(userID), s.timezone)
		if _, err := s.sender.Send(&tele.User{ID: userID}, msg); err != nil {
			slog.Error("daily agenda: failed to send", "user_id", userID, "error", err)
			continue
		}

		slog.Info("daily agenda sent", "user_id", userID, "count", len(events))
	}
}

package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/zhafrantharif/ram-assistant/internal/calendar"
	"github.com/zhafrantharif/ram-assistant/internal/i18n"
	"github.com/zhafrantharif/ram-assistant/internal/module/event"
)

type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Repository is the slice of the event store the follow-up loop needs.
type Repository interface {
	ListDueFollowUps(ctx context.Context, now time.Time) ([]event.Event, error)
	MarkFollowedUp(ctx context.Context, id int) error
}

// Scheduler asks users whether they got to an event once its start time has
// passed. Each event is asked about at most once.
type Scheduler struct {
	repo     Repository
	sender   Sender
	language func(userID int64) i18n.Language
	interval time.Duration
	timezone *time.Location
	stopCh   chan struct{}
	once     sync.Once
}

func NewScheduler(repo Repository, sender Sender, language func(int64) i18n.Language, interval time.Duration, timezone *time.Location) *Scheduler {
	return &Scheduler{
		repo:     repo,
		sender:   sender,
		language: language,
		interval: interval,
		timezone: timezone,
		stopCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	slog.Info("follow-up scheduler started", "interval", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(time.Now())
		case <-s.stopCh:
			slog.Info("follow-up scheduler stopped")
			return
		}
	}
}

func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stopCh) })
}

func (s *Scheduler) tick(now time.Time) {
	ctx := context.Background()
	events, err := s.repo.ListDueFollowUps(ctx, now)
	if err != nil {
		slog.Error("failed to get due follow-ups", "error", err)
		return
	}

	for _, e := range events {
		msg := FollowUpMessage(e, s.language(e.UserID), s.timezone)
		if _, err := s.sender.Send(&tele.User{ID: e.UserID}, msg); err != nil {
			slog.Error("failed to send follow-up", "event_id", e.ID, "user_id", e.UserID, "error", err)
			continue
		}

		slog.Info("follow-up sent", "event_id", e.ID, "user_id", e.UserID)

		if err := s.repo.MarkFollowedUp(ctx, e.ID); err != nil {
			slog.Error("failed to mark follow-up", "event_id", e.ID, "error", err)
		}
	}
}

func FollowUpMessage(e event.Event, lang i18n.Language, loc *time.Location) string {
	clock := calendar.FormatClock(e.Instant.In(loc), lang)
	if lang.IsSpanish() {
		return fmt.Sprintf("¿Pudiste hacer \"%s\"? Estaba a las %s.", e.Title, clock)
	}
	return fmt.Sprintf("Did you get to \"%s\"? It was at %s.", e.Title, clock)
}

package focus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/zhafrantharif/ram-assistant/internal/i18n"
)

// Sender delivers a message to a chat; *tele.Bot satisfies it.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// LogWriter persists completed focus minutes; *Repository satisfies it.
type LogWriter interface {
	Log(ctx context.Context, userID int64, dateKey string, minutes int) error
}

// Scheduler polls the Timer, writes completed focus sessions to the log and
// tells the user when a phase ends.
type Scheduler struct {
	timer    *Timer
	logs     LogWriter
	sender   Sender
	language func(userID int64) i18n.Language
	interval time.Duration
	timezone *time.Location
	stopCh   chan struct{}
	once     sync.Once
}

func NewScheduler(timer *Timer, logs LogWriter, sender Sender, language func(int64) i18n.Language, interval time.Duration, timezone *time.Location) *Scheduler {
	return &Scheduler{
		timer:    timer,
		logs:     logs,
		sender:   sender,
		language: language,
		interval: interval,
		timezone: timezone,
		stopCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	slog.Info("focus scheduler started", "interval", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(time.Now().In(s.timezone))
		case <-s.stopCh:
			slog.Info("focus scheduler stopped")
			return
		}
	}
}

func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stopCh) })
}

func (s *Scheduler) tick(now time.Time) {
	ctx := context.Background()
	for _, userID := range s.timer.Due(now) {
		tr, ok := s.timer.Advance(userID, now)
		if !ok {
			continue
		}

		if tr.LoggedMinutes > 0 {
			if err := s.logs.Log(ctx, userID, tr.DateKey, tr.LoggedMinutes); err != nil {
				slog.Error("failed to log focus session", "user_id", userID, "error", err)
			}
		}

		msg := PhaseEndedMessage(tr, s.language(userID))
		if _, err := s.sender.Send(&tele.User{ID: userID}, msg); err != nil {
			slog.Error("failed to send focus notification", "user_id", userID, "error", err)
			continue
		}
		slog.Info("focus phase ended", "user_id", userID, "from", tr.From, "to", tr.To)
	}
}

// PhaseEndedMessage is the notification sent when a phase runs out.
func PhaseEndedMessage(tr Transition, lang i18n.Language) string {
	if tr.From == ModeFocus {
		if lang.IsSpanish() {
			return "¡Buen trabajo! Hora de un descanso."
		}
		return "Great job! Time for a break."
	}
	if lang.IsSpanish() {
		return "¡Se acabó el descanso! De vuelta al trabajo."
	}
	return "Break over! Back to work."
}

package bot

import (
	"log/slog"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"

	"github.com/zhafrantharif/ram-assistant/internal/session"
)

const loggerKey = "logger"

// RequestLogger tags every update with a request_id and stores the tagged
// logger on the context for the handlers.
func RequestLogger(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		logger := slog.With("request_id", uuid.NewString())
		if u := c.Sender(); u != nil {
			logger = logger.With("user_id", u.ID)
		}
		c.Set(loggerKey, logger)
		return next(c)
	}
}

// RateLimit drops updates from users who exceed their message budget.
func RateLimit(sessions *session.Store) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			u := c.Sender()
			if u == nil {
				return nil
			}
			if !sessions.Allow(u.ID) {
				loggerFrom(c).Warn("rate limited")
				lang := sessions.Language(u.ID)
				return c.Send(localized(lang,
					"Slow down a little, I'm still catching up.",
					"Más despacio, todavía me estoy poniendo al día."))
			}
			return next(c)
		}
	}
}

func loggerFrom(c tele.Context) *slog.Logger {
	if l, ok := c.Get(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/zhafrantharif/ram-assistant/internal/i18n"
	"github.com/zhafrantharif/ram-assistant/internal/module/event"
	"github.com/zhafrantharif/ram-assistant/internal/module/focus"
	"github.com/zhafrantharif/ram-assistant/internal/module/profile"
	"github.com/zhafrantharif/ram-assistant/internal/nlp"
	"github.com/zhafrantharif/ram-assistant/internal/session"
)

// upcomingLimit caps the /events listing.
const upcomingLimit = 20

type ProfileStore interface {
	Get(ctx context.Context, userID int64) (*profile.Profile, error)
	SetNickname(ctx context.Context, userID int64, nickname string) error
	SetLanguage(ctx context.Context, userID int64, lang i18n.Language) error
}

type FocusLogs interface {
	MinutesByDay(ctx context.Context, userID int64, year int) (map[string]int, error)
}

type Handler struct {
	nlpSvc    *nlp.Service
	eventSvc  *event.Service
	profiles  ProfileStore
	focusLogs FocusLogs
	timer     *focus.Timer
	sessions  *session.Store
	timezone  *time.Location
	now       func() time.Time
}

func NewHandler(nlpSvc *nlp.Service, eventSvc *event.Service, profiles ProfileStore, focusLogs FocusLogs, timer *focus.Timer, sessions *session.Store, timezone *time.Location) *Handler {
	return &Handler{
		nlpSvc:    nlpSvc,
		eventSvc:  eventSvc,
		profiles:  profiles,
		focusLogs: focusLogs,
		timer:     timer,
		sessions:  sessions,
		timezone:  timezone,
		now:       time.Now,
	}
}

func (h *Handler) Register(b *tele.Bot) {
	b.Use(RequestLogger, RateLimit(h.sessions))

	b.Handle(tele.OnText, h.handleText)
	b.Handle("/start", h.handleHelp)
	b.Handle("/help", h.handleHelp)
	b.Handle("/events", h.command(h.events))
	b.Handle("/today", h.command(h.today))
	b.Handle("/calendar", h.command(h.calendar))
	b.Handle("/date", h.command(h.setDate))
	b.Handle("/cleardate", h.command(h.clearDate))
	b.Handle("/move", h.command(h.move))
	b.Handle("/delete", h.command(h.remove))
	b.Handle("/lang", h.command(h.setLanguage))
	b.Handle("/focus", h.command(h.focus))
	b.Handle("/heatmap", h.command(h.heatmap))
}

// commandFunc answers a slash command given its payload.
type commandFunc func(ctx context.Context, userID int64, lang i18n.Language, payload string) (string, error)

func (h *Handler) command(fn commandFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := context.Background()
		userID := c.Sender().ID
		st := h.loadSession(ctx, userID)

		resp, err := fn(ctx, userID, st.Language, strings.TrimSpace(c.Message().Payload))
		if err != nil {
			loggerFrom(c).Error("command failed", "command", c.Message().Text, "error", err)
			return c.Send(errorReply(st.Language))
		}
		return c.Send(resp)
	}
}

func (h *Handler) handleHelp(c tele.Context) error {
	st := h.loadSession(context.Background(), c.Sender().ID)
	return c.Send(helpText(st.Language))
}

func (h *Handler) handleText(c tele.Context) error {
	ctx := context.Background()
	logger := loggerFrom(c)
	userID := c.Sender().ID

	logger.Info("received message", "text", c.Text())

	resp, err := h.respond(ctx, logger, userID, c.Text())
	if err != nil {
		logger.Error("handler error", "error", err)
		return c.Send(errorReply(h.sessions.Language(userID)))
	}
	if resp == "" {
		return nil
	}
	return c.Send(resp)
}

// respond parses one free-text message and carries out its intent. An empty
// reply means the message is ignored.
func (h *Handler) respond(ctx context.Context, logger *slog.Logger, userID int64, text string) (string, error) {
	st := h.loadSession(ctx, userID)
	override := h.sessions.TakeOverride(userID)

	intent := h.nlpSvc.Parse(ctx, nlp.Request{
		Text:     text,
		Override: override,
		Now:      h.now().In(h.timezone),
		Language: st.Language,
	})
	logger.Info("parsed intent", "kind", intent.Kind, "command", intent.Command, "conversation", intent.Conversation)

	switch intent.Kind {
	case nlp.KindCommand:
		return h.runCommand(ctx, logger, userID, st, intent.Command)
	case nlp.KindConversation:
		return h.converse(ctx, userID, st, intent)
	default:
		return h.schedule(ctx, userID, st, intent.Schedule)
	}
}

func (h *Handler) runCommand(ctx context.Context, logger *slog.Logger, userID int64, st session.State, cmd nlp.Command) (string, error) {
	switch cmd {
	case nlp.CommandActivateAdmin, nlp.CommandDeactivateAdmin:
		on := cmd == nlp.CommandActivateAdmin
		h.sessions.Update(userID, func(s *session.State) { s.IsAdmin = on })
		logger.Info("admin mode changed", "enabled", on)
		return commandReply(cmd, st.Language), nil
	case nlp.CommandNukeDatabase:
		if !st.IsAdmin {
			logger.Warn("nuke ignored outside admin mode")
			return "", nil
		}
		n, err := h.eventSvc.Nuke(ctx, userID)
		if err != nil {
			return "", err
		}
		logger.Warn("events nuked", "deleted", n)
		return nukeReply(n, st.Language), nil
	default:
		return "", nil
	}
}

func (h *Handler) converse(ctx context.Context, userID int64, st session.State, intent nlp.ParsedIntent) (string, error) {
	if intent.Conversation != nlp.ConversationSetNickname {
		return conversationReply(intent.Conversation, st.Nickname, st.Language), nil
	}

	name := capitalizeFirst(intent.Nickname)
	if err := h.profiles.SetNickname(ctx, userID, name); err != nil {
		return "", err
	}
	h.sessions.Update(userID, func(s *session.State) { s.Nickname = name })
	return nicknameReply(name, st.Language), nil
}

func (h *Handler) schedule(ctx context.Context, userID int64, st session.State, sched *nlp.Schedule) (string, error) {
	if sched == nil || !sched.IsValid {
		return invalidReply(st.Language), nil
	}
	events, err := h.eventSvc.Schedule(ctx, userID, sched)
	if err != nil {
		return "", err
	}
	return scheduledReply(events, sched.IsRecurring, st.Language, h.timezone), nil
}

// loadSession merges the stored profile into the session the first time the
// user is seen after a restart or eviction.
func (h *Handler) loadSession(ctx context.Context, userID int64) session.State {
	st := h.sessions.Get(userID)
	if st.Loaded {
		return st
	}

	p, err := h.profiles.Get(ctx, userID)
	if err != nil {
		slog.Error("load profile failed", "user_id", userID, "error", err)
		return st
	}
	return h.sessions.Update(userID, func(s *session.State) {
		s.Loaded = true
		if p == nil {
			return
		}
		s.Nickname = p.Nickname
		if lang, ok := i18n.Parse(string(p.Language)); ok {
			s.Language = lang
		}
	})
}

func (h *Handler) events(ctx context.Context, userID int64, lang i18n.Language, _ string) (string, error) {
	events, err := h.eventSvc.Upcoming(ctx, userID, h.now(), upcomingLimit)
	if err != nil {
		return "", err
	}
	return FormatEventList(events, lang, h.timezone), nil
}

func (h *Handler) today(ctx context.Context, userID int64, lang i18n.Language, _ string) (string, error) {
	now := h.now().In(h.timezone)
	events, err := h.eventSvc.Agenda(ctx, userID, now)
	if err != nil {
		return "", err
	}
	return FormatAgenda(now, events, lang, h.timezone), nil
}

func (h *Handler) calendar(ctx context.Context, userID int64, lang i18n.Language, payload string) (string, error) {
	now := h.now().In(h.timezone)
	year, month := now.Year(), now.Month()
	if payload != "" {
		t, err := time.ParseInLocation("2006-01", payload, h.timezone)
		if err != nil {
			return usageReply("/calendar YYYY-MM", lang), nil
		}
		year, month = t.Year(), t.Month()
	}

	events, err := h.eventSvc.Month(ctx, userID, year, month)
	if err != nil {
		return "", err
	}
	return FormatMonthCalendar(year, month, events, now, lang, h.timezone), nil
}

func (h *Handler) setDate(_ context.Context, userID int64, lang i18n.Language, payload string) (string, error) {
	o, err := nlp.ParseOverride(payload, h.timezone)
	if errors.Is(err, nlp.ErrInvalidOverride) {
		return usageReply("/date YYYY-MM-DD[THH:MM]", lang), nil
	}
	if err != nil {
		return "", err
	}
	h.sessions.Update(userID, func(s *session.State) { s.Override = o })
	return overrideSetReply(o, lang), nil
}

func (h *Handler) clearDate(_ context.Context, userID int64, lang i18n.Language, _ string) (string, error) {
	h.sessions.TakeOverride(userID)
	return overrideClearedReply(lang), nil
}

func (h *Handler) move(ctx context.Context, userID int64, lang i18n.Language, payload string) (string, error) {
	fields := strings.Fields(payload)
	if len(fields) < 2 {
		return usageReply("/move <title> YYYY-MM-DD", lang), nil
	}
	day, err := time.ParseInLocation("2006-01-02", fields[len(fields)-1], h.timezone)
	if err != nil {
		return usageReply("/move <title> YYYY-MM-DD", lang), nil
	}
	query := strings.Join(fields[:len(fields)-1], " ")

	e, err := h.eventSvc.Reschedule(ctx, userID, query, day)
	if errors.Is(err, event.ErrNotFound) {
		return notFoundReply(query, lang), nil
	}
	if err != nil {
		return "", err
	}
	return movedReply(e, lang, h.timezone), nil
}

func (h *Handler) remove(ctx context.Context, userID int64, lang i18n.Language, payload string) (string, error) {
	if payload == "" {
		return usageReply("/delete <title>", lang), nil
	}
	e, err := h.eventSvc.Delete(ctx, userID, payload)
	if errors.Is(err, event.ErrNotFound) {
		return notFoundReply(payload, lang), nil
	}
	if err != nil {
		return "", err
	}
	return deletedReply(e, lang), nil
}

func (h *Handler) setLanguage(ctx context.Context, userID int64, lang i18n.Language, payload string) (string, error) {
	next, ok := i18n.Parse(payload)
	if !ok {
		return usageReply("/lang en|es", lang), nil
	}
	if err := h.profiles.SetLanguage(ctx, userID, next); err != nil {
		return "", err
	}
	h.sessions.Update(userID, func(s *session.State) { s.Language = next })
	return languageReply(next), nil
}

func (h *Handler) focus(_ context.Context, userID int64, lang i18n.Language, payload string) (string, error) {
	now := h.now()
	action := strings.ToLower(payload)
	var s focus.Session
	switch action {
	case "start":
		s = h.timer.Start(userID, now)
	case "pause":
		s = h.timer.Pause(userID, now)
	case "reset":
		s = h.timer.Reset(userID)
	case "", "status":
		action = "status"
		s = h.timer.Status(userID, now)
	default:
		return usageReply("/focus start|pause|reset|status", lang), nil
	}
	return focusReply(action, s, lang), nil
}

func (h *Handler) heatmap(ctx context.Context, userID int64, lang i18n.Language, payload string) (string, error) {
	now := h.now().In(h.timezone)
	year := now.Year()
	if payload != "" {
		y, err := strconv.Atoi(payload)
		if err != nil || y < 1970 || y > now.Year() {
			return usageReply("/heatmap [year]", lang), nil
		}
		year = y
	}

	minutes, err := h.focusLogs.MinutesByDay(ctx, userID, year)
	if err != nil {
		return "", err
	}
	return FormatHeatmap(year, minutes, now, lang), nil
}

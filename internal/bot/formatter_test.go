package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhafrantharif/ram-assistant/internal/calendar"
	"github.com/zhafrantharif/ram-assistant/internal/i18n"
	"github.com/zhafrantharif/ram-assistant/internal/module/event"
	"github.com/zhafrantharif/ram-assistant/internal/nlp"
)

func sampleEvents() []event.Event {
	return []event.Event{
		{ID: 1, Title: "Meeting with John", TimeLabel: "3:00", Instant: time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Trip", TimeLabel: calendar.AllDay, Instant: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Gym", TimeLabel: "7am", Instant: time.Date(2026, 10, 26, 7, 0, 0, 0, time.UTC), IsRecurringInstance: true},
	}
}

func TestFormatEventList(t *testing.T) {
	out := FormatEventList(sampleEvents(), i18n.English, time.UTC)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "🗓 Upcoming", lines[0])
	assert.Equal(t, "Mon, Oct 19", lines[2])
	assert.Equal(t, "   3:00 AM · Meeting with John", lines[3])
	assert.Equal(t, "   All Day · Trip", lines[4])
	assert.Equal(t, "Mon, Oct 26", lines[6])
	assert.Equal(t, "   7am · Gym 🔁", lines[7])

	assert.Equal(t, "📭 No hay nada agendado.", FormatEventList(nil, i18n.Spanish, time.UTC))
}

func TestFormatAgenda(t *testing.T) {
	day := time.Date(2026, 10, 19, 7, 30, 0, 0, time.UTC)

	out := FormatAgenda(day, sampleEvents()[:2], i18n.Spanish, time.UTC)
	assert.True(t, strings.HasPrefix(out, "☀️ Hoy · lun, 19 oct"))
	assert.Contains(t, out, "   Todo el día · Trip")
	assert.Contains(t, out, "📊 2 eventos hoy")

	assert.Contains(t, FormatAgenda(day, nil, i18n.English, time.UTC), "Your day is clear.")
}

func TestFormatMonthCalendar(t *testing.T) {
	today := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	out := FormatMonthCalendar(2026, time.October, sampleEvents(), today, i18n.English, time.UTC)
	lines := strings.Split(out, "\n")

	require.GreaterOrEqual(t, len(lines), 7)
	assert.Equal(t, "October 2026", lines[0])
	assert.Equal(t, "Sun Mon Tue Wed Thu Fri Sat", lines[1])
	assert.Equal(t, "                  1   2   3", lines[2])
	assert.Equal(t, "[18] 19• 20  21  22  23  24", lines[5])
	assert.Equal(t, "📊 3 events this month", lines[len(lines)-1])

	es := FormatMonthCalendar(2026, time.October, nil, today, i18n.Spanish, time.UTC)
	assert.True(t, strings.HasPrefix(es, "Octubre 2026\ndom lun mar mié jue vie sáb"))
}

func TestFormatHeatmap(t *testing.T) {
	today := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	out := FormatHeatmap(2026, map[string]int{"2026-01-01": 20, "2026-01-05": 130}, today, i18n.English)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "🔥 Focus 2026", lines[0])
	assert.Equal(t, "    Jan", lines[2])
	// Jan 1st 2026 is a Thursday; the 5th a Monday.
	assert.Equal(t, "Mon  █", lines[4])
	assert.Equal(t, "Thu ░·", lines[7])
	assert.Equal(t, "Sat ··", lines[9])
	assert.Equal(t, "Total 2h 30m over 2 days", lines[len(lines)-1])
}

func TestScheduledReply(t *testing.T) {
	events := sampleEvents()

	assert.Equal(t, `Scheduled "Meeting with John" for Mon, Oct 19 at 3:00 AM.`,
		scheduledReply(events[:1], false, i18n.English, time.UTC))
	assert.Equal(t, `Agendado "Trip" para el lun, 19 oct (todo el día).`,
		scheduledReply(events[1:2], false, i18n.Spanish, time.UTC))
	assert.Equal(t, "Got it. Recurring schedule set (3 events).",
		scheduledReply(events, true, i18n.English, time.UTC))
}

func TestConversationReplies(t *testing.T) {
	assert.Equal(t, "Hey! Good to see you. What's on the agenda?",
		conversationReply(nlp.ConversationGreeting, "", i18n.English))
	assert.Equal(t, "Soy Ram. Puedo agendar eventos y ayudarte a estudiar.",
		conversationReply(nlp.ConversationHelp, "", i18n.Spanish))
	assert.Equal(t, "Anytime!", conversationReply(nlp.ConversationGratitude, "", i18n.English))
	assert.Equal(t, "Todo perfecto por aquí. ¿Y tú?", conversationReply(nlp.ConversationStatus, "", i18n.Spanish))
}

func TestOverrideSetReply(t *testing.T) {
	o := &nlp.Override{Time: time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC), HasTime: true}
	assert.Equal(t, "Your next event will be set on Mon, Nov 2 09:30 AM.", overrideSetReply(o, i18n.English))

	o.HasTime = false
	assert.Equal(t, "Tu próximo evento será el lun, 2 nov.", overrideSetReply(o, i18n.Spanish))
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "25:00", formatRemaining(25*time.Minute))
	assert.Equal(t, "04:05", formatRemaining(4*time.Minute+5*time.Second))
	assert.Equal(t, "00:00", formatRemaining(0))
}

package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/zhafrantharif/ram-assistant/internal/calendar"
	"github.com/zhafrantharif/ram-assistant/internal/i18n"
	"github.com/zhafrantharif/ram-assistant/internal/module/event"
	"github.com/zhafrantharif/ram-assistant/internal/module/focus"
	"github.com/zhafrantharif/ram-assistant/internal/nlp"
)

// localized picks the reply for the user's language.
func localized(lang i18n.Language, en, es string) string {
	if lang.IsSpanish() {
		return es
	}
	return en
}

func nicknameReply(name string, lang i18n.Language) string {
	return localized(lang,
		fmt.Sprintf("Got it! I'll call you %s.", name),
		fmt.Sprintf("¡Entendido! Te llamaré %s.", name))
}

func conversationReply(c nlp.Conversation, nickname string, lang i18n.Language) string {
	switch c {
	case nlp.ConversationGreeting:
		name := ""
		if nickname != "" {
			name = " " + nickname
		}
		return localized(lang,
			fmt.Sprintf("Hey%s! Good to see you. What's on the agenda?", name),
			fmt.Sprintf("¡Hola%s! ¿Qué tal? ¿En qué te ayudo?", name))
	case nlp.ConversationHelp:
		return localized(lang,
			"I'm Ram. I can book meetings or help you study.",
			"Soy Ram. Puedo agendar eventos y ayudarte a estudiar.")
	case nlp.ConversationStatus:
		return localized(lang,
			"I'm feeling productive! How about you?",
			"Todo perfecto por aquí. ¿Y tú?")
	case nlp.ConversationGratitude:
		return localized(lang, "Anytime!", "¡Un placer!")
	default:
		return invalidReply(lang)
	}
}

func invalidReply(lang i18n.Language) string {
	return localized(lang,
		"I didn't catch that. Try something like \"Lunch with Sam tomorrow at 1pm\".",
		"No entendí. Prueba algo como \"Comida con Ana mañana a las 14:00\".")
}

func errorReply(lang i18n.Language) string {
	return localized(lang,
		"Sorry, something went wrong. Please try again later.",
		"Lo siento, algo salió mal. Inténtalo de nuevo más tarde.")
}

func commandReply(cmd nlp.Command, lang i18n.Language) string {
	switch cmd {
	case nlp.CommandActivateAdmin:
		return localized(lang, "Admin mode on.", "Modo administrador activado.")
	case nlp.CommandDeactivateAdmin:
		return localized(lang, "Admin mode off.", "Modo administrador desactivado.")
	default:
		return ""
	}
}

func nukeReply(deleted int64, lang i18n.Language) string {
	return localized(lang,
		fmt.Sprintf("Done. Deleted %d events.", deleted),
		fmt.Sprintf("Hecho. Se borraron %d eventos.", deleted))
}

// scheduledReply confirms a stored request. events holds every stored
// occurrence, so a recurring request gets the recurring confirmation.
func scheduledReply(events []event.Event, recurring bool, lang i18n.Language, loc *time.Location) string {
	if recurring {
		return localized(lang,
			fmt.Sprintf("Got it. Recurring schedule set (%d events).", len(events)),
			fmt.Sprintf("Listo. Evento recurrente agendado (%d eventos).", len(events)))
	}
	e := events[0]
	date := calendar.FormatDate(e.Instant.In(loc), lang)
	clock := calendar.FormatTime(e.TimeLabel, lang)
	if e.TimeLabel == calendar.AllDay {
		return localized(lang,
			fmt.Sprintf("Scheduled %q for %s (all day).", e.Title, date),
			fmt.Sprintf("Agendado %q para el %s (todo el día).", e.Title, date))
	}
	return localized(lang,
		fmt.Sprintf("Scheduled %q for %s at %s.", e.Title, date, clock),
		fmt.Sprintf("Agendado %q para el %s a las %s.", e.Title, date, clock))
}

func movedReply(e *event.Event, lang i18n.Language, loc *time.Location) string {
	date := calendar.FormatDate(e.Instant.In(loc), lang)
	return localized(lang,
		fmt.Sprintf("I moved %q to %s.", e.Title, date),
		fmt.Sprintf("Moví %q al %s.", e.Title, date))
}

func deletedReply(e *event.Event, lang i18n.Language) string {
	return localized(lang,
		fmt.Sprintf("Deleted %q.", e.Title),
		fmt.Sprintf("Eliminado %q.", e.Title))
}

func notFoundReply(query string, lang i18n.Language) string {
	return localized(lang,
		fmt.Sprintf("I couldn't find an event like %q.", query),
		fmt.Sprintf("No encontré ningún evento parecido a %q.", query))
}

func overrideSetReply(o *nlp.Override, lang i18n.Language) string {
	date := calendar.FormatDate(o.Time, lang)
	if o.HasTime {
		date += " " + calendar.FormatClock(o.Time, lang)
	}
	return localized(lang,
		fmt.Sprintf("Your next event will be set on %s.", date),
		fmt.Sprintf("Tu próximo evento será el %s.", date))
}

func overrideClearedReply(lang i18n.Language) string {
	return localized(lang, "Date override cleared.", "Fecha manual eliminada.")
}

func languageReply(lang i18n.Language) string {
	return localized(lang, "I'll speak English from now on.", "A partir de ahora hablaré español.")
}

func usageReply(usage string, lang i18n.Language) string {
	return localized(lang, "Usage: "+usage, "Uso: "+usage)
}

func focusReply(action string, s focus.Session, lang i18n.Language) string {
	remaining := formatRemaining(s.Remaining)
	mode := s.Mode.String()
	if lang.IsSpanish() {
		mode = map[focus.Mode]string{focus.ModeFocus: "enfoque", focus.ModeBreak: "descanso"}[s.Mode]
	}

	var head string
	switch action {
	case "start":
		head = localized(lang, "Timer running.", "Temporizador en marcha.")
	case "pause":
		head = localized(lang, "Timer paused.", "Temporizador en pausa.")
	case "reset":
		head = localized(lang, "Timer reset.", "Temporizador reiniciado.")
	default:
		state := localized(lang, "paused", "en pausa")
		if s.Running {
			state = localized(lang, "running", "en marcha")
		}
		head = localized(lang, "Timer "+state+".", "Temporizador "+state+".")
	}

	return strings.Join([]string{
		head,
		localized(lang,
			fmt.Sprintf("%s · %s left · %d sessions done", mode, remaining, s.Completed),
			fmt.Sprintf("%s · quedan %s · %d sesiones completadas", mode, remaining, s.Completed)),
	}, "\n")
}

// formatRemaining renders a countdown as "MM:SS".
func formatRemaining(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func helpText(lang i18n.Language) string {
	if lang.IsSpanish() {
		return `Soy Ram, tu asistente de agenda.

Escríbeme en lenguaje natural:
• "Reunión con Juan mañana a las 3pm"
• "Gimnasio todos los lunes a las 7"
• "llámame Alex"

Comandos:
/events Próximos eventos
/today Agenda de hoy
/calendar [AAAA-MM] Calendario del mes
/date AAAA-MM-DD[THH:MM] Fija la fecha del próximo evento
/cleardate Quita la fecha manual
/move <título> <AAAA-MM-DD> Mueve un evento
/delete <título> Elimina un evento
/lang en|es Cambia el idioma
/focus start|pause|reset|status Pomodoro
/heatmap [año] Mapa de enfoque`
	}
	return `I'm Ram, your scheduling assistant.

Just tell me what to book:
• "Meeting with John tomorrow at 3pm"
• "Gym every monday at 7"
• "call me Alex"

Commands:
/events Upcoming events
/today Today's agenda
/calendar [YYYY-MM] Month calendar
/date YYYY-MM-DD[THH:MM] Pin the date of your next event
/cleardate Drop the pinned date
/move <title> <YYYY-MM-DD> Move an event
/delete <title> Delete an event
/lang en|es Switch language
/focus start|pause|reset|status Pomodoro timer
/heatmap [year] Focus heatmap`
}

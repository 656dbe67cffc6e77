package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/zhafrantharif/ram-assistant/internal/calendar"
	"github.com/zhafrantharif/ram-assistant/internal/i18n"
	"github.com/zhafrantharif/ram-assistant/internal/module/event"
	"github.com/zhafrantharif/ram-assistant/internal/module/focus"
)

// FormatEventList renders upcoming events grouped by day.
//
// 🗓 Upcoming
//
// Mon, Oct 19
//
//	3:00 PM · Meeting with John
//	All Day · Trip 🔁
func FormatEventList(events []event.Event, lang i18n.Language, loc *time.Location) string {
	if len(events) == 0 {
		return localized(lang, "📭 Nothing scheduled.", "📭 No hay nada agendado.")
	}

	lines := []string{localized(lang, "🗓 Upcoming", "🗓 Próximos eventos")}
	lines = append(lines, eventLines(events, lang, loc)...)
	return strings.Join(lines, "\n")
}

// FormatAgenda renders one day of events, used by /today and the morning
// briefing.
func FormatAgenda(day time.Time, events []event.Event, lang i18n.Language, loc *time.Location) string {
	header := localized(lang, "☀️ Today", "☀️ Hoy") + " · " + calendar.FormatDate(day.In(loc), lang)
	if len(events) == 0 {
		return header + "\n\n" + localized(lang, "Your day is clear.", "Tienes el día libre.")
	}

	lines := []string{header, ""}
	for _, e := range events {
		lines = append(lines, eventLine(e, lang))
	}
	lines = append(lines, "", localized(lang,
		fmt.Sprintf("📊 %d events today", len(events)),
		fmt.Sprintf("📊 %d eventos hoy", len(events))))
	return strings.Join(lines, "\n")
}

func eventLines(events []event.Event, lang i18n.Language, loc *time.Location) []string {
	var lines []string
	var current time.Time
	for i, e := range events {
		at := e.Instant.In(loc)
		if i == 0 || !calendar.SameDay(at, current) {
			current = at
			lines = append(lines, "", calendar.FormatDate(at, lang))
		}
		lines = append(lines, eventLine(e, lang))
	}
	return lines
}

func eventLine(e event.Event, lang i18n.Language) string {
	line := fmt.Sprintf("   %s · %s", calendar.FormatTime(e.TimeLabel, lang), e.Title)
	if e.IsRecurringInstance {
		line += " 🔁"
	}
	return line
}

// FormatMonthCalendar renders a month grid. Days with events are marked with
// a dot and today is bracketed.
//
//	October 2026
//	Sun Mon Tue Wed Thu Fri Sat
//	                 1   2   3
//	  4   5•  6 ...
func FormatMonthCalendar(year int, month time.Month, events []event.Event, today time.Time, lang i18n.Language, loc *time.Location) string {
	busy := make(map[int]int)
	for _, e := range events {
		at := e.Instant.In(loc)
		if at.Year() == year && at.Month() == month {
			busy[at.Day()]++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", capitalizeFirst(lang.Month(month)), year)

	days := make([]string, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days[d] = fmt.Sprintf("%-4s", lang.ShortDay(d))
	}
	b.WriteString(strings.TrimRight(strings.Join(days, ""), " "))
	b.WriteString("\n")

	for _, week := range calendar.MonthGrid(year, month) {
		var row strings.Builder
		for _, day := range week {
			row.WriteString(calendarCell(day, busy[day] > 0, isToday(today, year, month, day)))
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
		b.WriteString("\n")
	}

	total := 0
	for _, n := range busy {
		total += n
	}
	b.WriteString("\n")
	b.WriteString(localized(lang,
		fmt.Sprintf("📊 %d events this month", total),
		fmt.Sprintf("📊 %d eventos este mes", total)))
	return b.String()
}

func calendarCell(day int, busy, today bool) string {
	if day == 0 {
		return "    "
	}
	mark := " "
	if busy {
		mark = "•"
	}
	if today {
		return fmt.Sprintf("[%2d]", day)
	}
	return fmt.Sprintf(" %2d%s", day, mark)
}

func isToday(today time.Time, year int, month time.Month, day int) bool {
	return day != 0 && today.Year() == year && today.Month() == month && today.Day() == day
}

var heatLevels = [...]string{"·", "░", "▒", "▓", "█"}

// FormatHeatmap renders a year of focus minutes with weekdays as rows and
// weeks as columns, darker meaning more focus time.
func FormatHeatmap(year int, minutes map[string]int, today time.Time, lang i18n.Language) string {
	grid := focus.BuildYearGrid(year, minutes, today)

	total, active := 0, 0
	for _, m := range minutes {
		if m > 0 {
			total += m
			active++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n\n", localized(lang, "🔥 Focus", "🔥 Enfoque"), year)

	labels := []rune(strings.Repeat(" ", len(grid)+8))
	for _, l := range focus.MonthLabels(grid, lang) {
		for i, r := range []rune(l.Label) {
			if pos := l.Week + 4 + i; pos < len(labels) {
				labels[pos] = r
			}
		}
	}
	b.WriteString(strings.TrimRight(string(labels), " "))
	b.WriteString("\n")

	for d := time.Sunday; d <= time.Saturday; d++ {
		row := []rune(fmt.Sprintf("%-4s", lang.ShortDay(d)))
		for _, week := range grid {
			c := week[d]
			switch {
			case c == nil || c.Future:
				row = append(row, ' ')
			default:
				row = append(row, []rune(heatLevels[focus.Bucket(c.Minutes)])...)
			}
		}
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(localized(lang,
		fmt.Sprintf("Total %s over %d days", focus.FormatMinutes(total), active),
		fmt.Sprintf("Total %s en %d días", focus.FormatMinutes(total), active)))
	return b.String()
}

func capitalizeFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

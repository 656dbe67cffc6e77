package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zhafrantharif/ram-assistant/internal/i18n"
)

// AllDay is the time label of events without a time of day.
const AllDay = "All Day"

// FormatDate renders "Mon, Oct 20" (English) or "lun, 20 oct" (Spanish).
func FormatDate(t time.Time, lang i18n.Language) string {
	if lang.IsSpanish() {
		return fmt.Sprintf("%s, %d %s", lang.ShortDay(t.Weekday()), t.Day(), lang.ShortMonth(t.Month()))
	}
	return fmt.Sprintf("%s, %s %d", lang.ShortDay(t.Weekday()), lang.ShortMonth(t.Month()), t.Day())
}

// FormatTime renders a stored time label for display. Ranges and labels that
// are not plain "H:MM" clocks are returned as they were typed.
func FormatTime(label string, lang i18n.Language) string {
	if label == "" {
		return ""
	}
	if label == AllDay {
		if lang.IsSpanish() {
			return "Todo el día"
		}
		return label
	}
	if strings.Contains(label, "-") || strings.Contains(label, "to") {
		return label
	}
	hh, mm, ok := strings.Cut(label, ":")
	if !ok {
		return label
	}
	hour, err1 := strconv.Atoi(strings.TrimSpace(hh))
	minute, err2 := strconv.Atoi(strings.TrimSpace(mm))
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return label
	}
	t := time.Date(2000, 1, 1, hour, minute, 0, 0, time.UTC)
	if lang.IsSpanish() {
		return t.Format("15:04")
	}
	return t.Format("3:04 PM")
}

// FormatClock renders the time of day of t with two-digit hours.
func FormatClock(t time.Time, lang i18n.Language) string {
	if lang.IsSpanish() {
		return t.Format("15:04")
	}
	return t.Format("03:04 PM")
}

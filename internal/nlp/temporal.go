package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/zhafrantharif/ram-assistant/internal/calendar"
)

// timeMatch is the time of day found in a message.
type timeMatch struct {
	label   string // shown to the user, raw range or single time
	literal string // substring removed from the activity
	hour    int
	minute  int
}

type timeRule struct {
	name  string
	match func(lower string) (timeMatch, bool)
}

var (
	timeRangeRE  = regexp.MustCompile(`(\d{1,2}(?::\d{2})?\s?(?:am|pm))\s*(?:-|to|a)\s*(\d{1,2}(?::\d{2})?\s?(?:am|pm))`)
	timeSingleRE = regexp.MustCompile(`\d{1,2}(?::\d{2})?\s?(?:am|pm)|\d{1,2}:\d{2}|a las \d{1,2}`)
)

func timeRules() []timeRule {
	return []timeRule{
		{name: "range", match: func(lower string) (timeMatch, bool) {
			m := timeRangeRE.FindStringSubmatch(lower)
			if m == nil {
				return timeMatch{}, false
			}
			h, mm, ok := parseClock(m[1])
			if !ok {
				return timeMatch{}, false
			}
			return timeMatch{label: m[0], literal: m[0], hour: h, minute: mm}, true
		}},
		{name: "single", match: func(lower string) (timeMatch, bool) {
			m := timeSingleRE.FindString(lower)
			if m == "" {
				return timeMatch{}, false
			}
			h, mm, ok := parseClock(m)
			if !ok {
				return timeMatch{}, false
			}
			return timeMatch{label: m, literal: m, hour: h, minute: mm}, true
		}},
	}
}

// dateMatch is the calendar day found in a message, at midnight.
type dateMatch struct {
	date    time.Time
	literal string
	// textual dates were spelled out by the user and may refer to next year.
	textual bool
}

type dateRule struct {
	name  string
	match func(lower string, today time.Time) (dateMatch, bool)
}

var (
	dayMonthRE     = regexp.MustCompile(`(?:the|el)?\s*(\d{1,2})(?:st|nd|rd|th|er|o)?\s+(?:(?:of|de)\s+)?([a-z]{3,})`)
	monthDayRE     = regexp.MustCompile(`([a-z]{3,})\s+(?:the|el)?\s*(\d{1,2})(?:st|nd|rd|th|er|o)?`)
	slashDateRE    = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})`)
	monthContextRE = regexp.MustCompile(`\b(?:in|for|starting|from|en|para|desde)\s+([a-z]{3,})`)
)

func dateRules() []dateRule {
	var tomorrow, today []string
	for _, tag := range locales {
		tomorrow = append(tomorrow, relativeKeywords[tag].tomorrow...)
		today = append(today, relativeKeywords[tag].today...)
	}

	return []dateRule{
		{name: "tomorrow", match: func(lower string, now time.Time) (dateMatch, bool) {
			if !containsAny(lower, tomorrow) {
				return dateMatch{}, false
			}
			return dateMatch{date: now.AddDate(0, 0, 1)}, true
		}},
		{name: "today", match: func(lower string, now time.Time) (dateMatch, bool) {
			if !containsAny(lower, today) {
				return dateMatch{}, false
			}
			return dateMatch{date: now}, true
		}},
		{name: "day_month", match: func(lower string, now time.Time) (dateMatch, bool) {
			for _, m := range dayMonthRE.FindAllStringSubmatch(lower, -1) {
				month, ok := resolveMonth(m[2])
				if !ok {
					continue
				}
				if d, ok := dayOf(now, month, m[1]); ok {
					return dateMatch{date: d, literal: m[0], textual: true}, true
				}
			}
			return dateMatch{}, false
		}},
		{name: "month_day", match: func(lower string, now time.Time) (dateMatch, bool) {
			for _, m := range monthDayRE.FindAllStringSubmatch(lower, -1) {
				month, ok := resolveMonth(m[1])
				if !ok {
					continue
				}
				if d, ok := dayOf(now, month, m[2]); ok {
					return dateMatch{date: d, literal: m[0], textual: true}, true
				}
			}
			return dateMatch{}, false
		}},
		{name: "slash", match: func(lower string, now time.Time) (dateMatch, bool) {
			for _, m := range slashDateRE.FindAllStringSubmatch(lower, -1) {
				month, err := strconv.Atoi(m[2])
				if err != nil || month < 1 || month > 12 {
					continue
				}
				if d, ok := dayOf(now, time.Month(month), m[1]); ok {
					return dateMatch{date: d, literal: m[0], textual: true}, true
				}
			}
			return dateMatch{}, false
		}},
		{name: "month_context", match: func(lower string, now time.Time) (dateMatch, bool) {
			for _, m := range monthContextRE.FindAllStringSubmatch(lower, -1) {
				month, ok := resolveMonth(m[1])
				if !ok {
					continue
				}
				d := time.Date(now.Year(), month, 1, 0, 0, 0, 0, now.Location())
				return dateMatch{date: d, textual: true}, true
			}
			return dateMatch{}, false
		}},
	}
}

// dayOf builds day-of-month in now's year. Days past the end of the month
// roll into the next one ("31 feb" is March 3rd).
func dayOf(now time.Time, month time.Month, day string) (time.Time, bool) {
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(now.Year(), month, d, 0, 0, 0, 0, now.Location()), true
}

// resolveDate runs the date rules in order. A textual date strictly before
// today is moved to next year; with no match the date is today.
func resolveDate(rules []dateRule, lower string, now time.Time) (dateMatch, bool) {
	today := calendar.StartOfDay(now)
	for _, r := range rules {
		m, ok := r.match(lower, today)
		if !ok {
			continue
		}
		if m.textual && m.date.Before(today) {
			m.date = m.date.AddDate(1, 0, 0)
		}
		return m, true
	}
	return dateMatch{date: today}, false
}

// resolveTime runs the time rules in order.
func resolveTime(rules []timeRule, lower string) (timeMatch, bool) {
	for _, r := range rules {
		if m, ok := r.match(lower); ok {
			return m, true
		}
	}
	return timeMatch{label: calendar.AllDay}, false
}

package nlp

import (
	"regexp"
	"time"
)

// recurrenceMatch is a weekly pattern found in a message.
type recurrenceMatch struct {
	weekdays []time.Weekday
	literal  string
}

type recurrenceRule struct {
	name  string
	match func(lower string) (recurrenceMatch, bool)
}

// dayWord accepts Spanish accents so "sábado" and "miércoles" resolve.
const dayWord = `([a-zñáéíóúü]{3,})`

var (
	recurrenceRangeRE  = regexp.MustCompile(`(?:every|cada|todos los)\s+` + dayWord + `\s+(?:to|through|-|a|hasta)\s+` + dayWord)
	recurrenceEveryRE  = regexp.MustCompile(`(?:every|cada|todos los)\s+` + dayWord)
	recurrencePluralRE = regexp.MustCompile(`\b` + dayWord + `s\b`)
)

// recurrenceRules look at the first match of each pattern only.
func recurrenceRules() []recurrenceRule {
	single := func(re *regexp.Regexp) func(string) (recurrenceMatch, bool) {
		return func(lower string) (recurrenceMatch, bool) {
			m := re.FindStringSubmatch(lower)
			if m == nil {
				return recurrenceMatch{}, false
			}
			day, ok := resolveWeekday(m[1])
			if !ok {
				return recurrenceMatch{}, false
			}
			return recurrenceMatch{weekdays: []time.Weekday{day}, literal: m[0]}, true
		}
	}

	return []recurrenceRule{
		{name: "range", match: func(lower string) (recurrenceMatch, bool) {
			m := recurrenceRangeRE.FindStringSubmatch(lower)
			if m == nil {
				return recurrenceMatch{}, false
			}
			from, ok1 := resolveWeekday(m[1])
			to, ok2 := resolveWeekday(m[2])
			if !ok1 || !ok2 {
				return recurrenceMatch{}, false
			}
			return recurrenceMatch{weekdays: weekdaySpan(from, to), literal: m[0]}, true
		}},
		{name: "every", match: single(recurrenceEveryRE)},
		{name: "plural", match: single(recurrencePluralRE)},
	}
}

// weekdaySpan walks forward from one weekday to another inclusive, wrapping
// past Saturday: Friday to Monday is Fri, Sat, Sun, Mon.
func weekdaySpan(from, to time.Weekday) []time.Weekday {
	days := []time.Weekday{from}
	for d := from; d != to; {
		d = (d + 1) % 7
		days = append(days, d)
	}
	return days
}

func resolveRecurrence(rules []recurrenceRule, lower string) (recurrenceMatch, bool) {
	for _, r := range rules {
		if m, ok := r.match(lower); ok {
			return m, true
		}
	}
	return recurrenceMatch{}, false
}

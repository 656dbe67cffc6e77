package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	clockPrefixRE = regexp.MustCompile(`a las|las`)
	clockRE       = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
)

// parseClock turns a matched time string into a 24-hour clock. A bare hour
// below 8 is read as afternoon ("a las 3" is 15:00).
func parseClock(s string) (hour, minute int, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if loc := clockPrefixRE.FindStringIndex(s); loc != nil {
		s = strings.TrimSpace(s[:loc[0]] + s[loc[1]:])
	}
	m := clockRE.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}

	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch meridiem := m[3]; {
	case meridiem == "pm" && hour < 12:
		hour += 12
	case meridiem == "am" && hour == 12:
		hour = 0
	case meridiem == "" && hour > 0 && hour < 8:
		hour += 12
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

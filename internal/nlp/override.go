package nlp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidOverride = errors.New("invalid date override")

// Override is a date (and optionally a time) picked explicitly by the user.
// It replaces whatever date the message text mentions.
type Override struct {
	Time    time.Time
	HasTime bool
}

// ParseOverride accepts "2006-01-02", "2006-01-02T15:04" and
// "2006-01-02T15:04:05" in loc, or a full RFC 3339 timestamp.
func ParseOverride(s string, loc *time.Location) (*Override, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return &Override{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &Override{Time: t.In(loc), HasTime: true}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc); err == nil {
		return &Override{Time: t, HasTime: true}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", s, loc); err == nil {
		return &Override{Time: t, HasTime: true}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidOverride, s)
}

// Date returns the override's calendar day at midnight.
func (o *Override) Date() time.Time {
	return time.Date(o.Time.Year(), o.Time.Month(), o.Time.Day(), 0, 0, 0, 0, o.Time.Location())
}

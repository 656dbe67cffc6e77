package nlp

import (
	"strings"
	"time"

	"github.com/zhafrantharif/ram-assistant/internal/calendar"
)

// Parser turns one chat message into a ParsedIntent using ordered rule lists.
// It holds only compiled patterns and is safe for concurrent use.
type Parser struct {
	classifier *classifier
	times      []timeRule
	dates      []dateRule
	recurrence []recurrenceRule
	cleanup    []cleanupStep
}

func NewParser() *Parser {
	return &Parser{
		classifier: newClassifier(),
		times:      timeRules(),
		dates:      dateRules(),
		recurrence: recurrenceRules(),
		cleanup:    cleanupSteps(),
	}
}

// Parse never fails: text it cannot understand comes back as a scheduling
// intent with IsValid false.
func (p *Parser) Parse(req Request) ParsedIntent {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	lower := strings.ToLower(strings.TrimSpace(req.Text))

	if intent, ok := p.classifier.classify(lower, req.Text); ok {
		return intent
	}

	tm, timeFound := resolveTime(p.times, lower)

	var (
		dm        dateMatch
		dateFound bool
	)
	if req.Override != nil {
		dm, dateFound = dateMatch{date: req.Override.Date()}, true
	} else {
		dm, dateFound = resolveDate(p.dates, lower, now)
	}

	rm, recurring := resolveRecurrence(p.recurrence, lower)

	s := &Schedule{
		TimeLabel:   tm.label,
		Instant:     dm.date,
		IsRecurring: recurring,
		Weekdays:    rm.weekdays,
		TimeMatched: timeFound,
		DateMatched: dateFound,
	}
	switch {
	case req.Override != nil && req.Override.HasTime:
		s.Instant = req.Override.Time
		s.TimeLabel = calendar.FormatClock(req.Override.Time, req.Language)
		s.TimeMatched = true
	case timeFound:
		d := dm.date
		s.Instant = time.Date(d.Year(), d.Month(), d.Day(), tm.hour, tm.minute, 0, 0, d.Location())
	}
	s.IsValid = s.TimeMatched || s.DateMatched || s.IsRecurring

	if s.IsValid {
		s.Activity = extractActivity(p.cleanup, req.Text, tm.literal, dm.literal, rm.literal)
	} else {
		s.Activity = defaultActivity
	}

	return ParsedIntent{Kind: KindScheduling, Schedule: s, Original: req.Text}
}

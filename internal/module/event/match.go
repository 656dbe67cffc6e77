package event

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type scored struct {
	event *Event
	score float64
}

// Match picks the event whose title best fits a user-typed query: exact,
// then prefix, then substring, then the closest title within a small edit
// distance. Ties go to the earlier event.
func Match(events []Event, query string) (*Event, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, false
	}

	results := make([]scored, 0, len(events))
	for i := range events {
		title := strings.ToLower(events[i].Title)
		var score float64
		switch {
		case title == q:
			score = 1.0
		case strings.HasPrefix(title, q) && len(q) >= 2:
			score = 0.9
		case strings.Contains(title, q) && len(q) >= 2:
			score = 0.85
		default:
			dist := levenshtein.ComputeDistance(q, title)
			if dist > levenshteinLimit(len(title)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		results = append(results, scored{event: &events[i], score: score})
	}
	if len(results) == 0 {
		return nil, false
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].event.Instant.Before(results[j].event.Instant)
		}
		return results[i].score > results[j].score
	})
	return results[0].event, true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

package event

import (
	"time"

	"github.com/zhafrantharif/ram-assistant/internal/calendar"
)

// ExpandWeekly lists the occurrences of a weekly pattern over the given
// number of weeks. Week w covers the seven days from start's date plus 7w;
// each occurrence keeps start's time of day.
func ExpandWeekly(start time.Time, weekdays []time.Weekday, weeks int) []time.Time {
	first := calendar.StartOfDay(start)
	out := make([]time.Time, 0, weeks*len(weekdays))
	for w := 0; w < weeks; w++ {
		base := first.AddDate(0, 0, 7*w)
		for _, wd := range weekdays {
			distance := (int(wd) + 7 - int(base.Weekday())) % 7
			d := base.AddDate(0, 0, distance)
			out = append(out, time.Date(d.Year(), d.Month(), d.Day(), start.Hour(), start.Minute(), 0, 0, start.Location()))
		}
	}
	return out
}

// MoveToDay puts orig on another calendar day, keeping its time of day.
func MoveToDay(orig time.Time, year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, orig.Hour(), orig.Minute(), orig.Second(), 0, orig.Location())
}

package focus

import (
	"fmt"
	"time"

	"github.com/zhafrantharif/ram-assistant/internal/i18n"
)

// Level is the intensity of one heatmap cell, 0 (nothing) to 4.
type Level int

func Bucket(minutes int) Level {
	switch {
	case minutes <= 0:
		return 0
	case minutes < 30:
		return 1
	case minutes < 60:
		return 2
	case minutes < 120:
		return 3
	default:
		return 4
	}
}

// FormatMinutes renders "1h 5m", or "25m" under an hour.
func FormatMinutes(m int) string {
	h := m / 60
	m %= 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

type Cell struct {
	Date    time.Time
	Minutes int
	Future  bool
}

// Week is one heatmap column, Sunday first. Days outside the year are nil.
type Week [7]*Cell

// BuildYearGrid lays out a year of focus minutes as week columns, the first
// starting on the Sunday on or before January 1st. Days after today are marked
// Future, and trailing weeks with nothing but empty or future days are dropped.
func BuildYearGrid(year int, minutes map[string]int, today time.Time) []Week {
	loc := today.Location()
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	dec31 := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
	start := jan1.AddDate(0, 0, -int(jan1.Weekday()))

	var grid []Week
	for ws := start; !ws.After(dec31); ws = ws.AddDate(0, 0, 7) {
		var week Week
		for d := 0; d < 7; d++ {
			day := ws.AddDate(0, 0, d)
			if day.Year() != year {
				continue
			}
			week[d] = &Cell{
				Date:    day,
				Minutes: minutes[day.Format(DateKey)],
				Future:  day.After(todayDate) && day.Year() == today.Year(),
			}
		}
		grid = append(grid, week)
	}

	for len(grid) > 0 && blank(grid[len(grid)-1]) {
		grid = grid[:len(grid)-1]
	}
	return grid
}

func blank(w Week) bool {
	for _, c := range w {
		if c != nil && !c.Future {
			return false
		}
	}
	return true
}

type MonthLabel struct {
	Week  int
	Label string
}

// MonthLabels marks the first week column of every month.
func MonthLabels(grid []Week, lang i18n.Language) []MonthLabel {
	var labels []MonthLabel
	current := time.Month(0)
	for i, week := range grid {
		var first *Cell
		for _, c := range week {
			if c != nil {
				first = c
				break
			}
		}
		if first == nil || first.Date.Month() == current {
			continue
		}
		current = first.Date.Month()
		labels = append(labels, MonthLabel{Week: i, Label: lang.ShortMonth(current)})
	}
	return labels
}

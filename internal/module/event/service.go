package event

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/zhafrantharif/ram-assistant/internal/calendar"
	"github.com/zhafrantharif/ram-assistant/internal/nlp"
)

var (
	ErrNotFound        = errors.New("event not found")
	ErrInvalidSchedule = errors.New("schedule has no date, time or recurrence")
)

// Store is the persistence the Service needs; *Repository implements it.
type Store interface {
	Create(ctx context.Context, e Event) (int, error)
	CreateBatch(ctx context.Context, events []Event) ([]int, error)
	ListByUser(ctx context.Context, userID int64) ([]Event, error)
	ListBetween(ctx context.Context, userID int64, from, to time.Time) ([]Event, error)
	Reschedule(ctx context.Context, id int, instant time.Time) error
	Delete(ctx context.Context, id int) error
	DeleteAllByUser(ctx context.Context, userID int64) (int64, error)
}

type Service struct {
	store    Store
	weeks    int
	timezone *time.Location
}

// NewService builds a Service that expands recurring requests over weeks weeks.
func NewService(store Store, weeks int, timezone *time.Location) *Service {
	return &Service{
		store:    store,
		weeks:    weeks,
		timezone: timezone,
	}
}

// Schedule stores a parsed request: one event, or one per weekday per week
// when the request repeats. The stored events are returned in instant order.
func (s *Service) Schedule(ctx context.Context, userID int64, sched *nlp.Schedule) ([]Event, error) {
	if sched == nil || !sched.IsValid {
		return nil, ErrInvalidSchedule
	}

	if !sched.IsRecurring {
		e := Event{
			UserID:    userID,
			Title:     sched.Activity,
			TimeLabel: sched.TimeLabel,
			Instant:   sched.Instant,
		}
		id, err := s.store.Create(ctx, e)
		if err != nil {
			return nil, err
		}
		e.ID = id
		return []Event{e}, nil
	}

	instants := ExpandWeekly(sched.Instant, sched.Weekdays, s.weeks)
	events := make([]Event, len(instants))
	for i, at := range instants {
		events[i] = Event{
			UserID:              userID,
			Title:               sched.Activity,
			TimeLabel:           sched.TimeLabel,
			Instant:             at,
			IsRecurringInstance: true,
		}
	}
	ids, err := s.store.CreateBatch(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("schedule recurring %q: %w", sched.Activity, err)
	}
	for i := range events {
		events[i].ID = ids[i]
	}
	sortByInstant(events)
	return events, nil
}

// Upcoming lists events from the start of today on.
func (s *Service) Upcoming(ctx context.Context, userID int64, now time.Time, limit int) ([]Event, error) {
	from := calendar.StartOfDay(now.In(s.timezone))
	events, err := s.store.ListBetween(ctx, userID, from, from.AddDate(100, 0, 0))
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// Agenda lists the events on day's calendar date.
func (s *Service) Agenda(ctx context.Context, userID int64, day time.Time) ([]Event, error) {
	from := calendar.StartOfDay(day.In(s.timezone))
	return s.store.ListBetween(ctx, userID, from, from.AddDate(0, 0, 1))
}

// Month lists the events of one calendar month.
func (s *Service) Month(ctx context.Context, userID int64, year int, month time.Month) ([]Event, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, s.timezone)
	return s.store.ListBetween(ctx, userID, from, from.AddDate(0, 1, 0))
}

// Reschedule moves the event best matching query to another day, keeping its
// time of day.
func (s *Service) Reschedule(ctx context.Context, userID int64, query string, day time.Time) (*Event, error) {
	e, err := s.find(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	instant := MoveToDay(e.Instant.In(s.timezone), day.Year(), day.Month(), day.Day())
	if err := s.store.Reschedule(ctx, e.ID, instant); err != nil {
		return nil, err
	}
	e.Instant = instant
	e.HasAskedFollowUp = false
	return e, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, query string) (*Event, error) {
	e, err := s.find(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

// Nuke deletes every event of the user.
func (s *Service) Nuke(ctx context.Context, userID int64) (int64, error) {
	return s.store.DeleteAllByUser(ctx, userID)
}

func (s *Service) find(ctx context.Context, userID int64, query string) (*Event, error) {
	events, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	e, ok := Match(events, query)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, query)
	}
	return e, nil
}

func sortByInstant(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Instant.Before(events[j].Instant)
	})
}

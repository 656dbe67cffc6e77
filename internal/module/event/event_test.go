package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhafrantharif/ram-assistant/internal/nlp"
)

func at(m time.Month, d, hh, mm int) time.Time {
	return time.Date(2026, m, d, hh, mm, 0, 0, time.UTC)
}

func TestExpandWeekly(t *testing.T) {
	// Sunday evening, Friday through Monday.
	got := ExpandWeekly(at(10, 18, 18, 0), []time.Weekday{time.Friday, time.Saturday, time.Sunday, time.Monday}, 4)
	require.Len(t, got, 16)
	assert.Equal(t, []time.Time{at(10, 23, 18, 0), at(10, 24, 18, 0), at(10, 18, 18, 0), at(10, 19, 18, 0)}, got[:4])
	assert.Equal(t, at(11, 9, 18, 0), got[15])

	got = ExpandWeekly(at(10, 21, 9, 30), []time.Weekday{time.Monday}, 4)
	assert.Equal(t, []time.Time{at(10, 26, 9, 30), at(11, 2, 9, 30), at(11, 9, 9, 30), at(11, 16, 9, 30)}, got)

	assert.Empty(t, ExpandWeekly(at(10, 21, 9, 30), []time.Weekday{time.Monday}, 0))
}

func TestMoveToDay(t *testing.T) {
	assert.Equal(t, at(11, 3, 15, 30), MoveToDay(at(10, 20, 15, 30), 2026, time.November, 3))
	assert.Equal(t, at(10, 1, 0, 0), MoveToDay(at(10, 20, 0, 0), 2026, time.October, 1))
}

func TestMatch(t *testing.T) {
	events := []Event{
		{ID: 1, Title: "Dentist", Instant: at(10, 20, 15, 0)},
		{ID: 2, Title: "Team sync", Instant: at(10, 21, 10, 0)},
		{ID: 3, Title: "Dentist follow-up", Instant: at(10, 25, 9, 0)},
		{ID: 4, Title: "Team sync", Instant: at(10, 28, 10, 0)},
	}
	tests := []struct {
		query string
		want  int
	}{
		{"dentist", 1},
		{"  DENTIST ", 1},
		{"team", 2},
		{"team sync", 2},
		{"follow", 3},
		{"dentsit", 1},
	}
	for _, tt := range tests {
		e, ok := Match(events, tt.query)
		require.True(t, ok, tt.query)
		assert.Equal(t, tt.want, e.ID, tt.query)
	}

	for _, q := range []string{"", "xyz", "gym class"} {
		_, ok := Match(events, q)
		assert.False(t, ok, q)
	}
}

type memStore struct {
	events []Event
	nextID int
	fail   error
}

func (m *memStore) Create(_ context.Context, e Event) (int, error) {
	if m.fail != nil {
		return 0, m.fail
	}
	m.nextID++
	e.ID = m.nextID
	m.events = append(m.events, e)
	return e.ID, nil
}

func (m *memStore) CreateBatch(ctx context.Context, events []Event) ([]int, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	ids := make([]int, 0, len(events))
	for _, e := range events {
		id, _ := m.Create(ctx, e)
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memStore) ListByUser(_ context.Context, userID int64) ([]Event, error) {
	var out []Event
	for _, e := range m.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sortByInstant(out)
	return out, nil
}

func (m *memStore) ListBetween(ctx context.Context, userID int64, from, to time.Time) ([]Event, error) {
	all, _ := m.ListByUser(ctx, userID)
	var out []Event
	for _, e := range all {
		if !e.Instant.Before(from) && e.Instant.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) Reschedule(_ context.Context, id int, instant time.Time) error {
	for i := range m.events {
		if m.events[i].ID == id {
			m.events[i].Instant = instant
		}
	}
	return nil
}

func (m *memStore) Delete(_ context.Context, id int) error {
	for i := range m.events {
		if m.events[i].ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) DeleteAllByUser(_ context.Context, userID int64) (int64, error) {
	var kept []Event
	var n int64
	for _, e := range m.events {
		if e.UserID == userID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return n, nil
}

func TestServiceSchedule(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := NewService(store, 4, time.UTC)

	single, err := svc.Schedule(ctx, 7, &nlp.Schedule{
		Activity: "Dentist", TimeLabel: "3pm", Instant: at(10, 20, 15, 0), IsValid: true,
	})
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, 1, single[0].ID)
	assert.False(t, single[0].IsRecurringInstance)

	weekly, err := svc.Schedule(ctx, 7, &nlp.Schedule{
		Activity: "Gym", TimeLabel: "6pm", Instant: at(10, 18, 18, 0), IsValid: true,
		IsRecurring: true, Weekdays: []time.Weekday{time.Friday, time.Monday},
	})
	require.NoError(t, err)
	require.Len(t, weekly, 8)
	assert.Equal(t, at(10, 19, 18, 0), weekly[0].Instant)
	assert.True(t, weekly[0].IsRecurringInstance)
	assert.Len(t, store.events, 9)

	_, err = svc.Schedule(ctx, 7, &nlp.Schedule{Activity: "Meeting"})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestServiceScheduleStoreError(t *testing.T) {
	store := &memStore{fail: errors.New("db down")}
	svc := NewService(store, 4, time.UTC)
	_, err := svc.Schedule(context.Background(), 7, &nlp.Schedule{
		Activity: "Gym", Instant: at(10, 18, 0, 0), IsValid: true,
		IsRecurring: true, Weekdays: []time.Weekday{time.Monday},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestServiceQueries(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := NewService(store, 4, time.UTC)
	for _, e := range []Event{
		{UserID: 7, Title: "Old review", Instant: at(10, 10, 9, 0)},
		{UserID: 7, Title: "Dentist", Instant: at(10, 20, 15, 0)},
		{UserID: 7, Title: "Lunch", Instant: at(10, 20, 12, 0)},
		{UserID: 7, Title: "Party", Instant: at(11, 1, 20, 0)},
		{UserID: 8, Title: "Someone else", Instant: at(10, 20, 8, 0)},
	} {
		_, _ = store.Create(ctx, e)
	}

	agenda, err := svc.Agenda(ctx, 7, at(10, 20, 23, 59))
	require.NoError(t, err)
	require.Len(t, agenda, 2)
	assert.Equal(t, "Lunch", agenda[0].Title)

	month, err := svc.Month(ctx, 7, 2026, time.October)
	require.NoError(t, err)
	assert.Len(t, month, 3)

	upcoming, err := svc.Upcoming(ctx, 7, at(10, 18, 10, 0), 2)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Lunch", upcoming[0].Title)
}

func TestServiceRescheduleAndDelete(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := NewService(store, 4, time.UTC)
	_, _ = store.Create(ctx, Event{UserID: 7, Title: "Dentist", TimeLabel: "3:30pm", Instant: at(10, 20, 15, 30)})

	moved, err := svc.Reschedule(ctx, 7, "dentist", at(11, 3, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, at(11, 3, 15, 30), moved.Instant)
	assert.Equal(t, at(11, 3, 15, 30), store.events[0].Instant)

	_, err = svc.Reschedule(ctx, 7, "haircut", at(11, 3, 0, 0))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Delete(ctx, 8, "dentist")
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := svc.Delete(ctx, 7, "dentst")
	require.NoError(t, err)
	assert.Equal(t, "Dentist", deleted.Title)
	assert.Empty(t, store.events)
}

func TestServiceNuke(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := NewService(store, 4, time.UTC)
	_, _ = store.Create(ctx, Event{UserID: 7, Title: "A", Instant: at(10, 20, 0, 0)})
	_, _ = store.Create(ctx, Event{UserID: 7, Title: "B", Instant: at(10, 21, 0, 0)})
	_, _ = store.Create(ctx, Event{UserID: 8, Title: "C", Instant: at(10, 21, 0, 0)})

	n, err := svc.Nuke(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Len(t, store.events, 1)
}

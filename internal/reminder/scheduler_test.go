package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/zhafrantharif/ram-assistant/internal/i18n"
	"github.com/zhafrantharif/ram-assistant/internal/module/event"
)

type fakeRepo struct {
	due    []event.Event
	err    error
	marked []int
}

func (f *fakeRepo) ListDueFollowUps(_ context.Context, _ time.Time) ([]event.Event, error) {
	return f.due, f.err
}

func (f *fakeRepo) MarkFollowedUp(_ context.Context, id int) error {
	f.marked = append(f.marked, id)
	return nil
}

type fakeSender struct {
	sent   map[string]string
	failTo string
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	if to.Recipient() == f.failTo {
		return nil, errors.New("blocked by user")
	}
	if f.sent == nil {
		f.sent = map[string]string{}
	}
	f.sent[to.Recipient()] = what.(string)
	return &tele.Message{}, nil
}

func language(userID int64) i18n.Language {
	if userID == 2 {
		return i18n.Spanish
	}
	return i18n.English
}

func TestFollowUpMessage(t *testing.T) {
	e := event.Event{Title: "Dentist", Instant: time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)}
	assert.Equal(t, `Did you get to "Dentist"? It was at 03:30 PM.`, FollowUpMessage(e, i18n.English, time.UTC))
	assert.Equal(t, `¿Pudiste hacer "Dentist"? Estaba a las 15:30.`, FollowUpMessage(e, i18n.Spanish, time.UTC))
}

func TestSchedulerTick(t *testing.T) {
	at := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	repo := &fakeRepo{due: []event.Event{
		{ID: 10, UserID: 1, Title: "Standup", Instant: at},
		{ID: 11, UserID: 2, Title: "Gimnasio", Instant: at},
		{ID: 12, UserID: 3, Title: "Lunch", Instant: at},
	}}
	sender := &fakeSender{failTo: "3"}
	sched := NewScheduler(repo, sender, language, time.Second, time.UTC)

	sched.tick(at.Add(time.Minute))

	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent["1"], "Standup")
	assert.Contains(t, sender.sent["2"], "Gimnasio")
	assert.Equal(t, []int{10, 11}, repo.marked)
}

func TestSchedulerTickListError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	sender := &fakeSender{}
	sched := NewScheduler(repo, sender, language, time.Second, time.UTC)

	sched.tick(time.Now())

	assert.Empty(t, sender.sent)
	assert.Empty(t, repo.marked)
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	sched := NewScheduler(&fakeRepo{}, &fakeSender{}, language, time.Hour, time.UTC)
	done := make(chan struct{})
	go func() {
		sched.Start()
		close(done)
	}()
	sched.Stop()
	sched.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

package focus

import (
	"sync"
	"time"
)

type Mode int

const (
	ModeFocus Mode = iota
	ModeBreak
)

func (m Mode) String() string {
	if m == ModeBreak {
		return "break"
	}
	return "focus"
}

// Session is the state of one user's Pomodoro timer.
type Session struct {
	Mode      Mode
	Running   bool
	EndsAt    time.Time
	Remaining time.Duration
	Completed int
}

// Transition describes a phase that ran out. LoggedMinutes is non-zero when a
// focus phase completed and must be written to the log.
type Transition struct {
	UserID        int64
	From          Mode
	To            Mode
	LoggedMinutes int
	DateKey       string
}

// Timer keeps every user's Pomodoro session in memory.
type Timer struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	focus    time.Duration
	pause    time.Duration
}

func NewTimer(focus, pause time.Duration) *Timer {
	return &Timer{
		sessions: make(map[int64]*Session),
		focus:    focus,
		pause:    pause,
	}
}

func (t *Timer) session(userID int64) *Session {
	s, ok := t.sessions[userID]
	if !ok {
		s = &Session{Mode: ModeFocus, Remaining: t.focus}
		t.sessions[userID] = s
	}
	return s
}

func (t *Timer) duration(m Mode) time.Duration {
	if m == ModeBreak {
		return t.pause
	}
	return t.focus
}

// Start runs the current phase from where it was paused.
func (t *Timer) Start(userID int64, now time.Time) Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.session(userID)
	if !s.Running {
		if s.Remaining <= 0 {
			s.Remaining = t.duration(s.Mode)
		}
		s.Running = true
		s.EndsAt = now.Add(s.Remaining)
	}
	return snapshot(s, now)
}

func (t *Timer) Pause(userID int64, now time.Time) Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.session(userID)
	if s.Running {
		s.Remaining = max(s.EndsAt.Sub(now), 0)
		s.Running = false
	}
	return snapshot(s, now)
}

// Reset stops the timer and returns it to a full focus phase. The count of
// completed sessions is kept.
func (t *Timer) Reset(userID int64) Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.session(userID)
	s.Mode = ModeFocus
	s.Running = false
	s.EndsAt = time.Time{}
	s.Remaining = t.focus
	return *s
}

func (t *Timer) Status(userID int64, now time.Time) Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	return snapshot(t.session(userID), now)
}

// Due lists users whose running phase has ended at now.
func (t *Timer) Due(now time.Time) []int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	var ids []int64
	for id, s := range t.sessions {
		if s.Running && !now.Before(s.EndsAt) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Advance moves a finished phase on. A finished focus phase counts as
// completed and starts the break; a finished break returns to a stopped focus
// phase.
func (t *Timer) Advance(userID int64, now time.Time) (Transition, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[userID]
	if !ok || !s.Running || now.Before(s.EndsAt) {
		return Transition{}, false
	}

	tr := Transition{UserID: userID, From: s.Mode}
	switch s.Mode {
	case ModeFocus:
		s.Completed++
		s.Mode = ModeBreak
		s.Remaining = t.pause
		s.EndsAt = now.Add(t.pause)
		tr.LoggedMinutes = int(t.focus / time.Minute)
		tr.DateKey = now.Format(DateKey)
	case ModeBreak:
		s.Mode = ModeFocus
		s.Running = false
		s.Remaining = t.focus
		s.EndsAt = time.Time{}
	}
	tr.To = s.Mode
	return tr, true
}

func snapshot(s *Session, now time.Time) Session {
	out := *s
	if out.Running {
		out.Remaining = max(out.EndsAt.Sub(now), 0)
	}
	return out
}

package session

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/zhafrantharif/ram-assistant/internal/i18n"
	"github.com/zhafrantharif/ram-assistant/internal/nlp"
)

// rateBurst is how many messages a user may send back to back.
const rateBurst = 5

// State is the per-user chat state kept between messages. Admin mode and the
// pending date override live only here and are lost on restart.
type State struct {
	Language i18n.Language
	Nickname string
	IsAdmin  bool
	Override *nlp.Override
	// Loaded is set once the stored profile has been merged in.
	Loaded bool
}

type entry struct {
	state   State
	limiter *rate.Limiter
}

// Store keeps the sessions of the most recently active users.
type Store struct {
	mu          sync.Mutex
	cache       *lru.Cache[int64, *entry]
	limit       rate.Limit
	defaultLang i18n.Language
}

// NewStore holds up to size sessions; perMinute <= 0 disables rate limiting.
func NewStore(size, perMinute int, defaultLang i18n.Language) (*Store, error) {
	cache, err := lru.New[int64, *entry](size)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &Store{cache: cache, limit: limit, defaultLang: defaultLang}, nil
}

func (s *Store) get(userID int64) *entry {
	e, ok := s.cache.Get(userID)
	if !ok {
		e = &entry{
			state:   State{Language: s.defaultLang},
			limiter: rate.NewLimiter(s.limit, rateBurst),
		}
		s.cache.Add(userID, e)
	}
	return e
}

func (s *Store) Get(userID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(userID).state
}

// Update applies fn to the user's state and returns the result.
func (s *Store) Update(userID int64, fn func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(userID)
	fn(&e.state)
	return e.state
}

// TakeOverride returns the pending date override and clears it, so it applies
// to exactly one message.
func (s *Store) TakeOverride(userID int64) *nlp.Override {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(userID)
	o := e.state.Override
	e.state.Override = nil
	return o
}

func (s *Store) Language(userID int64) i18n.Language {
	return s.Get(userID).Language
}

// Allow reports whether the user may send another message now.
func (s *Store) Allow(userID int64) bool {
	s.mu.Lock()
	e := s.get(userID)
	s.mu.Unlock()
	return e.limiter.Allow()
}

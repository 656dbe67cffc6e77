package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhafrantharif/ram-assistant/internal/i18n"
	"github.com/zhafrantharif/ram-assistant/internal/nlp"
)

func TestStoreDefaults(t *testing.T) {
	store, err := NewStore(4, 30, i18n.Spanish)
	require.NoError(t, err)

	st := store.Get(1)
	assert.Equal(t, i18n.Spanish, st.Language)
	assert.False(t, st.IsAdmin)
	assert.False(t, st.Loaded)
	assert.Nil(t, st.Override)
}

func TestStoreUpdate(t *testing.T) {
	store, err := NewStore(4, 30, i18n.English)
	require.NoError(t, err)

	st := store.Update(1, func(s *State) {
		s.IsAdmin = true
		s.Nickname = "Alex"
	})
	assert.True(t, st.IsAdmin)
	assert.Equal(t, "Alex", store.Get(1).Nickname)
	assert.False(t, store.Get(2).IsAdmin)
}

func TestStoreTakeOverride(t *testing.T) {
	store, err := NewStore(4, 30, i18n.English)
	require.NoError(t, err)

	o := &nlp.Override{Time: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)}
	store.Update(1, func(s *State) { s.Override = o })

	assert.Same(t, o, store.TakeOverride(1))
	assert.Nil(t, store.TakeOverride(1))
}

func TestStoreEvictsLeastRecent(t *testing.T) {
	store, err := NewStore(2, 30, i18n.English)
	require.NoError(t, err)

	store.Update(1, func(s *State) { s.IsAdmin = true })
	store.Get(2)
	store.Get(3)

	assert.False(t, store.Get(1).IsAdmin)
}

func TestStoreAllow(t *testing.T) {
	store, err := NewStore(4, 1, i18n.English)
	require.NoError(t, err)

	for i := 0; i < rateBurst; i++ {
		assert.True(t, store.Allow(1), i)
	}
	assert.False(t, store.Allow(1))
	assert.True(t, store.Allow(2))

	unlimited, err := NewStore(4, 0, i18n.English)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		require.True(t, unlimited.Allow(1))
	}
}

func TestNewStoreRejectsZeroSize(t *testing.T) {
	_, err := NewStore(0, 30, i18n.English)
	assert.Error(t, err)
}

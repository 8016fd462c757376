package state_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/20mouhcine/jobgate-client/internal/domain"
	"github.com/20mouhcine/jobgate-client/internal/state"
	"github.com/20mouhcine/jobgate-client/internal/state/dao"
)

func newTestStore(t *testing.T) *state.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state.db")
	db, err := dao.Open(path)
	require.NoError(t, err)

	return state.NewStore(dao.NewStateDAO(db), path)
}

func TestToken(t *testing.T) {
	ctx := context.Background()

	t.Run("absent token reads as empty, not as an error", func(t *testing.T) {
		store := newTestStore(t)

		token, err := store.Token(ctx)

		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("save then read round-trips", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.SaveToken(ctx, "first"))
		token, err := store.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "first", token)

		// A later login overwrites the single credential row.
		require.NoError(t, store.SaveToken(ctx, "second"))
		token, err = store.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second", token)
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.SaveToken(ctx, "doomed"))
		require.NoError(t, store.ClearToken(ctx))
		require.NoError(t, store.ClearToken(ctx))

		token, err := store.Token(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}

func TestRegisteredFlags(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	registered, err := store.IsRegistered(ctx, 5)
	require.NoError(t, err)
	assert.False(t, registered)

	require.NoError(t, store.MarkRegistered(ctx, 5))
	// Marking twice must not fail.
	require.NoError(t, store.MarkRegistered(ctx, 5))

	registered, err = store.IsRegistered(ctx, 5)
	require.NoError(t, err)
	assert.True(t, registered)

	// The flag is per event.
	registered, err = store.IsRegistered(ctx, 6)
	require.NoError(t, err)
	assert.False(t, registered)
}

func TestEventCache(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	events := []domain.Event{
		{
			ID:        2,
			Title:     "Autumn Job Dating",
			StartDate: time.Date(2025, 10, 6, 9, 0, 0, 0, time.UTC),
			Location:  "Rabat",
		},
		{
			ID:                5,
			Title:             "Spring Career Fair",
			StartDate:         time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC),
			Location:          "Casablanca",
			IsTimeSlotEnabled: true,
		},
	}

	require.NoError(t, store.CacheEvents(ctx, events))

	cached, err := store.CachedEvents(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 2)

	// Listed by start date, not by insertion order.
	assert.Equal(t, uint(5), cached[0].ID)
	assert.True(t, cached[0].IsTimeSlotEnabled)
	assert.Equal(t, uint(2), cached[1].ID)

	// A fresh listing replaces the cache wholesale.
	require.NoError(t, store.CacheEvents(ctx, events[:1]))
	cached, err = store.CachedEvents(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "Autumn Job Dating", cached[0].Title)

	// An empty listing empties the cache.
	require.NoError(t, store.CacheEvents(ctx, nil))
	cached, err = store.CachedEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached)
}

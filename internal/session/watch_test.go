package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	t.Run("demotes the session when the credential disappears", func(t *testing.T) {
		statePath := filepath.Join(t.TempDir(), "state.db")
		require.NoError(t, os.WriteFile(statePath, []byte("seed"), 0o600))

		fix := testFixture()
		tokens := &memTokens{token: fix.Token}
		store, _, done := newTestStore(t, fix, tokens)
		defer done()

		store.Bootstrap(context.Background())
		require.True(t, store.IsAuthenticated())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		watchDone := make(chan error, 1)
		go func() {
			watchDone <- store.Watch(ctx, statePath)
		}()

		// Another process logs out: the credential goes away and the
		// backing file changes.
		require.NoError(t, tokens.ClearToken(context.Background()))
		require.NoError(t, os.WriteFile(statePath, []byte("changed"), 0o600))

		assert.Eventually(t, func() bool {
			return !store.IsAuthenticated()
		}, 5*time.Second, 10*time.Millisecond)

		cancel()
		assert.ErrorIs(t, <-watchDone, context.Canceled)
	})

	t.Run("fails fast when the state file does not exist", func(t *testing.T) {
		fix := testFixture()
		tokens := &memTokens{}
		store, _, done := newTestStore(t, fix, tokens)
		defer done()

		err := store.Watch(context.Background(), filepath.Join(t.TempDir(), "missing.db"))

		assert.Error(t, err)
	})
}

package evaluation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/20mouhcine/jobgate-client/internal/domain"
	"github.com/20mouhcine/jobgate-client/internal/workflow/evaluation"
)

type fakeParticipations struct {
	mu sync.Mutex

	participation domain.Participation
	detailsErr    error
	updateErr     error
	updates       []domain.Evaluation

	// When non-nil, UpdateParticipationDetails blocks until released.
	updateStarted chan struct{}
	updateRelease chan struct{}
}

func (f *fakeParticipations) ParticipationDetails(_ context.Context, _, _ uint) (domain.Participation, error) {
	if f.detailsErr != nil {
		return domain.Participation{}, f.detailsErr
	}

	return f.participation, nil
}

func (f *fakeParticipations) UpdateParticipationDetails(_ context.Context, _, _ uint, eval domain.Evaluation) (domain.Evaluation, error) {
	if f.updateStarted != nil {
		f.updateStarted <- struct{}{}
		<-f.updateRelease
	}

	f.mu.Lock()
	f.updates = append(f.updates, eval)
	f.mu.Unlock()

	if f.updateErr != nil {
		return domain.Evaluation{}, f.updateErr
	}

	return eval, nil
}

func (f *fakeParticipations) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.updates)
}

func testParticipation() domain.Participation {
	return domain.Participation{
		ID: 11,
		Talent: domain.Identity{
			ID:        42,
			FirstName: "Sara",
			LastName:  "El Amrani",
			Email:     "sara@example.com",
			Role:      domain.RoleTalent,
		},
		DateInscription: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
		Note:            3,
		Comment:         "solid first interview",
		HasAttended:     true,
	}
}

func loadedSession(t *testing.T, fake *fakeParticipations) *evaluation.Session {
	t.Helper()

	sess := evaluation.NewSession(fake, 5, 42)
	require.NoError(t, sess.Load(context.Background()))

	return sess
}

func TestLoad(t *testing.T) {
	t.Run("aligns draft and snapshot on the server copy", func(t *testing.T) {
		fake := &fakeParticipations{participation: testParticipation()}
		sess := loadedSession(t, fake)

		want := domain.EvaluationOf(fake.participation)
		assert.Equal(t, want, sess.Snapshot())
		assert.Equal(t, want, sess.Draft())
		assert.False(t, sess.Dirty())
	})

	t.Run("failure leaves the session unusable", func(t *testing.T) {
		fake := &fakeParticipations{detailsErr: errors.New("boom")}
		sess := evaluation.NewSession(fake, 5, 42)

		require.Error(t, sess.Load(context.Background()))
		assert.ErrorIs(t, sess.SetComment("x"), evaluation.ErrNotLoaded)
		assert.ErrorIs(t, sess.Commit(context.Background()), evaluation.ErrNotLoaded)
		assert.ErrorIs(t, sess.Discard(), evaluation.ErrNotLoaded)
	})
}

func TestDirty(t *testing.T) {
	t.Run("setting a field to its current value stays clean", func(t *testing.T) {
		fake := &fakeParticipations{participation: testParticipation()}
		sess := loadedSession(t, fake)

		require.NoError(t, sess.SetNote(3))
		require.NoError(t, sess.SetComment("solid first interview"))
		require.NoError(t, sess.SetAttended(true))

		assert.False(t, sess.Dirty())
	})

	t.Run("reverting every edit cleans the session again", func(t *testing.T) {
		fake := &fakeParticipations{participation: testParticipation()}
		sess := loadedSession(t, fake)

		require.NoError(t, sess.SetNote(5))
		require.NoError(t, sess.SetSelected(true))
		assert.True(t, sess.Dirty())

		require.NoError(t, sess.SetNote(3))
		require.NoError(t, sess.SetSelected(false))
		assert.False(t, sess.Dirty())
	})

	t.Run("note outside 1..5 is rejected without touching the draft", func(t *testing.T) {
		fake := &fakeParticipations{participation: testParticipation()}
		sess := loadedSession(t, fake)

		assert.ErrorIs(t, sess.SetNote(0), evaluation.ErrInvalidNote)
		assert.ErrorIs(t, sess.SetNote(6), evaluation.ErrInvalidNote)
		assert.False(t, sess.Dirty())
	})
}

func TestDiscard(t *testing.T) {
	t.Run("restores the snapshot without a network call", func(t *testing.T) {
		fake := &fakeParticipations{participation: testParticipation()}
		sess := loadedSession(t, fake)

		require.NoError(t, sess.SetNote(5))
		require.NoError(t, sess.SetComment("changed my mind"))
		require.NoError(t, sess.Discard())

		assert.False(t, sess.Dirty())
		assert.Equal(t, sess.Snapshot(), sess.Draft())
		assert.Equal(t, 0, fake.updateCount())
	})

	t.Run("refuses on a clean session", func(t *testing.T) {
		fake := &fakeParticipations{participation: testParticipation()}
		sess := loadedSession(t, fake)

		assert.ErrorIs(t, sess.Discard(), evaluation.ErrNoChanges)
	})
}

func TestCommit(t *testing.T) {
	t.Run("success advances the snapshot to the server echo", func(t *testing.T) {
		fake := &fakeParticipations{participation: testParticipation()}
		sess := loadedSession(t, fake)

		require.NoError(t, sess.SetNote(4))
		require.NoError(t, sess.SetSelected(true))
		require.NoError(t, sess.Commit(context.Background()))

		assert.False(t, sess.Dirty())
		assert.Equal(t, 4, sess.Snapshot().Note)
		assert.True(t, sess.Snapshot().IsSelected)

		// A discard right after a successful save has nothing to undo.
		assert.ErrorIs(t, sess.Discard(), evaluation.ErrNoChanges)
		assert.Equal(t, 1, fake.updateCount())
	})

	t.Run("refuses on a clean session", func(t *testing.T) {
		fake := &fakeParticipations{participation: testParticipation()}
		sess := loadedSession(t, fake)

		assert.ErrorIs(t, sess.Commit(context.Background()), evaluation.ErrNoChanges)
		assert.Equal(t, 0, fake.updateCount())
	})

	t.Run("failure keeps the draft for retry", func(t *testing.T) {
		fake := &fakeParticipations{
			participation: testParticipation(),
			updateErr:     errors.New("503 from upstream"),
		}
		sess := loadedSession(t, fake)

		require.NoError(t, sess.SetComment("strong system design round"))
		require.Error(t, sess.Commit(context.Background()))

		assert.True(t, sess.Dirty())
		assert.Equal(t, "strong system design round", sess.Draft().Comment)
		assert.Equal(t, "solid first interview", sess.Snapshot().Comment)
		assert.False(t, sess.Saving())

		// Retry with the same draft succeeds once the server recovers.
		fake.updateErr = nil
		require.NoError(t, sess.Commit(context.Background()))
		assert.False(t, sess.Dirty())
	})

	t.Run("edits made while a commit is in flight survive it", func(t *testing.T) {
		fake := &fakeParticipations{
			participation: testParticipation(),
			updateStarted: make(chan struct{}),
			updateRelease: make(chan struct{}),
		}
		sess := loadedSession(t, fake)
		require.NoError(t, sess.SetNote(5))

		done := make(chan error, 1)
		go func() {
			done <- sess.Commit(context.Background())
		}()

		<-fake.updateStarted
		require.NoError(t, sess.SetComment("second thoughts"))

		close(fake.updateRelease)
		require.NoError(t, <-done)

		// The snapshot advances to what the server saved; the newer edit
		// stays pending in the draft.
		assert.Equal(t, 5, sess.Snapshot().Note)
		assert.Equal(t, "solid first interview", sess.Snapshot().Comment)
		assert.Equal(t, "second thoughts", sess.Draft().Comment)
		assert.True(t, sess.Dirty())
	})

	t.Run("a second commit while one is in flight is rejected", func(t *testing.T) {
		fake := &fakeParticipations{
			participation: testParticipation(),
			updateStarted: make(chan struct{}),
			updateRelease: make(chan struct{}),
		}
		sess := loadedSession(t, fake)
		require.NoError(t, sess.SetNote(5))

		firstDone := make(chan error, 1)
		go func() {
			firstDone <- sess.Commit(context.Background())
		}()

		<-fake.updateStarted
		assert.True(t, sess.Saving())
		assert.ErrorIs(t, sess.Commit(context.Background()), evaluation.ErrCommitInFlight)

		close(fake.updateRelease)
		require.NoError(t, <-firstDone)
		assert.False(t, sess.Saving())
		assert.Equal(t, 1, fake.updateCount())
	})
}

package evaluation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/20mouhcine/jobgate-client/internal/domain"
)

var (
	ErrNotLoaded      = errors.New("evaluation session is not loaded")
	ErrNoChanges      = errors.New("no changes to apply")
	ErrCommitInFlight = errors.New("a commit is already in flight")
	ErrInvalidNote    = errors.New("note must be between 1 and 5")
)

type ParticipationClient interface {
	ParticipationDetails(ctx context.Context, eventID, talentID uint) (domain.Participation, error)
	UpdateParticipationDetails(ctx context.Context, eventID, talentID uint, eval domain.Evaluation) (domain.Evaluation, error)
}

// Session lets a recruiter edit one participation's evaluation with
// explicit save/discard. It never auto-saves: a draft diverges from the
// last committed snapshot until Commit or Discard.
type Session struct {
	client   ParticipationClient
	eventID  uint
	talentID uint

	mu            sync.Mutex
	participation domain.Participation
	draft         domain.Evaluation
	snapshot      domain.Evaluation
	loaded        bool
	saving        bool
}

func NewSession(client ParticipationClient, eventID, talentID uint) *Session {
	return &Session{
		client:   client,
		eventID:  eventID,
		talentID: talentID,
	}
}

// Load fetches the participation and aligns draft and snapshot on it.
func (s *Session) Load(ctx context.Context) error {
	participation, err := s.client.ParticipationDetails(ctx, s.eventID, s.talentID)
	if err != nil {
		return fmt.Errorf("s.client.ParticipationDetails -> %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.participation = participation
	s.snapshot = domain.EvaluationOf(participation)
	s.draft = s.snapshot
	s.loaded = true

	return nil
}

// SetNote accepts 1..5 only; 0 is the server's "unrated" marker and is
// not settable through this control.
func (s *Session) SetNote(note int) error {
	if note < 1 || note > 5 {
		return ErrInvalidNote
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	s.draft.Note = note

	return nil
}

func (s *Session) SetComment(comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	s.draft.Comment = comment

	return nil
}

func (s *Session) SetAttended(attended bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	s.draft.HasAttended = attended

	return nil
}

func (s *Session) SetSelected(selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	s.draft.IsSelected = selected

	return nil
}

// Dirty is recomputed from the draft/snapshot pair: setting a field to
// its current value never dirties a clean session, and reverting every
// field cleans a dirty one.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loaded && !s.draft.Equal(s.snapshot)
}

func (s *Session) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saving
}

func (s *Session) Draft() domain.Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.draft
}

func (s *Session) Snapshot() domain.Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot
}

// Participation returns the loaded participation (talent identity,
// inscription date, slot) for display.
func (s *Session) Participation() domain.Participation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.participation
}

// Commit PUTs the draft. It refuses to run on a clean session and while
// another commit is in flight, so two saves can never race on the same
// participation. On failure the draft is kept for retry.
func (s *Session) Commit(ctx context.Context) error {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	if s.saving {
		s.mu.Unlock()
		return ErrCommitInFlight
	}
	if s.draft.Equal(s.snapshot) {
		s.mu.Unlock()
		return ErrNoChanges
	}
	s.saving = true
	draft := s.draft
	s.mu.Unlock()

	updated, err := s.client.UpdateParticipationDetails(ctx, s.eventID, s.talentID, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false

	if err != nil {
		zap.L().Warn("evaluation: commit failed, draft kept",
			zap.Uint("event_id", s.eventID),
			zap.Uint("talent_id", s.talentID),
			zap.Error(err),
		)

		return fmt.Errorf("s.client.UpdateParticipationDetails -> %w", err)
	}

	s.snapshot = updated
	// Edits made while the request was in flight stay in the draft and
	// keep the session dirty against the new snapshot.
	if s.draft.Equal(draft) {
		s.draft = updated
	}

	return nil
}

// Discard drops the draft back to the snapshot. No network call.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}
	if s.draft.Equal(s.snapshot) {
		return ErrNoChanges
	}

	s.draft = s.snapshot

	return nil
}

package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/20mouhcine/jobgate-client/internal/domain"
	"github.com/20mouhcine/jobgate-client/internal/state/dao"
)

var (
	ErrCredentialNotFound = dao.ErrCredentialNotFound
)

type StateDAO interface {
	UpsertCredential(ctx context.Context, token string) error
	FindCredential(ctx context.Context) (dao.Credential, error)
	DeleteCredential(ctx context.Context) error
	UpsertRegistration(ctx context.Context, eventID uint) error
	FindRegistration(ctx context.Context, eventID uint) (dao.Registration, error)
	ReplaceCachedEvents(ctx context.Context, events []dao.CachedEvent) error
	FindCachedEvents(ctx context.Context) ([]dao.CachedEvent, error)
}

// Store is the durable client-side state: the bearer credential, the
// per-event "already registered" flags, and a non-authoritative event
// cache for offline listings.
type Store struct {
	dao  StateDAO
	path string
}

func NewStore(dao StateDAO, path string) *Store {
	return &Store{
		dao:  dao,
		path: path,
	}
}

// Path is the backing file, exposed so the session store can watch it.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) SaveToken(ctx context.Context, token string) error {
	if err := s.dao.UpsertCredential(ctx, token); err != nil {
		return fmt.Errorf("s.dao.UpsertCredential -> %w", err)
	}

	return nil
}

// Token returns the persisted bearer token, or "" when none is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	cred, err := s.dao.FindCredential(ctx)
	if err != nil {
		if errors.Is(err, dao.ErrCredentialNotFound) {
			return "", nil
		}

		return "", fmt.Errorf("s.dao.FindCredential -> %w", err)
	}

	return cred.AccessToken, nil
}

// ClearToken removes the credential. Safe to call when none is stored.
func (s *Store) ClearToken(ctx context.Context) error {
	if err := s.dao.DeleteCredential(ctx); err != nil {
		return fmt.Errorf("s.dao.DeleteCredential -> %w", err)
	}

	return nil
}

func (s *Store) MarkRegistered(ctx context.Context, eventID uint) error {
	if err := s.dao.UpsertRegistration(ctx, eventID); err != nil {
		return fmt.Errorf("s.dao.UpsertRegistration -> %w", err)
	}

	return nil
}

// IsRegistered reports the local flag only; the server remains the
// authority on actual registrations.
func (s *Store) IsRegistered(ctx context.Context, eventID uint) (bool, error) {
	_, err := s.dao.FindRegistration(ctx, eventID)
	if err != nil {
		if errors.Is(err, dao.ErrEventNotRegistered) {
			return false, nil
		}

		return false, fmt.Errorf("s.dao.FindRegistration -> %w", err)
	}

	return true, nil
}

func (s *Store) CacheEvents(ctx context.Context, events []domain.Event) error {
	rows := make([]dao.CachedEvent, 0, len(events))
	now := time.Now()
	for _, e := range events {
		rows = append(rows, dao.CachedEvent{
			ID:                e.ID,
			Title:             e.Title,
			StartDate:         e.StartDate,
			EndDate:           e.EndDate,
			Location:          e.Location,
			Description:       e.Description,
			IsTimeSlotEnabled: e.IsTimeSlotEnabled,
			CachedAt:          now,
		})
	}

	if err := s.dao.ReplaceCachedEvents(ctx, rows); err != nil {
		return fmt.Errorf("s.dao.ReplaceCachedEvents -> %w", err)
	}

	return nil
}

func (s *Store) CachedEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.dao.FindCachedEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.dao.FindCachedEvents -> %w", err)
	}

	events := make([]domain.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, domain.Event{
			ID:                row.ID,
			Title:             row.Title,
			StartDate:         row.StartDate,
			EndDate:           row.EndDate,
			Location:          row.Location,
			Description:       row.Description,
			IsTimeSlotEnabled: row.IsTimeSlotEnabled,
		})
	}

	return events, nil
}

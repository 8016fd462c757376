package session

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch observes the state file backing the token store and demotes the
// session when another process removes the credential (the cross-tab
// logout case). The shared state is last-write-wins; this only narrows
// the window in which a stale login is shown. Blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, statePath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("session.Watch -> fsnotify.NewWatcher -> %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(statePath); err != nil {
		return fmt.Errorf("session.Watch -> watcher.Add -> %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			s.reconcile(ctx)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			zap.L().Warn("session: state watcher error", zap.Error(werr))
		}
	}
}

func (s *Store) reconcile(ctx context.Context) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		zap.L().Warn("session: re-reading token failed", zap.Error(err))

		return
	}

	if token == "" && s.IsAuthenticated() {
		zap.L().Info("session: credential removed externally, logging out")
		s.SetIdentity(nil)
	}
}

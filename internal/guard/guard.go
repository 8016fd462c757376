package guard

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrLoginRequired        = errors.New("login required")
	ErrAlreadyAuthenticated = errors.New("already logged in; log out first")
)

// publicCommands may run without a credential; running them while a
// credential exists is refused instead, mirroring the redirect away
// from auth pages.
var publicCommands = map[string]bool{
	"login":  true,
	"signup": true,
}

// tokenExempt commands run with or without a credential: logging out
// while already logged out is a no-op, not an error.
var tokenExempt = map[string]bool{
	"logout": true,
}

type TokenReader interface {
	Token(ctx context.Context) (string, error)
}

// Guard gates commands on the presence of the persisted token only. It
// deliberately does not wait for the session bootstrap to resolve an
// identity: a stale-but-present token passes, and the command's own
// API calls fail gracefully with a 401.
type Guard struct {
	tokens TokenReader
}

func New(tokens TokenReader) *Guard {
	return &Guard{
		tokens: tokens,
	}
}

func (g *Guard) Check(ctx context.Context, command string) error {
	token, err := g.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("g.tokens.Token -> %w", err)
	}

	if publicCommands[command] {
		if token != "" {
			return ErrAlreadyAuthenticated
		}

		return nil
	}

	if token == "" && !tokenExempt[command] {
		return ErrLoginRequired
	}

	return nil
}

func IsPublic(command string) bool {
	return publicCommands[command]
}

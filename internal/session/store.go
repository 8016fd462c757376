package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/20mouhcine/jobgate-client/internal/api"
	"github.com/20mouhcine/jobgate-client/internal/api/apierror"
	"github.com/20mouhcine/jobgate-client/internal/domain"
)

// State of the session store. Bootstrap moves Uninitialized through
// Loading to a terminal Authenticated or Anonymous; Login, Logout and a
// 401 move between the two terminals.
type State int

const (
	Uninitialized State = iota
	Loading
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

type AuthClient interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
	Profile(ctx context.Context) (domain.Identity, error)
}

type TokenStore interface {
	SaveToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, error)
	ClearToken(ctx context.Context) error
}

// Store is the single source of truth for "who is logged in". It is
// constructed once at startup and passed by reference to every
// consumer; no ambient singleton.
type Store struct {
	client AuthClient
	tokens TokenStore

	mu       sync.Mutex
	state    State
	identity *domain.Identity
}

func NewStore(client AuthClient, tokens TokenStore) *Store {
	return &Store{
		client: client,
		tokens: tokens,
		state:  Uninitialized,
	}
}

// Bootstrap resolves the persisted token into an identity. It never
// returns an error: every failure path degrades to Anonymous, and only
// a definitive 401 (or a locally expired token) destroys the credential.
func (s *Store) Bootstrap(ctx context.Context) {
	s.setLoading()

	token, err := s.tokens.Token(ctx)
	if err != nil {
		zap.L().Warn("session: reading stored token failed", zap.Error(err))
		s.resolve(nil)

		return
	}
	if token == "" {
		s.resolve(nil)

		return
	}

	if tokenExpired(token) {
		zap.L().Debug("session: stored token is expired, clearing it")
		if err := s.tokens.ClearToken(ctx); err != nil {
			zap.L().Warn("session: clearing expired token failed", zap.Error(err))
		}
		s.resolve(nil)

		return
	}

	identity, err := s.client.Profile(ctx)
	if err != nil {
		if apierror.IsUnauthorized(err) {
			if cerr := s.tokens.ClearToken(ctx); cerr != nil {
				zap.L().Warn("session: clearing rejected token failed", zap.Error(cerr))
			}
		} else {
			// Transient failure: keep the credential, degrade to the
			// logged-out UI.
			zap.L().Warn("session: profile fetch failed", zap.Error(err))
		}
		s.resolve(nil)

		return
	}

	s.resolve(&identity)
}

// Login authenticates and persists the credential. It reports success
// as a bare boolean; on any failure neither the identity nor the stored
// token changes.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	s.setLoading()
	defer s.clearLoading()

	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		zap.L().Info("session: login failed", zap.String("kind", apierror.KindOf(err).String()))

		return false
	}

	if err := s.tokens.SaveToken(ctx, result.AccessToken); err != nil {
		zap.L().Error("session: persisting token failed", zap.Error(err))

		return false
	}

	s.mu.Lock()
	s.identity = &result.Identity
	s.state = Authenticated
	s.mu.Unlock()

	return true
}

// Logout clears the credential before touching the identity, so a
// consumer reacting to the state change can never observe a stale
// token. Safe to call when already logged out.
func (s *Store) Logout() {
	if err := s.tokens.ClearToken(context.Background()); err != nil {
		zap.L().Warn("session: clearing token on logout failed", zap.Error(err))
	}

	s.mu.Lock()
	s.identity = nil
	s.state = Anonymous
	s.mu.Unlock()
}

// HandleUnauthorized is wired as the API client's 401 hook: a rejected
// credential on any authenticated call forces re-login.
func (s *Store) HandleUnauthorized() {
	s.Logout()
}

// SetIdentity replaces the identity without touching the token, used
// after profile edits. A nil identity demotes to Anonymous.
func (s *Store) SetIdentity(identity *domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = identity
	if identity == nil {
		s.state = Anonymous
	} else {
		s.state = Authenticated
	}
}

func (s *Store) Identity() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.identity
}

// IsAuthenticated is derived: it holds exactly when an identity is
// present, after every operation including failed ones.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.identity != nil
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state == Loading
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Store) setLoading() {
	s.mu.Lock()
	s.state = Loading
	s.mu.Unlock()
}

func (s *Store) clearLoading() {
	s.mu.Lock()
	if s.state == Loading {
		if s.identity != nil {
			s.state = Authenticated
		} else {
			s.state = Anonymous
		}
	}
	s.mu.Unlock()
}

func (s *Store) resolve(identity *domain.Identity) {
	s.mu.Lock()
	s.identity = identity
	if identity != nil {
		s.state = Authenticated
	} else {
		s.state = Anonymous
	}
	s.mu.Unlock()
}

// tokenExpired peeks at the exp claim without verifying the signature;
// verification is the server's job. Opaque (non-JWT) tokens are passed
// through to the server as-is.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}

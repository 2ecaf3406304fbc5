package planner

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Jaideepo7/Meal-Planner/internal/authapi"
	"github.com/Jaideepo7/Meal-Planner/internal/types"
)

// SessionState is the lifecycle of the authenticated identity.
//
//	Uninitialized -> Loading -> {Authenticated, Anonymous}
//
// Loading is entered once at process start while a persisted session token
// (if any) is validated. Authenticated and Anonymous are stable until an
// explicit login/logout transition.
type SessionState int

const (
	StateUninitialized SessionState = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateLoading:
		return "Loading"
	case StateAuthenticated:
		return "Authenticated"
	case StateAnonymous:
		return "Anonymous"
	default:
		return "Unknown"
	}
}

// identityObserver is implemented by everything scoped to the current
// identity. A nil identity means teardown: drop scoped state, cancel
// pending work, apply nothing stale afterwards.
type identityObserver interface {
	identityChanged(ctx context.Context, id *types.Identity)
}

// Session owns the authenticated identity and notifies dependents of
// identity changes. It is the only writer of Identity; observers get
// read-only copies.
type Session struct {
	mu       sync.Mutex
	state    SessionState
	identity *types.Identity
	token    string

	observers []identityObserver

	http    *http.Client
	authURL string
	apiKey  string
	tokens  *tokenFile
	log     zerolog.Logger
}

func newSession(httpClient *http.Client, authURL, apiKey string, tokens *tokenFile, log zerolog.Logger) *Session {
	return &Session{
		state:   StateUninitialized,
		http:    httpClient,
		authURL: authURL,
		apiKey:  apiKey,
		tokens:  tokens,
		log:     log,
	}
}

// subscribe registers an observer. Called during App construction only.
func (s *Session) subscribe(o identityObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentIdentity returns a copy of the established identity, or nil.
func (s *Session) CurrentIdentity() *types.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// Start validates the persisted session token, if any, and settles into
// Authenticated or Anonymous. Runs at most once; later calls are no-ops.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return nil
	}
	s.state = StateLoading
	s.mu.Unlock()

	token, _, err := s.tokens.load()
	if err != nil {
		s.log.Warn().Err(err).Msg("session token unreadable; starting anonymous")
	}
	if token == "" {
		s.setAnonymous()
		return nil
	}

	acct, err := authapi.LookupToken(ctx, s.http, s.authURL, s.apiKey, token)
	switch {
	case err == nil:
		s.establish(ctx, acct)
		return nil
	case errors.Is(err, types.ErrInvalidCredentials):
		// Token expired or revoked; drop it.
		if cerr := s.tokens.clear(); cerr != nil {
			s.log.Warn().Err(cerr).Msg("could not clear stale session token")
		}
		s.setAnonymous()
		return nil
	default:
		// Offline at startup: keep the token for the next launch but run
		// anonymous for this one.
		s.log.Warn().Err(err).Msg("session token validation failed; starting anonymous")
		s.setAnonymous()
		return nil
	}
}

// Login validates credentials against the auth provider. On success it
// establishes the new identity and triggers dependent reloads; on failure
// it returns a typed error without mutating state.
func (s *Session) Login(ctx context.Context, email, password string) (*types.Identity, error) {
	if err := types.ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	acct, err := authapi.SignInWithPassword(ctx, s.http, s.authURL, s.apiKey, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, acct), nil
}

// SignUp creates a new account, then behaves like Login.
func (s *Session) SignUp(ctx context.Context, displayName, email, password string) (*types.Identity, error) {
	if err := types.ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	acct, err := authapi.SignUp(ctx, s.http, s.authURL, s.apiKey, displayName, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, acct), nil
}

// Logout clears the identity and all scoped stores. Remote sign-out is best
// effort; local state is cleared regardless of the remote outcome.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.identity = nil
	s.token = ""
	s.state = StateAnonymous
	obs := s.observerSnapshot()
	s.mu.Unlock()

	if token != "" {
		if err := authapi.SignOut(ctx, s.http, s.authURL, s.apiKey, token); err != nil {
			s.log.Warn().Err(err).Msg("remote sign-out failed; local state cleared anyway")
		}
	}
	if err := s.tokens.clear(); err != nil {
		s.log.Warn().Err(err).Msg("could not clear session token file")
	}
	for _, o := range obs {
		o.identityChanged(ctx, nil)
	}
}

// RequestPasswordReset asks the provider to email a reset link.
func (s *Session) RequestPasswordReset(ctx context.Context, email string) error {
	return authapi.SendPasswordReset(ctx, s.http, s.authURL, s.apiKey, email)
}

// currentToken is read by the docstore transport on every request.
func (s *Session) currentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) establish(ctx context.Context, acct *authapi.Account) *types.Identity {
	id := &types.Identity{ID: acct.LocalID, Email: acct.Email, DisplayName: acct.DisplayName}

	s.mu.Lock()
	s.identity = id
	s.token = acct.IDToken
	s.state = StateAuthenticated
	obs := s.observerSnapshot()
	s.mu.Unlock()

	if err := s.tokens.save(acct.IDToken, id); err != nil {
		s.log.Warn().Err(err).Msg("could not persist session token")
	}
	for _, o := range obs {
		o.identityChanged(ctx, id)
	}

	out := *id
	return &out
}

func (s *Session) setAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.mu.Unlock()
}

// observerSnapshot must be called with s.mu held.
func (s *Session) observerSnapshot() []identityObserver {
	out := make([]identityObserver, len(s.observers))
	copy(out, s.observers)
	return out
}

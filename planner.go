// Package planner is the client-side engine of the Meal-Planner app: it
// keeps preference, pantry and stats state consistent with the remote
// document store under rapid local edits, and drives the AI meal-assistant
// conversation against a stateless completion endpoint.
//
// Construct one App at process start and pass it to whatever needs it;
// there are no package-level singletons.
package planner

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Jaideepo7/Meal-Planner/internal/genai"
)

// App wires the session manager, the identity-scoped stores and the
// conversation together. All fields are constructed once in New; the
// exported components are safe for concurrent use.
type App struct {
	cfg Config
	log zerolog.Logger

	Session      *Session
	Preferences  *PreferenceStore
	Pantry       *PantryStore
	Stats        *StatsStore
	Conversation *Conversation

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs the engine. Stores start empty and anonymous; call Start
// to validate a persisted session, or Session.Login directly.
func New(cfg Config, opts ...Option) (*App, error) {
	a := &App{cfg: cfg, log: log.Logger}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	// Auth calls authenticate via the provider API key, not the session
	// token, so they go through an unwrapped client.
	authHTTP := &http.Client{Timeout: a.cfg.HTTPTimeout}
	if debugLoggingRequested() {
		authHTTP.Transport = &debugTransport{base: http.DefaultTransport}
	}

	tokens := newTokenFile(a.cfg.TokenPath)
	a.Session = newSession(authHTTP, a.cfg.AuthURL, a.cfg.AuthAPIKey, tokens, a.log)

	// Document-store requests carry the current session token; the
	// transport reads it per request so a login mid-process takes effect
	// without rebuilding clients.
	docBase := http.RoundTripper(http.DefaultTransport)
	if debugLoggingRequested() {
		docBase = &debugTransport{base: docBase}
	}
	docHTTP := &http.Client{
		Timeout:   a.cfg.HTTPTimeout,
		Transport: &sessionTokenTransport{base: docBase, session: a.Session},
	}

	a.Preferences = newPreferenceStore(docHTTP, a.cfg.DocstoreURL, a.cfg.QuietPeriod, a.log)
	a.Pantry = newPantryStore(docHTTP, a.cfg.DocstoreURL, a.cfg.QuietPeriod, a.log)
	a.Stats = newStatsStore(docHTTP, a.cfg.DocstoreURL, a.cfg.QuietPeriod, a.log)

	ai := genai.New(a.cfg.CompletionURL, a.cfg.CompletionAPIKey, a.cfg.HTTPTimeout)
	a.Conversation = newConversation(a.Preferences, a.Pantry, ai, a.log)

	a.Session.subscribe(a.Preferences)
	a.Session.subscribe(a.Pantry)
	a.Session.subscribe(a.Stats)
	a.Session.subscribe(a.Conversation)

	return a, nil
}

// Start validates the persisted session token (if any) and settles the
// session into Authenticated or Anonymous. Stores reload automatically when
// a persisted identity is restored.
func (a *App) Start(ctx context.Context) error {
	return a.Session.Start(ctx)
}

// Close cancels pending debounced writes. Safe to call multiple times.
// Pending writes are discarded, not flushed, matching identity teardown.
func (a *App) Close() error {
	if !atomic.CompareAndSwapUint32(&a.closedOnce, 0, 1) {
		return nil
	}
	a.Preferences.close()
	a.Pantry.close()
	a.Stats.close()
	return nil
}

// sessionTokenTransport adds the current session token as a bearer
// credential to every document-store request.
type sessionTokenTransport struct {
	base    http.RoundTripper
	session *Session
}

func (t *sessionTokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok := t.session.currentToken()
	if tok == "" {
		return t.base.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+tok)
	return t.base.RoundTrip(cloned)
}

package planner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jaideepo7/Meal-Planner/internal/debounce"
	"github.com/Jaideepo7/Meal-Planner/internal/docstore"
	"github.com/Jaideepo7/Meal-Planner/internal/types"
)

const preferencesCollection = "userPreferences"

// PreferenceStore holds the current identity's cuisine, dietary and
// health-goal selections. Mutations apply locally at once and schedule a
// debounced remote write; reads never block on network.
type PreferenceStore struct {
	mu    sync.Mutex
	owner string // identity id; empty while anonymous
	prefs types.PreferenceSet

	http    *http.Client
	baseURL string
	writer  *debounce.Writer
	log     zerolog.Logger
}

func newPreferenceStore(httpClient *http.Client, baseURL string, quiet time.Duration, log zerolog.Logger) *PreferenceStore {
	s := &PreferenceStore{http: httpClient, baseURL: baseURL, log: log}
	s.writer = debounce.NewWriter(debounce.Config{
		Target: preferencesCollection,
		Quiet:  quiet,
		ErrorHandler: func(err error) {
			s.log.Warn().Err(err).Msg("deferred preference write failed; next mutation carries current state")
		},
	})
	return s
}

// identityChanged swaps the scoped state wholesale. Pending debounced
// writes from the previous identity are cancelled, not flushed.
func (s *PreferenceStore) identityChanged(ctx context.Context, id *types.Identity) {
	s.writer.Cancel()

	s.mu.Lock()
	s.prefs = types.PreferenceSet{}
	if id == nil {
		s.owner = ""
		s.mu.Unlock()
		return
	}
	s.owner = id.ID
	s.mu.Unlock()

	if err := s.Reload(ctx); err != nil {
		s.log.Warn().Err(err).Str("owner", id.ID).Msg("preference load failed; keeping local state")
	}
}

// Reload fetches the remote document for the current identity. Not-found
// initializes the empty default; a network failure leaves prior local state
// untouched and is returned as a non-fatal warning.
func (s *PreferenceStore) Reload(ctx context.Context) error {
	s.mu.Lock()
	owner := s.owner
	s.mu.Unlock()
	if owner == "" {
		return types.ErrNotAuthenticated
	}

	raw, err := docstore.Get(ctx, s.http, s.baseURL, preferencesCollection, owner)
	if errors.Is(err, types.ErrNotFound) {
		s.replaceIfOwner(owner, types.PreferenceSet{})
		return nil
	}
	if err != nil {
		return err
	}
	var ps types.PreferenceSet
	if err := json.Unmarshal(raw, &ps); err != nil {
		return err
	}
	s.replaceIfOwner(owner, ps)
	return nil
}

// Snapshot returns a copy of the current selections.
func (s *PreferenceStore) Snapshot() types.PreferenceSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Clone()
}

// SetCuisines replaces the cuisine selections wholesale.
func (s *PreferenceStore) SetCuisines(values []string) {
	s.replaceField(func(p *types.PreferenceSet) { p.Cuisines = append([]string(nil), values...) })
}

// SetDietaryRestrictions replaces the dietary restrictions wholesale.
func (s *PreferenceStore) SetDietaryRestrictions(values []string) {
	s.replaceField(func(p *types.PreferenceSet) { p.DietaryRestrictions = append([]string(nil), values...) })
}

// SetHealthGoals replaces the health-goal selections wholesale.
func (s *PreferenceStore) SetHealthGoals(values []string) {
	s.replaceField(func(p *types.PreferenceSet) { p.HealthGoals = append([]string(nil), values...) })
}

func (s *PreferenceStore) replaceField(apply func(*types.PreferenceSet)) {
	s.mu.Lock()
	apply(&s.prefs)
	owner := s.owner
	s.mu.Unlock()

	if owner == "" {
		// Anonymous edits stay local; they are adopted by the next load's
		// owner only through an explicit re-selection.
		return
	}
	s.schedulePersist(owner)
}

// schedulePersist arms the debounced write. The write reads the state at
// fire time, not at schedule time, and discards itself if the identity
// changed in between.
func (s *PreferenceStore) schedulePersist(owner string) {
	s.writer.Schedule(func(ctx context.Context) error {
		s.mu.Lock()
		if s.owner != owner {
			s.mu.Unlock()
			return nil
		}
		doc := s.prefs.Clone()
		s.mu.Unlock()
		return docstore.Set(ctx, s.http, s.baseURL, preferencesCollection, owner, doc, true)
	})
}

func (s *PreferenceStore) replaceIfOwner(owner string, ps types.PreferenceSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner == owner {
		s.prefs = ps
	}
}

func (s *PreferenceStore) close() { s.writer.Cancel() }

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

const statsCollection = "userStats"

// StatsStore keeps the home-screen usage counters, with the same
// load-on-identity-change and debounced-persist discipline as the other
// stores.
type StatsStore struct {
	mu    sync.Mutex
	owner string
	stats types.Stats

	http    *http.Client
	baseURL string
	writer  *debounce.Writer
	log     zerolog.Logger
}

func newStatsStore(httpClient *http.Client, baseURL string, quiet time.Duration, log zerolog.Logger) *StatsStore {
	s := &StatsStore{http: httpClient, baseURL: baseURL, log: log}
	s.writer = debounce.NewWriter(debounce.Config{
		Target: statsCollection,
		Quiet:  quiet,
		ErrorHandler: func(err error) {
			s.log.Warn().Err(err).Msg("deferred stats write failed; next mutation carries current state")
		},
	})
	return s
}

func (s *StatsStore) identityChanged(ctx context.Context, id *types.Identity) {
	s.writer.Cancel()

	s.mu.Lock()
	s.stats = types.Stats{}
	if id == nil {
		s.owner = ""
		s.mu.Unlock()
		return
	}
	s.owner = id.ID
	s.mu.Unlock()

	if err := s.Reload(ctx); err != nil {
		s.log.Warn().Err(err).Str("owner", id.ID).Msg("stats load failed; keeping local state")
	}
}

// Reload fetches the stats document; not-found initializes zero counters.
func (s *StatsStore) Reload(ctx context.Context) error {
	s.mu.Lock()
	owner := s.owner
	s.mu.Unlock()
	if owner == "" {
		return types.ErrNotAuthenticated
	}

	raw, err := docstore.Get(ctx, s.http, s.baseURL, statsCollection, owner)
	if errors.Is(err, types.ErrNotFound) {
		s.replaceIfOwner(owner, types.Stats{})
		return nil
	}
	if err != nil {
		return err
	}
	var st types.Stats
	if err := json.Unmarshal(raw, &st); err != nil {
		return err
	}
	s.replaceIfOwner(owner, st)
	return nil
}

// Stats returns a copy of the counters.
func (s *StatsStore) Stats() types.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// IncrementMealsLogged bumps the counter locally and schedules a debounced
// persist.
func (s *StatsStore) IncrementMealsLogged() {
	s.mu.Lock()
	s.stats.MealsLogged++
	owner := s.owner
	s.mu.Unlock()
	if owner == "" {
		return
	}
	s.schedulePersist(owner)
}

func (s *StatsStore) schedulePersist(owner string) {
	s.writer.Schedule(func(ctx context.Context) error {
		s.mu.Lock()
		if s.owner != owner {
			s.mu.Unlock()
			return nil
		}
		doc := s.stats
		s.mu.Unlock()
		return docstore.Set(ctx, s.http, s.baseURL, statsCollection, owner, doc, true)
	})
}

func (s *StatsStore) replaceIfOwner(owner string, st types.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owner == owner {
		s.stats = st
	}
}

func (s *StatsStore) close() { s.writer.Cancel() }

package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jaideepo7/Meal-Planner/internal/debounce"
	"github.com/Jaideepo7/Meal-Planner/internal/docstore"
	"github.com/Jaideepo7/Meal-Planner/internal/types"
)

const (
	pantryCollection        = "foodInventory"
	pantrySummaryCollection = "userPantries"
)

// pantrySummary is the compact name-list document kept alongside the item
// collection; the conversation preamble and older app versions read it.
type pantrySummary struct {
	Pantry []string `json:"pantry"`
}

// PantryStore holds the current identity's ingredient records. Item CRUD is
// synchronous from the caller's perspective because the remotely assigned
// id is needed immediately; the local list is updated only after the remote
// confirms, then kept sorted by name ascending (a display invariant).
// Every successful mutation also schedules a debounced write of the
// name-list summary document.
type PantryStore struct {
	mu    sync.Mutex
	owner string
	items []types.PantryItem

	http    *http.Client
	baseURL string
	writer  *debounce.Writer
	log     zerolog.Logger
}

func newPantryStore(httpClient *http.Client, baseURL string, quiet time.Duration, log zerolog.Logger) *PantryStore {
	s := &PantryStore{http: httpClient, baseURL: baseURL, log: log}
	s.writer = debounce.NewWriter(debounce.Config{
		Target: pantrySummaryCollection,
		Quiet:  quiet,
		ErrorHandler: func(err error) {
			s.log.Warn().Err(err).Msg("deferred pantry summary write failed; next mutation carries current state")
		},
	})
	return s
}

func (s *PantryStore) identityChanged(ctx context.Context, id *types.Identity) {
	s.writer.Cancel()

	s.mu.Lock()
	s.items = nil
	if id == nil {
		s.owner = ""
		s.mu.Unlock()
		return
	}
	s.owner = id.ID
	s.mu.Unlock()

	if err := s.Reload(ctx); err != nil {
		s.log.Warn().Err(err).Str("owner", id.ID).Msg("pantry load failed; keeping local state")
	}
}

// Reload fetches the owner's item collection and replaces local state
// wholesale. A network failure leaves prior local state untouched.
func (s *PantryStore) Reload(ctx context.Context) error {
	s.mu.Lock()
	owner := s.owner
	s.mu.Unlock()
	if owner == "" {
		return types.ErrNotAuthenticated
	}

	records, err := docstore.ListItems(ctx, s.http, s.baseURL, pantryCollection, owner)
	if err != nil {
		return err
	}
	items := make([]types.PantryItem, 0, len(records))
	for _, rec := range records {
		var f types.PantryItemFields
		if err := json.Unmarshal(rec.Data, &f); err != nil {
			return err
		}
		items = append(items, types.PantryItem{ID: rec.ID, Name: f.Name, Category: f.Category, Quantity: f.Quantity})
	}
	sortByName(items)

	s.mu.Lock()
	if s.owner == owner {
		s.items = items
	}
	s.mu.Unlock()
	return nil
}

// Items returns a copy of the collection, sorted by name ascending.
func (s *PantryStore) Items() []types.PantryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.PantryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Add creates the item remotely, then inserts it locally once the assigned
// id is known. Errors are surfaced for user-facing retry; nothing is
// retried automatically.
func (s *PantryStore) Add(ctx context.Context, fields types.PantryItemFields) (*types.PantryItem, error) {
	if err := types.ValidatePantryItem(fields); err != nil {
		return nil, err
	}
	s.mu.Lock()
	owner := s.owner
	s.mu.Unlock()
	if owner == "" {
		return nil, types.ErrNotAuthenticated
	}

	id, err := docstore.AddItem(ctx, s.http, s.baseURL, pantryCollection, owner, fields)
	if err != nil {
		return nil, err
	}
	item := types.PantryItem{ID: id, Name: fields.Name, Category: fields.Category, Quantity: fields.Quantity}

	s.mu.Lock()
	if s.owner == owner {
		s.items = append(s.items, item)
		sortByName(s.items)
	}
	s.mu.Unlock()

	s.scheduleSummary(owner)
	return &item, nil
}

// Update replaces the item's fields in place by id.
func (s *PantryStore) Update(ctx context.Context, id string, fields types.PantryItemFields) error {
	if err := types.ValidatePantryItem(fields); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(id, "itemId"); err != nil {
		return err
	}
	s.mu.Lock()
	owner := s.owner
	s.mu.Unlock()
	if owner == "" {
		return types.ErrNotAuthenticated
	}

	if err := docstore.UpdateItem(ctx, s.http, s.baseURL, pantryCollection, owner, id, fields); err != nil {
		return err
	}

	s.mu.Lock()
	if s.owner == owner {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i].Name = fields.Name
				s.items[i].Category = fields.Category
				s.items[i].Quantity = fields.Quantity
				break
			}
		}
		sortByName(s.items)
	}
	s.mu.Unlock()

	s.scheduleSummary(owner)
	return nil
}

// Remove deletes the item by id.
func (s *PantryStore) Remove(ctx context.Context, id string) error {
	if err := types.ValidateIDPresent(id, "itemId"); err != nil {
		return err
	}
	s.mu.Lock()
	owner := s.owner
	s.mu.Unlock()
	if owner == "" {
		return types.ErrNotAuthenticated
	}

	if err := docstore.DeleteItem(ctx, s.http, s.baseURL, pantryCollection, owner, id); err != nil {
		return err
	}

	s.mu.Lock()
	if s.owner == owner {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items = append(s.items[:i], s.items[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	s.scheduleSummary(owner)
	return nil
}

// scheduleSummary arms a debounced write of the name-list document. Rapid
// item mutations coalesce into a single summary write reflecting the state
// at fire time.
func (s *PantryStore) scheduleSummary(owner string) {
	s.writer.Schedule(func(ctx context.Context) error {
		s.mu.Lock()
		if s.owner != owner {
			s.mu.Unlock()
			return nil
		}
		names := make([]string, 0, len(s.items))
		for _, it := range s.items {
			names = append(names, it.Name)
		}
		s.mu.Unlock()
		return docstore.Set(ctx, s.http, s.baseURL, pantrySummaryCollection, owner, pantrySummary{Pantry: names}, true)
	})
}

func (s *PantryStore) close() { s.writer.Cancel() }

func sortByName(items []types.PantryItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
}

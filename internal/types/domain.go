package types

import "fmt"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Identity is the authenticated principal for the current app session.
// It is owned exclusively by the session manager; everything else gets a
// read-only copy.
type Identity struct {
	ID          string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// PreferenceSet holds the user's cuisine, dietary and health-goal
// selections. Each field is replaced wholesale by the onboarding and
// settings flows; there is no per-element mutation.
type PreferenceSet struct {
	Cuisines            []string `json:"cuisines"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	HealthGoals         []string `json:"healthGoals"`
}

// Clone returns a deep copy so callers can hand out snapshots without
// aliasing the store's backing slices.
func (p PreferenceSet) Clone() PreferenceSet {
	return PreferenceSet{
		Cuisines:            cloneStrings(p.Cuisines),
		DietaryRestrictions: cloneStrings(p.DietaryRestrictions),
		HealthGoals:         cloneStrings(p.HealthGoals),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// CategoryCode identifies a pantry category. The catalog of codes lives in
// the root package; stores accept any value (the source app never validated
// membership server-side).
type CategoryCode string

const (
	CategoryVegetables       CategoryCode = "vegetables"
	CategoryFruits           CategoryCode = "fruits"
	CategoryMeatPoultry      CategoryCode = "meat-poultry"
	CategorySeafood          CategoryCode = "seafood"
	CategoryDairy            CategoryCode = "dairy"
	CategoryGrainsPasta      CategoryCode = "grains-pasta"
	CategoryCannedGoods      CategoryCode = "canned-goods"
	CategorySpicesCondiments CategoryCode = "spices-condiments"
	CategorySnacks           CategoryCode = "snacks"
	CategoryFrozenFoods      CategoryCode = "frozen-foods"
)

// PantryItem is one owned ingredient record. ID is assigned by the remote
// store on add and unique within an owner's pantry.
type PantryItem struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category CategoryCode `json:"category"`
	Quantity string       `json:"quantity"`
}

// PantryItemFields carries the mutable fields of a pantry item for updates.
type PantryItemFields struct {
	Name     string       `json:"name"`
	Category CategoryCode `json:"category"`
	Quantity string       `json:"quantity"`
}

// Role tags a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Feedback is the user's reaction to an assistant message.
type Feedback string

const (
	FeedbackNone    Feedback = "none"
	FeedbackLike    Feedback = "like"
	FeedbackDislike Feedback = "dislike"
)

// ChatMessage is one turn of the session-scoped conversation. History is
// append-only and strictly chronological; it is never persisted remotely.
type ChatMessage struct {
	ID       string   `json:"id"`
	Role     Role     `json:"role"`
	Content  string   `json:"content"`
	Feedback Feedback `json:"feedback"`
}

// Favorite is a saved copy of a liked assistant message. Promotion is
// one-way; later edits to the source message do not propagate.
type Favorite struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Stats holds the lightweight usage counters shown on the home screen.
type Stats struct {
	MealsLogged int `json:"mealsLogged"`
	DayStreak   int `json:"dayStreak"`
}

// ------------------------------
// Shared Errors
// ------------------------------

// Sentinel errors shared across the engine. The root package re-exports
// them so callers compare against a single symbol.
var (
	// ErrNotFound is returned when a remote document does not exist.
	ErrNotFound = fmt.Errorf("document not found")

	// ErrInvalidCredentials is returned when the auth provider rejects the
	// supplied email/password or token.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// ErrNetworkUnavailable is returned for network-level failures where a
	// retry may succeed.
	ErrNetworkUnavailable = fmt.Errorf("network unavailable")

	// ErrMissingCredential is returned when no API key is configured for
	// the completion endpoint. Distinct from transport failures so the UI
	// can show setup instructions instead of a retry prompt.
	ErrMissingCredential = fmt.Errorf("completion API key not configured")

	// ErrMalformedResponse is returned when the completion endpoint answers
	// 2xx but the body carries no usable candidate. Fatal for the call.
	ErrMalformedResponse = fmt.Errorf("malformed completion response")

	// ErrNotAuthenticated is returned by identity-scoped operations when no
	// identity is established.
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// ErrEmptyMessage is returned before any network call when a chat or
	// form submission fails local validation.
	ErrEmptyMessage = fmt.Errorf("message is empty")
)

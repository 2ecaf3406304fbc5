package planner

import "github.com/Jaideepo7/Meal-Planner/internal/types"

// Public aliases for the shared domain types.

type (
	Identity         = types.Identity
	PreferenceSet    = types.PreferenceSet
	PantryItem       = types.PantryItem
	PantryItemFields = types.PantryItemFields
	CategoryCode     = types.CategoryCode
	ChatMessage      = types.ChatMessage
	Role             = types.Role
	Feedback         = types.Feedback
	Favorite         = types.Favorite
	Stats            = types.Stats
)

const (
	RoleUser      = types.RoleUser
	RoleAssistant = types.RoleAssistant

	FeedbackNone    = types.FeedbackNone
	FeedbackLike    = types.FeedbackLike
	FeedbackDislike = types.FeedbackDislike
)

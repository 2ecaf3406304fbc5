package planner

import "github.com/Jaideepo7/Meal-Planner/internal/types"

// Re-export shared sentinels so callers compare against a single symbol.
var (
	// ErrNotFound: the remote document does not exist.
	ErrNotFound = types.ErrNotFound

	// ErrInvalidCredentials: the auth provider rejected the credentials or
	// token. Surfaced with specific copy, never a generic failure.
	ErrInvalidCredentials = types.ErrInvalidCredentials

	// ErrNetworkUnavailable: transient network-level failure; retryable.
	ErrNetworkUnavailable = types.ErrNetworkUnavailable

	// ErrMissingCredential: no completion API key configured. The UI should
	// show setup instructions, not a retry prompt.
	ErrMissingCredential = types.ErrMissingCredential

	// ErrMalformedResponse: the completion endpoint answered without a
	// usable candidate. Fatal for that call; retrying an identical request
	// against a stateless endpoint is unlikely to help.
	ErrMalformedResponse = types.ErrMalformedResponse

	// ErrNotAuthenticated: an identity-scoped operation ran without an
	// established identity.
	ErrNotAuthenticated = types.ErrNotAuthenticated

	// ErrEmptyMessage: local form validation failed before any network call.
	ErrEmptyMessage = types.ErrEmptyMessage
)

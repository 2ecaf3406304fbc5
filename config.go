package planner

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries the endpoints and knobs the engine needs. Fields are
// resolved from MEALPLANNER_* environment variables by ConfigFromEnv;
// functional options on New override individual values.
type Config struct {
	// AuthURL is the base URL of the external auth provider.
	AuthURL string `envconfig:"AUTH_URL" default:"https://identitytoolkit.googleapis.com"`

	// AuthAPIKey identifies this app to the auth provider.
	AuthAPIKey string `envconfig:"AUTH_API_KEY"`

	// DocstoreURL is the base URL of the remote document store.
	DocstoreURL string `envconfig:"DOCSTORE_URL" default:"https://docs.mealplanner.app"`

	// CompletionURL overrides the completion endpoint. Empty selects the
	// production Gemini endpoint.
	CompletionURL string `envconfig:"COMPLETION_URL"`

	// CompletionAPIKey is the completion-endpoint credential. May be empty;
	// sends then fail with ErrMissingCredential so the UI can instruct the
	// user instead of offering a retry.
	CompletionAPIKey string `envconfig:"GEMINI_API_KEY"`

	// QuietPeriod is the debounce window for deferred remote writes.
	QuietPeriod time.Duration `envconfig:"QUIET_PERIOD" default:"500ms"`

	// HTTPTimeout bounds each HTTP request end to end.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// TokenPath locates the persisted session-token file. Empty picks
	// a file under the user config directory.
	TokenPath string `envconfig:"TOKEN_PATH"`
}

// ConfigFromEnv resolves Config from MEALPLANNER_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("mealplanner", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

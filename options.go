package planner

// This file defines functional options that configure the App during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Option configures an App during construction in New. Options run before
// any component is built and must be deterministic and side-effect free.
type Option func(*App) error

// WithHTTPTimeout sets the per-request timeout for every HTTP client the
// engine builds. Prefer per-request context deadlines where possible; this
// is a coarse safety net. Must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(a *App) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		a.cfg.HTTPTimeout = d
		return nil
	}
}

// WithQuietPeriod overrides the debounce window shared by all stores.
// Must be greater than zero. Mainly useful in tests.
func WithQuietPeriod(d time.Duration) Option {
	return func(a *App) error {
		if d <= 0 {
			return fmt.Errorf("quiet period must be > 0")
		}
		a.cfg.QuietPeriod = d
		return nil
	}
}

// WithLogger replaces the default global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) error {
		a.log = l
		return nil
	}
}

// WithTokenPath overrides where the persisted session token lives.
func WithTokenPath(path string) Option {
	return func(a *App) error {
		if path == "" {
			return fmt.Errorf("token path must not be empty")
		}
		a.cfg.TokenPath = path
		return nil
	}
}

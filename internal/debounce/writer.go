// Package debounce provides the shared write coalescer used by the stores:
// bursts of local mutations collapse into a single remote write once a
// quiet period elapses.
//
// Each store owns its own Writer; there is no cross-store state. Scheduling
// invalidates the previously armed timer via a token, so N schedules inside
// the quiet period produce exactly one write. A write whose timer has
// already fired is not cancelled by a later schedule; that narrow
// two-in-flight race is accepted (last write wins remotely).
package debounce

import (
	"context"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	apperrors "github.com/Jaideepo7/Meal-Planner/internal/errors"
)

// WriteFunc performs the remote write. It must read the state it persists
// at call time, not capture it at schedule time.
type WriteFunc func(ctx context.Context) error

// Config tunes a Writer. Zero values pick defaults.
type Config struct {
	// Target labels metrics and log lines, e.g. the collection name.
	Target string

	// Quiet is the debounce window. Default 500ms.
	Quiet time.Duration

	// MaxAttempts bounds retries of a fired write on recoverable errors.
	// Default 3.
	MaxAttempts int

	// BaseBackoff is the initial retry interval. Default 100ms.
	BaseBackoff time.Duration

	// MaxInterval caps the retry interval. Default 5s.
	MaxInterval time.Duration

	// ErrorHandler receives the final error of a write that gave up.
	// Optional; called outside the Writer's lock.
	ErrorHandler func(error)
}

// Writer coalesces scheduled writes for one logical target.
type Writer struct {
	cfg Config

	mu    sync.Mutex
	timer *time.Timer
	token uint64 // bumped on every Schedule/Cancel; stale timers check it
	fired bool   // true while a write is executing (diagnostics only)
}

// NewWriter constructs a Writer. The zero-value defaults mirror the source
// app's 500ms quiet period.
func NewWriter(cfg Config) *Writer {
	if cfg.Target == "" {
		cfg.Target = "default"
	}
	if cfg.Quiet <= 0 {
		cfg.Quiet = 500 * time.Millisecond
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 100 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 5 * time.Second
	}
	return &Writer{cfg: cfg}
}

// Schedule cancels any pending scheduled write and arms a new timer. When
// the timer fires uninterrupted, fn runs exactly once. Safe to call from
// any goroutine; idempotent under rapid repeated calls.
func (w *Writer) Schedule(fn WriteFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.token++
	tok := w.token
	if w.timer != nil {
		w.timer.Stop()
		coalescedTotal.WithLabelValues(w.cfg.Target).Inc()
	}
	scheduledTotal.WithLabelValues(w.cfg.Target).Inc()
	w.timer = time.AfterFunc(w.cfg.Quiet, func() { w.fire(tok, fn) })
}

// Cancel invalidates the pending token and stops the timer, discarding the
// last debounce window's write. It never flushes. Safe to call repeatedly
// and with nothing pending.
func (w *Writer) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.token++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
		cancelledTotal.WithLabelValues(w.cfg.Target).Inc()
	}
}

// Pending reports whether a write is scheduled but has not fired yet.
func (w *Writer) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timer != nil
}

func (w *Writer) fire(tok uint64, fn WriteFunc) {
	w.mu.Lock()
	if tok != w.token {
		// A newer schedule or a Cancel superseded this timer between the
		// tick and acquiring the lock.
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.fired = true
	w.mu.Unlock()

	err := w.runWithRetry(tok, fn)

	w.mu.Lock()
	w.fired = false
	w.mu.Unlock()

	if err != nil {
		failedTotal.WithLabelValues(w.cfg.Target).Inc()
		if w.cfg.ErrorHandler != nil {
			w.cfg.ErrorHandler(err)
		}
		return
	}
	writesTotal.WithLabelValues(w.cfg.Target).Inc()
}

// runWithRetry executes fn, retrying recoverable errors with exponential
// backoff. A final failure is not fatal: the next mutation's cycle carries
// newer state anyway.
func (w *Writer) runWithRetry(tok uint64, fn WriteFunc) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = w.cfg.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = w.cfg.MaxInterval
	exp.Reset()

	var err error
	for attempt := 0; ; attempt++ {
		err = fn(context.Background())
		if err == nil {
			return nil
		}
		if apperrors.IsIrrecoverable(err) {
			return err
		}
		if attempt >= w.cfg.MaxAttempts-1 {
			return err
		}
		time.Sleep(exp.NextBackOff())

		// A newer schedule carries newer state; let its write supersede
		// this retry loop.
		w.mu.Lock()
		stale := tok != w.token
		w.mu.Unlock()
		if stale {
			return nil
		}
	}
}

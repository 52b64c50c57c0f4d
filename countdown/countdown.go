// Package countdown derives expiry countdown state for donation records.
package countdown

import (
	"context"
	"fmt"
	"time"
)

// DefaultInterval is how often a Watcher re-evaluates a countdown.
const DefaultInterval = 60 * time.Second

// Clock supplies the current time, injectable for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Snapshot is the derived countdown state for one expiry at one instant.
// Urgent is true when fewer than two whole hours remain; note this is
// deliberately narrower than the browse filter's two-hour inclusion window.
type Snapshot struct {
	Remaining time.Duration `json:"-"`
	Display   string        `json:"display"`
	Urgent    bool          `json:"urgent"`
	Expired   bool          `json:"expired"`
}

// Evaluate computes the countdown snapshot for expiry as of now.
func Evaluate(expiry, now time.Time) Snapshot {
	remaining := expiry.Sub(now)
	if remaining <= 0 {
		return Snapshot{Remaining: 0, Display: "Expired", Urgent: true, Expired: true}
	}

	hours := int(remaining / time.Hour)
	minutes := int((remaining % time.Hour) / time.Minute)

	return Snapshot{
		Remaining: remaining,
		Display:   fmt.Sprintf("%dh %dm", hours, minutes),
		Urgent:    hours < 2,
	}
}

// Watcher re-evaluates an expiry on a fixed interval.
type Watcher struct {
	clock    Clock
	interval time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithClock overrides the wall clock.
func WithClock(c Clock) Option {
	return func(w *Watcher) { w.clock = c }
}

// WithInterval overrides the re-evaluation interval.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) { w.interval = d }
}

func NewWatcher(opts ...Option) *Watcher {
	w := &Watcher{clock: SystemClock{}, interval: DefaultInterval}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch evaluates immediately, then once per interval, calling fn with each
// snapshot. It blocks until ctx is cancelled; the ticker is always torn down
// on return.
func (w *Watcher) Watch(ctx context.Context, expiry time.Time, fn func(Snapshot)) {
	fn(Evaluate(expiry, w.clock.Now()))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(Evaluate(expiry, w.clock.Now()))
		}
	}
}

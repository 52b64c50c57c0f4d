package countdown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		expiresIn   time.Duration
		wantDisplay string
		wantUrgent  bool
		wantExpired bool
	}{
		{"plenty_of_time", 3*time.Hour + 45*time.Minute, "3h 45m", false, false},
		{"exactly_two_hours", 2 * time.Hour, "2h 0m", false, false},
		{"just_under_two_hours", 2*time.Hour - time.Minute, "1h 59m", true, false},
		{"forty_five_minutes", 45 * time.Minute, "0h 45m", true, false},
		{"sub_minute_floor", 90 * time.Second, "0h 1m", true, false},
		{"expired", -time.Minute, "Expired", true, true},
		{"expiring_now", 0, "Expired", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(now.Add(tt.expiresIn), now)
			assert.Equal(t, tt.wantDisplay, got.Display)
			assert.Equal(t, tt.wantUrgent, got.Urgent)
			assert.Equal(t, tt.wantExpired, got.Expired)
		})
	}
}

func TestWatchEmitsImmediatelyThenOnInterval(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	w := NewWatcher(WithClock(fixedClock{now}), WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan Snapshot, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Watch(ctx, now.Add(3*time.Hour), func(s Snapshot) {
			snapshots <- s
		})
	}()

	for i := 0; i < 2; i++ {
		select {
		case s := <-snapshots:
			assert.Equal(t, "3h 0m", s.Display)
			assert.False(t, s.Urgent)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for snapshot %d", i)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestWatchTearsDownOnCancel(t *testing.T) {
	w := NewWatcher(WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Watch(ctx, time.Now().Add(time.Hour), func(Snapshot) { calls++ })
	}()

	// The immediate evaluation runs before the ticker loop, so cancelling
	// right away still sees exactly one call.
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
	require.Equal(t, 1, calls)
}

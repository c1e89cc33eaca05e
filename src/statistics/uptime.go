package statistics

import (
	"fmt"
	"sync"
	"time"

	"switchboard/src/observer"
)

// Clock abstracts time retrieval for testing.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// UptimeTracker accumulates how long each device has spent in the on
// state. Feed it through ObserverFor so devices report state changes
// via the ordinary Subject contract.
type UptimeTracker struct {
	mu        sync.Mutex
	durations map[string]time.Duration
	onSince   map[string]time.Time
	clock     Clock
}

// NewUptimeTracker constructs a tracker with a real clock.
func NewUptimeTracker() *UptimeTracker {
	return &UptimeTracker{
		durations: map[string]time.Duration{},
		onSince:   map[string]time.Time{},
		clock:     realClock{},
	}
}

// WithClock swaps the underlying clock (primarily for tests).
func (t *UptimeTracker) WithClock(clock Clock) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if clock == nil {
		t.clock = realClock{}
		return
	}
	t.clock = clock
}

// Observe records a state change for the named device.
func (t *UptimeTracker) Observe(name string, on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.clock.Now()
	started, running := t.onSince[name]
	if on {
		if !running {
			t.onSince[name] = now
		}
		return
	}
	if running {
		t.durations[name] += now.Sub(started)
		delete(t.onSince, name)
	}
}

// ObserverFor returns an observer that feeds this tracker for one
// named device.
func (t *UptimeTracker) ObserverFor(name string) observer.Observer[bool] {
	return observer.Func[bool](func(state bool) {
		t.Observe(name, state)
	})
}

// Uptime reports the accumulated on-time for a device, including the
// current on segment if one is running.
func (t *UptimeTracker) Uptime(name string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := t.durations[name]
	if started, running := t.onSince[name]; running {
		total += t.clock.Now().Sub(started)
	}
	return total
}

// Flush closes every running segment without losing accumulated time.
func (t *UptimeTracker) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.clock.Now()
	for name, started := range t.onSince {
		t.durations[name] += now.Sub(started)
		delete(t.onSince, name)
	}
}

// Forget drops all recorded time for a device.
func (t *UptimeTracker) Forget(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.durations, name)
	delete(t.onSince, name)
}

// FormatDuration renders a duration in coarse human units.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	seconds := int(d / time.Second)
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		remMinutes := minutes % 60
		if remMinutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, remMinutes)
	}
	days := hours / 24
	remHours := hours % 24
	if remHours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, remHours)
}

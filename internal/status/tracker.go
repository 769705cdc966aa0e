// internal/status/tracker.go
package status

import "time"

// Tracker folds per-cycle outcomes into a Snapshot.
// Not safe for concurrent use; the poll goroutine owns it.
type Tracker struct {
	snap Snapshot
}

// NewTracker starts in HealthUnknown.
func NewTracker(now time.Time) *Tracker {
	return &Tracker{snap: Snapshot{Health: HealthUnknown, Since: now}}
}

// Observe records one cycle: sensors polled and how many of them failed.
// It reports whether Health changed. Leaving HealthUnknown always counts,
// so the first cycle publishes availability.
func (t *Tracker) Observe(now time.Time, total, failed int) bool {
	health := HealthOK
	if total == 0 || failed >= total {
		health = HealthError
	}

	if health == HealthError {
		t.snap.CyclesInError++
	} else {
		t.snap.CyclesInError = 0
	}

	if t.snap.Health == health {
		return false
	}

	t.snap.Health = health
	t.snap.Since = now
	return true
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot {
	return t.snap
}

// internal/status/snapshot.go
package status

import "time"

// Snapshot is the device-level health derived from poll cycles.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health uint16

	// CyclesInError counts consecutive cycles in which every sensor failed.
	CyclesInError uint32

	// Since is when Health last changed.
	Since time.Time
}

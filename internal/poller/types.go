// internal/poller/types.go
package poller

import (
	"fmt"
	"time"
)

// FailureKind classifies why a sensor has no value this cycle.
type FailureKind uint8

const (
	// FailureTransport covers timeouts, lost connections and exception responses.
	FailureTransport FailureKind = iota + 1
	// FailureDecode means the words came back but could not be decoded.
	FailureDecode
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// SensorError is the per-sensor failure marker carried in a Reading.
type SensorError struct {
	SensorID string
	Address  uint16
	Quantity uint16
	Kind     FailureKind
	Err      error
}

func (e *SensorError) Error() string {
	return fmt.Sprintf("poller: sensor %s addr=%#04x qty=%d (%s): %v", e.SensorID, e.Address, e.Quantity, e.Kind, e.Err)
}

func (e *SensorError) Unwrap() error {
	return e.Err
}

// Reading is one sensor's outcome in a cycle.
// Err != nil marks a failed sensor; Value is then meaningless.
type Reading struct {
	ID    string
	Value float64
	Err   error
}

// OK reports whether the sensor produced a value.
func (r Reading) OK() bool {
	return r.Err == nil
}

// Snapshot is everything one poll cycle produced.
// Readings follow registry order and always cover every sensor.
type Snapshot struct {
	At       time.Time
	Duration time.Duration
	Readings []Reading
}

// Failed counts readings without a value.
func (s Snapshot) Failed() int {
	n := 0
	for _, r := range s.Readings {
		if !r.OK() {
			n++
		}
	}
	return n
}

// Reading looks up a sensor's outcome by id.
func (s Snapshot) Reading(id string) (Reading, bool) {
	for _, r := range s.Readings {
		if r.ID == id {
			return r, true
		}
	}
	return Reading{}, false
}

// internal/status/tracker_test.go
package status

import (
	"testing"
	"time"
)

func TestTracker_FirstCycleAlwaysChanges(t *testing.T) {
	t0 := time.Unix(0, 0)

	ok := NewTracker(t0)
	if !ok.Observe(t0.Add(time.Second), 10, 3) {
		t.Fatalf("first healthy cycle must report a change")
	}
	if Encode(ok.Snapshot()) != PayloadOnline {
		t.Fatalf("expected online")
	}

	bad := NewTracker(t0)
	if !bad.Observe(t0.Add(time.Second), 10, 10) {
		t.Fatalf("first failed cycle must report a change")
	}
	if Encode(bad.Snapshot()) != PayloadOffline {
		t.Fatalf("expected offline")
	}
}

func TestTracker_Transitions(t *testing.T) {
	t0 := time.Unix(0, 0)
	tr := NewTracker(t0)

	tr.Observe(t0.Add(1*time.Second), 5, 0)

	if tr.Observe(t0.Add(2*time.Second), 5, 4) {
		t.Fatalf("partial failure must not change health")
	}

	if !tr.Observe(t0.Add(3*time.Second), 5, 5) {
		t.Fatalf("all sensors failing must change health")
	}
	if tr.Observe(t0.Add(4*time.Second), 5, 5) {
		t.Fatalf("repeated failure must not report a change")
	}

	s := tr.Snapshot()
	if s.Health != HealthError || s.CyclesInError != 2 || !s.Since.Equal(t0.Add(3*time.Second)) {
		t.Fatalf("unexpected snapshot: %+v", s)
	}

	if !tr.Observe(t0.Add(5*time.Second), 5, 1) {
		t.Fatalf("recovery must change health")
	}
	if s := tr.Snapshot(); s.CyclesInError != 0 || s.Health != HealthOK {
		t.Fatalf("unexpected snapshot after recovery: %+v", s)
	}
}

func TestEncode(t *testing.T) {
	if Encode(Snapshot{Health: HealthUnknown}) != PayloadOffline {
		t.Fatalf("unknown must encode offline")
	}
	if Encode(Snapshot{Health: HealthOK}) != PayloadOnline {
		t.Fatalf("ok must encode online")
	}
	if Encode(Snapshot{Health: HealthError}) != PayloadOffline {
		t.Fatalf("error must encode offline")
	}
}

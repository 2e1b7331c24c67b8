package npb

import (
	"testing"
	"time"
)

func TestTrackerSnapshotBeforeBeginIsZero(t *testing.T) {
	var tr tracker
	s := tr.snapshot(time.Now(), 10)
	if s.elapsed != 0 || s.rate != 0 || s.avgRate != 0 || s.etaKnown {
		t.Fatalf("unstarted tracker leaked derived values: %+v", s)
	}
}

func TestTrackerWindowRateVersusAverage(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var tr tracker
	tr.begin(base)

	tr.advance(5)
	s := tr.snapshot(base.Add(time.Second), 10)
	if s.rate != 5 || s.avgRate != 5 {
		t.Fatalf("first window: rate=%v avg=%v want 5/5", s.rate, s.avgRate)
	}
	if !s.etaKnown || s.eta != time.Second {
		t.Fatalf("first window eta: known=%v eta=%v want 1s", s.etaKnown, s.eta)
	}

	// The loop slows down: the window rate reflects the recent second,
	// while the average spans the whole run.
	tr.advance(1)
	s = tr.snapshot(base.Add(2*time.Second), 10)
	if s.rate != 1 {
		t.Fatalf("second window rate: got %v want 1", s.rate)
	}
	if s.avgRate != 3 {
		t.Fatalf("lifetime average: got %v want 3", s.avgRate)
	}
	if s.eta != 4*time.Second {
		t.Fatalf("eta from window rate: got %v want 4s", s.eta)
	}
}

func TestTrackerHoldsRateAcrossIdleWindow(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var tr tracker
	tr.begin(base)
	tr.advance(4)
	_ = tr.snapshot(base.Add(time.Second), 0)

	s := tr.snapshot(base.Add(2*time.Second), 0)
	if s.rate != 4 {
		t.Fatalf("idle window dropped the held rate: got %v want 4", s.rate)
	}
	if s.avgRate != 2 {
		t.Fatalf("average after idle window: got %v want 2", s.avgRate)
	}
	if s.etaKnown {
		t.Fatalf("eta reported with unknown total")
	}
}

func TestTrackerCountIsMonotonic(t *testing.T) {
	var tr tracker
	tr.begin(time.Now())
	tr.advance(3)
	tr.advance(0)
	tr.advance(-2)
	if tr.count != 3 {
		t.Fatalf("count after no-op advances: got %d want 3", tr.count)
	}
}

func TestTrackerBeginIsIdempotent(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var tr tracker
	tr.begin(base)
	tr.begin(base.Add(time.Minute))
	tr.advance(1)
	s := tr.snapshot(base.Add(2*time.Second), 0)
	if s.elapsed != 2*time.Second {
		t.Fatalf("second begin rewound the origin: elapsed %v want 2s", s.elapsed)
	}
}

func TestTrackerEtaClampsOvershoot(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var tr tracker
	tr.begin(base)
	tr.advance(12)
	s := tr.snapshot(base.Add(time.Second), 10)
	if !s.etaKnown || s.eta != 0 {
		t.Fatalf("overshoot eta: known=%v eta=%v want 0", s.etaKnown, s.eta)
	}
}

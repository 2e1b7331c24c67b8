package npb

import "time"

// tracker keeps the timing state for one indicator: origin timestamp,
// completed count, and the window boundary used for instantaneous rate.
type tracker struct {
	start     time.Time
	started   bool
	count     int
	prevTime  time.Time
	prevCount int
	lastRate  float64
}

// timerSnapshot is the derived view handed to the line composer. Rates of
// zero mean "unknown" and render as placeholders, never NaN or Inf.
type timerSnapshot struct {
	count    int
	elapsed  time.Duration
	rate     float64
	avgRate  float64
	eta      time.Duration
	etaKnown bool
}

// begin records the origin timestamp. Calling it again is a no-op so a
// restarted render path cannot rewind elapsed time.
func (t *tracker) begin(now time.Time) {
	if t.started {
		return
	}
	t.start = now
	t.prevTime = now
	t.started = true
}

func (t *tracker) advance(n int) {
	if n > 0 {
		t.count += n
	}
}

// snapshot derives elapsed, rates and ETA at the given instant and moves the
// instantaneous-rate window forward. The instantaneous rate covers only the
// span since the previous snapshot; when that span saw no progress the last
// known rate is held rather than reported as zero.
func (t *tracker) snapshot(now time.Time, total int) timerSnapshot {
	s := timerSnapshot{count: t.count}
	if !t.started {
		return s
	}
	s.elapsed = now.Sub(t.start)
	if s.elapsed < 0 {
		s.elapsed = 0
	}

	if dt := now.Sub(t.prevTime); dt > 0 && t.count > t.prevCount {
		t.lastRate = float64(t.count-t.prevCount) / dt.Seconds()
	}
	s.rate = t.lastRate
	t.prevTime = now
	t.prevCount = t.count

	if t.count > 0 && s.elapsed > 0 {
		s.avgRate = float64(t.count) / s.elapsed.Seconds()
	}

	if total > 0 && s.rate > 0 {
		remaining := total - t.count
		if remaining < 0 {
			remaining = 0
		}
		s.eta = time.Duration(float64(remaining) / s.rate * float64(time.Second))
		s.etaKnown = true
	}
	return s
}

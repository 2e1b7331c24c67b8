package npb

import "time"

type barState int

const (
	barCreated barState = iota
	barActive
	barFinished
	barAborted
)

// bar is one progress indicator: the per-loop wrapper that ties a tracker
// and a composer to a row on the stack. Lifecycle is strictly
// Created -> Active -> Finished or Aborted; a bar is never reused.
type bar struct {
	stack    *Stack
	comp     composer
	style    lineStyle
	track    tracker
	interval time.Duration
	width    int // 0 = probe the terminal on each render

	state        barState
	lastRender   time.Time
	everRendered bool
	phase        int
}

// start pushes the bar onto the stack and records the timing origin.
// Reports false when the bar has already run, in which case the caller
// forwards elements with no display.
func (b *bar) start() bool {
	if b.state != barCreated {
		return false
	}
	b.state = barActive
	b.stack.push(b)
	b.track.begin(b.stack.now())
	return true
}

// advance records n completed elements and repaints the bar's row, unless
// the previous repaint was less than the update interval ago. The throttle
// bounds redraw volume on fast loops; the first render is never throttled
// so the row appears as soon as the loop starts.
func (b *bar) advance(n int) {
	if b.state != barActive {
		return
	}
	b.track.advance(n)
	now := b.stack.now()
	if !b.everRendered || now.Sub(b.lastRender) >= b.interval {
		b.render(now)
	}
}

// finish forces one last render at the final count, so the terminal always
// shows the completed state, then retracts the row.
func (b *bar) finish() {
	if b.state != barActive {
		return
	}
	b.render(b.stack.now())
	b.stack.pop(b)
	b.state = barFinished
}

// abort retracts the row without a final render; the display keeps whatever
// was last drawn elsewhere while the caller's failure propagates. Cleanup
// here must never raise over the real failure, so abort has no error path.
func (b *bar) abort() {
	if b.state != barActive {
		return
	}
	b.stack.pop(b)
	b.state = barAborted
}

func (b *bar) render(now time.Time) {
	snap := b.track.snapshot(now, b.comp.total)
	width := b.width
	if width <= 0 {
		width = b.stack.width()
	}
	line := b.comp.line(snap, width)
	if b.stack.requestRender(b, b.style.apply(line, b.phase)) && b.style.rainbow {
		// Advance the cycle only when the terminal actually changed, so
		// the rainbow animates once per visible repaint.
		b.phase++
	}
	b.lastRender = now
	b.everRendered = true
}

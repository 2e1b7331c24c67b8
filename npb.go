// Package npb renders live, stacked progress indicators on an ANSI
// terminal, with first-class support for nesting: an outer loop's indicator
// stays visible while inner loops create and retract their own rows beneath
// it.
//
//	outer, err := npb.N(30, npb.Options{Desc: "files"})
//	if err != nil {
//		return err
//	}
//	for i := range outer {
//		inner, _ := npb.Slice(chunks[i], npb.Options{Desc: "chunks"})
//		for range inner {
//			process()
//		}
//	}
//
// Rows are repainted in place with cursor-movement escapes, so the library
// assumes an ANSI-capable terminal and that no other output is written to
// it while indicators are active; interleaving foreign output is a misuse
// the library does not detect or recover from. All creation, advancement
// and rendering happen synchronously on the iterating goroutine — there is
// no background refresh. Driving one registry from multiple goroutines at
// once is undefined; callers needing that must serialize externally.
//
// When the output is not an interactive terminal, or Disable is set,
// wrapping is a no-op and the source sequence is returned untouched.
package npb

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/mattn/go-runewidth"
)

const defaultUpdateInterval = 50 * time.Millisecond

// Options configures one indicator. The zero value gives the defaults: a
// '█' fill, a 50ms update interval, terminal-width lines, no colors, and
// counter, timer and rate fields enabled.
type Options struct {
	// Length is the known element count. Leave zero when the sequence
	// length is unknown; the indicator then renders in count-only form
	// with no proportional bar. Slice and N fill it in automatically.
	Length int

	// Desc is printed as a "Desc:" prefix on the line.
	Desc string

	// FillChar draws the filled portion of the bar. It must occupy one
	// terminal cell. Zero means '█'.
	FillChar rune

	// UpdateInterval is the minimum gap between repaints of this
	// indicator. Zero means 50ms; negative is invalid. The final repaint
	// on completion is never throttled.
	UpdateInterval time.Duration

	// Disable bypasses the indicator entirely: the source sequence is
	// returned unchanged and the registry is never touched.
	Disable bool

	// Width fixes the line width in terminal cells. Zero probes the
	// terminal width on every repaint.
	Width int

	// TextColor and BGColor name colors from the closed set black, red,
	// green, yellow, blue, magenta, cyan, white. Empty keeps the
	// terminal defaults.
	TextColor string
	BGColor   string

	// Rainbow overrides TextColor with a per-character color cycle that
	// shifts on every repaint.
	Rainbow bool

	// NoCounter, NoTimer and NoRate switch off fields that default on;
	// AvgRate switches on the average-rate field, which defaults off.
	NoCounter bool
	NoTimer   bool
	NoRate    bool
	AvgRate   bool

	// HumanCount formats counter values with thousands separators.
	HumanCount bool

	// Registry selects the indicator stack to register with. Nil means
	// the shared process-wide stack writing to stdout. Nested indicators
	// compose correctly only when they share a registry.
	Registry *Stack
}

// Each wraps src so that iterating the result drives a progress indicator:
// each element pull advances the indicator, exhaustion forces a final
// render and retracts the row, and an early break or panic unwind retracts
// the row without masking the failure. The returned sequence is single
// pass; ranging it again forwards elements with no display.
//
// Configuration problems are reported immediately, wrapped around
// ErrInvalidConfig, before any registry state is created.
func Each[T any](src iter.Seq[T], opts Options) (iter.Seq[T], error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source sequence", ErrInvalidConfig)
	}
	st := opts.Registry
	if st == nil {
		st = sharedStack
	}
	b, err := newBar(opts, st)
	if err != nil {
		return nil, err
	}
	if opts.Disable || !st.interactive {
		return src, nil
	}
	return func(yield func(T) bool) {
		if !b.start() {
			for v := range src {
				if !yield(v) {
					return
				}
			}
			return
		}
		completed := false
		defer func() {
			// Runs on normal exhaustion, early break, and panic
			// unwind alike; the panic continues unchanged.
			if completed {
				b.finish()
			} else {
				b.abort()
			}
		}()
		for v := range src {
			b.advance(1)
			if !yield(v) {
				return
			}
		}
		completed = true
	}, nil
}

// Slice wraps a slice's elements, probing the length from the slice itself.
func Slice[S ~[]E, E any](s S, opts Options) (iter.Seq[E], error) {
	opts.Length = len(s)
	return Each(slices.Values(s), opts)
}

// N wraps the sequence 0..n-1 with a known length, the counted-loop
// convenience form.
func N(n int, opts Options) (iter.Seq[int], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative range length %d", ErrInvalidConfig, n)
	}
	opts.Length = n
	return Each(rangeSeq(n), opts)
}

func rangeSeq(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < n; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

func newBar(opts Options, st *Stack) (*bar, error) {
	if opts.UpdateInterval < 0 {
		return nil, fmt.Errorf("%w: negative update interval %v", ErrInvalidConfig, opts.UpdateInterval)
	}
	if opts.Length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrInvalidConfig, opts.Length)
	}
	if opts.Width < 0 {
		return nil, fmt.Errorf("%w: negative width %d", ErrInvalidConfig, opts.Width)
	}
	fill := opts.FillChar
	if fill == 0 {
		fill = '█'
	}
	if runewidth.RuneWidth(fill) != 1 {
		return nil, fmt.Errorf("%w: fill character %q is not one cell wide", ErrInvalidConfig, fill)
	}
	style, err := newLineStyle(opts.TextColor, opts.BGColor, opts.Rainbow)
	if err != nil {
		return nil, err
	}
	interval := opts.UpdateInterval
	if interval == 0 {
		interval = defaultUpdateInterval
	}
	return &bar{
		stack:    st,
		style:    style,
		interval: interval,
		width:    opts.Width,
		comp: composer{
			desc:       opts.Desc,
			fill:       fill,
			total:      opts.Length,
			counter:    !opts.NoCounter,
			timer:      !opts.NoTimer,
			rate:       !opts.NoRate,
			avgRate:    opts.AvgRate,
			humanCount: opts.HumanCount,
		},
	}, nil
}

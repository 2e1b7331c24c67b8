package npb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// composer turns one indicator's state into a single fixed-width display
// line. Field layout, left to right: description, proportional bar,
// counter, elapsed<eta timer, instantaneous rate, average rate.
type composer struct {
	desc       string
	fill       rune
	total      int // 0 = length unknown
	counter    bool
	timer      bool
	rate       bool
	avgRate    bool
	humanCount bool
}

// line composes the display line for snap at exactly width visible cells.
// When the fields do not fit, trailing fields are dropped lowest-priority
// first (average rate, rate, timer, counter) instead of cutting mid-field;
// the bar absorbs whatever space is left and degrades to a bare percentage
// on very narrow widths. Escape sequences are not involved here: styling is
// applied afterwards and does not count toward width.
func (c *composer) line(snap timerSnapshot, width int) string {
	if width <= 0 {
		return ""
	}
	prefix := ""
	if c.desc != "" {
		prefix = c.desc + ":"
	}

	fields := c.fields(snap)
	var body string
	for {
		suffix := strings.Join(fields, " ")
		used := runewidth.StringWidth(prefix) + runewidth.StringWidth(suffix)
		if prefix != "" {
			used++
		}
		if suffix != "" {
			used++
		}
		bar := c.barSegment(snap, width-used)

		parts := make([]string, 0, 3)
		for _, p := range [3]string{prefix, bar, suffix} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		body = strings.Join(parts, " ")
		if runewidth.StringWidth(body) <= width || len(fields) == 0 {
			break
		}
		fields = fields[:len(fields)-1]
	}

	if w := runewidth.StringWidth(body); w < width {
		body += strings.Repeat(" ", width-w)
	} else if w > width {
		body = runewidth.Truncate(body, width, "")
		// Truncate can land one cell short when it splits before a wide
		// rune; repad so the width contract holds.
		if w = runewidth.StringWidth(body); w < width {
			body += strings.Repeat(" ", width-w)
		}
	}
	return body
}

// fields returns the enabled suffix fields in display order, which is also
// reverse truncation-priority order.
func (c *composer) fields(snap timerSnapshot) []string {
	fields := make([]string, 0, 4)
	if c.counter {
		fields = append(fields, c.counterField(snap.count))
	}
	if c.timer {
		fields = append(fields, timerField(snap))
	}
	if c.rate {
		fields = append(fields, rateField(snap.rate))
	}
	if c.avgRate {
		fields = append(fields, rateField(snap.avgRate))
	}
	return fields
}

// counterField renders "count/total" when the length is known and the
// count-only "Nit" form otherwise.
func (c *composer) counterField(count int) string {
	if c.total > 0 {
		return c.formatCount(count) + "/" + c.formatCount(c.total)
	}
	return c.formatCount(count) + "it"
}

func (c *composer) formatCount(n int) string {
	if c.humanCount {
		return humanize.Comma(int64(n))
	}
	return strconv.Itoa(n)
}

// barSegment renders "NN%|████    |" sized to exactly space cells, the bare
// percentage when the frame does not fit, or nothing when even that is too
// wide or the total is unknown.
func (c *composer) barSegment(snap timerSnapshot, space int) string {
	if c.total <= 0 {
		return ""
	}
	frac := float64(snap.count) / float64(c.total)
	if frac > 1 {
		frac = 1
	}
	if frac < 0 {
		frac = 0
	}
	percent := fmt.Sprintf("%.0f%%", frac*100)
	inner := space - len(percent) - 2
	if inner > 0 {
		filled := int(math.Round(frac * float64(inner)))
		if filled > inner {
			filled = inner
		}
		return percent + "|" + strings.Repeat(string(c.fill), filled) + strings.Repeat(" ", inner-filled) + "|"
	}
	if space >= len(percent) {
		return percent
	}
	return ""
}

// timerField renders "elapsed<eta", with "?" standing in for an ETA that is
// not yet determined.
func timerField(snap timerSnapshot) string {
	eta := "?"
	if snap.etaKnown {
		eta = formatClock(snap.eta)
	}
	return formatClock(snap.elapsed) + "<" + eta
}

// rateField renders a rate right-justified to 9 cells as it/s, switching to
// s/it below one per second so slow loops do not read as 0.xx noise. An
// unknown rate renders as "?".
func rateField(rate float64) string {
	if rate <= 0 {
		return "?"
	}
	if rate >= 1 {
		return fmt.Sprintf("%9s", fmt.Sprintf("%.2fit/s", rate))
	}
	return fmt.Sprintf("%9s", fmt.Sprintf("%.2fs/it", 1/rate))
}

// formatClock renders MM:SS, growing to H:MM:SS after the first hour.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second) / time.Second)
	mins, s := secs/60, secs%60
	h, m := mins/60, mins%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", mins, s)
}

package npb

import (
	"fmt"
	"strings"
)

// sgrReset restores the default typeface. Every styled line ends with it so
// an interrupted render can never bleed color into later terminal output.
const sgrReset = "\x1b[0m"

var fgCodes = map[string]string{
	"black":   "\x1b[30m",
	"red":     "\x1b[31m",
	"green":   "\x1b[32m",
	"yellow":  "\x1b[33m",
	"blue":    "\x1b[34m",
	"magenta": "\x1b[35m",
	"cyan":    "\x1b[36m",
	"white":   "\x1b[37m",
}

var bgCodes = map[string]string{
	"black":   "\x1b[40m",
	"red":     "\x1b[41m",
	"green":   "\x1b[42m",
	"yellow":  "\x1b[43m",
	"blue":    "\x1b[44m",
	"magenta": "\x1b[45m",
	"cyan":    "\x1b[46m",
	"white":   "\x1b[47m",
}

// rainbowCycle is the per-character color rotation used by rainbow mode.
var rainbowCycle = [...]string{
	fgCodes["red"],
	fgCodes["yellow"],
	fgCodes["green"],
	fgCodes["cyan"],
	fgCodes["blue"],
	fgCodes["magenta"],
}

// lineStyle wraps a composed line in SGR fragments. It is immutable after
// construction; rainbow animation state lives in the caller's phase counter.
type lineStyle struct {
	fg      string
	bg      string
	rainbow bool
}

func newLineStyle(textColor, bgColor string, rainbow bool) (lineStyle, error) {
	var st lineStyle
	if textColor != "" {
		code, ok := fgCodes[textColor]
		if !ok {
			return lineStyle{}, fmt.Errorf("%w: unknown text color %q", ErrInvalidConfig, textColor)
		}
		st.fg = code
	}
	if bgColor != "" {
		code, ok := bgCodes[bgColor]
		if !ok {
			return lineStyle{}, fmt.Errorf("%w: unknown background color %q", ErrInvalidConfig, bgColor)
		}
		st.bg = code
	}
	st.rainbow = rainbow
	return st, nil
}

// apply wraps line in the style's escape fragments. Rainbow overrides the
// text color and assigns each character the cycle color at phase+position,
// so successive phases shift the whole rotation by one.
func (s lineStyle) apply(line string, phase int) string {
	if line == "" {
		return line
	}
	if s.rainbow {
		var b strings.Builder
		b.Grow(len(line) * 6)
		i := phase
		for _, r := range line {
			b.WriteString(rainbowCycle[i%len(rainbowCycle)])
			b.WriteRune(r)
			i++
		}
		b.WriteString(sgrReset)
		line = b.String()
	} else if s.fg != "" {
		line = s.fg + line + sgrReset
	}
	if s.bg != "" {
		line = s.bg + line + sgrReset
	}
	return line
}

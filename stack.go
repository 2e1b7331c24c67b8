package npb

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const fallbackWidth = 80

// Stack is the registry of currently active indicators and the owner of the
// terminal lines they occupy. Depth 0 is the outermost indicator and the
// topmost row on screen; the last pushed indicator is the bottom row. After
// any render completes, the number of occupied lines equals the number of
// active indicators.
//
// The cursor contract: between operations the cursor rests at column 0 of
// the line immediately below the bottom-most occupied row (the terminal's
// normal input line when the stack is empty). Each repaint touches only the
// rows that changed and restores the cursor before returning, so indicators
// never see each other's movement. The contract only holds while no other
// output is written to the same terminal; interleaved foreign output while
// indicators are active is a documented misuse, not a detected error.
type Stack struct {
	mu          sync.Mutex
	out         io.Writer
	widthFn     func() int
	nowFn       func() time.Time
	interactive bool
	rows        []*stackRow
	lines       int // terminal lines currently occupied
	buf         bytes.Buffer
	failed      bool
}

type stackRow struct {
	owner *bar
	text  string
	drawn bool
}

// NewStack builds a registry rendering to out. When out is a file that is
// not an interactive terminal, indicators registered against the stack
// bypass rendering entirely; any other writer is taken at face value, since
// a caller injecting one wants the escape output (a capture buffer, a PTY
// wrapper). A nil out means os.Stdout.
func NewStack(out io.Writer) *Stack {
	if out == nil {
		out = os.Stdout
	}
	s := &Stack{out: out, nowFn: time.Now}
	s.interactive = true
	s.widthFn = func() int { return fallbackWidth }
	if f, ok := out.(*os.File); ok {
		fd := int(f.Fd())
		s.interactive = term.IsTerminal(fd)
		if s.interactive {
			s.widthFn = func() int {
				w, _, err := term.GetSize(fd)
				if err != nil || w <= 0 {
					return fallbackWidth
				}
				return w
			}
		}
	}
	return s
}

// sharedStack serves every bar constructed without an explicit Registry.
var sharedStack = NewStack(os.Stdout)

// Default returns the process-wide stack used when Options.Registry is nil.
func Default() *Stack { return sharedStack }

// Active returns the number of currently registered indicators.
func (s *Stack) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Lines returns the number of terminal lines the stack currently occupies.
func (s *Stack) Lines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

// PopAll retracts every remaining indicator line and resets the occupied
// line count to zero. It is the teardown escape hatch: regardless of how
// many indicators were active, no partial-bar artifact or dangling color
// state is left behind, and the cursor ends on the terminal's normal input
// line.
func (s *Stack) PopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.lines
	s.rows = nil
	s.lines = 0
	if n == 0 || s.failed {
		return
	}
	s.buf.Reset()
	fmt.Fprintf(&s.buf, "\r\x1b[%dA", n)
	for i := 0; i < n; i++ {
		s.buf.WriteString("\x1b[K\x1b[1B")
	}
	fmt.Fprintf(&s.buf, "\x1b[%dA", n)
	s.buf.WriteString(sgrReset)
	s.flush()
}

func (s *Stack) now() time.Time {
	return s.nowFn()
}

func (s *Stack) width() int {
	return s.widthFn()
}

// push registers b as the new innermost indicator and returns its depth.
// Nothing is drawn; the row's terminal line is established on the
// indicator's first render.
func (s *Stack) push(b *bar) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, &stackRow{owner: b})
	return len(s.rows) - 1
}

// depthOf returns b's current depth, or -1 when b is not registered.
func (s *Stack) depthOf(b *bar) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(b)
}

func (s *Stack) indexOf(b *bar) int {
	for i, r := range s.rows {
		if r.owner == b {
			return i
		}
	}
	return -1
}

// requestRender repaints b's row with text. Rows whose lines have not been
// established yet (pushed since the last render) are allocated first by
// scrolling blank lines in below the stack; then, if text differs from what
// the row currently shows, the cursor moves up to the row, overwrites it,
// and returns to the rest position. An identical text is a no-op, which
// keeps fast outer loops from repainting unchanged rows. Reports whether
// the terminal was actually written.
func (s *Stack) requestRender(b *bar, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	depth := s.indexOf(b)
	if depth < 0 {
		return false
	}
	r := s.rows[depth]
	if s.failed {
		r.text = text
		r.drawn = true
		s.lines = len(s.rows)
		return false
	}
	if r.drawn && r.text == text {
		return false
	}

	s.buf.Reset()
	if extra := len(s.rows) - s.lines; extra > 0 {
		s.buf.WriteString(strings.Repeat("\n", extra))
		s.lines = len(s.rows)
	}
	up := s.lines - depth
	fmt.Fprintf(&s.buf, "\r\x1b[%dA", up)
	s.buf.WriteString("\x1b[K")
	s.buf.WriteString(text)
	fmt.Fprintf(&s.buf, "\x1b[%dB\r", up)
	if !s.flush() {
		return false
	}
	r.text = text
	r.drawn = true
	return true
}

// pop removes b's row entirely: rows below it shift up one line, the old
// bottom line is erased, and the occupied-line count shrinks, so a finished
// nested indicator leaves no blank gap. The cursor ends at the new rest
// position (or the normal input line when the stack empties).
func (s *Stack) pop(b *bar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	depth := s.indexOf(b)
	if depth < 0 {
		return
	}
	s.rows = append(s.rows[:depth], s.rows[depth+1:]...)
	if s.failed {
		s.lines = len(s.rows)
		return
	}
	if depth >= s.lines {
		// The row never reached the screen; bookkeeping only.
		return
	}

	s.buf.Reset()
	up := s.lines - depth
	fmt.Fprintf(&s.buf, "\r\x1b[%dA", up)
	for i := depth; i < s.lines-1; i++ {
		s.buf.WriteString("\x1b[K")
		if i < len(s.rows) && s.rows[i].drawn {
			s.buf.WriteString(s.rows[i].text)
		}
		s.buf.WriteString("\x1b[1B\r")
	}
	s.buf.WriteString("\x1b[K")
	s.lines--
	s.flush()
}

// flush writes the pending escape batch in a single Write. A write failure
// (broken pipe, closed capture) demotes the stack to no-op rendering for
// the rest of its lifetime: a progress display must never crash or stall
// the computation it decorates.
func (s *Stack) flush() bool {
	if s.failed {
		return false
	}
	if _, err := s.buf.WriteTo(s.out); err != nil {
		s.failed = true
		s.lines = len(s.rows)
		log.Printf("npb: progress render failed, output disabled: %v", err)
		return false
	}
	return true
}

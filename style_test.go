package npb

import (
	"errors"
	"testing"
)

func TestStyleRejectsUnknownColors(t *testing.T) {
	if _, err := newLineStyle("chartreuse", "", false); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("unknown text color: got %v want ErrInvalidConfig", err)
	}
	if _, err := newLineStyle("", "mauve", false); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("unknown background color: got %v want ErrInvalidConfig", err)
	}
}

func TestStyleTextAndBackgroundWrap(t *testing.T) {
	st, err := newLineStyle("red", "blue", false)
	if err != nil {
		t.Fatalf("newLineStyle: %v", err)
	}
	got := st.apply("X", 0)
	want := "\x1b[44m\x1b[31mX\x1b[0m\x1b[0m"
	if got != want {
		t.Fatalf("styled line: got %q want %q", got, want)
	}
}

func TestStyleRainbowShiftsWithPhase(t *testing.T) {
	st, err := newLineStyle("", "", true)
	if err != nil {
		t.Fatalf("newLineStyle: %v", err)
	}
	p0 := st.apply("ab", 0)
	want0 := "\x1b[31ma\x1b[33mb\x1b[0m"
	if p0 != want0 {
		t.Fatalf("rainbow phase 0: got %q want %q", p0, want0)
	}
	p1 := st.apply("ab", 1)
	want1 := "\x1b[33ma\x1b[32mb\x1b[0m"
	if p1 != want1 {
		t.Fatalf("rainbow phase 1: got %q want %q", p1, want1)
	}
}

func TestStyleRainbowOverridesTextColor(t *testing.T) {
	st, err := newLineStyle("white", "", true)
	if err != nil {
		t.Fatalf("newLineStyle: %v", err)
	}
	got := st.apply("a", 0)
	want := "\x1b[31ma\x1b[0m"
	if got != want {
		t.Fatalf("rainbow with text color set: got %q want %q", got, want)
	}
}

func TestStyleEmptyLineUntouched(t *testing.T) {
	st, _ := newLineStyle("red", "blue", false)
	if got := st.apply("", 3); got != "" {
		t.Fatalf("empty line styled: got %q", got)
	}
}

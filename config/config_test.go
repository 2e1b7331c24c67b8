package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"npb"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "npb.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAndConvert(t *testing.T) {
	path := writeFile(t, `
fill_char: "#"
text_color: green
rainbow: false
update_interval_ms: 100
width: 72
human_count: true
`)
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts, err := d.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.FillChar != '#' {
		t.Fatalf("fill char: got %q want %q", opts.FillChar, '#')
	}
	if opts.TextColor != "green" || opts.Width != 72 || !opts.HumanCount {
		t.Fatalf("converted options mismatch: %+v", opts)
	}
	if opts.UpdateInterval != 100*time.Millisecond {
		t.Fatalf("update interval: got %v want 100ms", opts.UpdateInterval)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeFile(t, "fill_char: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOptionsRejectsMultiRuneFill(t *testing.T) {
	d := &Defaults{FillChar: "ab"}
	if _, err := d.Options(); !errors.Is(err, npb.ErrInvalidConfig) {
		t.Fatalf("multi-rune fill: got %v want ErrInvalidConfig", err)
	}
}

func TestZeroDefaultsConvertToZeroOptions(t *testing.T) {
	d := &Defaults{}
	opts, err := d.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts != (npb.Options{}) {
		t.Fatalf("zero defaults produced non-zero options: %+v", opts)
	}
}

func TestConvertedOptionsValidateDownstream(t *testing.T) {
	path := writeFile(t, "text_color: pink\n")
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts, err := d.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	opts.Disable = true
	if _, err := npb.N(3, opts); !errors.Is(err, npb.ErrInvalidConfig) {
		t.Fatalf("downstream validation: got %v want ErrInvalidConfig", err)
	}
}

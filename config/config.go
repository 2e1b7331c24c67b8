// Package config loads shared indicator defaults from a YAML file, so a
// tool can keep its progress styling (colors, fill character, refresh
// cadence) in its own configuration instead of hardcoding it at every
// call site.
package config

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"npb"
)

// Defaults mirrors the YAML schema. Zero values mean "library default";
// only set fields carry over into the returned Options.
type Defaults struct {
	FillChar         string `yaml:"fill_char"`
	TextColor        string `yaml:"text_color"`
	BGColor          string `yaml:"bg_color"`
	Rainbow          bool   `yaml:"rainbow"`
	UpdateIntervalMS int    `yaml:"update_interval_ms"`
	Width            int    `yaml:"width"`
	HumanCount       bool   `yaml:"human_count"`
}

// Load reads indicator defaults from a YAML file.
func Load(filename string) (*Defaults, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &d, nil
}

// Options converts the defaults into an npb.Options base that callers
// extend with per-loop settings (Desc, Length, Registry). Color names and
// widths are validated later by the npb constructors; only the fill
// character needs decoding here, since YAML carries it as a string.
func (d *Defaults) Options() (npb.Options, error) {
	opts := npb.Options{
		TextColor:      d.TextColor,
		BGColor:        d.BGColor,
		Rainbow:        d.Rainbow,
		Width:          d.Width,
		HumanCount:     d.HumanCount,
		UpdateInterval: time.Duration(d.UpdateIntervalMS) * time.Millisecond,
	}
	if d.FillChar != "" {
		r, size := utf8.DecodeRuneInString(d.FillChar)
		if r == utf8.RuneError || size != len(d.FillChar) {
			return npb.Options{}, fmt.Errorf("%w: fill_char %q must be a single character", npb.ErrInvalidConfig, d.FillChar)
		}
		opts.FillChar = r
	}
	return opts, nil
}

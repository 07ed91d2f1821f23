// Package config loads the TOML configuration of the motion demo.
//
// A file looks like:
//
//	duration = "250ms"
//	easing = "ease-in-out"
//	fps = 30
//	row_height = 1
//	width = 40
//	seed = 7
//	items = ["a", "b", "c"]
//
//	[[steps]]
//	at = "300ms"
//	op = "remove"
//	keys = ["b"]
//
// Every key is optional; missing keys keep their defaults.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	motion "github.com/grindlemire/go-motion"
)

// Op is a list edit applied by a script step.
type Op string

const (
	OpSet     Op = "set"     // replace the list with Keys
	OpAdd     Op = "add"     // append Keys
	OpRemove  Op = "remove"  // drop Keys
	OpReverse Op = "reverse" // reverse the list
	OpShuffle Op = "shuffle" // shuffle the list with the configured seed
)

var ops = []Op{OpSet, OpAdd, OpRemove, OpReverse, OpShuffle}

// Step is one scripted edit, applied At after the script starts.
type Step struct {
	At   time.Duration
	Op   Op
	Keys []string
}

// Config is the demo configuration.
type Config struct {
	Duration  time.Duration
	Easing    motion.Easing
	FPS       int
	RowHeight int
	Width     int
	Seed      uint64
	Items     []string
	Steps     []Step
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Duration:  motion.DefaultDuration,
		Easing:    motion.DefaultEasing,
		FPS:       60,
		RowHeight: 1,
		Width:     40,
		Seed:      1,
		Items:     []string{"alpha", "bravo", "charlie", "delta", "echo"},
	}
}

// Options returns the animation timing the configuration selects.
func (c Config) Options() motion.Options {
	return motion.Options{Duration: c.Duration, Easing: c.Easing}
}

// End returns the time of the last step.
func (c Config) End() time.Duration {
	var end time.Duration
	for _, s := range c.Steps {
		end = max(end, s.At)
	}
	return end
}

type fileStep struct {
	At   string   `toml:"at"`
	Op   string   `toml:"op"`
	Keys []string `toml:"keys"`
}

type fileConfig struct {
	Duration  string     `toml:"duration"`
	Easing    string     `toml:"easing"`
	FPS       int        `toml:"fps"`
	RowHeight int        `toml:"row_height"`
	Width     int        `toml:"width"`
	Seed      int64      `toml:"seed"`
	Items     []string   `toml:"items"`
	Steps     []fileStep `toml:"steps"`
}

// Load reads and validates the file at path on top of Default.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return build(raw, meta)
}

// Parse is Load for in-memory TOML.
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return build(raw, meta)
}

func build(raw fileConfig, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	cfg := Default()

	if meta.IsDefined("duration") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Duration))
		if err != nil {
			return Config{}, fmt.Errorf("parse duration: %w", err)
		}
		cfg.Duration = d
	}

	if meta.IsDefined("easing") {
		cfg.Easing = motion.Easing(strings.TrimSpace(raw.Easing))
	}

	if meta.IsDefined("fps") {
		cfg.FPS = raw.FPS
	}

	if meta.IsDefined("row_height") {
		cfg.RowHeight = raw.RowHeight
	}

	if meta.IsDefined("width") {
		cfg.Width = raw.Width
	}

	if meta.IsDefined("seed") {
		if raw.Seed < 0 {
			return Config{}, fmt.Errorf("seed must not be negative, got %d", raw.Seed)
		}
		cfg.Seed = uint64(raw.Seed)
	}

	if meta.IsDefined("items") {
		cfg.Items = normalizeKeys(raw.Items)
	}

	if meta.IsDefined("steps") {
		steps := make([]Step, 0, len(raw.Steps))
		for i, s := range raw.Steps {
			at, err := time.ParseDuration(strings.TrimSpace(s.At))
			if err != nil {
				return Config{}, fmt.Errorf("parse steps[%d].at: %w", i, err)
			}
			steps = append(steps, Step{
				At:   at,
				Op:   Op(strings.TrimSpace(s.Op)),
				Keys: normalizeKeys(s.Keys),
			})
		}
		cfg.Steps = steps
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var errs []error
	if c.Duration < 0 {
		errs = append(errs, fmt.Errorf("duration must not be negative, got %v", c.Duration))
	}
	if _, err := motion.ParseEasing(c.Easing); err != nil {
		errs = append(errs, fmt.Errorf("easing: %w", err))
	}
	if c.FPS < 1 || c.FPS > 240 {
		errs = append(errs, fmt.Errorf("fps must be within 1..240, got %d", c.FPS))
	}
	if c.RowHeight < 1 {
		errs = append(errs, fmt.Errorf("row_height must be positive, got %d", c.RowHeight))
	}
	if c.Width < 1 {
		errs = append(errs, fmt.Errorf("width must be positive, got %d", c.Width))
	}
	if dup := firstDuplicate(c.Items); dup != "" {
		errs = append(errs, fmt.Errorf("items: duplicate key %q", dup))
	}
	for i, s := range c.Steps {
		if s.At < 0 {
			errs = append(errs, fmt.Errorf("steps[%d]: at must not be negative, got %v", i, s.At))
		}
		if i > 0 && s.At < c.Steps[i-1].At {
			errs = append(errs, fmt.Errorf("steps[%d]: steps must be in time order", i))
		}
		if !slices.Contains(ops, s.Op) {
			errs = append(errs, fmt.Errorf("steps[%d]: unknown op %q", i, s.Op))
		}
		if (s.Op == OpAdd || s.Op == OpRemove) && len(s.Keys) == 0 {
			errs = append(errs, fmt.Errorf("steps[%d]: %s needs keys", i, s.Op))
		}
		if dup := firstDuplicate(s.Keys); dup != "" {
			errs = append(errs, fmt.Errorf("steps[%d]: duplicate key %q", i, dup))
		}
	}
	return errors.Join(errs...)
}

func normalizeKeys(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		if v := strings.TrimSpace(k); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstDuplicate(keys []string) string {
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			return k
		}
		seen[k] = true
	}
	return ""
}

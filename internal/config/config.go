// Package config provides YAML-based configuration loading for the emulator,
// with environment overrides.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SpeedBuckets is the number of tick delays the timing section must list.
const SpeedBuckets = 5

// ErrDelayOrder is returned when a faster speed bucket has a longer delay
// than a slower one.
var ErrDelayOrder = errors.New("config: tick delays must not increase")

// Config contains all emulator settings.
type Config struct {
	Timing  TimingConfig  `yaml:"timing"`
	Input   InputConfig   `yaml:"input"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
}

// TimingConfig defines the game pace. Delays are scaled by Scale, except the
// restart poll interval.
type TimingConfig struct {
	TickDelays   []time.Duration `yaml:"tick_delays"` // One per speed bucket, slowest first
	CharDelay    time.Duration   `yaml:"char_delay"`
	TextTail     time.Duration   `yaml:"text_tail"`
	CrashPause   time.Duration   `yaml:"crash_pause"`
	PollInterval time.Duration   `yaml:"poll_interval"`
	Scale        float64         `yaml:"scale" env:"DINO_TIMING_SCALE"`
}

// InputConfig defines how the keyboard drives the button line.
type InputConfig struct {
	// Hold is how long a key press keeps the button down. Terminals report
	// presses and auto-repeats but no releases.
	Hold time.Duration `yaml:"hold" env:"DINO_HOLD"`
}

// DisplayConfig defines how the panel is drawn in the terminal.
type DisplayConfig struct {
	Renderer string            `yaml:"renderer" env:"DINO_RENDERER"`
	FPS      int               `yaml:"fps"`
	Theme    map[string]string `yaml:"theme"` // Glyph name -> terminal rune
}

// StorageConfig defines where the best score lives.
type StorageConfig struct {
	DB     string `yaml:"db" env:"DINO_DB"`
	Device string `yaml:"device" env:"DINO_DEVICE"`
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	t := c.Timing
	if len(t.TickDelays) != SpeedBuckets {
		return fmt.Errorf("config: expected %d tick delays, got %d", SpeedBuckets, len(t.TickDelays))
	}
	for i, d := range t.TickDelays {
		if d < 0 {
			return fmt.Errorf("config: tick delay %d is negative", i)
		}
		if i > 0 && d > t.TickDelays[i-1] {
			return fmt.Errorf("%w: bucket %d is %v, bucket %d is %v", ErrDelayOrder, i, d, i-1, t.TickDelays[i-1])
		}
	}
	if t.Scale <= 0 {
		return fmt.Errorf("config: timing scale must be positive, got %v", t.Scale)
	}
	if t.PollInterval < 0 {
		return fmt.Errorf("config: poll interval is negative")
	}
	if c.Input.Hold <= 0 {
		return fmt.Errorf("config: input hold must be positive, got %v", c.Input.Hold)
	}
	if c.Display.FPS <= 0 {
		return fmt.Errorf("config: display fps must be positive, got %d", c.Display.FPS)
	}
	return nil
}

// Rune returns the theme rune for a glyph name, or fallback when the theme
// does not define one.
func (d DisplayConfig) Rune(name string, fallback rune) rune {
	s, ok := d.Theme[name]
	if !ok {
		return fallback
	}
	for _, r := range s {
		return r
	}
	return fallback
}

package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/dino.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
// The tick delays stretch the 10/9/8/7/5 ms hardware pace to one a terminal
// can show.
func Default() Config {
	return Config{
		Timing: TimingConfig{
			TickDelays: []time.Duration{
				120 * time.Millisecond,
				105 * time.Millisecond,
				90 * time.Millisecond,
				75 * time.Millisecond,
				60 * time.Millisecond,
			},
			CharDelay:    60 * time.Millisecond,
			TextTail:     250 * time.Millisecond,
			CrashPause:   300 * time.Millisecond,
			PollInterval: time.Millisecond,
			Scale:        1.0,
		},
		Input: InputConfig{
			Hold: 180 * time.Millisecond,
		},
		Display: DisplayConfig{
			Renderer: "auto",
			FPS:      30,
			Theme: map[string]string{
				"avatar":           "▟",
				"avatar-crashed":   "▚",
				"obstacle-crashed": "╱",
				"obstacle":         "¥",
			},
		},
		Storage: StorageConfig{
			DB:     "~/.lcd-dino/dino.db",
			Device: "local",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lcd-dino/internal/core"
	"github.com/vovakirdan/lcd-dino/internal/dino"
	"github.com/vovakirdan/lcd-dino/internal/platform/tui"
	"github.com/vovakirdan/lcd-dino/internal/registry"
)

var (
	flagRenderer string
	flagDevice   string
	flagHold     time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Power up a device in this terminal",
	Long: `Power up an emulated device and play.

Controls:
  Space/Up/Enter - The button: jump while playing, restart after GAMEOVER
  ?              - Toggle help
  Q/Esc/Ctrl+C   - Power off

Terminals do not report key releases, so each key press holds the button
down for --hold (auto-repeat keeps it down). Hold the key to stay in the
air for up to three ticks.

Renderers:
  auto   - Largest renderer that fits the terminal
  big    - Pixel view of the custom glyphs
  lcd    - 16x2 panel with bezel
  ascii  - Plain 7-bit text

Examples:
  dino play
  dino play --renderer lcd
  dino play --device alice --hold 250ms
  dino play --scale 0.5`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRenderer, "renderer", "", "Renderer: auto, big, lcd, ascii (default from config)")
	playCmd.Flags().StringVar(&flagDevice, "device", "", "Device name owning the best score (default from config)")
	playCmd.Flags().DurationVar(&flagHold, "hold", 0, "How long a key press holds the button (default from config)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}
	if flagRenderer != "" {
		cfg.Display.Renderer = flagRenderer
	}
	if flagDevice != "" {
		cfg.Storage.Device = flagDevice
	}
	if flagHold > 0 {
		cfg.Input.Hold = flagHold
	}
	if cfg.Display.Renderer != tui.AutoRenderer && !registry.Exists(cfg.Display.Renderer) {
		fail("unknown renderer %q\nRun 'dino renderers' to see available renderers.", cfg.Display.Renderer)
	}

	// Logs would corrupt the alt screen, so they go to --log-file or nowhere.
	logger, closer, err := newLogger(io.Discard, "dino")
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cell, recorder, store := openCell(cfg, cfg.Storage.Device, logger)

	session := tui.NewSession(cell, tui.SessionConfig{
		Device:   cfg.Storage.Device,
		Timing:   dino.TimingFromConfig(cfg.Timing),
		Hold:     cfg.Input.Hold,
		Logger:   logger,
		Recorder: recorder,
	})

	runErr := tui.Run(session, tui.ThemeFromConfig(cfg.Display), core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		FPS:      cfg.Display.FPS,
		Renderer: cfg.Display.Renderer,
		Device:   cfg.Storage.Device,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closer.Close()
		fail("%v", runErr)
	}
}

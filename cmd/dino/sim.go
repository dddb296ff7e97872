package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lcd-dino/internal/button"
	"github.com/vovakirdan/lcd-dino/internal/dino"
	"github.com/vovakirdan/lcd-dino/internal/lcd"
	"github.com/vovakirdan/lcd-dino/internal/platform/tui"
	"github.com/vovakirdan/lcd-dino/internal/registry"
	"github.com/vovakirdan/lcd-dino/internal/storage"
)

var (
	flagPress       string
	flagHoldAll     bool
	flagMaxTicks    int
	flagSimBest     int
	flagSimRenderer string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play one run headless with a scripted button",
	Long: `Play one run without a terminal UI. The button is scripted per tick
(sample numbers start at 1) and pauses take no wall time. The final panel is
printed along with the result.

The run ends at the first collision, or after --ticks ticks if set.

Examples:
  dino sim                      # No input: crash on tick 14, best 13
  dino sim --press 13,14        # Jump over the first obstacle
  dino sim --press 12-14,28-30 --ticks 40
  dino sim --hold --ticks 100   # Button held down the whole time`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagPress, "press", "", "Ticks with the button down, e.g. 12-14,28")
	simCmd.Flags().BoolVar(&flagHoldAll, "hold", false, "Keep the button down after the scripted ticks")
	simCmd.Flags().IntVar(&flagMaxTicks, "ticks", 0, "Stop after this many ticks (0 = until collision)")
	simCmd.Flags().IntVar(&flagSimBest, "best", 0, "Best score stored in the cell before the run")
	simCmd.Flags().StringVar(&flagSimRenderer, "renderer", "ascii", "Renderer for the final frame")
}

// instantClock adds up the pauses instead of sleeping.
type instantClock struct {
	elapsed time.Duration
}

func (c *instantClock) Sleep(d time.Duration) {
	c.elapsed += d
}

// tickLimit cuts power once the button has been sampled limit times.
type tickLimit struct {
	dino.Button
	limit  int
	count  int
	cancel context.CancelFunc
}

func (b *tickLimit) Pressed() bool {
	b.count++
	if b.limit > 0 && b.count >= b.limit {
		b.cancel()
	}
	return b.Button.Pressed()
}

func runSim(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}
	renderer, err := registry.Create(flagSimRenderer)
	if err != nil {
		fail("%v", err)
	}
	samples, err := button.ParseSamples(flagPress)
	if err != nil {
		fail("%v", err)
	}

	logger, closer, err := newLogger(os.Stderr, "dino-sim")
	if err != nil {
		fail("%v", err)
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	script := button.PressedOn(samples...)
	script.Tail = flagHoldAll
	btn := &tickLimit{Button: script, limit: flagMaxTicks, cancel: cancel}

	panel := lcd.NewPanel()
	clock := &instantClock{}
	cell := storage.NewMemoryCell(flagSimBest)
	frames := 0

	device := dino.NewDevice(panel, btn, cell, clock,
		dino.WithTiming(dino.TimingFromConfig(cfg.Timing)),
		dino.WithLogger(logger),
		dino.WithFrameHook(func() { frames++ }),
	)

	if err := device.Boot(); err != nil {
		closer.Close()
		fail("%v", err)
	}

	crashed := true
	if err := device.Play(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			closer.Close()
			fail("%v", err)
		}
		crashed = false
	}

	best := flagSimBest
	if crashed {
		if best, err = device.GameOver(); err != nil {
			closer.Close()
			fail("%v", err)
		}
	}

	run := device.Machine().Run()
	fmt.Println(tui.Frame(renderer, panel.Snapshot(), tui.ThemeFromConfig(cfg.Display)))
	fmt.Println()
	fmt.Printf("State:    %s\n", device.Machine().State())
	fmt.Printf("Score:    %d\n", run.Survived())
	fmt.Printf("Best:     %d\n", best)
	fmt.Printf("Samples:  %d\n", btn.count)
	fmt.Printf("Frames:   %d\n", frames)
	fmt.Printf("Elapsed:  %v\n", clock.elapsed)
}

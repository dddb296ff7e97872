package dino

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lcd-dino/internal/config"
	"github.com/vovakirdan/lcd-dino/internal/core"
)

// Display is the character panel the game draws on: 16 columns by 2 rows,
// addressed by column and row, with eight custom glyph slots.
type Display interface {
	Clear()
	GotoXY(col, row int)
	// Putc writes at the cursor and advances it by one column.
	Putc(c byte)
	WriteAt(col, row int, c byte)
	RegisterGlyph(slot int, g core.Glyph) error
}

// Button is the single digital input line. It is sampled as-is, without
// debouncing.
type Button interface {
	Pressed() bool
}

// Cell is the non-volatile slot holding the best score.
type Cell interface {
	ReadBestScore() (int, error)
	WriteBestScore(score int) error
}

// Clock provides the blocking pauses between ticks and animation frames.
// Pauses cannot be cut short; the button is not sampled while one runs, so
// the current tick delay is also the input latency.
type Clock interface {
	Sleep(d time.Duration)
}

// RunRecorder receives every finished run. Recording is best-effort.
type RunRecorder interface {
	RecordRun(score, best int) error
}

// SleepClock pauses with time.Sleep.
type SleepClock struct{}

// Sleep blocks for d.
func (SleepClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// Banner and game-over texts.
const (
	BannerText   = "DinoGame!!"
	BannerColumn = 3
	GameOverText = "GAMEOVER"
)

// Timing holds every pause the device makes.
type Timing struct {
	Speed        SpeedTable
	CharDelay    time.Duration // Between characters of animated text
	TextTail     time.Duration // After the last character of animated text
	CrashPause   time.Duration // Crash frame before the debris marker
	PollInterval time.Duration // Between button polls while waiting to restart
}

// DefaultTiming returns the built-in emulation timing.
func DefaultTiming() Timing {
	return Timing{
		Speed:        DefaultSpeedTable(),
		CharDelay:    60 * time.Millisecond,
		TextTail:     250 * time.Millisecond,
		CrashPause:   300 * time.Millisecond,
		PollInterval: time.Millisecond,
	}
}

// TimingFromConfig converts the timing section of the configuration,
// applying its scale factor to every pause except the restart poll.
func TimingFromConfig(cfg config.TimingConfig) Timing {
	var speed SpeedTable
	for i := range speed {
		speed[i] = cfg.TickDelays[i]
	}
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	sc := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * scale)
	}
	return Timing{
		Speed:        speed.Scaled(scale),
		CharDelay:    sc(cfg.CharDelay),
		TextTail:     sc(cfg.TextTail),
		CrashPause:   sc(cfg.CrashPause),
		PollInterval: cfg.PollInterval,
	}
}

// Device is the firmware main loop: it owns the run state machine and drives
// the display, button and best-score cell.
type Device struct {
	display  Display
	button   Button
	cell     Cell
	clock    Clock
	timing   Timing
	logger   *log.Logger
	recorder RunRecorder
	onFrame  func()
	machine  *Machine
}

// Option configures a Device.
type Option func(*Device)

// WithTiming overrides the default timing.
func WithTiming(t Timing) Option {
	return func(d *Device) { d.timing = t }
}

// WithLogger sets the device logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Device) { d.logger = l }
}

// WithRecorder sets the run history sink.
func WithRecorder(r RunRecorder) Option {
	return func(d *Device) { d.recorder = r }
}

// WithFrameHook registers a callback invoked after each completed frame.
func WithFrameHook(fn func()) Option {
	return func(d *Device) { d.onFrame = fn }
}

// NewDevice wires a device to its collaborators.
func NewDevice(display Display, button Button, cell Cell, clock Clock, opts ...Option) *Device {
	d := &Device{
		display: display,
		button:  button,
		cell:    cell,
		clock:   clock,
		timing:  DefaultTiming(),
		logger:  log.New(io.Discard),
		machine: NewMachine(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Machine returns the device's state machine for inspection.
func (d *Device) Machine() *Machine {
	return d.machine
}

// Run boots the device and plays runs forever.
//
// Cancelling ctx is a power cut: it is noticed at the next button sample and
// Run returns ctx.Err() without ending the run. Any collaborator failure is
// fatal and returned.
func (d *Device) Run(ctx context.Context) error {
	if err := d.Boot(); err != nil {
		return err
	}
	for {
		if err := d.Play(ctx); err != nil {
			return err
		}
		if _, err := d.GameOver(); err != nil {
			return err
		}
		if err := d.AwaitRestart(ctx); err != nil {
			return err
		}
	}
}

// Boot shows the banner and uploads the custom glyphs.
func (d *Device) Boot() error {
	d.banner()
	for _, gs := range bootGlyphs {
		if err := d.display.RegisterGlyph(gs.slot, gs.glyph); err != nil {
			return fmt.Errorf("dino: register glyph %q: %w", gs.glyph.Name, err)
		}
	}
	d.logger.Info("device booted")
	return nil
}

// Play ticks the current run until the avatar crashes.
func (d *Device) Play(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.tick() {
			return nil
		}
	}
}

// tick plays one frame and reports whether it ended the run.
func (d *Device) tick() bool {
	pressed := d.button.Pressed()
	phase := d.machine.Run().Phase()
	d.display.WriteAt(ObstacleColumn(phase), RowGround, ObstacleCode)

	res := d.machine.Tick(pressed)
	if res.Raised {
		d.display.WriteAt(AvatarColumn, RowAir, SlotAvatar)
	} else {
		d.display.WriteAt(AvatarColumn, RowGround, SlotAvatar)
	}
	d.frame()

	if res.Crashed {
		d.logger.Debug("collision", "phase", res.Phase, "score", res.Score)
		return true
	}

	d.clock.Sleep(d.timing.Speed[res.Bucket])
	d.display.Clear()
	label := FormatScore(res.Score)
	d.print(ScoreColumn(label), 0, label)
	d.frame()

	d.logger.Debug("tick", "phase", res.Phase, "raised", res.Raised, "score", res.Score)
	return false
}

// GameOver renders the crash, settles and persists the best score, and
// returns it.
func (d *Device) GameOver() (int, error) {
	run := d.machine.Run()

	d.display.GotoXY(AvatarColumn, RowGround)
	d.display.Putc(SlotAvatarCrashed)
	d.display.Putc(SlotObstacleCrashed)
	d.frame()
	d.clock.Sleep(d.timing.CrashPause)

	d.display.WriteAt(AvatarColumn, RowGround, DebrisCode)
	d.display.GotoXY(0, 0)
	d.animate(GameOverText)

	prev, err := d.cell.ReadBestScore()
	if err != nil {
		return 0, fmt.Errorf("dino: read best score: %w", err)
	}
	best, err := d.machine.Settle(prev)
	if err != nil {
		return 0, err
	}
	if best != prev {
		if err := d.cell.WriteBestScore(best); err != nil {
			return 0, fmt.Errorf("dino: write best score: %w", err)
		}
	}

	counter := FormatCounter(best)
	d.print(BestColumn(counter), RowGround, counter)
	d.frame()

	d.logger.Info("game over", "score", run.Survived(), "best", best, "record", best > prev)

	if d.recorder != nil {
		if err := d.recorder.RecordRun(run.Survived(), best); err != nil {
			d.logger.Warn("could not record run", "error", err)
		}
	}
	return best, nil
}

// AwaitRestart polls the button until a press restarts the run, then replays
// the banner.
func (d *Device) AwaitRestart(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.machine.Restart(d.button.Pressed()) {
			break
		}
		d.clock.Sleep(d.timing.PollInterval)
	}

	d.display.Clear()
	d.banner()
	d.logger.Info("restart")
	return nil
}

func (d *Device) banner() {
	d.display.GotoXY(BannerColumn, 0)
	d.animate(BannerText)
}

// animate types text at the cursor one character at a time.
func (d *Device) animate(text string) {
	for i := 0; i < len(text); i++ {
		d.display.Putc(text[i])
		d.frame()
		d.clock.Sleep(d.timing.CharDelay)
	}
	d.clock.Sleep(d.timing.TextTail)
}

func (d *Device) print(col, row int, text string) {
	d.display.GotoXY(col, row)
	for i := 0; i < len(text); i++ {
		d.display.Putc(text[i])
	}
}

func (d *Device) frame() {
	if d.onFrame != nil {
		d.onFrame()
	}
}

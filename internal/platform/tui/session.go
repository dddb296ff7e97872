package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lcd-dino/internal/button"
	"github.com/vovakirdan/lcd-dino/internal/dino"
	"github.com/vovakirdan/lcd-dino/internal/lcd"
)

// SessionConfig configures one emulated device.
type SessionConfig struct {
	Device   string // Owner of the best-score cell, shown in the status line
	Timing   dino.Timing
	Hold     time.Duration
	Logger   *log.Logger
	Recorder dino.RunRecorder // Optional
}

// Session is one powered device: a panel, a keyboard-driven button and the
// firmware loop running in its own goroutine.
type Session struct {
	Panel  *lcd.Panel
	Button *button.Latch

	name   string
	device *dino.Device
	logger *log.Logger
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// NewSession wires a device to a fresh panel and latch. The device is not
// powered until Start.
func NewSession(cell dino.Cell, cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		Panel:  lcd.NewPanel(),
		Button: button.NewLatch(cfg.Hold),
		name:   cfg.Device,
		logger: logger,
		done:   make(chan struct{}),
	}

	opts := []dino.Option{
		dino.WithTiming(cfg.Timing),
		dino.WithLogger(logger),
	}
	if cfg.Recorder != nil {
		opts = append(opts, dino.WithRecorder(cfg.Recorder))
	}
	s.device = dino.NewDevice(s.Panel, s.Button, cell, dino.SleepClock{}, opts...)
	return s
}

// Name returns the device name.
func (s *Session) Name() string {
	return s.name
}

// Start powers the device. The firmware loop runs until ctx is cancelled,
// Stop is called, or a collaborator fails.
func (s *Session) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go func() {
		err := s.device.Run(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		if err != nil {
			s.logger.Error("device stopped", "error", err)
		}
		s.err = err
		close(s.done)
	}()
}

// Done is closed when the firmware loop has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the firmware loop exits and returns its error, which is
// nil after a power-off.
func (s *Session) Wait() error {
	<-s.done
	return s.err
}

// Stop cuts power. The loop notices at its next button sample.
func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

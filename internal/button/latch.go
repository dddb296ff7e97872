// Package button provides implementations of the game's single digital input
// line. None of them debounce: the level is reported exactly as driven.
package button

import (
	"sync"
	"time"
)

// Latch turns discrete key events into a held button. Terminals report key
// presses and auto-repeats but never releases, so each press holds the line
// high for a fixed window; auto-repeat keeps extending it.
// Latch is safe for concurrent use.
type Latch struct {
	mu    sync.Mutex
	hold  time.Duration
	now   func() time.Time
	until time.Time
}

// LatchOption configures a Latch.
type LatchOption func(*Latch)

// WithNow replaces the time source.
func WithNow(now func() time.Time) LatchOption {
	return func(l *Latch) { l.now = now }
}

// NewLatch returns a released latch holding each press for hold.
func NewLatch(hold time.Duration, opts ...LatchOption) *Latch {
	l := &Latch{hold: hold, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Press drives the line high for the hold window from now.
func (l *Latch) Press() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.until = l.now().Add(l.hold)
}

// Release drops the line immediately.
func (l *Latch) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.until = time.Time{}
}

// Pressed reports the current line level.
func (l *Latch) Pressed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now().Before(l.until)
}

// Package lcd emulates an HD44780-style 16x2 character display: display data
// RAM addressed by column and row, a cursor that advances after every write,
// and eight user-defined character slots.
package lcd

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/lcd-dino/internal/core"
)

// Panel geometry.
const (
	Columns    = 16 // Visible columns
	Rows       = 2
	LineLength = 40 // DDRAM positions per line; columns past 15 are off-screen
	GlyphSlots = 8
)

// ErrGlyphSlot is returned for a custom glyph slot outside 0-7.
var ErrGlyphSlot = errors.New("lcd: glyph slot out of range")

// Panel is an emulated character display. It is safe for concurrent use:
// the firmware loop writes while a front-end takes snapshots.
type Panel struct {
	mu       sync.Mutex
	ddram    [Rows][LineLength]byte
	cgram    [GlyphSlots]core.Glyph
	col, row int
	revision uint64
}

// NewPanel returns a cleared panel with the cursor at the home position.
func NewPanel() *Panel {
	p := &Panel{}
	p.clear()
	return p
}

// Clear blanks the display and homes the cursor.
func (p *Panel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clear()
	p.revision++
}

func (p *Panel) clear() {
	for r := range p.ddram {
		for c := range p.ddram[r] {
			p.ddram[r][c] = ' '
		}
	}
	p.col, p.row = 0, 0
}

// GotoXY moves the cursor. Coordinates wrap into the DDRAM address space.
func (p *Panel) GotoXY(col, row int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.col = wrap(col, LineLength)
	p.row = wrap(row, Rows)
}

// Putc writes a character code at the cursor and advances it. After the last
// DDRAM position of a line the cursor continues on the other line.
func (p *Panel) Putc(c byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ddram[p.row][p.col] = c
	p.col++
	if p.col == LineLength {
		p.col = 0
		p.row = (p.row + 1) % Rows
	}
	p.revision++
}

// WriteAt moves the cursor and writes a single character.
func (p *Panel) WriteAt(col, row int, c byte) {
	p.GotoXY(col, row)
	p.Putc(c)
}

// RegisterGlyph uploads a custom character into slot 0-7. Character codes
// 0-7 (and their aliases 8-15) then display it.
func (p *Panel) RegisterGlyph(slot int, g core.Glyph) error {
	if slot < 0 || slot >= GlyphSlots {
		return fmt.Errorf("%w: %d", ErrGlyphSlot, slot)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cgram[slot] = g
	p.revision++
	return nil
}

// Cursor returns the cursor position.
func (p *Panel) Cursor() (col, row int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.col, p.row
}

// Snapshot is a copy of the visible display contents.
type Snapshot struct {
	Cells    [Rows][Columns]byte
	Glyphs   [GlyphSlots]core.Glyph
	Revision uint64
}

// Snapshot copies the visible area and the glyph slots.
func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	var s Snapshot
	for r := range s.Cells {
		copy(s.Cells[r][:], p.ddram[r][:Columns])
	}
	s.Glyphs = p.cgram
	s.Revision = p.revision
	return s
}

// Revision returns a counter that changes on every display mutation.
func (p *Panel) Revision() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.revision
}

// Row returns one visible line as raw character codes.
func (s Snapshot) Row(row int) []byte {
	if row < 0 || row >= Rows {
		return nil
	}
	out := make([]byte, Columns)
	copy(out, s.Cells[row][:])
	return out
}

// Glyph returns the custom glyph a character code refers to, if any.
func (s Snapshot) Glyph(code byte) (core.Glyph, bool) {
	if code >= 2*GlyphSlots {
		return core.Glyph{}, false
	}
	return s.Glyphs[code%GlyphSlots], true
}

// Text returns the visible contents with custom glyph codes replaced by
// their slot digit and ROM codes mapped through ROMRune.
func (s Snapshot) Text() string {
	var b []rune
	for r := 0; r < Rows; r++ {
		if r > 0 {
			b = append(b, '\n')
		}
		for _, c := range s.Cells[r] {
			if c < 2*GlyphSlots {
				b = append(b, rune('0'+c%GlyphSlots))
				continue
			}
			b = append(b, ROMRune(c))
		}
	}
	return string(b)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

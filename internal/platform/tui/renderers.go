package tui

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/lcd-dino/internal/config"
	"github.com/vovakirdan/lcd-dino/internal/core"
	"github.com/vovakirdan/lcd-dino/internal/dino"
	"github.com/vovakirdan/lcd-dino/internal/lcd"
	"github.com/vovakirdan/lcd-dino/internal/registry"
)

// AutoRenderer picks the largest registered renderer that fits the terminal.
const AutoRenderer = "auto"

func init() {
	registry.Register("lcd", func() registry.Renderer { return lcdRenderer{} })
	registry.Register("big", func() registry.Renderer { return bigRenderer{} })
	registry.Register("ascii", func() registry.Renderer { return asciiRenderer{} })
}

// ThemeFromConfig converts the display theme to renderer runes. Entries with
// an empty value are skipped.
func ThemeFromConfig(cfg config.DisplayConfig) registry.Theme {
	theme := make(registry.Theme, len(cfg.Theme))
	for name := range cfg.Theme {
		if r := cfg.Rune(name, 0); r != 0 {
			theme[name] = r
		}
	}
	return theme
}

// ResolveRenderer creates the renderer with the given ID. For AutoRenderer
// (or an empty ID) it picks the registered renderer with the largest area
// that fits in w x h, falling back to the smallest one.
func ResolveRenderer(id string, w, h int) (registry.Renderer, error) {
	if id != "" && id != AutoRenderer {
		return registry.Create(id)
	}

	infos := registry.List()
	if len(infos) == 0 {
		return nil, fmt.Errorf("tui: no renderers registered")
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Width*infos[i].Height > infos[j].Width*infos[j].Height
	})
	for _, info := range infos {
		if info.Width <= w && info.Height <= h {
			return registry.Create(info.ID)
		}
	}
	return registry.Create(infos[len(infos)-1].ID)
}

// cellRune maps one character code to a terminal rune. Custom glyph codes use
// the theme entry for the glyph name; unregistered slots are blank.
func cellRune(snap lcd.Snapshot, code byte, theme registry.Theme) rune {
	if g, ok := snap.Glyph(code); ok {
		if g.Empty() && g.Name == "" {
			return ' '
		}
		return theme.Rune(g.Name, '?')
	}
	if code == dino.ObstacleCode {
		return theme.Rune("obstacle", lcd.ROMRune(code))
	}
	return lcd.ROMRune(code)
}

// cellColor highlights the crash glyphs.
func cellColor(snap lcd.Snapshot, code byte) core.Color {
	if g, ok := snap.Glyph(code); ok {
		switch g.Name {
		case dino.GlyphAvatarCrashed, dino.GlyphObstacleCrashed:
			return core.ColorAlert
		}
	}
	return core.ColorInk
}

// lcdRenderer draws the 16x2 panel inside a bezel, one terminal cell per
// character.
type lcdRenderer struct{}

func (lcdRenderer) ID() string       { return "lcd" }
func (lcdRenderer) Title() string    { return "16x2 panel with bezel" }
func (lcdRenderer) Size() (int, int) { return lcd.Columns + 4, lcd.Rows + 2 }

func (lcdRenderer) Render(dst *core.Screen, snap lcd.Snapshot, theme registry.Theme) {
	w, h := lcdRenderer{}.Size()
	dst.DrawBox(0, 0, w, h, core.ColorBezel)

	for row := 0; row < lcd.Rows; row++ {
		for col := 0; col < lcd.Columns; col++ {
			r := cellRune(snap, snap.Cells[row][col], theme)
			if r == ' ' {
				dst.SetColored(col+2, row+1, '·', core.ColorDim)
				continue
			}
			dst.SetColored(col+2, row+1, r, cellColor(snap, snap.Cells[row][col]))
		}
	}
}

// asciiRenderer draws the bare 16x2 grid with 7-bit characters only, for
// dumb terminals and logs. It ignores the theme.
type asciiRenderer struct{}

var asciiTheme = registry.Theme{
	dino.GlyphAvatar:          'D',
	dino.GlyphAvatarCrashed:   'X',
	dino.GlyphObstacleCrashed: '/',
	"obstacle":                '#',
}

func (asciiRenderer) ID() string       { return "ascii" }
func (asciiRenderer) Title() string    { return "Plain 7-bit text" }
func (asciiRenderer) Size() (int, int) { return lcd.Columns, lcd.Rows }

func (asciiRenderer) Render(dst *core.Screen, snap lcd.Snapshot, _ registry.Theme) {
	for row := 0; row < lcd.Rows; row++ {
		for col := 0; col < lcd.Columns; col++ {
			r := cellRune(snap, snap.Cells[row][col], asciiTheme)
			if r > 0x7E {
				r = '?'
			}
			dst.Set(col, row, r)
		}
	}
}

// bigRenderer draws every character cell as its 5x8 bitmap using half-block
// runes, so the custom glyphs appear as uploaded. Built-in ROM characters have
// no bitmap here and are drawn as their rune in the middle of the cell.
type bigRenderer struct{}

const (
	bigCellW = core.GlyphCols
	bigCellH = core.GlyphRows / 2
	bigGap   = 1
)

func (bigRenderer) ID() string    { return "big" }
func (bigRenderer) Title() string { return "Pixel view of the 5x8 glyphs" }

func (bigRenderer) Size() (int, int) {
	w := lcd.Columns*(bigCellW+bigGap) - bigGap + 4
	h := lcd.Rows*(bigCellH+bigGap) - bigGap + 2
	return w, h
}

func (bigRenderer) Render(dst *core.Screen, snap lcd.Snapshot, theme registry.Theme) {
	w, h := bigRenderer{}.Size()
	dst.DrawBox(0, 0, w, h, core.ColorBezel)

	for row := 0; row < lcd.Rows; row++ {
		for col := 0; col < lcd.Columns; col++ {
			x := 2 + col*(bigCellW+bigGap)
			y := 1 + row*(bigCellH+bigGap)
			code := snap.Cells[row][col]

			g, ok := snap.Glyph(code)
			if !ok {
				if r := cellRune(snap, code, theme); r != ' ' {
					dst.SetColored(x+bigCellW/2, y+bigCellH/2-1, r, core.ColorInk)
				}
				continue
			}
			drawGlyph(dst, x, y, g)
		}
	}
}

// drawGlyph draws a glyph bitmap two pixel rows per terminal row.
func drawGlyph(dst *core.Screen, x, y int, g core.Glyph) {
	for ty := 0; ty < bigCellH; ty++ {
		for px := 0; px < bigCellW; px++ {
			top := g.Pixel(px, ty*2)
			bottom := g.Pixel(px, ty*2+1)
			var r rune
			switch {
			case top && bottom:
				r = '█'
			case top:
				r = '▀'
			case bottom:
				r = '▄'
			default:
				continue
			}
			dst.SetColored(x+px, y+ty, r, core.ColorInk)
		}
	}
}

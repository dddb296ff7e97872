package core

// GlyphRows is the height of a character cell bitmap.
const GlyphRows = 8

// GlyphCols is the number of significant bits per bitmap row.
const GlyphCols = 5

// Glyph is a custom character: an 8-row, 5-bit-wide bitmap plus a name the
// front-ends can map to a terminal rune. Renderers treat the bitmap as an
// opaque asset.
type Glyph struct {
	Name string
	Rows [GlyphRows]uint8
}

// Pixel reports whether the bit at (x, y) is lit. x counts from the left.
func (g Glyph) Pixel(x, y int) bool {
	if x < 0 || x >= GlyphCols || y < 0 || y >= GlyphRows {
		return false
	}
	return g.Rows[y]&(1<<(GlyphCols-1-x)) != 0
}

// Empty reports whether no pixel is lit.
func (g Glyph) Empty() bool {
	for _, r := range g.Rows {
		if r&0x1F != 0 {
			return false
		}
	}
	return true
}

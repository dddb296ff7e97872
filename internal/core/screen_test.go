package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(16, 2)

	if s.Width() != 16 {
		t.Errorf("Width() = %d, expected 16", s.Width())
	}
	if s.Height() != 2 {
		t.Errorf("Height() = %d, expected 2", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorInk)
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}
	if c := s.GetCell(5, 5); c.Color != ColorInk {
		t.Errorf("GetCell(5, 5).Color = %d, expected %d", c.Color, ColorInk)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			s.SetColored(x, y, 'X', ColorAlert)
		}
	}

	s.Clear()

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Errorf("After Clear, expected blank cell at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(8, 1)
	s.DrawText(5, 0, "Hi 007", ColorInk)

	if got := s.Row(0); got != "     Hi " {
		t.Errorf("Row(0) = %q, expected %q", got, "     Hi ")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(4, 1)
	s.DrawText(0, 0, "¥█a", ColorDefault)

	if got := s.Row(0); got != "¥█a " {
		t.Errorf("Row(0) = %q, expected %q", got, "¥█a ")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(0, 0, 4, 3, ColorBezel)

	expected := []string{"┌──┐", "│  │", "└──┘"}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "ab", ColorDefault)
	s.DrawText(0, 1, "cd", ColorDefault)

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("String() produced %d lines, expected 2", len(lines))
	}
	if lines[0] != "ab " || lines[1] != "cd " {
		t.Errorf("String() = %q", s.String())
	}
}

func TestRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected blanks", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestGlyphPixel(t *testing.T) {
	g := Glyph{Rows: [GlyphRows]uint8{0b10001}}

	if !g.Pixel(0, 0) || !g.Pixel(4, 0) {
		t.Error("Expected outer bits of row 0 to be lit")
	}
	if g.Pixel(2, 0) || g.Pixel(0, 1) {
		t.Error("Expected unlit pixels")
	}
	if g.Pixel(5, 0) || g.Pixel(-1, 0) {
		t.Error("Out of range pixels should be unlit")
	}
	if g.Empty() {
		t.Error("Glyph with lit pixels reported empty")
	}
	if !(Glyph{}).Empty() {
		t.Error("Zero glyph should be empty")
	}
}

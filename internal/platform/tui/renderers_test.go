package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/lcd-dino/internal/config"
	"github.com/vovakirdan/lcd-dino/internal/core"
	"github.com/vovakirdan/lcd-dino/internal/dino"
	"github.com/vovakirdan/lcd-dino/internal/lcd"
	"github.com/vovakirdan/lcd-dino/internal/registry"
)

// crashPanel returns a panel showing the game-over screen after a crash.
func crashPanel(t *testing.T) *lcd.Panel {
	t.Helper()
	p := lcd.NewPanel()
	for slot, g := range map[int]core.Glyph{
		dino.SlotAvatar:          dino.AvatarGlyph,
		dino.SlotAvatarCrashed:   dino.AvatarCrashedGlyph,
		dino.SlotObstacleCrashed: dino.ObstacleCrashedGlyph,
	} {
		if err := p.RegisterGlyph(slot, g); err != nil {
			t.Fatalf("RegisterGlyph(%d) failed: %v", slot, err)
		}
	}
	p.GotoXY(0, 0)
	for _, c := range []byte("GAMEOVER  Hi 013") {
		p.Putc(c)
	}
	p.GotoXY(dino.AvatarColumn, dino.RowGround)
	p.Putc(dino.SlotAvatarCrashed)
	p.Putc(dino.SlotObstacleCrashed)
	p.WriteAt(12, 1, dino.ObstacleCode)
	return p
}

func TestRenderersRegistered(t *testing.T) {
	for _, id := range []string{"lcd", "big", "ascii"} {
		if !registry.Exists(id) {
			t.Errorf("Renderer %q not registered", id)
		}
	}
	if registry.Exists(AutoRenderer) {
		t.Errorf("%q should be resolved, not registered", AutoRenderer)
	}
}

func TestASCIIRenderer(t *testing.T) {
	r, err := registry.Create("ascii")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got := Frame(r, crashPanel(t).Snapshot(), nil)
	want := "GAMEOVER  Hi 013\n  X/        #   "
	if got != want {
		t.Errorf("Frame =\n%s\nexpected\n%s", got, want)
	}
}

func TestLCDRendererUsesTheme(t *testing.T) {
	r, err := registry.Create("lcd")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	theme := registry.Theme{
		dino.GlyphAvatarCrashed:   'A',
		dino.GlyphObstacleCrashed: 'B',
		"obstacle":                'C',
	}

	lines := strings.Split(Frame(r, crashPanel(t).Snapshot(), theme), "\n")
	w, h := r.Size()
	if len(lines) != h {
		t.Fatalf("Frame has %d lines, expected %d", len(lines), h)
	}
	if !strings.HasPrefix(lines[0], "┌") || !strings.HasPrefix(lines[h-1], "└") {
		t.Errorf("Missing bezel: %q / %q", lines[0], lines[h-1])
	}
	if got := []rune(lines[1]); len(got) != w || string(got[2:18]) != "GAMEOVER··Hi·013" {
		t.Errorf("Row 0 = %q", lines[1])
	}
	if got := []rune(lines[2]); string(got[4:6]) != "AB" || got[14] != 'C' {
		t.Errorf("Row 1 = %q", lines[2])
	}
}

func TestBigRendererDrawsBitmaps(t *testing.T) {
	r, err := registry.Create("big")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	p := lcd.NewPanel()
	if err := p.RegisterGlyph(dino.SlotAvatar, core.Glyph{
		Name: dino.GlyphAvatar,
		Rows: [core.GlyphRows]uint8{0b11111, 0b11111, 0b10000, 0, 0, 0b00001, 0, 0},
	}); err != nil {
		t.Fatalf("RegisterGlyph failed: %v", err)
	}
	p.WriteAt(0, 0, dino.SlotAvatar)

	w, h := r.Size()
	screen := core.NewScreen(w, h)
	r.Render(screen, p.Snapshot(), nil)

	// Cell (0,0) starts inside the bezel at (2,1)
	if got := string([]rune(screen.Row(1))[2:7]); got != "█████" {
		t.Errorf("Pixel row pair 0 = %q", got)
	}
	if got := string([]rune(screen.Row(2))[2:7]); got != "▀    " {
		t.Errorf("Pixel row pair 1 = %q", got)
	}
	if got := string([]rune(screen.Row(3))[2:7]); got != "    ▄" {
		t.Errorf("Pixel row pair 2 = %q", got)
	}
}

func TestResolveRenderer(t *testing.T) {
	bigW, bigH := bigRenderer{}.Size()
	lcdW, lcdH := lcdRenderer{}.Size()

	tests := []struct {
		name string
		id   string
		w, h int
		want string
	}{
		{"explicit", "ascii", 200, 100, "ascii"},
		{"auto wide", AutoRenderer, bigW, bigH, "big"},
		{"auto medium", AutoRenderer, bigW - 1, bigH, "lcd"},
		{"auto small", "", lcdW, lcdH, "lcd"},
		{"auto tiny", AutoRenderer, 16, 2, "ascii"},
		{"auto too small", AutoRenderer, 3, 1, "ascii"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ResolveRenderer(tc.id, tc.w, tc.h)
			if err != nil {
				t.Fatalf("ResolveRenderer failed: %v", err)
			}
			if r.ID() != tc.want {
				t.Errorf("ResolveRenderer(%q, %d, %d) = %q, expected %q", tc.id, tc.w, tc.h, r.ID(), tc.want)
			}
		})
	}

	if _, err := ResolveRenderer("nope", 80, 24); err == nil {
		t.Error("Expected error for unknown renderer")
	}
}

func TestThemeFromConfig(t *testing.T) {
	theme := ThemeFromConfig(config.DisplayConfig{
		Theme: map[string]string{
			dino.GlyphAvatar: "▟x",
			"empty":          "",
		},
	})
	if theme[dino.GlyphAvatar] != '▟' {
		t.Errorf("avatar = %q, expected first rune", theme[dino.GlyphAvatar])
	}
	if _, ok := theme["empty"]; ok {
		t.Error("Empty entries should be skipped")
	}
}

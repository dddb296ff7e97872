package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lcd-dino/internal/core"
	"github.com/vovakirdan/lcd-dino/internal/lcd"
	"github.com/vovakirdan/lcd-dino/internal/registry"
)

// colorStyles maps core.Color to lipgloss styles. The ink and dim colors
// imitate a green backlit STN panel.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorInk:     lipgloss.NewStyle().Foreground(lipgloss.Color("#1B3A0A")).Background(lipgloss.Color("#9BC53D")),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("#86AD32")).Background(lipgloss.Color("#9BC53D")),
	core.ColorBezel:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorAlert:   lipgloss.NewStyle().Foreground(lipgloss.Color("#7A0C0C")).Background(lipgloss.Color("#9BC53D")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Frame renders a snapshot with r into a fresh screen and returns the
// plain text, without styling. Used for headless output.
func Frame(r registry.Renderer, snap lcd.Snapshot, theme registry.Theme) string {
	w, h := r.Size()
	screen := core.NewScreen(w, h)
	r.Render(screen, snap, theme)
	return screen.String()
}

package core

// Color represents a foreground color for a screen cell.
// Renderers map it to terminal styles.
type Color uint8

// Colors used by the LCD renderers.
const (
	ColorDefault Color = iota
	ColorInk           // Lit segment on the backlight
	ColorDim           // Unlit cell grid
	ColorBezel
	ColorAlert
)

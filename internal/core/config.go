package core

// RuntimeConfig contains front-end settings shared by the play and SSH models.
type RuntimeConfig struct {
	ScreenW  int    // Terminal width in characters
	ScreenH  int    // Terminal height in characters
	FPS      int    // Screen refresh rate
	Renderer string // Renderer ID, see registry
	Device   string // Persistence slot owner
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		FPS:      30,
		Renderer: "auto",
		Device:   "local",
	}
}

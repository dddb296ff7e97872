// Package registry provides a global registry for LCD renderers.
// Renderers register themselves in init() functions, allowing the front-ends
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/lcd-dino/internal/core"
	"github.com/vovakirdan/lcd-dino/internal/lcd"
)

// Theme maps custom glyph names (and "obstacle" for the ROM obstacle
// character) to the terminal runes that stand in for them.
type Theme map[string]rune

// Rune returns the rune for name, or fallback if the theme has none.
func (t Theme) Rune(name string, fallback rune) rune {
	if r, ok := t[name]; ok {
		return r
	}
	return fallback
}

// Renderer draws a panel snapshot into a character screen.
// Renderers are pure: they hold no panel state and never block.
type Renderer interface {
	// ID returns a unique identifier, used by --renderer and the config file.
	ID() string

	// Title returns a human-readable name for listings.
	Title() string

	// Size returns the screen area the renderer needs.
	Size() (w, h int)

	// Render draws snap at the top-left corner of dst.
	Render(dst *core.Screen, snap lcd.Snapshot, theme Theme)
}

// RendererInfo contains metadata about a registered renderer.
type RendererInfo struct {
	ID     string
	Title  string
	Width  int
	Height int
}

// Factory is a function that creates a new renderer.
type Factory func() Renderer

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]RendererInfo)
	mu        sync.RWMutex
)

// Register adds a renderer factory to the registry.
// Typically called from an init() function.
// Panics if a renderer with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: renderer %q already registered", id))
	}

	factories[id] = f

	r := f()
	w, h := r.Size()
	infos[id] = RendererInfo{ID: id, Title: r.Title(), Width: w, Height: h}
}

// List returns information about all registered renderers, sorted by ID.
func List() []RendererInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]RendererInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a renderer by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Renderer, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown renderer %q", id)
	}

	return f(), nil
}

// Exists checks if a renderer with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

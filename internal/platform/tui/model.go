package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lcd-dino/internal/core"
	"github.com/vovakirdan/lcd-dino/internal/registry"
)

// reservedRows is the space kept below the panel for the status and help lines.
const reservedRows = 3

// deviceDoneMsg reports that the firmware loop exited on its own.
type deviceDoneMsg struct {
	err error
}

func waitForDevice(s *Session) tea.Cmd {
	return func() tea.Msg {
		return deviceDoneMsg{err: s.Wait()}
	}
}

// Model is the Bubble Tea model showing a running device. The device runs in
// its own goroutine; the model polls the panel revision at the refresh rate,
// repaints only when it changed and turns key presses into button presses.
type Model struct {
	session    *Session
	renderer   registry.Renderer
	rendererID string
	theme      registry.Theme
	screen     *core.Screen
	frame      string // Last rendered panel
	drawn      uint64 // Panel revision the frame shows
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	err        error
	quitting   bool
}

// NewModel creates a play model for a session. cfg.Renderer may be
// AutoRenderer, in which case the renderer follows the window size.
func NewModel(session *Session, theme registry.Theme, cfg core.RuntimeConfig) (Model, error) {
	if cfg.FPS <= 0 {
		cfg.FPS = core.DefaultConfig().FPS
	}
	r, err := ResolveRenderer(cfg.Renderer, cfg.ScreenW, cfg.ScreenH-reservedRows)
	if err != nil {
		return Model{}, err
	}
	w, h := r.Size()

	m := Model{
		session:    session,
		renderer:   r,
		rendererID: cfg.Renderer,
		theme:      theme,
		screen:     core.NewScreen(w, h),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}
	m.paint()
	return m, nil
}

// paint renders the current panel contents into the cached frame.
func (m *Model) paint() {
	snap := m.session.Panel.Snapshot()
	m.screen.Clear()
	m.renderer.Render(m.screen, snap, m.theme)
	m.frame = RenderScreen(m.screen)
	m.drawn = snap.Revision
}

// Init starts the refresh loop and waits for the device in the background.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.FPS), waitForDevice(m.session))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if m.session.Panel.Revision() != m.drawn {
			m.paint()
		}
		return m, tickCmd(m.config.FPS)

	case deviceDoneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		m.session.Stop()
		return m, tea.Quit
	case core.ActionButton:
		m.session.Button.Press()
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleResize follows the window size, switching renderers in auto mode.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	if m.rendererID == "" || m.rendererID == AutoRenderer {
		if r, err := ResolveRenderer(AutoRenderer, msg.Width, msg.Height-reservedRows); err == nil && r.ID() != m.renderer.ID() {
			m.renderer = r
			w, h := r.Size()
			m.screen = core.NewScreen(w, h)
			m.paint()
		}
	}
	return m, nil
}

// View renders the panel, a status line and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("device %s · %s", m.session.Name(), m.renderer.ID())))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	if m.config.ScreenW <= 0 || m.config.ScreenH <= 0 {
		return b.String()
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, b.String())
}

// Err returns the error the device stopped with, if any.
func (m Model) Err() error {
	return m.err
}

// Run powers the session and shows it until the user quits or the device
// fails. The session is stopped before Run returns.
func Run(session *Session, theme registry.Theme, cfg core.RuntimeConfig) error {
	model, err := NewModel(session, theme, cfg)
	if err != nil {
		return err
	}

	session.Start(context.Background())

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, runErr := p.Run()
	session.Stop()
	devErr := session.Wait()

	if runErr != nil {
		return runErr
	}
	return devErr
}

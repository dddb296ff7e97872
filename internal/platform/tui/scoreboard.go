package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lcd-dino/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the device sidebar
	sidebarWidth       = 20  // Width of the device sidebar
	maxRuns            = 100 // Max runs to load per device
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	boardPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardStatsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardEmptyStyle = boardMutedStyle.Italic(true).Padding(2, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextDevice key.Binding
	PrevDevice key.Binding
	Order      key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextDevice, k.PrevDevice, k.Order, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextDevice, k.PrevDevice, k.Order},
		{k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextDevice: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next device"),
		),
		PrevDevice: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev device"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "top/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel browses the run history of every device in the database.
type ScoreboardModel struct {
	store   *storage.Store
	devices []string // Devices with a cell or recorded runs
	cursor  int      // Selected device index
	recent  bool     // Newest runs first instead of best runs first

	runs  []storage.RunEntry
	best  int
	stats *storage.RunStats

	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard with device preselected. A device
// unknown to the database is listed anyway, with an empty history.
func NewScoreboardModel(store *storage.Store, device string, width, height int) ScoreboardModel {
	var devices []string
	if store != nil {
		devices, _ = store.Devices() //nolint:errcheck // Empty list on error
	}

	cursor := -1
	for i, d := range devices {
		if d == device {
			cursor = i
			break
		}
	}
	if cursor < 0 {
		cursor = 0
		if device != "" {
			devices = append(devices, device)
			cursor = len(devices) - 1
		}
	}

	m := ScoreboardModel{
		store:   store,
		devices: devices,
		cursor:  cursor,
		help:    help.New(),
		keys:    DefaultScoreboardKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// newTable builds the run table for the current window size.
func (m ScoreboardModel) newTable() table.Model {
	dateWidth := 14
	avail := m.width - 4
	if m.wide() {
		avail -= sidebarWidth + 3
	}
	if avail > 50 {
		dateWidth = min(avail-30, 20)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Best", Width: 8},
			{Title: "Date", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// device returns the selected device, or empty if there is none.
func (m ScoreboardModel) device() string {
	if len(m.devices) == 0 {
		return ""
	}
	return m.devices[m.cursor]
}

// load reads the history, best score and stats of the selected device.
// Read errors leave the affected part empty.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.best = nil, nil, 0

	if device := m.device(); m.store != nil && device != "" {
		if m.recent {
			m.runs, _ = m.store.RecentRuns(device, maxRuns) //nolint:errcheck // Shown as empty
		} else {
			m.runs, _ = m.store.TopRuns(device, maxRuns) //nolint:errcheck // Shown as empty
		}
		if best, err := m.store.Cell(device).ReadBestScore(); err == nil {
			m.best = best
		}
		if stats, err := m.store.Stats(device); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Best),
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// step moves the device cursor by delta, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	if len(m.devices) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.devices)) % len(m.devices)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextDevice):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevDevice):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Order):
			m.recent = !m.recent
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	title := "TOP RUNS"
	if m.recent {
		title = "RECENT RUNS"
	}
	if d := m.device(); d != "" {
		title += " - " + d
	}

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", boardPanelStyle.Render(m.history()))
	} else {
		body = boardPanelStyle.Render(m.history())
		if d := m.device(); d != "" {
			body = centerText("< "+d+" >", m.width) + "\n\n" + body
		}
	}

	return strings.Join([]string{
		boardTitleStyle.Render(centerText(title, m.width)),
		"",
		body,
		boardStatsStyle.Render(m.statsLine()),
		boardMutedStyle.Render(m.help.View(m.keys)),
	}, "\n")
}

// sidebar lists the devices with the cursor on the selected one.
func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString("Devices\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	for i, d := range m.devices {
		if maxLen := sidebarWidth - 6; len(d) > maxLen {
			d = d[:maxLen-1] + "."
		}
		b.WriteString("\n")
		if i == m.cursor {
			b.WriteString(boardPickStyle.Render("> " + d))
		} else {
			b.WriteString("  " + d)
		}
	}
	return boardPanelStyle.Width(sidebarWidth).Render(b.String())
}

// history renders the table, or a hint when there are no runs.
func (m ScoreboardModel) history() string {
	if len(m.runs) == 0 {
		return boardEmptyStyle.Render("No runs recorded yet.\nPower up the device and jump!")
	}
	return m.table.View()
}

// statsLine summarizes the selected device.
func (m ScoreboardModel) statsLine() string {
	line := fmt.Sprintf("Best: %d", m.best)
	if m.stats == nil || m.stats.Runs == 0 {
		return line
	}
	line += fmt.Sprintf("   Runs: %d   Avg: %.1f   Ticks: %d", m.stats.Runs, m.stats.AvgScore, m.stats.TotalTicks)
	if !m.stats.LastPlayed.IsZero() {
		line += "   Last: " + m.stats.LastPlayed.Format("Jan 02 15:04")
	}
	return line
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return strings.Repeat(" ", (width-len(text))/2) + text
}

// RunScoreboard shows the run history until the user quits.
func RunScoreboard(store *storage.Store, device string, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, device, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

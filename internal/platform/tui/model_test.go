package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lcd-dino/internal/core"
	"github.com/vovakirdan/lcd-dino/internal/dino"
	"github.com/vovakirdan/lcd-dino/internal/storage"
)

type brokenCell struct{}

func (brokenCell) ReadBestScore() (int, error) { return 0, errors.New("bus fault") }
func (brokenCell) WriteBestScore(int) error    { return nil }

func fastTiming() dino.Timing {
	return dino.Timing{
		Speed:        dino.SpeedTable{},
		PollInterval: time.Millisecond,
	}
}

func newTestModel(t *testing.T, renderer string, w, h int) (Model, *Session) {
	t.Helper()
	session := NewSession(storage.NewMemoryCell(0), SessionConfig{
		Device: "tester",
		Timing: fastTiming(),
		Hold:   time.Minute,
	})
	m, err := NewModel(session, nil, core.RuntimeConfig{
		ScreenW:  w,
		ScreenH:  h,
		FPS:      30,
		Renderer: renderer,
	})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m, session
}

func TestKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionButton},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionButton},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionButton},
		{"help", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, core.ActionHelp},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"other", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.MapKey(tc.msg); got != tc.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestModelButtonPress(t *testing.T) {
	m, session := newTestModel(t, "lcd", 80, 24)

	if session.Button.Pressed() {
		t.Fatal("Button should start released")
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !session.Button.Pressed() {
		t.Error("Space should press the button")
	}
	if _, ok := next.(Model); !ok {
		t.Fatalf("Update returned %T", next)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, "lcd", 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Quit should return a command")
	}
	if got := next.(Model).View(); got != "" {
		t.Errorf("View after quit = %q, expected empty", got)
	}
}

func TestModelDeviceFailure(t *testing.T) {
	m, _ := newTestModel(t, "lcd", 80, 24)
	failure := errors.New("cell gone")

	next, cmd := m.Update(deviceDoneMsg{err: failure})
	if cmd == nil {
		t.Fatal("Device exit should quit")
	}
	if !errors.Is(next.(Model).Err(), failure) {
		t.Errorf("Err() = %v, expected %v", next.(Model).Err(), failure)
	}
}

func TestModelAutoRendererFollowsResize(t *testing.T) {
	m, _ := newTestModel(t, AutoRenderer, 200, 60)
	if m.renderer.ID() != "big" {
		t.Fatalf("Initial renderer = %q, expected big", m.renderer.ID())
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if got := next.(Model).renderer.ID(); got != "lcd" {
		t.Errorf("Renderer after shrink = %q, expected lcd", got)
	}

	// A fixed renderer stays put.
	m, _ = newTestModel(t, "ascii", 200, 60)
	next, _ = m.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	if got := next.(Model).renderer.ID(); got != "ascii" {
		t.Errorf("Fixed renderer changed to %q", got)
	}
}

func TestModelView(t *testing.T) {
	m, session := newTestModel(t, "ascii", 0, 0)
	session.Panel.GotoXY(3, 0)
	for _, c := range []byte(dino.BannerText) {
		session.Panel.Putc(c)
	}

	next, _ := m.Update(TickMsg(time.Now()))
	view := next.(Model).View()
	if !strings.Contains(view, dino.BannerText) {
		t.Errorf("View does not show the panel:\n%s", view)
	}
	if !strings.Contains(view, "tester") {
		t.Errorf("View does not show the device name:\n%s", view)
	}
}

func TestModelRepaintsOnRevisionChange(t *testing.T) {
	m, session := newTestModel(t, "ascii", 0, 0)
	if m.drawn != session.Panel.Revision() {
		t.Fatalf("Initial frame shows revision %d, panel is at %d", m.drawn, session.Panel.Revision())
	}
	before := m.frame

	// Nothing changed: the tick keeps the cached frame.
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.frame != before {
		t.Error("Frame changed without a panel write")
	}

	session.Panel.WriteAt(0, 1, '#')
	if strings.Contains(m.View(), "#") {
		t.Error("Frame repainted before the refresh tick")
	}

	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.drawn != session.Panel.Revision() {
		t.Errorf("Frame shows revision %d, panel is at %d", m.drawn, session.Panel.Revision())
	}
	if !strings.Contains(m.View(), "#") {
		t.Errorf("Frame lacks the new character:\n%s", m.View())
	}
}

func TestSessionPowerOff(t *testing.T) {
	session := NewSession(storage.NewMemoryCell(0), SessionConfig{Timing: fastTiming(), Hold: time.Millisecond})
	session.Start(context.Background())
	session.Stop()

	done := make(chan error, 1)
	go func() { done <- session.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Wait() = %v, expected nil after power-off", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Session did not stop")
	}
}

func TestSessionReportsCellFailure(t *testing.T) {
	session := NewSession(brokenCell{}, SessionConfig{Timing: fastTiming(), Hold: time.Millisecond})
	session.Start(context.Background())
	defer session.Stop()

	select {
	case <-session.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Session did not stop on a cell failure")
	}
	if err := session.Wait(); err == nil || !strings.Contains(err.Error(), "bus fault") {
		t.Errorf("Wait() = %v, expected the cell error", err)
	}
}

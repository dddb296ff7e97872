package core

// Action represents a front-end action, abstracted from physical key presses.
type Action int

const (
	ActionNone   Action = iota
	ActionButton        // Space, Up, Enter - the single game button
	ActionHelp          // ? - toggle the help bar
	ActionQuit          // Q, Ctrl+C - power off
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionButton:
		return "Button"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

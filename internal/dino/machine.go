package dino

import "errors"

// ErrNotGameOver is returned when a game-over transition is requested while a
// run is still in progress.
var ErrNotGameOver = errors.New("dino: run has not ended")

// State is the run lifecycle state.
type State int

const (
	StatePlaying State = iota
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// RunState is the mutable state of one play session.
type RunState struct {
	Ticks     int  // Ticks completed since the run started
	Score     int  // Incremented once per tick, including the colliding one
	JumpTicks int  // Ticks spent raised in the current hop, [0, MaxJumpTicks]
	Raised    bool // Avatar position on the last tick
	Crashed   bool // Set on collision; terminal for the run
}

// Phase returns the current obstacle phase.
func (r RunState) Phase() int {
	return ObstaclePhase(r.Ticks)
}

// Survived returns the number of ticks cleared before the crash (or so far).
func (r RunState) Survived() int {
	if r.Crashed {
		return r.Score - 1
	}
	return r.Score
}

// TickResult describes what happened during one tick.
type TickResult struct {
	Phase    int // Obstacle phase the tick was played at
	Raised   bool
	Crashed  bool
	Score    int // Score after the tick
	Bucket   int // Speed bucket selected for the pause after the tick
	Advanced bool
}

// Machine is the run state machine. It is not safe for concurrent use; the
// owning loop is the only caller.
type Machine struct {
	state State
	run   RunState
}

// NewMachine returns a machine at the start of a fresh run.
func NewMachine() *Machine {
	return &Machine{state: StatePlaying}
}

// State returns the lifecycle state.
func (m *Machine) State() State {
	return m.state
}

// Run returns a copy of the current run state.
func (m *Machine) Run() RunState {
	return m.run
}

// Tick plays one tick with the sampled button level.
//
// The order is fixed: phase, jump arbitration, collision, then score. The
// speed bucket is picked from the score before this tick's increment, so a
// threshold crossing only affects the following tick. Ticking after a crash
// leaves the state untouched.
func (m *Machine) Tick(pressed bool) TickResult {
	if m.state != StatePlaying {
		return TickResult{
			Phase:   m.run.Phase(),
			Raised:  m.run.Raised,
			Crashed: m.run.Crashed,
			Score:   m.run.Score,
			Bucket:  Bucket(m.run.Score),
		}
	}

	phase := m.run.Phase()
	raised, next := ArbitrateJump(pressed, m.run.JumpTicks)
	m.run.Raised = raised
	m.run.JumpTicks = next

	bucket := Bucket(m.run.Score)
	m.run.Score++

	if Collides(phase, raised) {
		m.run.Crashed = true
		m.state = StateGameOver
		return TickResult{Phase: phase, Raised: raised, Crashed: true, Score: m.run.Score, Bucket: bucket}
	}

	m.run.Ticks++
	return TickResult{Phase: phase, Raised: raised, Score: m.run.Score, Bucket: bucket, Advanced: true}
}

// MaxBestScore is the largest best score the 16-bit persistence cell holds.
const MaxBestScore = 0xFFFF

// Settle computes the best score after a crash: the larger of the stored best
// and the ticks survived in this run, capped at MaxBestScore.
func (m *Machine) Settle(best int) (int, error) {
	if m.state != StateGameOver {
		return best, ErrNotGameOver
	}
	return min(max(best, m.run.Score-1), MaxBestScore), nil
}

// Restart starts a new run when the button is pressed after a crash.
// It reports whether the transition happened.
func (m *Machine) Restart(pressed bool) bool {
	if !pressed || m.state != StateGameOver || !m.run.Crashed {
		return false
	}
	m.run = RunState{}
	m.state = StatePlaying
	return true
}

package dino

import (
	"errors"
	"testing"
)

// playUntilCrash ticks m with the given levels (then released) until the run
// ends or limit ticks have passed.
func playUntilCrash(m *Machine, limit int, levels ...bool) []TickResult {
	var out []TickResult
	for i := 0; i < limit && m.State() == StatePlaying; i++ {
		pressed := i < len(levels) && levels[i]
		out = append(out, m.Tick(pressed))
	}
	return out
}

// hopPressed holds the button for one full hop ending on the collision
// phase, so the jump counter re-arms on the following tick.
func hopPressed(phase int) bool {
	return phase > CollisionPhase-MaxJumpTicks && phase <= CollisionPhase
}

// clearObstacles plays ticks, hopping over every obstacle.
func clearObstacles(m *Machine, ticks int) {
	for i := 0; i < ticks; i++ {
		m.Tick(hopPressed(m.Run().Phase()))
	}
}

func TestNoInputCrashesOnFourteenthTick(t *testing.T) {
	m := NewMachine()
	results := playUntilCrash(m, 100)

	if len(results) != 14 {
		t.Fatalf("Run lasted %d ticks, expected 14", len(results))
	}
	last := results[len(results)-1]
	if !last.Crashed || last.Phase != CollisionPhase {
		t.Errorf("Last tick = %+v, expected crash at phase %d", last, CollisionPhase)
	}
	if m.State() != StateGameOver {
		t.Errorf("State = %v, expected %v", m.State(), StateGameOver)
	}
	if got := m.Run().Survived(); got != 13 {
		t.Errorf("Survived() = %d, expected 13", got)
	}

	best, err := m.Settle(0)
	if err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if best != 13 {
		t.Errorf("Settle(0) = %d, expected 13", best)
	}
}

func TestJumpFromPhaseTwelveClears(t *testing.T) {
	m := NewMachine()
	levels := make([]bool, 20)
	levels[12] = true // phase 12
	levels[13] = true // phase 13

	results := playUntilCrash(m, 20, levels...)
	if m.State() != StatePlaying {
		t.Fatalf("Expected to survive, crashed at phase %d", results[len(results)-1].Phase)
	}
	if !results[13].Raised || results[13].Phase != CollisionPhase {
		t.Errorf("Tick 14 = %+v, expected raised at phase %d", results[13], CollisionPhase)
	}
	if results[14].Raised {
		t.Error("Avatar should drop once the button is released")
	}
}

func TestHeldButtonLandsOnFourthTick(t *testing.T) {
	m := NewMachine()
	var raised []bool
	for i := 0; i < 4; i++ {
		raised = append(raised, m.Tick(true).Raised)
	}
	want := []bool{true, true, true, false}
	for i := range want {
		if raised[i] != want[i] {
			t.Fatalf("Raised = %v, expected %v", raised, want)
		}
	}
	if m.Run().JumpTicks != 0 {
		t.Errorf("JumpTicks = %d, expected 0 after landing", m.Run().JumpTicks)
	}
}

func TestHeldThroughCollisionCrashes(t *testing.T) {
	// Held from the first tick: hops cover phases 0-2, 4-6, 8-10, 12-14,
	// so phase 13 is cleared by the fourth hop.
	m := NewMachine()
	levels := make([]bool, 40)
	for i := range levels {
		levels[i] = true
	}
	playUntilCrash(m, 40, levels...)
	if m.State() != StatePlaying {
		t.Fatalf("Held button crashed at score %d", m.Run().Score)
	}

	// Held from tick 11 (phase 10): up 10-12, down 13.
	m = NewMachine()
	levels = make([]bool, 20)
	for i := 10; i < 20; i++ {
		levels[i] = true
	}
	results := playUntilCrash(m, 20, levels...)
	last := results[len(results)-1]
	if !last.Crashed || last.Phase != CollisionPhase {
		t.Errorf("Expected crash at phase %d, got %+v", CollisionPhase, last)
	}
}

func TestSpeedChangesAfterHundredOne(t *testing.T) {
	m := NewMachine()
	clearObstacles(m, 100)
	if got := m.Run().Score; got != 100 {
		t.Fatalf("Score = %d, expected 100", got)
	}

	res := m.Tick(hopPressed(m.Run().Phase()))
	if res.Score != 101 || res.Bucket != 0 {
		t.Errorf("Tick 101 = %+v, expected score 101 in bucket 0", res)
	}
	res = m.Tick(hopPressed(m.Run().Phase()))
	if res.Bucket != 1 {
		t.Errorf("Tick 102 bucket = %d, expected 1", res.Bucket)
	}
}

func TestPhaseHoldsAfterCrash(t *testing.T) {
	m := NewMachine()
	playUntilCrash(m, 100)
	before := m.Run()

	res := m.Tick(true)
	if res.Advanced || m.Run() != before {
		t.Errorf("Tick after crash changed state: %+v -> %+v", before, m.Run())
	}
}

func TestSettleRequiresGameOver(t *testing.T) {
	m := NewMachine()
	m.Tick(false)
	best, err := m.Settle(7)
	if !errors.Is(err, ErrNotGameOver) {
		t.Errorf("Settle error = %v, expected ErrNotGameOver", err)
	}
	if best != 7 {
		t.Errorf("Settle returned %d, expected stored best 7", best)
	}
}

func TestBestIsMonotonic(t *testing.T) {
	best := 0
	for _, survive := range []int{30, 13, 60, 5, 60} {
		m := NewMachine()
		clearObstacles(m, survive)
		playUntilCrash(m, 100)

		next, err := m.Settle(best)
		if err != nil {
			t.Fatalf("Settle failed: %v", err)
		}
		if next < best {
			t.Fatalf("Best decreased from %d to %d", best, next)
		}
		if want := max(best, m.Run().Survived()); next != want {
			t.Errorf("Settle(%d) = %d, expected %d", best, next, want)
		}
		best = next
	}
}

func TestRestart(t *testing.T) {
	m := NewMachine()

	if m.Restart(true) {
		t.Fatal("Restart should be rejected while playing")
	}

	levels := make([]bool, 13)
	levels[11] = true // left mid-hop when phase 13 is reached
	playUntilCrash(m, 100, levels...)
	if m.State() != StateGameOver {
		t.Fatal("Expected game over")
	}

	if m.Restart(false) {
		t.Error("Restart without a press should be rejected")
	}
	if !m.Restart(true) {
		t.Fatal("Restart with a press should succeed")
	}
	if m.State() != StatePlaying {
		t.Errorf("State = %v, expected %v", m.State(), StatePlaying)
	}
	if got := m.Run(); got != (RunState{}) {
		t.Errorf("Run() = %+v, expected zero state", got)
	}

	// A second press does nothing while playing.
	if m.Restart(true) {
		t.Error("Repeated restart should be rejected")
	}
	if got := m.Run(); got != (RunState{}) {
		t.Errorf("Repeated restart changed state: %+v", got)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StatePlaying, "playing"},
		{StateGameOver, "game over"},
		{State(9), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("State(%d).String() = %q, expected %q", tc.s, got, tc.want)
		}
	}
}

func TestTapsShareHopBudget(t *testing.T) {
	m := NewMachine()

	// Two single-tick taps spend two of the three hop ticks.
	for i, pressed := range []bool{true, false, true, false} {
		res := m.Tick(pressed)
		if res.Raised != pressed {
			t.Fatalf("Tick %d raised = %v, expected %v", i, res.Raised, pressed)
		}
	}
	if got := m.Run().JumpTicks; got != 2 {
		t.Fatalf("JumpTicks after two taps = %d, expected 2", got)
	}

	// A held button now gets exactly one raised tick.
	if !m.Tick(true).Raised {
		t.Fatal("Third tap should raise the avatar")
	}
	if got := m.Run().JumpTicks; got != MaxJumpTicks {
		t.Fatalf("JumpTicks = %d, expected cap %d", got, MaxJumpTicks)
	}
	if m.Tick(true).Raised {
		t.Error("Held button past the cap should land")
	}

	// Landing at the cap re-arms the hop.
	if got := m.Run().JumpTicks; got != 0 {
		t.Fatalf("JumpTicks after landing = %d, expected 0", got)
	}
	if !m.Tick(true).Raised {
		t.Error("Re-armed hop should raise the avatar")
	}
}

func TestCapRearmsOnRestTick(t *testing.T) {
	m := NewMachine()
	for _, pressed := range []bool{true, false, true, false, true} {
		m.Tick(pressed)
	}
	if got := m.Run().JumpTicks; got != MaxJumpTicks {
		t.Fatalf("JumpTicks after three taps = %d, expected cap %d", got, MaxJumpTicks)
	}

	if m.Tick(false).Raised {
		t.Error("Released button should leave the avatar at rest")
	}
	if got := m.Run().JumpTicks; got != 0 {
		t.Errorf("JumpTicks after the rest tick = %d, expected 0", got)
	}
}

func TestTapOnCollisionPhaseEveryPass(t *testing.T) {
	// Each tap at the collision phase either spends the budget or hits the
	// cap and re-arms on the next rest tick, so no pass is ever missed.
	m := NewMachine()
	for i := 0; i < 200 && m.State() == StatePlaying; i++ {
		m.Tick(m.Run().Phase() == CollisionPhase)
	}
	if m.State() != StatePlaying {
		t.Fatalf("Crashed at score %d", m.Run().Score)
	}
	if got := m.Run().Score; got != 200 {
		t.Errorf("Score = %d, expected 200", got)
	}
}

func TestHeldFromPhaseTwelve(t *testing.T) {
	m := NewMachine()
	levels := make([]bool, 20)
	for i := 12; i < len(levels); i++ {
		levels[i] = true
	}

	results := playUntilCrash(m, len(levels), levels...)
	if m.State() != StatePlaying || len(results) != len(levels) {
		t.Fatalf("Run ended after %d ticks, expected to continue", len(results))
	}
	for phase := 12; phase <= 14; phase++ {
		if !results[phase].Raised {
			t.Errorf("Phase %d: avatar at rest, expected raised", phase)
		}
	}
	if results[15].Raised {
		t.Error("Phase 15: avatar raised, expected the hop to end")
	}
	if !results[16].Raised {
		t.Error("Phase 16: held button should start a new hop")
	}
}

func TestSettleCapsAtCellLimit(t *testing.T) {
	m := NewMachine()
	clearObstacles(m, 70000)
	for m.State() == StatePlaying {
		m.Tick(false)
	}

	tests := []struct {
		stored int
	}{
		{0},
		{MaxBestScore},
	}
	for _, tc := range tests {
		best, err := m.Settle(tc.stored)
		if err != nil {
			t.Fatalf("Settle failed: %v", err)
		}
		if best != MaxBestScore {
			t.Errorf("Settle(%d) = %d, expected %d", tc.stored, best, MaxBestScore)
		}
	}
}

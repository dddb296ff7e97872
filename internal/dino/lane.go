// Package dino implements the 16x2 character-LCD runner: a single obstacle
// scrolls along a one-row lane toward a fixed avatar that hops over it when
// the button is held.
//
// The package is split in two layers. Machine is the pure per-tick state
// machine (obstacle phase, jump arbitration, collision, score). Device drives
// a Machine against the three external collaborators (Display, Button, Cell)
// the way the firmware main loop does: forever, one blocking tick at a time.
package dino

// Lane geometry on the 16x2 grid.
const (
	LaneWidth          = 16 // Obstacle positions per cycle
	CollisionPhase     = 13 // Phase at which the obstacle occupies the avatar column
	MaxJumpTicks       = 3  // Ticks the avatar stays raised per jump
	AvatarColumn       = 2
	ObstacleBaseColumn = 15 // Column of the obstacle at phase 0
	RowAir             = 0
	RowGround          = 1
)

// ObstaclePhase returns the obstacle position within the lane after the given
// number of ticks since the run started.
func ObstaclePhase(ticks int) int {
	p := ticks % LaneWidth
	if p < 0 {
		p += LaneWidth
	}
	return p
}

// ObstacleColumn maps a phase to the display column the obstacle is drawn in.
// Columns decrease as the obstacle approaches the avatar.
func ObstacleColumn(phase int) int {
	return ObstacleBaseColumn - ObstaclePhase(phase)
}

// ArbitrateJump decides whether the avatar is raised this tick.
//
// A held button raises the avatar for at most MaxJumpTicks consecutive ticks.
// Once the cap is reached the avatar comes down for one tick, which also
// re-arms the jump. Releasing the button lowers the avatar but keeps the
// counter, so a later press only gets the remaining hop ticks.
func ArbitrateJump(pressed bool, remaining int) (raised bool, next int) {
	if pressed && remaining < MaxJumpTicks {
		return true, remaining + 1
	}
	if remaining == MaxJumpTicks {
		return false, 0
	}
	return false, remaining
}

// Collides reports whether the obstacle hits the avatar. Only the exact
// collision phase is checked.
func Collides(phase int, raised bool) bool {
	return phase == CollisionPhase && !raised
}

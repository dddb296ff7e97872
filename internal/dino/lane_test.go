package dino

import "testing"

func TestObstaclePhaseCycles(t *testing.T) {
	for ticks := 0; ticks < 5*LaneWidth; ticks++ {
		if got := ObstaclePhase(ticks); got != ticks%16 {
			t.Fatalf("ObstaclePhase(%d) = %d, expected %d", ticks, got, ticks%16)
		}
	}
}

func TestObstacleColumn(t *testing.T) {
	tests := []struct {
		phase, col int
	}{
		{0, 15},
		{1, 14},
		{CollisionPhase, AvatarColumn},
		{15, 0},
		{16, 15}, // wraps
	}
	for _, tc := range tests {
		if got := ObstacleColumn(tc.phase); got != tc.col {
			t.Errorf("ObstacleColumn(%d) = %d, expected %d", tc.phase, got, tc.col)
		}
	}
}

func TestArbitrateJump(t *testing.T) {
	tests := []struct {
		name       string
		pressed    bool
		remaining  int
		wantRaised bool
		wantNext   int
	}{
		{"press from rest", true, 0, true, 1},
		{"press mid-hop", true, 2, true, 3},
		{"press at cap", true, 3, false, 0},
		{"release at cap", false, 3, false, 0},
		{"release mid-hop keeps counter", false, 1, false, 1},
		{"idle", false, 0, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raised, next := ArbitrateJump(tc.pressed, tc.remaining)
			if raised != tc.wantRaised || next != tc.wantNext {
				t.Errorf("ArbitrateJump(%v, %d) = (%v, %d), expected (%v, %d)",
					tc.pressed, tc.remaining, raised, next, tc.wantRaised, tc.wantNext)
			}
		})
	}
}

func TestJumpCapWhileHeld(t *testing.T) {
	remaining := 0
	var got []bool
	for i := 0; i < 8; i++ {
		var raised bool
		raised, remaining = ArbitrateJump(true, remaining)
		got = append(got, raised)
	}

	// Three ticks up, one down, repeat
	want := []bool{true, true, true, false, true, true, true, false}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Held button levels = %v, expected %v", got, want)
		}
	}
}

func TestCollides(t *testing.T) {
	for phase := 0; phase < LaneWidth; phase++ {
		if Collides(phase, true) {
			t.Errorf("Raised avatar should never collide (phase %d)", phase)
		}
		if got := Collides(phase, false); got != (phase == CollisionPhase) {
			t.Errorf("Collides(%d, false) = %v", phase, got)
		}
	}
}

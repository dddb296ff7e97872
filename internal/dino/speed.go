package dino

import (
	"fmt"
	"strconv"
	"time"
)

// Score thresholds at which the game speeds up. A score above a threshold
// selects the next faster bucket.
var SpeedThresholds = [4]int{100, 300, 500, 900}

// SpeedTable holds the inter-tick delay for each of the five score buckets,
// slowest first.
type SpeedTable [5]time.Duration

// DefaultSpeedTable returns the emulation defaults.
// The board itself pauses 10/9/8/7/5 ms, too fast to follow in a terminal.
func DefaultSpeedTable() SpeedTable {
	return SpeedTable{
		120 * time.Millisecond,
		105 * time.Millisecond,
		90 * time.Millisecond,
		75 * time.Millisecond,
		60 * time.Millisecond,
	}
}

// Bucket returns the speed bucket index (0 = baseline) for a score.
func Bucket(score int) int {
	for i, limit := range SpeedThresholds {
		if score <= limit {
			return i
		}
	}
	return len(SpeedThresholds)
}

// TickDelay returns the pause after a tick played at the given score.
func (t SpeedTable) TickDelay(score int) time.Duration {
	return t[Bucket(score)]
}

// Validate checks that delays never grow as the score rises.
func (t SpeedTable) Validate() error {
	for i := 1; i < len(t); i++ {
		if t[i] > t[i-1] {
			return fmt.Errorf("dino: tick delay %v for bucket %d exceeds %v for bucket %d", t[i], i, t[i-1], i-1)
		}
	}
	if t[len(t)-1] < 0 {
		return fmt.Errorf("dino: negative tick delay %v", t[len(t)-1])
	}
	return nil
}

// Scaled returns a copy of the table with every delay multiplied by factor.
func (t SpeedTable) Scaled(factor float64) SpeedTable {
	var out SpeedTable
	for i, d := range t {
		out[i] = time.Duration(float64(d) * factor)
	}
	return out
}

// Score display layout.
const (
	scorePrefix = "Hi "
	scoreColumn = 10 // "Hi 000" occupies columns 10-15 of the top row
	bestColumn  = 13 // best score occupies columns 13-15 of the bottom row
	counterMin  = 3
)

// FormatCounter renders a non-negative counter with at least three digits,
// zero-padded.
func FormatCounter(n int) string {
	if n < 0 {
		n = 0
	}
	s := strconv.Itoa(n)
	for len(s) < counterMin {
		s = "0" + s
	}
	return s
}

// FormatScore renders the in-run score label, e.g. "Hi 007".
func FormatScore(score int) string {
	return scorePrefix + FormatCounter(score)
}

// ScoreColumn returns the column the score label starts at. Labels wider than
// six characters are shifted left so they still end on the last column.
func ScoreColumn(label string) int {
	return rightAligned(scoreColumn, len(scorePrefix)+counterMin, len(label))
}

// BestColumn returns the column the best-score counter starts at.
func BestColumn(counter string) int {
	return rightAligned(bestColumn, counterMin, len(counter))
}

func rightAligned(col, width, n int) int {
	if n <= width {
		return col
	}
	col -= n - width
	if col < 0 {
		return 0
	}
	return col
}

package button

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Script replays a fixed sequence of levels, one per sample. After the
// sequence runs out it reports Tail. It is meant for single-goroutine use in
// tests and headless runs.
type Script struct {
	levels  []bool
	pos     int
	Tail    bool
	samples int
}

// NewScript returns a script that reports the given levels in order.
func NewScript(levels ...bool) *Script {
	return &Script{levels: levels}
}

// PressedOn returns a script that is high on the listed samples (1-based)
// and low otherwise.
func PressedOn(samples ...int) *Script {
	n := 0
	for _, s := range samples {
		n = max(n, s)
	}
	levels := make([]bool, n)
	for _, s := range samples {
		if s >= 1 {
			levels[s-1] = true
		}
	}
	return NewScript(levels...)
}

// Pressed returns the next level.
func (s *Script) Pressed() bool {
	s.samples++
	if s.pos >= len(s.levels) {
		return s.Tail
	}
	v := s.levels[s.pos]
	s.pos++
	return v
}

// Samples returns how many times the line has been read.
func (s *Script) Samples() int {
	return s.samples
}

// ParseSamples parses a list like "12-14,20" into sorted, de-duplicated
// sample numbers.
func ParseSamples(list string) ([]int, error) {
	seen := make(map[int]bool)
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi := part, part
		if i := strings.IndexByte(part, '-'); i > 0 {
			lo, hi = part[:i], part[i+1:]
		}
		from, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("button: bad sample %q: %w", part, err)
		}
		to, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("button: bad sample %q: %w", part, err)
		}
		if from < 1 || to < from {
			return nil, fmt.Errorf("button: bad range %q", part)
		}
		for n := from; n <= to; n++ {
			seen[n] = true
		}
	}

	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}

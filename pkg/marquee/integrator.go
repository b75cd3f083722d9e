package marquee

import (
	"math"
	"time"
)

// Advance moves offset by speed × elapsed in the given direction and wraps
// the result into the direction's interval: (-loopWidth, 0] for Forward and
// [-loopWidth, 0) for Reverse.
//
// An elapsed time of zero or less, a non-positive loop width or a non-finite
// input leaves offset unchanged.
func Advance(offset float64, elapsed time.Duration, speed float64, dir Direction, loopWidth float64) float64 {
	if elapsed <= 0 || !usable(loopWidth) || !finite(speed) || speed < 0 || !finite(offset) {
		return offset
	}
	next := offset + dir.Sign()*speed*elapsed.Seconds()
	return Wrap(next, dir, loopWidth)
}

// Wrap brings offset into the direction's half-open interval by adding or
// subtracting whole loop widths. Offsets further than one loop away are
// reduced first so the cost stays constant for arbitrarily long gaps.
func Wrap(offset float64, dir Direction, loopWidth float64) float64 {
	if !usable(loopWidth) || !finite(offset) {
		return offset
	}
	if offset > loopWidth || offset < -2*loopWidth {
		offset = math.Mod(offset, loopWidth)
	}
	// At most a few corrections remain; the bound only guards rounding at
	// the interval edges.
	for i := 0; i < 4 && !InBounds(offset, dir, loopWidth); i++ {
		if offset >= -loopWidth/2 {
			offset -= loopWidth
		} else {
			offset += loopWidth
		}
	}
	if !InBounds(offset, dir, loopWidth) {
		if dir == Reverse {
			return -loopWidth
		}
		return 0
	}
	return offset
}

// InBounds reports whether offset lies in the direction's interval.
func InBounds(offset float64, dir Direction, loopWidth float64) bool {
	if dir == Reverse {
		return offset >= -loopWidth && offset < 0
	}
	return offset > -loopWidth && offset <= 0
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func usable(loopWidth float64) bool {
	return loopWidth > 0 && finite(loopWidth)
}

// State is the mutable motion state of one marquee.
type State struct {
	// LoopWidth is the width of one copy of the content. Zero means unknown.
	LoopWidth float64
	// Offset is the current translation.
	Offset float64
	// Speed in surface units per second.
	Speed float64
	// Paused suppresses integration.
	Paused bool
	// LastTick is the timestamp of the previous integration. Zero means the
	// next Step only records its timestamp.
	LastTick time.Time
}

// Step integrates from LastTick to now and reports whether Offset changed.
func (s *State) Step(now time.Time, dir Direction) bool {
	if s.Paused || !usable(s.LoopWidth) {
		return false
	}
	if s.LastTick.IsZero() {
		s.LastTick = now
		return false
	}
	elapsed := now.Sub(s.LastTick)
	// Rebase on clock anomalies as well, so a backwards jump costs one tick.
	s.LastTick = now
	if elapsed <= 0 {
		return false
	}
	prev := s.Offset
	s.Offset = Advance(s.Offset, elapsed, s.Speed, dir, s.LoopWidth)
	return s.Offset != prev
}

// Pause stops integration and discards the last tick.
func (s *State) Pause() {
	s.Paused = true
	s.LastTick = time.Time{}
}

// Resume restarts integration, measuring the next elapsed time from now.
func (s *State) Resume(now time.Time) {
	s.Paused = false
	s.LastTick = now
}

// Invalidate forgets the loop width so integration stops until the content
// is measured again.
func (s *State) Invalidate() {
	s.LoopWidth = 0
	s.LastTick = time.Time{}
}

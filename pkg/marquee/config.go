package marquee

import (
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultDuration is the loop duration used when a dependent marquee has to
// fall back to its own timing.
const DefaultDuration = 20 * time.Second

// Direction selects which way content travels.
type Direction int

const (
	// Forward moves content toward negative offsets (right to left).
	Forward Direction = iota
	// Reverse moves content toward positive offsets (left to right).
	Reverse
)

// Sign returns -1 for Forward and +1 for Reverse.
func (d Direction) Sign() float64 {
	if d == Reverse {
		return 1
	}
	return -1
}

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "forward"/"left" and "reverse"/"right".
// The empty string is Forward.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "forward", "left":
		return Forward, nil
	case "reverse", "right":
		return Reverse, nil
	default:
		return Forward, fmt.Errorf("%w: unknown direction %q", ErrInvalidConfig, s)
	}
}

// Config describes one marquee. A Config is copied by [New]; changing it
// afterwards has no effect on the running instance.
type Config struct {
	// ContainerID names the row to animate. Required.
	ContainerID string
	// Direction of travel. Defaults to Forward.
	Direction Direction
	// Duration is the time one full loop takes. Used when Speed is zero.
	Duration time.Duration
	// Speed in surface units per second. Takes precedence over Duration.
	Speed float64
	// PauseOnHover pauses motion while the pointer is over the row.
	PauseOnHover bool
	// StartOffsetFraction sets where in the loop playback starts, as a
	// fraction of the loop width. Nil selects 1 for Forward and 0 for Reverse.
	StartOffsetFraction *float64
	// OnReady is called once, after the first successful measurement, with
	// the resolved speed and loop width.
	OnReady func(speed, loopWidth float64)
}

// ErrInvalidConfig is returned by New when the configuration is unusable.
var ErrInvalidConfig = stderrors.New("marquee: invalid configuration")

func (c Config) validate() error {
	if strings.TrimSpace(c.ContainerID) == "" {
		return fmt.Errorf("%w: container id required", ErrInvalidConfig)
	}
	if c.Direction != Forward && c.Direction != Reverse {
		return fmt.Errorf("%w: unknown direction %d", ErrInvalidConfig, int(c.Direction))
	}
	if c.Speed < 0 || math.IsNaN(c.Speed) || math.IsInf(c.Speed, 0) {
		return fmt.Errorf("%w: speed must be a finite positive number", ErrInvalidConfig)
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidConfig)
	}
	if c.Speed == 0 && c.Duration == 0 {
		return fmt.Errorf("%w: one of duration or speed is required", ErrInvalidConfig)
	}
	if f := c.StartOffsetFraction; f != nil && (math.IsNaN(*f) || math.IsInf(*f, 0)) {
		return fmt.Errorf("%w: start offset fraction must be finite", ErrInvalidConfig)
	}
	return nil
}

// startFraction resolves StartOffsetFraction with the per-direction default.
func (c Config) startFraction() float64 {
	if c.StartOffsetFraction != nil {
		return *c.StartOffsetFraction
	}
	if c.Direction == Reverse {
		return 0
	}
	return 1
}

// clone returns a copy that shares no pointers with c.
func (c Config) clone() Config {
	if c.StartOffsetFraction != nil {
		f := *c.StartOffsetFraction
		c.StartOffsetFraction = &f
	}
	return c
}

package marquee

import (
	stderrors "errors"

	"github.com/go-drift/marquee/pkg/layout"
)

var (
	// ErrContainerNotFound is returned by New when the host has no such row.
	ErrContainerNotFound = stderrors.New("marquee: container not found")
	// ErrEmptyContent is returned when the row has no children.
	ErrEmptyContent = stderrors.New("marquee: container has no content")
	// ErrZeroWidth is returned by Measure while the content is not laid out.
	// It is transient: the controller retries on the next frame.
	ErrZeroWidth = stderrors.New("marquee: content has zero width")
)

// Measurement is the result of measuring a row.
type Measurement struct {
	// LoopWidth is the width of one copy of the content.
	LoopWidth float64
	// Speed is the resolved speed in units per second.
	Speed float64
	// InitialOffset is where playback starts.
	InitialOffset float64
	// Children is the child count after duplication.
	Children int
}

// Measure duplicates the row until it holds at least two children, then
// derives the loop width (half the total width), the speed and the initial
// offset.
func Measure(c layout.Container, cfg Config) (Measurement, error) {
	children := c.Children()
	if len(children) == 0 {
		return Measurement{}, ErrEmptyContent
	}
	for len(children) < 2 {
		c.AppendClones()
		grown := c.Children()
		if len(grown) <= len(children) {
			break
		}
		children = grown
	}

	total := 0.0
	for _, child := range children {
		total += child.Width()
	}
	if !usable(total) {
		return Measurement{}, ErrZeroWidth
	}
	loopWidth := total / 2

	speed := cfg.Speed
	if speed <= 0 {
		speed = loopWidth / cfg.Duration.Seconds()
	}

	return Measurement{
		LoopWidth:     loopWidth,
		Speed:         speed,
		InitialOffset: InitialOffset(loopWidth, cfg),
		Children:      len(children),
	}, nil
}

// InitialOffset returns the starting offset for a loop of the given width:
// -loopWidth for Forward and 0 for Reverse unless cfg overrides the fraction.
func InitialOffset(loopWidth float64, cfg Config) float64 {
	offset := -cfg.startFraction() * loopWidth
	if offset == 0 {
		// Normalize negative zero.
		return 0
	}
	return offset
}

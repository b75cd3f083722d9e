package testing

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-drift/marquee/pkg/errors"
)

// DefaultFrame is the frame interval PumpFrames callers usually pass.
const DefaultFrame = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpUntil runs out of frames.
var ErrSettleTimeout = stderrors.New("PumpUntil: condition not met within frame budget")

// Tester drives a FakeHost with a FakeClock and captures reported errors.
type Tester struct {
	clock       *FakeClock
	host        *FakeHost
	prevHandler errors.Handler
	capture     *captureHandler
}

// NewTester creates a tester and installs an error handler that records
// reports instead of printing them. Call Cleanup when done, or use
// NewTesterWithT instead.
func NewTester() *Tester {
	clk := NewFakeClock()
	capture := &captureHandler{}
	t := &Tester{
		clock:       clk,
		host:        NewFakeHost(clk),
		prevHandler: errors.DefaultHandler,
		capture:     capture,
	}
	errors.SetHandler(capture)
	return t
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the previous error handler.
func (t *Tester) Cleanup() {
	errors.SetHandler(t.prevHandler)
}

// Clock returns the fake clock for advancing time in tests.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// Host returns the fake host.
func (t *Tester) Host() *FakeHost {
	return t.host
}

// Pump steps one frame without advancing time.
func (t *Tester) Pump() int {
	return t.host.Scheduler().Step()
}

// PumpFrames advances the clock by dt and steps a frame, n times.
func (t *Tester) PumpFrames(n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		t.clock.Advance(dt)
		t.Pump()
	}
}

// PumpUntil pumps DefaultFrame-spaced frames until cond holds, up to
// maxFrames frames.
func (t *Tester) PumpUntil(cond func() bool, maxFrames int) error {
	for i := 0; i < maxFrames; i++ {
		if cond() {
			return nil
		}
		t.clock.Advance(DefaultFrame)
		t.Pump()
	}
	if cond() {
		return nil
	}
	return ErrSettleTimeout
}

// Errors returns the errors reported since the tester was created.
func (t *Tester) Errors() []*errors.MarqueeError {
	return t.capture.errors
}

// Panics returns the panics reported since the tester was created.
func (t *Tester) Panics() []*errors.PanicError {
	return t.capture.panics
}

type captureHandler struct {
	errors []*errors.MarqueeError
	panics []*errors.PanicError
}

func (h *captureHandler) HandleError(err *errors.MarqueeError) {
	h.errors = append(h.errors, err)
}

func (h *captureHandler) HandlePanic(err *errors.PanicError) {
	h.panics = append(h.panics, err)
}

// Package animation provides the frame scheduling primitives the marquee
// engine runs on.
//
// # Core Components
//
//   - [Scheduler]: a per-host queue of one-shot frame callbacks, the
//     equivalent of a browser's requestAnimationFrame. The host calls
//     [Scheduler.Step] once per frame from its UI goroutine.
//
//   - [Ticker]: a continuous per-frame callback built on a Scheduler.
//
//   - [AfterFrames]: defers work until a number of frame boundaries
//     have passed, used as a default layout readiness signal.
//
// All callbacks run on the goroutine that calls Step. Nothing here blocks,
// and a callback may cancel itself or any other pending callback.
package animation

import (
	"sync"
	"time"
)

// FrameCallback receives the frame timestamp.
type FrameCallback func(now time.Time)

// FrameID identifies a pending frame request. The zero value is never issued.
type FrameID uint64

// Scheduler queues frame callbacks and runs them when the host steps a frame.
//
// Callbacks requested while a frame is being stepped run on the following
// frame, never on the current one, so a callback that re-requests itself
// cannot spin.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	next    FrameID
	pending map[FrameID]FrameCallback
	order   []FrameID
	frames  uint64
}

// NewScheduler creates a scheduler reading time from clock.
// A nil clock uses [SystemClock].
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock:   clock,
		pending: make(map[FrameID]FrameCallback),
	}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// RequestFrame schedules cb to run on the next frame.
func (s *Scheduler) RequestFrame(cb FrameCallback) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.pending[id] = cb
	s.order = append(s.order, id)
	return id
}

// CancelFrame removes a pending request. Unknown or already-run ids are ignored.
func (s *Scheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}

// Step runs every callback that was pending when Step was called, in
// request order, and returns how many ran.
func (s *Scheduler) Step() int {
	s.mu.Lock()
	s.frames++
	order := s.order
	s.order = nil
	s.mu.Unlock()

	now := s.clock.Now()
	ran := 0
	for _, id := range order {
		// A callback earlier in this batch may have cancelled a later one.
		s.mu.Lock()
		cb, live := s.pending[id]
		delete(s.pending, id)
		s.mu.Unlock()
		if !live {
			continue
		}
		cb(now)
		ran++
	}
	return ran
}

// HasPending reports whether any callback is waiting for a frame.
func (s *Scheduler) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

// Frames returns how many frames have been stepped.
func (s *Scheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Ticker calls a callback on each frame while active.
//
// The callback receives the frame timestamp. Tickers are driven by the
// host's frame loop through [Scheduler.Step].
type Ticker struct {
	scheduler *Scheduler
	callback  FrameCallback
	isActive  bool
	frame     FrameID
}

// NewTicker creates a new ticker with the given callback.
func NewTicker(s *Scheduler, callback FrameCallback) *Ticker {
	return &Ticker{
		scheduler: s,
		callback:  callback,
	}
}

// Start activates the ticker. Starting an active ticker is a no-op.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.frame = t.scheduler.RequestFrame(t.tick)
}

// Stop deactivates the ticker. It is safe to call from inside the callback.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.scheduler.CancelFrame(t.frame)
	t.frame = 0
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

func (t *Ticker) tick(now time.Time) {
	if !t.isActive {
		return
	}
	id := t.frame
	if t.callback != nil {
		t.callback(now)
	}
	// A Stop and Start inside the callback already requested the next frame.
	if t.isActive && t.frame == id {
		t.frame = t.scheduler.RequestFrame(t.tick)
	}
}

// AfterFrames runs fn after n frame boundaries have passed. n <= 0 runs fn on
// the next frame. The returned function cancels the wait; calling it after fn
// ran, or more than once, does nothing.
func AfterFrames(s *Scheduler, n int, fn func()) (cancel func()) {
	if n < 1 {
		n = 1
	}
	remaining := n
	var id FrameID
	cancelled := false
	var step FrameCallback
	step = func(time.Time) {
		remaining--
		if remaining > 0 {
			id = s.RequestFrame(step)
			return
		}
		fn()
	}
	id = s.RequestFrame(step)
	return func() {
		if cancelled {
			return
		}
		cancelled = true
		s.CancelFrame(id)
	}
}

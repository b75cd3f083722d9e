// Package marquee implements a seamless, infinitely looping horizontal
// marquee on top of a [layout.Host].
//
// A marquee duplicates its row until two copies of the content exist,
// measures one copy (the loop width) and translates the row a little every
// frame, wrapping by exactly one loop width so the seam is never visible.
//
// The lifecycle is a small state machine:
//
//	Uninitialized ──► Measuring ──► Running ⇄ Paused
//	                     ▲  │          │        │
//	                     │  └─ retry   │ resize │
//	                     └─────────────┴────────┘
//	any state ──Stop()──► Stopped
//
// Measuring waits for [layout.Host.WhenReady] and retries on every frame
// until the content has a non-zero width. There is no attempt limit: a row
// that never lays out keeps retrying, one cheap check per frame.
package marquee

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/go-drift/marquee/pkg/animation"
	"github.com/go-drift/marquee/pkg/errors"
	"github.com/go-drift/marquee/pkg/layout"
)

// Status is the lifecycle state of a marquee.
type Status int

const (
	// StatusUninitialized is the state before construction completes.
	StatusUninitialized Status = iota
	// StatusMeasuring waits for a usable measurement.
	StatusMeasuring
	// StatusRunning integrates motion every frame.
	StatusRunning
	// StatusPaused receives frames but does not move.
	StatusPaused
	// StatusStopped is terminal.
	StatusStopped
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusMeasuring:
		return "measuring"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusStopped:
		return "stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Marquee is the handle to one running marquee.
//
// All methods must be called from the host's UI goroutine. Stop, Speed,
// LoopWidth, Offset and Status are safe on a nil handle, which is what New
// returns when the animation could not be started.
type Marquee struct {
	id        uuid.UUID
	cfg       Config
	host      layout.Host
	container layout.Container
	sched     *animation.Scheduler
	ticker    *animation.Ticker
	subs      Subscriptions

	state        State
	status       Status
	measureFrame animation.FrameID
	hovered      bool
	readyFired   bool
	attempts     int
}

// New starts a marquee on the row named by cfg.ContainerID.
//
// It returns a nil handle and an error wrapping ErrInvalidConfig,
// ErrContainerNotFound or ErrEmptyContent when the animation cannot start.
// Those errors are not fatal: callers treat them as "not animated".
func New(host layout.Host, cfg Config) (*Marquee, error) {
	const op = "marquee.New"
	if host == nil {
		return nil, fmt.Errorf("%w: host required", ErrInvalidConfig)
	}
	if err := cfg.validate(); err != nil {
		errors.Report(&errors.MarqueeError{
			Op:        op,
			Kind:      errors.KindConfig,
			Container: cfg.ContainerID,
			Err:       err,
		})
		return nil, err
	}

	container, ok := host.Lookup(cfg.ContainerID)
	if !ok || container == nil {
		errors.Debugf("%s: container %q not found, animation not started", op, cfg.ContainerID)
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, cfg.ContainerID)
	}
	if len(container.Children()) == 0 {
		errors.Debugf("%s: container %q is empty, animation not started", op, cfg.ContainerID)
		return nil, fmt.Errorf("%w: %q", ErrEmptyContent, cfg.ContainerID)
	}

	m := &Marquee{
		id:        uuid.New(),
		cfg:       cfg.clone(),
		host:      host,
		container: container,
		sched:     host.Scheduler(),
		status:    StatusUninitialized,
	}
	m.ticker = animation.NewTicker(m.sched, m.tick)
	m.listen()

	m.status = StatusMeasuring
	m.subs.Add("ready", host.WhenReady(m.requestMeasure))
	return m, nil
}

func (m *Marquee) listen() {
	if cancel, ok := m.host.ObserveResize(m.container, m.handleResize); ok {
		m.subs.Add("resize", cancel)
	} else {
		if cancel != nil {
			cancel()
		}
		errors.Debugf("marquee %s: [%s] container resize observation unavailable, using window resize",
			m.container.ID(), errors.KindCapability)
		m.subs.Add("window-resize", m.host.OnWindowResize(m.handleResize))
	}
	if m.cfg.PauseOnHover {
		m.subs.Add("hover", m.host.OnHover(m.container, m.handlePointerEnter, m.handlePointerLeave))
	}
}

func (m *Marquee) requestMeasure() {
	if m.status != StatusMeasuring || m.measureFrame != 0 {
		return
	}
	m.measureFrame = m.sched.RequestFrame(m.measure)
}

func (m *Marquee) measure(time.Time) {
	m.measureFrame = 0
	if m.status != StatusMeasuring {
		return
	}
	m.attempts++
	res, err := Measure(m.container, m.cfg)
	if err != nil {
		if !stderrors.Is(err, ErrZeroWidth) && m.attempts == 1 {
			errors.Debugf("marquee %s: measure: %v", m.container.ID(), err)
		}
		m.requestMeasure()
		return
	}

	m.state.LoopWidth = res.LoopWidth
	m.state.Speed = res.Speed
	// The literal start (-W for Forward) sits on the seam; store its
	// in-interval equivalent so the row is in bounds from the first frame.
	m.state.Offset = Wrap(res.InitialOffset, m.cfg.Direction, res.LoopWidth)
	m.state.LastTick = time.Time{}
	m.container.SetOffset(m.state.Offset)
	errors.Debugf("marquee %s (%s): loop=%.1f speed=%.2f/s after %d attempt(s)",
		m.container.ID(), m.id, res.LoopWidth, res.Speed, m.attempts)

	if !m.readyFired {
		m.readyFired = true
		m.fireReady()
		if m.status == StatusStopped {
			return
		}
	}

	if m.hovered && m.cfg.PauseOnHover {
		m.status = StatusPaused
		m.state.Pause()
	} else {
		m.status = StatusRunning
		m.state.Paused = false
	}
	m.ticker.Start()
}

func (m *Marquee) fireReady() {
	if m.cfg.OnReady == nil {
		return
	}
	defer errors.Recover("marquee.onReady")
	m.cfg.OnReady(m.state.Speed, m.state.LoopWidth)
}

func (m *Marquee) tick(now time.Time) {
	if m.status != StatusRunning {
		return
	}
	if m.state.Step(now, m.cfg.Direction) {
		m.container.SetOffset(m.state.Offset)
	}
}

func (m *Marquee) handlePointerEnter() {
	m.hovered = true
	if m.status == StatusRunning {
		m.status = StatusPaused
		m.state.Pause()
	}
}

func (m *Marquee) handlePointerLeave() {
	m.hovered = false
	if m.status == StatusPaused {
		m.status = StatusRunning
		m.state.Resume(m.sched.Now())
	}
}

func (m *Marquee) handleResize() {
	switch m.status {
	case StatusRunning, StatusPaused:
		m.ticker.Stop()
		m.state.Invalidate()
		m.status = StatusMeasuring
		m.requestMeasure()
	}
}

// Stop tears the marquee down: the frame subscription, any pending
// measurement and every host listener are cancelled. Stop is idempotent and
// may be called from inside any callback the marquee scheduled.
func (m *Marquee) Stop() {
	if m == nil || m.status == StatusStopped {
		return
	}
	m.status = StatusStopped
	m.ticker.Stop()
	if m.measureFrame != 0 {
		m.sched.CancelFrame(m.measureFrame)
		m.measureFrame = 0
	}
	m.subs.ReleaseAll()
}

// ID returns the instance id used in diagnostics.
func (m *Marquee) ID() string {
	if m == nil {
		return ""
	}
	return m.id.String()
}

// Speed returns the resolved speed, or 0 before the first measurement.
func (m *Marquee) Speed() float64 {
	if m == nil {
		return 0
	}
	return m.state.Speed
}

// LoopWidth returns the current loop width, or 0 while unmeasured.
func (m *Marquee) LoopWidth() float64 {
	if m == nil {
		return 0
	}
	return m.state.LoopWidth
}

// Offset returns the current translation.
func (m *Marquee) Offset() float64 {
	if m == nil {
		return 0
	}
	return m.state.Offset
}

// Status returns the lifecycle state.
func (m *Marquee) Status() Status {
	if m == nil {
		return StatusUninitialized
	}
	return m.status
}

// Attempts returns how many measurements have been tried.
func (m *Marquee) Attempts() int {
	if m == nil {
		return 0
	}
	return m.attempts
}

// Direction returns the configured direction.
func (m *Marquee) Direction() Direction {
	if m == nil {
		return Forward
	}
	return m.cfg.Direction
}

// Container returns the row being animated.
func (m *Marquee) Container() layout.Container {
	if m == nil {
		return nil
	}
	return m.container
}

package testing

import (
	"slices"
	"time"

	"github.com/go-drift/marquee/pkg/animation"
	"github.com/go-drift/marquee/pkg/layout"
)

type hoverPair struct {
	enter, leave func()
}

// FakeHost is an in-memory layout.Host. Rows hold fixed-width boxes, and
// readiness, resize and pointer events are delivered only when the test
// triggers them.
type FakeHost struct {
	sched *animation.Scheduler
	rows  map[string]*layout.Row

	resizeSupported bool
	ready           bool

	nextID        int
	readyWaiters  map[int]func()
	resizeObs     map[string]map[int]func()
	windowObs     map[int]func()
	hoverObs      map[string]map[int]hoverPair
	cancelledSubs int
}

// NewFakeHost creates a host whose scheduler reads clock. Container resize
// observation is supported by default.
func NewFakeHost(clock animation.Clock) *FakeHost {
	return &FakeHost{
		sched:           animation.NewScheduler(clock),
		rows:            make(map[string]*layout.Row),
		resizeSupported: true,
		readyWaiters:    make(map[int]func()),
		resizeObs:       make(map[string]map[int]func()),
		windowObs:       make(map[int]func()),
		hoverObs:        make(map[string]map[int]hoverPair),
	}
}

// AddRow adds a row with one box per width.
func (h *FakeHost) AddRow(id string, widths ...float64) *layout.Row {
	children := make([]layout.Element, len(widths))
	for i, w := range widths {
		children[i] = &layout.Box{W: w}
	}
	row := layout.NewRow(id, children...)
	h.rows[id] = row
	return row
}

// Row returns a row added with AddRow.
func (h *FakeHost) Row(id string) *layout.Row {
	return h.rows[id]
}

// ScaleRow multiplies every box width in the row by factor, keeping the
// current offset, the way a reflow would.
func (h *FakeHost) ScaleRow(id string, factor float64) {
	row := h.rows[id]
	if row == nil {
		return
	}
	for _, child := range row.Children() {
		if box, ok := child.(*layout.Box); ok {
			box.W *= factor
		}
	}
}

// SetResizeObservation toggles support for per-container resize observers.
// When disabled, ObserveResize reports ok == false.
func (h *FakeHost) SetResizeObservation(supported bool) {
	h.resizeSupported = supported
}

// Lookup implements layout.Host.
func (h *FakeHost) Lookup(id string) (layout.Container, bool) {
	row, ok := h.rows[id]
	if !ok {
		return nil, false
	}
	return row, true
}

// Scheduler implements layout.Host.
func (h *FakeHost) Scheduler() *animation.Scheduler {
	return h.sched
}

// WhenReady implements layout.Host. Before SignalReady, fn waits; after it,
// fn runs on the next frame.
func (h *FakeHost) WhenReady(fn func()) func() {
	if h.ready {
		id := h.sched.RequestFrame(func(time.Time) { fn() })
		return func() { h.sched.CancelFrame(id) }
	}
	id := h.add()
	h.readyWaiters[id] = fn
	return h.canceller(func() bool {
		_, ok := h.readyWaiters[id]
		delete(h.readyWaiters, id)
		return ok
	})
}

// ObserveResize implements layout.Host.
func (h *FakeHost) ObserveResize(c layout.Container, fn func()) (func(), bool) {
	if !h.resizeSupported {
		return nil, false
	}
	key := c.ID()
	if h.resizeObs[key] == nil {
		h.resizeObs[key] = make(map[int]func())
	}
	id := h.add()
	h.resizeObs[key][id] = fn
	return h.canceller(func() bool {
		_, ok := h.resizeObs[key][id]
		delete(h.resizeObs[key], id)
		return ok
	}), true
}

// OnWindowResize implements layout.Host.
func (h *FakeHost) OnWindowResize(fn func()) func() {
	id := h.add()
	h.windowObs[id] = fn
	return h.canceller(func() bool {
		_, ok := h.windowObs[id]
		delete(h.windowObs, id)
		return ok
	})
}

// OnHover implements layout.Host.
func (h *FakeHost) OnHover(c layout.Container, enter, leave func()) func() {
	key := c.ID()
	if h.hoverObs[key] == nil {
		h.hoverObs[key] = make(map[int]hoverPair)
	}
	id := h.add()
	h.hoverObs[key][id] = hoverPair{enter: enter, leave: leave}
	return h.canceller(func() bool {
		_, ok := h.hoverObs[key][id]
		delete(h.hoverObs[key], id)
		return ok
	})
}

// SignalReady marks layout as ready and notifies waiting callers.
func (h *FakeHost) SignalReady() {
	if h.ready {
		return
	}
	h.ready = true
	waiters := h.readyWaiters
	h.readyWaiters = make(map[int]func())
	for _, id := range sortedKeys(waiters) {
		waiters[id]()
	}
}

// Resize notifies observers of container id. Without per-container
// observation it falls back to a window resize.
func (h *FakeHost) Resize(id string) {
	if !h.resizeSupported {
		h.ResizeWindow()
		return
	}
	obs := h.resizeObs[id]
	for _, key := range sortedKeys(obs) {
		if fn, ok := obs[key]; ok {
			fn()
		}
	}
}

// ResizeWindow notifies every window resize listener.
func (h *FakeHost) ResizeWindow() {
	for _, key := range sortedKeys(h.windowObs) {
		if fn, ok := h.windowObs[key]; ok {
			fn()
		}
	}
}

// PointerEnter delivers a pointer-enter event to container id.
func (h *FakeHost) PointerEnter(id string) {
	obs := h.hoverObs[id]
	for _, key := range sortedKeys(obs) {
		if p, ok := obs[key]; ok && p.enter != nil {
			p.enter()
		}
	}
}

// PointerLeave delivers a pointer-leave event to container id.
func (h *FakeHost) PointerLeave(id string) {
	obs := h.hoverObs[id]
	for _, key := range sortedKeys(obs) {
		if p, ok := obs[key]; ok && p.leave != nil {
			p.leave()
		}
	}
}

// Listeners returns how many readiness, resize and hover listeners are live.
func (h *FakeHost) Listeners() int {
	n := len(h.readyWaiters) + len(h.windowObs)
	for _, obs := range h.resizeObs {
		n += len(obs)
	}
	for _, obs := range h.hoverObs {
		n += len(obs)
	}
	return n
}

// Cancellations returns how many live listeners have been cancelled.
// Cancelling an already-cancelled listener is not counted.
func (h *FakeHost) Cancellations() int {
	return h.cancelledSubs
}

func (h *FakeHost) add() int {
	h.nextID++
	return h.nextID
}

func (h *FakeHost) canceller(remove func() bool) func() {
	return func() {
		if remove() {
			h.cancelledSubs++
		}
	}
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

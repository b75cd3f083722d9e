// Package term hosts marquee rows on a terminal screen using tcell.
//
// Each row occupies one screen line. Row content is measured in terminal
// columns, so a [Cell] holding wide runes counts them twice. The terminal
// reports window resizes only, so [Host.ObserveResize] is unsupported and
// marquees fall back to [Host.OnWindowResize].
package term

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/go-drift/marquee/pkg/animation"
	"github.com/go-drift/marquee/pkg/errors"
	"github.com/go-drift/marquee/pkg/layout"
)

// DefaultFPS is the frame rate used when Options.FPS is not positive.
const DefaultFPS = 60

// Options configures a Host.
type Options struct {
	// FPS is the frame rate of Run.
	FPS int
	// Clock drives the frame scheduler. Defaults to the system clock.
	Clock animation.Clock
	// StatusStyle is used for the status line.
	StatusStyle tcell.Style
}

// Cell is a run of text measured in terminal columns.
type Cell struct {
	Text string
	// Key optionally identifies what the cell represents.
	Key   string
	Style tcell.Style
}

// Width implements layout.Element.
func (c *Cell) Width() float64 {
	return float64(runewidth.StringWidth(c.Text))
}

// Clone implements layout.Cloner.
func (c *Cell) Clone() layout.Element {
	cp := *c
	return &cp
}

type slot struct {
	row *layout.Row
	y   int
}

type hoverPair struct {
	enter, leave func()
}

// Host is a layout.Host backed by a tcell screen. All methods must be
// called from the goroutine that runs Run or Frame.
type Host struct {
	screen tcell.Screen
	sched  *animation.Scheduler
	opts   Options

	slots []*slot
	byID  map[string]*slot

	ready        bool
	nextID       int
	readyWaiters map[int]func()
	windowObs    map[int]func()
	hoverObs     map[string]map[int]hoverPair
	hovered      string

	width, height int
	status        string

	onClick  func(rowID string, el layout.Element)
	onEscape func()
}

// NewHost creates a host drawing to screen. The screen must already be
// initialized; the caller owns it and is responsible for Fini.
func NewHost(screen tcell.Screen, opts Options) *Host {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Clock == nil {
		opts.Clock = animation.SystemClock{}
	}
	h := &Host{
		screen:       screen,
		sched:        animation.NewScheduler(opts.Clock),
		opts:         opts,
		byID:         make(map[string]*slot),
		readyWaiters: make(map[int]func()),
		windowObs:    make(map[int]func()),
		hoverObs:     make(map[string]map[int]hoverPair),
	}
	h.width, h.height = screen.Size()
	return h
}

// AddRow places a row of cells on screen line y.
func (h *Host) AddRow(id string, y int, cells ...layout.Element) *layout.Row {
	row := layout.NewRow(id, cells...)
	s := &slot{row: row, y: y}
	h.slots = append(h.slots, s)
	h.byID[id] = s
	return row
}

// OnClick sets the handler for primary-button clicks on a row child.
func (h *Host) OnClick(fn func(rowID string, el layout.Element)) {
	h.onClick = fn
}

// OnEscape sets the handler for the Escape key.
func (h *Host) OnEscape(fn func()) {
	h.onEscape = fn
}

// SetStatus sets the text drawn on the last screen line.
func (h *Host) SetStatus(s string) {
	h.status = s
}

// Status returns the status line text.
func (h *Host) Status() string {
	return h.status
}

// Size returns the screen size in cells.
func (h *Host) Size() (width, height int) {
	return h.width, h.height
}

// Lookup implements layout.Host.
func (h *Host) Lookup(id string) (layout.Container, bool) {
	s, ok := h.byID[id]
	if !ok {
		return nil, false
	}
	return s.row, true
}

// Scheduler implements layout.Host.
func (h *Host) Scheduler() *animation.Scheduler {
	return h.sched
}

// WhenReady implements layout.Host.
func (h *Host) WhenReady(fn func()) func() {
	if h.ready {
		id := h.sched.RequestFrame(func(time.Time) { fn() })
		return func() { h.sched.CancelFrame(id) }
	}
	id := h.add()
	h.readyWaiters[id] = fn
	return func() { delete(h.readyWaiters, id) }
}

// ObserveResize implements layout.Host. Terminals only report window
// resizes, so it always returns ok == false.
func (h *Host) ObserveResize(layout.Container, func()) (func(), bool) {
	return nil, false
}

// OnWindowResize implements layout.Host.
func (h *Host) OnWindowResize(fn func()) func() {
	id := h.add()
	h.windowObs[id] = fn
	return func() { delete(h.windowObs, id) }
}

// OnHover implements layout.Host.
func (h *Host) OnHover(c layout.Container, enter, leave func()) func() {
	key := c.ID()
	if h.hoverObs[key] == nil {
		h.hoverObs[key] = make(map[int]hoverPair)
	}
	id := h.add()
	h.hoverObs[key][id] = hoverPair{enter: enter, leave: leave}
	return func() { delete(h.hoverObs[key], id) }
}

// SetReady marks layout as ready and runs waiting callbacks. Run calls it
// once the screen size is known.
func (h *Host) SetReady() {
	if h.ready {
		return
	}
	h.ready = true
	waiters := h.readyWaiters
	h.readyWaiters = make(map[int]func())
	for _, id := range sortedIDs(waiters) {
		waiters[id]()
	}
}

// Listeners returns the number of live readiness, resize and hover
// listeners.
func (h *Host) Listeners() int {
	n := len(h.readyWaiters) + len(h.windowObs)
	for _, obs := range h.hoverObs {
		n += len(obs)
	}
	return n
}

// HandleEvent applies one terminal event. It returns false when the event
// asks the program to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		h.width, h.height = ev.Size()
		h.screen.Sync()
		for _, id := range sortedIDs(h.windowObs) {
			if fn, ok := h.windowObs[id]; ok {
				fn()
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.pointerAt(y)
		if ev.Buttons()&tcell.Button1 != 0 {
			h.click(x, y)
		}
	}
	return true
}

func (h *Host) handleKey(key tcell.Key, r rune) bool {
	switch {
	case key == tcell.KeyCtrlC:
		return false
	case key == tcell.KeyRune && (r == 'q' || r == 'Q'):
		return false
	case key == tcell.KeyEscape:
		if h.onEscape != nil {
			h.onEscape()
		}
	}
	return true
}

func (h *Host) rowAt(y int) *slot {
	for _, s := range h.slots {
		if s.y == y {
			return s
		}
	}
	return nil
}

func (h *Host) pointerAt(y int) {
	next := ""
	if s := h.rowAt(y); s != nil {
		next = s.row.ID()
	}
	if next == h.hovered {
		return
	}
	prev := h.hovered
	h.hovered = next
	if prev != "" {
		obs := h.hoverObs[prev]
		for _, id := range sortedIDs(obs) {
			if p, ok := obs[id]; ok && p.leave != nil {
				p.leave()
			}
		}
	}
	if next != "" {
		obs := h.hoverObs[next]
		for _, id := range sortedIDs(obs) {
			if p, ok := obs[id]; ok && p.enter != nil {
				p.enter()
			}
		}
	}
}

func (h *Host) click(x, y int) {
	s := h.rowAt(y)
	if s == nil || h.onClick == nil {
		return
	}
	if el, _, ok := s.row.ChildAt(float64(x)); ok {
		h.onClick(s.row.ID(), el)
	}
}

// Frame runs one scheduler step and redraws the screen.
func (h *Host) Frame() {
	h.sched.Step()
	h.Draw()
}

// Draw renders every row and the status line.
func (h *Host) Draw() {
	h.screen.Clear()
	for _, s := range h.slots {
		h.drawRow(s)
	}
	if h.status != "" && h.height > 0 {
		drawText(h.screen, 0, h.height-1, h.width, h.status, h.opts.StatusStyle)
	}
	h.screen.Show()
}

// drawRow tiles the row's content across the screen starting at its
// current offset.
func (h *Host) drawRow(s *slot) {
	total := s.row.TotalWidth()
	if total <= 0 || s.y < 0 || s.y >= h.height {
		return
	}
	start := math.Mod(math.Floor(s.row.Offset()), total)
	if start > 0 {
		start -= total
	}
	width := float64(h.width)
	for x := start; x < width; {
		for _, child := range s.row.Children() {
			if c, ok := child.(*Cell); ok {
				drawText(h.screen, int(x), s.y, h.width, c.Text, c.Style)
			}
			x += child.Width()
			if x >= width {
				break
			}
		}
	}
}

func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if x >= maxX {
			return
		}
		if x >= 0 {
			screen.SetContent(x, y, r, nil, style)
		}
		x += w
	}
}

// Run drives frames at the configured rate and applies terminal events
// until ctx is cancelled or a quit key is pressed. A panic in the loop is
// reported and returned as an error.
func (h *Host) Run(ctx context.Context) (err error) {
	defer errors.RecoverWithCallback("term.Run", func(r any) {
		err = fmt.Errorf("term: run loop panicked: %v", r)
	})

	h.screen.EnableMouse()
	defer h.screen.DisableMouse()
	h.width, h.height = h.screen.Size()
	h.SetReady()

	ticker := time.NewTicker(time.Second / time.Duration(h.opts.FPS))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	h.Frame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.Frame()
		}
	}
}

func (h *Host) add() int {
	h.nextID++
	return h.nextID
}

func sortedIDs[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

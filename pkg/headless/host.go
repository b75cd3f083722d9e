// Package headless renders marquee rows into in-memory images.
//
// The host owns its clock, so frames are deterministic: [Host.Record]
// advances time by a fixed step per frame and collects the frames into an
// animated GIF. Readiness follows the host's font manager, and rows report
// their own resizes when restyled.
package headless

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"math"
	"sort"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/marquee/pkg/animation"
	"github.com/go-drift/marquee/pkg/layout"
	"github.com/go-drift/marquee/pkg/text"
)

// Options configures a Host.
type Options struct {
	// Width and Height are the frame size in pixels.
	Width, Height int
	// Fonts resolves row text. A new manager is created when nil.
	Fonts *text.FontManager
	// Background fills each frame. Defaults to white.
	Background color.Color
	// Palette is used for frames. Defaults to palette.Plan9.
	Palette color.Palette
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type slot struct {
	row   *layout.Row
	top   int
	style text.TextStyle
	fg    color.Color
}

type hoverPair struct {
	enter, leave func()
}

// Host is a layout.Host that draws rows of text spans into images.
type Host struct {
	opts  Options
	fonts *text.FontManager
	clock *clock
	sched *animation.Scheduler

	slots []*slot
	byID  map[string]*slot

	ready        bool
	nextID       int
	readyWaiters map[int]func()
	resizeObs    map[string]map[int]func()
	windowObs    map[int]func()
	hoverObs     map[string]map[int]hoverPair
	hovered      string
}

// NewHost creates a headless host. Layout becomes ready when every font
// family the manager expects has been registered.
func NewHost(opts Options) *Host {
	if opts.Width <= 0 {
		opts.Width = 640
	}
	if opts.Height <= 0 {
		opts.Height = 120
	}
	if opts.Fonts == nil {
		opts.Fonts = text.NewFontManager()
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if len(opts.Palette) == 0 {
		opts.Palette = palette.Plan9
	}
	clk := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	h := &Host{
		opts:         opts,
		fonts:        opts.Fonts,
		clock:        clk,
		sched:        animation.NewScheduler(clk),
		byID:         make(map[string]*slot),
		readyWaiters: make(map[int]func()),
		resizeObs:    make(map[string]map[int]func()),
		windowObs:    make(map[int]func()),
		hoverObs:     make(map[string]map[int]hoverPair),
	}
	h.fonts.WhenReady(h.signalReady)
	return h
}

// Fonts returns the host's font manager.
func (h *Host) Fonts() *text.FontManager {
	return h.fonts
}

// AddRow adds a row whose top edge is at pixel line top, with one span per
// item.
func (h *Host) AddRow(id string, top int, style text.TextStyle, fg color.Color, items ...string) *layout.Row {
	children := make([]layout.Element, len(items))
	for i, item := range items {
		span := text.NewSpan(h.fonts, item, style)
		span.Key = item
		children[i] = span
	}
	row := layout.NewRow(id, children...)
	if fg == nil {
		fg = color.Black
	}
	s := &slot{row: row, top: top, style: style, fg: fg}
	h.slots = append(h.slots, s)
	h.byID[id] = s
	return row
}

// Restyle changes the text style of every span in a row and notifies the
// row's resize observers.
func (h *Host) Restyle(id string, style text.TextStyle) {
	s, ok := h.byID[id]
	if !ok {
		return
	}
	s.style = style
	for _, child := range s.row.Children() {
		if span, ok := child.(*text.Span); ok {
			span.SetStyle(style)
		}
	}
	obs := h.resizeObs[id]
	for _, key := range sortedIDs(obs) {
		if fn, ok := obs[key]; ok {
			fn()
		}
	}
}

// ResizeWindow changes the frame size and notifies window resize listeners.
func (h *Host) ResizeWindow(width, height int) {
	h.opts.Width, h.opts.Height = width, height
	for _, key := range sortedIDs(h.windowObs) {
		if fn, ok := h.windowObs[key]; ok {
			fn()
		}
	}
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

// ObserveResize implements layout.Host.
func (h *Host) ObserveResize(c layout.Container, fn func()) (func(), bool) {
	key := c.ID()
	if h.resizeObs[key] == nil {
		h.resizeObs[key] = make(map[int]func())
	}
	id := h.add()
	h.resizeObs[key][id] = fn
	return func() { delete(h.resizeObs[key], id) }, true
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

func (h *Host) signalReady() {
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
	for _, obs := range h.resizeObs {
		n += len(obs)
	}
	for _, obs := range h.hoverObs {
		n += len(obs)
	}
	return n
}

// MoveTo moves the simulated pointer, delivering hover enter and leave
// events to the rows it crosses.
func (h *Host) MoveTo(x, y int) {
	next := ""
	pt := layout.Offset{X: float64(x), Y: float64(y)}
	for _, s := range h.slots {
		if h.bounds(s).Contains(pt) {
			next = s.row.ID()
			break
		}
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

// bounds returns the band a row occupies: the full frame width, one line
// high.
func (h *Host) bounds(s *slot) layout.Rect {
	return layout.RectFromLTWH(0, float64(s.top), float64(h.opts.Width), float64(h.lineHeight(s)))
}

func (h *Host) lineHeight(s *slot) int {
	l, err := text.LayoutText("", s.style, h.fonts)
	if err != nil || l.LineHeight <= 0 {
		return int(math.Ceil(s.style.FontSize))
	}
	return int(math.Ceil(l.LineHeight))
}

// Now returns the host clock's current time.
func (h *Host) Now() time.Time {
	return h.clock.Now()
}

// Advance moves the host clock forward by d.
func (h *Host) Advance(d time.Duration) {
	h.clock.advance(d)
}

// Frame runs one scheduler step and renders the result.
func (h *Host) Frame() *image.Paletted {
	h.sched.Step()
	return h.Render()
}

// Render draws every row at its current offset.
func (h *Host) Render() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, h.opts.Width, h.opts.Height), h.opts.Palette)
	xdraw.Draw(img, img.Bounds(), image.NewUniform(h.opts.Background), image.Point{}, xdraw.Src)
	for _, s := range h.slots {
		h.drawRow(img, s)
	}
	return img
}

func (h *Host) drawRow(img *image.Paletted, s *slot) {
	total := s.row.TotalWidth()
	if total <= 0 {
		return
	}
	face, err := h.fonts.Face(s.style)
	if err != nil {
		return
	}
	baseline := s.top + face.Metrics().Ascent.Ceil()
	d := &font.Drawer{Dst: img, Src: image.NewUniform(s.fg), Face: face}

	start := math.Mod(s.row.Offset(), total)
	if start > 0 {
		start -= total
	}
	width := float64(h.opts.Width)
	for x := start; x < width; {
		for _, child := range s.row.Children() {
			w := child.Width()
			if span, ok := child.(*text.Span); ok && x+w > 0 {
				d.Dot = fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.I(baseline)}
				d.DrawString(span.Text)
			}
			x += w
			if x >= width {
				break
			}
		}
	}
}

// Record advances the clock by dt before each of n frames and returns them
// as an endlessly looping GIF.
func (h *Host) Record(n int, dt time.Duration) *gif.GIF {
	delay := int(dt / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}
	anim := &gif.GIF{LoopCount: 0}
	for i := 0; i < n; i++ {
		h.Advance(dt)
		anim.Image = append(anim.Image, h.Frame())
		anim.Delay = append(anim.Delay, delay)
	}
	return anim
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

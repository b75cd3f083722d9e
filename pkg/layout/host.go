// Package layout defines the surface a marquee runs on: rows of measured
// elements, and the host environment that owns them, schedules frames and
// delivers resize, hover and readiness notifications.
//
// Hosts in this module: [github.com/go-drift/marquee/pkg/term] (a tcell
// terminal), [github.com/go-drift/marquee/pkg/headless] (offscreen image
// frames) and the fake host in [github.com/go-drift/marquee/pkg/testing].
package layout

import "github.com/go-drift/marquee/pkg/animation"

// Element is one laid-out child of a row.
type Element interface {
	// Width returns the rendered width. Zero means not laid out yet.
	Width() float64
}

// Cloner is implemented by elements that can be duplicated in place.
// Elements that do not implement it are shared between copies.
type Cloner interface {
	Clone() Element
}

// Container is a row of elements that scrolls horizontally as a unit.
type Container interface {
	// ID returns the identifier hosts look the row up by.
	ID() string
	// Children returns the current children in visual order.
	Children() []Element
	// AppendClones appends one copy of every current child.
	AppendClones()
	// SetOffset applies a horizontal translation to the content.
	SetOffset(x float64)
	// Offset returns the translation last applied.
	Offset() float64
}

// Host is the environment a marquee instance runs inside.
//
// Every callback a host delivers runs on the same goroutine that steps the
// host's scheduler.
type Host interface {
	// Lookup resolves a container id.
	Lookup(id string) (Container, bool)
	// Scheduler returns the frame scheduler driving this host.
	Scheduler() *animation.Scheduler
	// WhenReady runs fn once layout is stable (fonts loaded, first frames
	// painted). If the host is already ready fn still runs asynchronously.
	WhenReady(fn func()) (cancel func())
	// ObserveResize watches a single container. ok is false when the host
	// cannot observe individual containers.
	ObserveResize(c Container, fn func()) (cancel func(), ok bool)
	// OnWindowResize watches the whole surface.
	OnWindowResize(fn func()) (cancel func())
	// OnHover reports pointer enter and leave for a container.
	OnHover(c Container, enter, leave func()) (cancel func())
}

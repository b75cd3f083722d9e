package layout

import "math"

// Row is a general purpose Container backed by a slice of elements.
type Row struct {
	id       string
	children []Element
	offset   float64
}

// NewRow creates a row with the given children.
func NewRow(id string, children ...Element) *Row {
	return &Row{id: id, children: append([]Element(nil), children...)}
}

// ID returns the row id.
func (r *Row) ID() string { return r.id }

// Children returns the row's children. The slice must not be modified.
func (r *Row) Children() []Element { return r.children }

// SetChildren replaces the children and resets the offset.
func (r *Row) SetChildren(children ...Element) {
	r.children = append(r.children[:0:0], children...)
	r.offset = 0
}

// AppendClones duplicates the current children in place.
func (r *Row) AppendClones() {
	n := len(r.children)
	for i := 0; i < n; i++ {
		child := r.children[i]
		if c, ok := child.(Cloner); ok {
			child = c.Clone()
		}
		r.children = append(r.children, child)
	}
}

// SetOffset stores the horizontal translation.
func (r *Row) SetOffset(x float64) { r.offset = x }

// Offset returns the current horizontal translation.
func (r *Row) Offset() float64 { return r.offset }

// TotalWidth sums the widths of all children.
func (r *Row) TotalWidth() float64 {
	total := 0.0
	for _, child := range r.children {
		total += child.Width()
	}
	return total
}

// ChildAt returns the child under the surface coordinate x, taking the
// current offset into account. The content repeats every TotalWidth, so any
// x inside the visible strip resolves to a child once the row is laid out.
func (r *Row) ChildAt(x float64) (Element, int, bool) {
	total := r.TotalWidth()
	if total <= 0 {
		return nil, -1, false
	}
	local := math.Mod(x-r.offset, total)
	if local < 0 {
		local += total
	}
	start := 0.0
	for i, child := range r.children {
		w := child.Width()
		if local >= start && local < start+w {
			return child, i, true
		}
		start += w
	}
	return nil, -1, false
}

// Box is a fixed-width element.
type Box struct {
	W float64
	// Key optionally identifies what the box represents.
	Key string
}

// Width returns the box width.
func (b *Box) Width() float64 { return b.W }

// Clone returns a copy of the box.
func (b *Box) Clone() Element {
	c := *b
	return &c
}

package text

import "github.com/go-drift/marquee/pkg/layout"

// Span is a run of text used as a row element. Its width is measured
// lazily and stays zero while the span's font family is unavailable.
type Span struct {
	Text string
	// Key optionally identifies what the span represents.
	Key string

	style    TextStyle
	fonts    *FontManager
	width    float64
	measured bool
}

// NewSpan creates a span measured with fonts.
func NewSpan(fonts *FontManager, text string, style TextStyle) *Span {
	return &Span{Text: text, style: style, fonts: fonts}
}

// Width implements layout.Element.
func (s *Span) Width() float64 {
	if s.measured {
		return s.width
	}
	l, err := LayoutText(s.Text, s.style, s.fonts)
	if err != nil {
		return 0
	}
	s.width = l.Width
	s.measured = true
	return s.width
}

// Layout returns the full text layout for drawing.
func (s *Span) Layout() (*TextLayout, error) {
	return LayoutText(s.Text, s.style, s.fonts)
}

// Style returns the span's text style.
func (s *Span) Style() TextStyle {
	return s.style
}

// SetStyle changes the style and drops the cached width.
func (s *Span) SetStyle(style TextStyle) {
	s.style = style
	s.measured = false
}

// Clone implements layout.Cloner.
func (s *Span) Clone() layout.Element {
	c := *s
	return &c
}

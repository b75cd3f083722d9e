// Package text loads fonts and measures single-line text runs.
//
// A [FontManager] tracks which font families a page expects and reports
// readiness once all of them are registered, the way a browser reports
// fonts.ready. [Span] elements measure to zero width until their family is
// available, which is exactly the pre-layout state a marquee has to retry
// through.
package text

import (
	stderrors "errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/marquee/pkg/errors"
)

const (
	// defaultFontSize is used when no font size is specified.
	defaultFontSize = 16

	// FamilyGo is the family registered by RegisterGoFont.
	FamilyGo = "Go"
	// FamilyFixed is always available and maps to a 7x13 bitmap face.
	FamilyFixed = "fixed"
)

// ErrFontNotRegistered is returned by Face for families that have not been
// registered yet.
var ErrFontNotRegistered = stderrors.New("text: font family not registered")

// FontWeight represents a numeric font weight.
type FontWeight int

const (
	FontWeightNormal FontWeight = 400
	FontWeightBold   FontWeight = 700
)

// TextStyle describes how text should be measured and drawn.
type TextStyle struct {
	FontFamily string
	FontSize   float64
	FontWeight FontWeight
}

// TextLayout contains measured text metrics and the resolved font face.
type TextLayout struct {
	Text       string
	Style      TextStyle
	Width      float64
	Ascent     float64
	Descent    float64
	LineHeight float64
	Face       font.Face
}

type faceKey struct {
	family string
	bold   bool
	size   float64
}

// FontManager manages font registration and face caching.
type FontManager struct {
	mu          sync.RWMutex
	fonts       map[string]*opentype.Font
	faces       map[faceKey]font.Face
	expected    map[string]struct{}
	waiters     map[int]func()
	nextWaiter  int
	defaultName string
}

// NewFontManager creates an empty font manager. Until Expect is called it
// is ready immediately.
func NewFontManager() *FontManager {
	return &FontManager{
		fonts:    make(map[string]*opentype.Font),
		faces:    make(map[faceKey]font.Face),
		expected: make(map[string]struct{}),
		waiters:  make(map[int]func()),
	}
}

// Expect marks a family as required for readiness.
func (m *FontManager) Expect(names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, name := range names {
		if _, ok := m.fonts[name]; !ok && name != FamilyFixed {
			m.expected[name] = struct{}{}
		}
	}
}

// RegisterFont registers a family from TrueType or OpenType data. The first
// registered family becomes the default for styles without a family.
func (m *FontManager) RegisterFont(name string, data []byte) error {
	if name == "" {
		return stderrors.New("font name required")
	}
	f, err := opentype.Parse(data)
	if err != nil {
		errors.Report(&errors.MarqueeError{
			Op:   "text.RegisterFont",
			Kind: errors.KindRender,
			Err:  fmt.Errorf("parse %q: %w", name, err),
		})
		return err
	}

	m.mu.Lock()
	m.fonts[name] = f
	if m.defaultName == "" {
		m.defaultName = name
	}
	for key := range m.faces {
		if key.family == name || key.family+" Bold" == name {
			delete(m.faces, key)
		}
	}
	delete(m.expected, name)
	var fire []func()
	if len(m.expected) == 0 {
		fire = m.takeWaitersLocked()
	}
	m.mu.Unlock()

	for _, fn := range fire {
		fn()
	}
	return nil
}

// RegisterGoFont registers the bundled Go fonts as FamilyGo. The bold cut is
// used for styles with FontWeightBold.
func (m *FontManager) RegisterGoFont() error {
	if err := m.RegisterFont(FamilyGo, goregular.TTF); err != nil {
		return err
	}
	return m.RegisterFont(FamilyGo+" Bold", gobold.TTF)
}

// Ready reports whether every expected family has been registered.
func (m *FontManager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.expected) == 0
}

// Pending returns the expected families that are still missing, sorted.
func (m *FontManager) Pending() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.expected))
	for name := range m.expected {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WhenReady calls fn once all expected families are registered. If they
// already are, fn runs before WhenReady returns. The returned function
// cancels a callback that has not run yet.
func (m *FontManager) WhenReady(fn func()) (cancel func()) {
	m.mu.Lock()
	if len(m.expected) == 0 {
		m.mu.Unlock()
		fn()
		return func() {}
	}
	m.nextWaiter++
	id := m.nextWaiter
	m.waiters[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.waiters, id)
		m.mu.Unlock()
	}
}

func (m *FontManager) takeWaitersLocked() []func() {
	ids := make([]int, 0, len(m.waiters))
	for id := range m.waiters {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fire := make([]func(), 0, len(ids))
	for _, id := range ids {
		fire = append(fire, m.waiters[id])
	}
	m.waiters = make(map[int]func())
	return fire
}

// Face resolves a font face for the given style.
func (m *FontManager) Face(style TextStyle) (font.Face, error) {
	family := style.FontFamily
	if family == FamilyFixed {
		return basicfont.Face7x13, nil
	}
	size := style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	bold := style.FontWeight >= FontWeightBold

	m.mu.RLock()
	if family == "" {
		family = m.defaultName
	}
	key := faceKey{family: family, bold: bold, size: size}
	if face, ok := m.faces[key]; ok {
		m.mu.RUnlock()
		return face, nil
	}
	f, ok := m.fonts[family]
	if bold {
		if b, hasBold := m.fonts[family+" Bold"]; hasBold {
			f, ok = b, true
		}
	}
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFontNotRegistered, family)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	if cached, ok := m.faces[key]; ok {
		m.mu.Unlock()
		face.Close()
		return cached, nil
	}
	m.faces[key] = face
	m.mu.Unlock()
	return face, nil
}

// LayoutText measures text as a single line.
func LayoutText(text string, style TextStyle, manager *FontManager) (*TextLayout, error) {
	if manager == nil {
		return nil, stderrors.New("font manager required")
	}
	face, err := manager.Face(style)
	if err != nil {
		return nil, err
	}
	metrics := face.Metrics()
	ascent := toFloat(metrics.Ascent)
	descent := toFloat(metrics.Descent)
	lineHeight := toFloat(metrics.Height)
	if lineHeight == 0 {
		lineHeight = ascent + descent
	}
	return &TextLayout{
		Text:       text,
		Style:      style,
		Width:      toFloat(font.MeasureString(face, text)),
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: lineHeight,
		Face:       face,
	}, nil
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

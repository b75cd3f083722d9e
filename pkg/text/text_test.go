package text

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/marquee/pkg/errors"
)

type quietHandler struct{ reported int }

func (h *quietHandler) HandleError(*errors.MarqueeError) { h.reported++ }
func (h *quietHandler) HandlePanic(*errors.PanicError)   {}

func TestFontManager_Readiness(t *testing.T) {
	m := NewFontManager()
	if !m.Ready() {
		t.Fatal("manager with no expectations should be ready")
	}

	m.Expect(FamilyGo, FamilyFixed)
	if m.Ready() {
		t.Fatal("manager should wait for the Go font")
	}
	if got := m.Pending(); len(got) != 1 || got[0] != FamilyGo {
		t.Errorf("Pending = %v, want [Go]", got)
	}

	fired := 0
	m.WhenReady(func() { fired++ })
	cancelled := m.WhenReady(func() { t.Error("cancelled waiter ran") })
	cancelled()

	if err := m.RegisterGoFont(); err != nil {
		t.Fatalf("RegisterGoFont: %v", err)
	}
	if !m.Ready() || fired != 1 {
		t.Errorf("ready=%v fired=%d, want true and 1", m.Ready(), fired)
	}

	// Already ready: runs immediately.
	m.WhenReady(func() { fired++ })
	if fired != 2 {
		t.Errorf("fired = %d, want 2", fired)
	}
}

func TestFontManager_RegisterInvalid(t *testing.T) {
	h := &quietHandler{}
	errors.SetHandler(h)
	defer errors.SetHandler(nil)

	m := NewFontManager()
	if err := m.RegisterFont("", nil); err == nil {
		t.Error("expected error for empty name")
	}
	if err := m.RegisterFont("broken", []byte("not a font")); err == nil {
		t.Error("expected parse error")
	}
	if h.reported != 1 {
		t.Errorf("reported %d errors, want 1", h.reported)
	}
}

func TestFontManager_Face(t *testing.T) {
	m := NewFontManager()
	if _, err := m.Face(TextStyle{FontFamily: FamilyGo}); !stderrors.Is(err, ErrFontNotRegistered) {
		t.Errorf("err = %v, want ErrFontNotRegistered", err)
	}
	if face, err := m.Face(TextStyle{FontFamily: FamilyFixed}); err != nil || face == nil {
		t.Errorf("fixed face: %v", err)
	}

	if err := m.RegisterGoFont(); err != nil {
		t.Fatalf("RegisterGoFont: %v", err)
	}
	a, err := m.Face(TextStyle{FontSize: 20})
	if err != nil {
		t.Fatalf("default face: %v", err)
	}
	b, _ := m.Face(TextStyle{FontFamily: FamilyGo, FontSize: 20})
	if a != b {
		t.Error("default family should resolve to the first registered family and be cached")
	}
}

func TestLayoutText(t *testing.T) {
	m := NewFontManager()
	if _, err := LayoutText("x", TextStyle{}, nil); err == nil {
		t.Error("expected error without a manager")
	}

	fixed, err := LayoutText("abc", TextStyle{FontFamily: FamilyFixed}, m)
	if err != nil {
		t.Fatalf("LayoutText: %v", err)
	}
	if fixed.Width != 21 {
		t.Errorf("fixed width = %v, want 21", fixed.Width)
	}

	if err := m.RegisterGoFont(); err != nil {
		t.Fatalf("RegisterGoFont: %v", err)
	}
	small, _ := LayoutText("PORTFOLIO", TextStyle{FontFamily: FamilyGo, FontSize: 12}, m)
	large, _ := LayoutText("PORTFOLIO", TextStyle{FontFamily: FamilyGo, FontSize: 24}, m)
	if small.Width <= 0 || large.Width <= small.Width {
		t.Errorf("widths small=%v large=%v, want 0 < small < large", small.Width, large.Width)
	}
	if large.Ascent <= 0 || large.LineHeight < large.Ascent {
		t.Errorf("metrics ascent=%v lineHeight=%v", large.Ascent, large.LineHeight)
	}
	bold, _ := LayoutText("PORTFOLIO", TextStyle{FontFamily: FamilyGo, FontSize: 24, FontWeight: FontWeightBold}, m)
	if bold.Width == large.Width {
		t.Errorf("bold width %v should differ from regular", bold.Width)
	}
}

func TestSpan_WidthFollowsFontAvailability(t *testing.T) {
	m := NewFontManager()
	span := NewSpan(m, "Marquee", TextStyle{FontFamily: FamilyGo, FontSize: 18})
	if span.Width() != 0 {
		t.Fatalf("width before registration = %v, want 0", span.Width())
	}

	if err := m.RegisterGoFont(); err != nil {
		t.Fatalf("RegisterGoFont: %v", err)
	}
	w := span.Width()
	if w <= 0 {
		t.Fatalf("width after registration = %v, want > 0", w)
	}

	clone := span.Clone().(*Span)
	if clone == span || clone.Width() != w {
		t.Error("clone should be a separate span with the same width")
	}

	span.SetStyle(TextStyle{FontFamily: FamilyGo, FontSize: 36})
	if span.Width() <= w {
		t.Errorf("width after growing the font = %v, want > %v", span.Width(), w)
	}
	if clone.Width() != w {
		t.Error("restyling a span changed its clone")
	}
}

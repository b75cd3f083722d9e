package headless

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/go-drift/marquee/pkg/marquee"
	"github.com/go-drift/marquee/pkg/text"
)

var goStyle = text.TextStyle{FontFamily: text.FamilyGo, FontSize: 24}

func inked(img *image.Paletted) int {
	bg := img.Palette.Index(color.White)
	n := 0
	for _, px := range img.Pix {
		if int(px) != bg {
			n++
		}
	}
	return n
}

func TestHost_ReadinessFollowsFonts(t *testing.T) {
	fonts := text.NewFontManager()
	fonts.Expect(text.FamilyGo)
	h := NewHost(Options{Width: 320, Height: 40, Fonts: fonts})
	h.AddRow("names", 4, goStyle, nil, "PORTFOLIO • ")

	m, err := marquee.New(h, marquee.Config{ContainerID: "names", Duration: 10 * time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Stop()

	for i := 0; i < 3; i++ {
		h.Advance(16 * time.Millisecond)
		h.Frame()
	}
	if m.Attempts() != 0 {
		t.Fatalf("measured %d times before fonts were ready", m.Attempts())
	}

	if err := fonts.RegisterGoFont(); err != nil {
		t.Fatalf("RegisterGoFont: %v", err)
	}
	h.Frame()
	if m.Status() != marquee.StatusRunning || m.LoopWidth() <= 0 {
		t.Fatalf("status=%v loop=%v after fonts loaded", m.Status(), m.LoopWidth())
	}
	if m.Attempts() != 1 {
		t.Errorf("Attempts = %d, want 1", m.Attempts())
	}
}

func TestHost_ZeroWidthRetriesUntilFontArrives(t *testing.T) {
	h := NewHost(Options{Width: 320, Height: 40})
	h.AddRow("names", 4, goStyle, nil, "PORTFOLIO • ")

	m, err := marquee.New(h, marquee.Config{ContainerID: "names", Duration: 10 * time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Stop()

	for i := 0; i < 4; i++ {
		h.Advance(16 * time.Millisecond)
		h.Frame()
	}
	if m.Status() != marquee.StatusMeasuring || m.Attempts() < 2 {
		t.Fatalf("status=%v attempts=%d, want measuring with retries", m.Status(), m.Attempts())
	}

	if err := h.Fonts().RegisterGoFont(); err != nil {
		t.Fatalf("RegisterGoFont: %v", err)
	}
	h.Frame()
	if m.Status() != marquee.StatusRunning {
		t.Errorf("status = %v, want running", m.Status())
	}
}

func TestHost_RestyleRemeasures(t *testing.T) {
	fonts := text.NewFontManager()
	if err := fonts.RegisterGoFont(); err != nil {
		t.Fatalf("RegisterGoFont: %v", err)
	}
	h := NewHost(Options{Width: 320, Height: 80, Fonts: fonts})
	h.AddRow("names", 4, goStyle, nil, "PORTFOLIO • ")

	m, err := marquee.New(h, marquee.Config{ContainerID: "names", Duration: 10 * time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Stop()
	h.Frame()
	h.Frame()
	before := m.LoopWidth()

	h.Restyle("names", text.TextStyle{FontFamily: text.FamilyGo, FontSize: 48})
	if m.Status() != marquee.StatusMeasuring {
		t.Fatalf("status = %v, want measuring after restyle", m.Status())
	}
	h.Frame()
	if m.LoopWidth() <= before {
		t.Errorf("loop width %v, want more than %v", m.LoopWidth(), before)
	}
}

func TestHost_MoveToPausesOnHover(t *testing.T) {
	fonts := text.NewFontManager()
	if err := fonts.RegisterGoFont(); err != nil {
		t.Fatalf("RegisterGoFont: %v", err)
	}
	h := NewHost(Options{Width: 320, Height: 80, Fonts: fonts})
	h.AddRow("names", 4, goStyle, nil, "PORTFOLIO • ")

	m, err := marquee.New(h, marquee.Config{ContainerID: "names", Duration: 10 * time.Second, PauseOnHover: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Stop()
	h.Frame()
	h.Frame()

	h.MoveTo(10, 10)
	if m.Status() != marquee.StatusPaused {
		t.Fatalf("status = %v, want paused", m.Status())
	}
	h.MoveTo(10, 70)
	if m.Status() != marquee.StatusRunning {
		t.Errorf("status = %v, want running", m.Status())
	}
}

func TestHost_Record(t *testing.T) {
	fonts := text.NewFontManager()
	if err := fonts.RegisterGoFont(); err != nil {
		t.Fatalf("RegisterGoFont: %v", err)
	}
	h := NewHost(Options{Width: 200, Height: 40, Fonts: fonts})
	h.AddRow("names", 4, goStyle, color.Black, "MARQUEE • ")

	m, err := marquee.New(h, marquee.Config{ContainerID: "names", Speed: 120})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Stop()

	anim := h.Record(10, 40*time.Millisecond)
	if len(anim.Image) != 10 || len(anim.Delay) != 10 {
		t.Fatalf("frames=%d delays=%d, want 10", len(anim.Image), len(anim.Delay))
	}
	if anim.Delay[0] != 4 {
		t.Errorf("delay = %d, want 4", anim.Delay[0])
	}
	first, last := anim.Image[0], anim.Image[9]
	if first.Bounds() != image.Rect(0, 0, 200, 40) {
		t.Errorf("bounds = %v", first.Bounds())
	}
	if inked(last) == 0 {
		t.Fatal("last frame is blank")
	}
	same := true
	for i := range first.Pix {
		if first.Pix[i] != last.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("text did not move between the first and last frame")
	}
}

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/marquee/cmd/marquee/internal/config"
	"github.com/go-drift/marquee/pkg/content"
	"github.com/go-drift/marquee/pkg/term"
)

func testPage(t *testing.T, yaml string) *page {
	t.Helper()
	for _, key := range []string{"MARQUEE_CONTENT", "MARQUEE_FPS", "MARQUEE_VERBOSE"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	if yaml != "" {
		if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	p, err := loadPage(dir)
	if err != nil {
		t.Fatalf("loadPage: %v", err)
	}
	return p
}

func TestExecute_UnknownCommand(t *testing.T) {
	err := execute([]string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Errorf("err = %v", err)
	}
	if err := execute(nil); err != nil {
		t.Errorf("no args: %v", err)
	}
}

func TestLoadPage_BundledContent(t *testing.T) {
	p := testPage(t, "")
	if len(p.banner) != 2 || !strings.HasPrefix(p.banner[0], "PORTFOLIO • ") {
		t.Errorf("banner = %q", p.banner)
	}
	if len(p.cards) != 6 {
		t.Errorf("cards = %d, want the 3 bundled projects twice", len(p.cards))
	}
	if p.titles["atlas"] != "Atlas" || p.titles["harbor"] != "Harbor" {
		t.Errorf("titles = %v", p.titles)
	}
	texts := p.cardTexts()
	if !strings.HasSuffix(texts[0], cardGap) {
		t.Errorf("card text %q lacks the gap", texts[0])
	}
}

func TestMeasurePage_SyncsProjectsSpeed(t *testing.T) {
	p := testPage(t, "")
	name, projects, err := measurePage(p)
	if err != nil {
		t.Fatalf("measurePage: %v", err)
	}
	// "PORTFOLIO • " is 12 columns, repeated 8 times per block.
	if name.LoopWidth != 96 {
		t.Errorf("name loop = %v, want 96", name.LoopWidth)
	}
	if name.Speed != 96.0/20 {
		t.Errorf("name speed = %v, want %v", name.Speed, 96.0/20)
	}
	if projects.Speed != name.Speed {
		t.Errorf("projects speed = %v, want %v", projects.Speed, name.Speed)
	}
	if projects.InitialOffset != 0 || name.InitialOffset != -96 {
		t.Errorf("offsets name=%v projects=%v", name.InitialOffset, projects.InitialOffset)
	}
}

func TestMeasurePage_UnsyncedUsesFallback(t *testing.T) {
	p := testPage(t, "sync: false\nfallback_duration_ms: 5000\n")
	_, projects, err := measurePage(p)
	if err != nil {
		t.Fatalf("measurePage: %v", err)
	}
	if want := projects.LoopWidth / 5; projects.Speed != want {
		t.Errorf("projects speed = %v, want %v", projects.Speed, want)
	}
}

func TestOpenPreview(t *testing.T) {
	p := testPage(t, "")
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	h := term.NewHost(screen, term.Options{})
	session := content.NewSession(p.doc.Projects)

	openPreview(h, p, session, config.NameRow, &term.Cell{Text: "PORTFOLIO", Key: "atlas"})
	if h.Status() != "" {
		t.Errorf("name row click opened %q", h.Status())
	}

	openPreview(h, p, session, config.ProjectsRow, &term.Cell{Key: "harbor"})
	if !strings.HasPrefix(h.Status(), "Harbor: "+content.PlaceholderText) {
		t.Errorf("status = %q", h.Status())
	}

	openPreview(h, p, session, config.ProjectsRow, &term.Cell{Key: "atlas"})
	if !strings.HasPrefix(h.Status(), "Atlas: assets/video/atlas.mp4") {
		t.Errorf("status = %q", h.Status())
	}
	if cur, ok := session.Current(); !ok || cur.Key != "atlas" {
		t.Errorf("current = %+v, %v", cur, ok)
	}
}

func TestRenderPage(t *testing.T) {
	p := testPage(t, "")
	anim, err := renderPage(p, renderOptions{frames: 5, fps: 25, width: 160})
	if err != nil {
		t.Fatalf("renderPage: %v", err)
	}
	if len(anim.Image) != 5 || anim.Delay[0] != 4 {
		t.Errorf("frames=%d delay=%d", len(anim.Image), anim.Delay[0])
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 160 || b.Dy() != renderHeight {
		t.Errorf("bounds = %v", b)
	}
}

func TestParseRenderArgs(t *testing.T) {
	opts, err := parseRenderArgs([]string{"-o", "out.gif", "--frames", "12", "--width", "320"})
	if err != nil {
		t.Fatalf("parseRenderArgs: %v", err)
	}
	if opts.out != "out.gif" || opts.frames != 12 || opts.width != 320 || opts.fps != defaultGIFRate {
		t.Errorf("opts = %+v", opts)
	}

	for _, args := range [][]string{{"--frames", "0"}, {"--fps", "x"}, {"-o"}, {"--loud", "1"}} {
		if _, err := parseRenderArgs(args); err == nil {
			t.Errorf("parseRenderArgs(%q) succeeded", args)
		}
	}
}

func TestParseDirArg(t *testing.T) {
	if dir, err := parseDirArg([]string{"--dir", "site"}); err != nil || dir != "site" {
		t.Errorf("dir=%q err=%v", dir, err)
	}
	if _, err := parseDirArg([]string{"--dir"}); err == nil {
		t.Error("missing value accepted")
	}
	if _, err := parseDirArg([]string{"extra"}); err == nil {
		t.Error("unknown argument accepted")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-drift/marquee/pkg/marquee"
)

func writeFile(t *testing.T, dir, name, data string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MARQUEE_CONTENT", "MARQUEE_FPS", "MARQUEE_VERBOSE"} {
		t.Setenv(key, "")
	}
}

func TestResolve_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.FPS != 60 || !cfg.Sync || cfg.Fallback != marquee.DefaultDuration || cfg.Verbose {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Title != "" || cfg.ContentPath != "" {
		t.Errorf("title=%q content=%q, want empty", cfg.Title, cfg.ContentPath)
	}
	if cfg.Name.ContainerID != NameRow || cfg.Name.Direction != marquee.Forward || cfg.Name.Duration != marquee.DefaultDuration {
		t.Errorf("name = %+v", cfg.Name)
	}
	if cfg.Projects.ContainerID != ProjectsRow || cfg.Projects.Direction != marquee.Reverse || !cfg.Projects.PauseOnHover {
		t.Errorf("projects = %+v", cfg.Projects)
	}
	if cfg.Projects.Duration != 0 || cfg.Projects.Speed != 0 {
		t.Error("projects row should have no timing of its own by default")
	}
}

func TestResolve_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/studio/folio/v2\n\ngo 1.24\n")
	writeFile(t, dir, FileName, `
version: "1.2.0"
content: data/content.json
fps: 30
sync: false
fallback_duration_ms: 8000
marquees:
  name:
    direction: right
    speed_px_per_s: 80
  projects:
    duration_ms: 45000
    pause_on_hover: false
    start_offset_fraction: 0.5
`)

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Title != "folio" || cfg.ModulePath != "example.com/studio/folio/v2" {
		t.Errorf("title=%q module=%q", cfg.Title, cfg.ModulePath)
	}
	if cfg.ContentPath != filepath.Join(dir, "data", "content.json") {
		t.Errorf("content = %q", cfg.ContentPath)
	}
	if cfg.FPS != 30 || cfg.Sync || cfg.Fallback != 8*time.Second {
		t.Errorf("fps=%d sync=%v fallback=%v", cfg.FPS, cfg.Sync, cfg.Fallback)
	}
	if cfg.Name.Direction != marquee.Reverse || cfg.Name.Speed != 80 || cfg.Name.Duration != 0 {
		t.Errorf("name = %+v", cfg.Name)
	}
	p := cfg.Projects
	if p.Duration != 45*time.Second || p.PauseOnHover || p.StartOffsetFraction == nil || *p.StartOffsetFraction != 0.5 {
		t.Errorf("projects = %+v", p)
	}
}

func TestResolve_EnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, FileName, "fps: 30\n")
	writeFile(t, dir, ".env", "MARQUEE_FPS=24\nMARQUEE_VERBOSE=true\nMARQUEE_CONTENT=/tmp/from-dotenv.json\n")

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.FPS != 24 || !cfg.Verbose || cfg.ContentPath != "/tmp/from-dotenv.json" {
		t.Errorf(".env overrides: fps=%d verbose=%v content=%q", cfg.FPS, cfg.Verbose, cfg.ContentPath)
	}

	t.Setenv("MARQUEE_FPS", "12")
	cfg, err = Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.FPS != 12 {
		t.Errorf("process env should win over .env: fps=%d", cfg.FPS)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  string
		want string
	}{
		{"bad yaml", "fps: [", "", "failed to parse"},
		{"major version", "version: 2.0.0\n", "", "unsupported"},
		{"invalid version", "version: banana\n", "", "not a valid"},
		{"bad direction", "marquees:\n  name:\n    direction: up\n", "", "marquees.name.direction"},
		{"negative duration", "marquees:\n  projects:\n    duration_ms: -5\n", "", "duration_ms"},
		{"fps too high", "fps: 1000\n", "", "at most 240"},
		{"bad env fps", "", "fast", "MARQUEE_FPS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("MARQUEE_FPS", tt.env)
			dir := t.TempDir()
			if tt.yaml != "" {
				writeFile(t, dir, FileName, tt.yaml)
			}
			_, err := Resolve(dir)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestDefaultTitle(t *testing.T) {
	tests := map[string]string{
		"":                         "",
		"folio":                    "folio",
		"github.com/ada/portfolio": "portfolio",
		"example.com/site/v3":      "site",
	}
	for in, want := range tests {
		if got := defaultTitle(in); got != want {
			t.Errorf("defaultTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

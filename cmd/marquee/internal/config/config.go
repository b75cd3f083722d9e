package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/marquee/pkg/marquee"
)

// FileName is the optional configuration file looked up in the project root.
const FileName = "marquee.yaml"

// Row ids used by the page.
const (
	NameRow     = "name"
	ProjectsRow = "projects"
)

// Config represents the optional marquee.yaml configuration.
type Config struct {
	Version            string         `yaml:"version,omitempty"`
	Title              string         `yaml:"title,omitempty"`
	Content            string         `yaml:"content,omitempty"`
	FPS                int            `yaml:"fps,omitempty"`
	Sync               *bool          `yaml:"sync,omitempty"`
	FallbackDurationMs int            `yaml:"fallback_duration_ms,omitempty"`
	Verbose            bool           `yaml:"verbose,omitempty"`
	Marquees           MarqueesConfig `yaml:"marquees"`
}

// MarqueesConfig holds per-row settings.
type MarqueesConfig struct {
	Name     RowConfig `yaml:"name"`
	Projects RowConfig `yaml:"projects"`
}

// RowConfig configures one marquee row.
type RowConfig struct {
	Direction           string   `yaml:"direction,omitempty"`
	DurationMs          int      `yaml:"duration_ms,omitempty"`
	SpeedPxPerS         float64  `yaml:"speed_px_per_s,omitempty"`
	PauseOnHover        *bool    `yaml:"pause_on_hover,omitempty"`
	StartOffsetFraction *float64 `yaml:"start_offset_fraction,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	Title       string
	ContentPath string
	FPS         int
	Sync        bool
	Fallback    time.Duration
	Verbose     bool
	Name        marquee.Config
	Projects    marquee.Config
}

// LoadOptional reads marquee.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads marquee.yaml and .env (if present), applies environment
// overrides and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(cfg.Version); err != nil {
		return nil, err
	}
	env, err := loadEnv(dir)
	if err != nil {
		return nil, err
	}

	modPath := modulePath(dir)
	title := strings.TrimSpace(cfg.Title)
	if title == "" {
		title = defaultTitle(modPath)
	}

	contentPath := strings.TrimSpace(cfg.Content)
	if v := env("MARQUEE_CONTENT"); v != "" {
		contentPath = v
	}
	if contentPath != "" && !filepath.IsAbs(contentPath) {
		contentPath = filepath.Join(dir, contentPath)
	}

	fps := cfg.FPS
	if v := env("MARQUEE_FPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("MARQUEE_FPS: %w", err)
		}
		fps = n
	}
	if fps <= 0 {
		fps = 60
	}
	if fps > 240 {
		return nil, fmt.Errorf("fps must be at most 240 (got %d)", fps)
	}

	verbose := cfg.Verbose
	if v := env("MARQUEE_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("MARQUEE_VERBOSE: %w", err)
		}
		verbose = b
	}

	sync := true
	if cfg.Sync != nil {
		sync = *cfg.Sync
	}

	fallback := marquee.DefaultDuration
	if cfg.FallbackDurationMs < 0 {
		return nil, fmt.Errorf("fallback_duration_ms must be positive (got %d)", cfg.FallbackDurationMs)
	}
	if cfg.FallbackDurationMs > 0 {
		fallback = time.Duration(cfg.FallbackDurationMs) * time.Millisecond
	}

	name, err := rowConfig(NameRow, cfg.Marquees.Name, marquee.Forward, false)
	if err != nil {
		return nil, err
	}
	if name.Duration == 0 && name.Speed == 0 {
		name.Duration = marquee.DefaultDuration
	}
	projects, err := rowConfig(ProjectsRow, cfg.Marquees.Projects, marquee.Reverse, true)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Root:        dir,
		ModulePath:  modPath,
		Title:       title,
		ContentPath: contentPath,
		FPS:         fps,
		Sync:        sync,
		Fallback:    fallback,
		Verbose:     verbose,
		Name:        name,
		Projects:    projects,
	}, nil
}

func rowConfig(id string, rc RowConfig, defaultDir marquee.Direction, defaultPause bool) (marquee.Config, error) {
	dir := defaultDir
	if rc.Direction != "" {
		d, err := marquee.ParseDirection(rc.Direction)
		if err != nil {
			return marquee.Config{}, fmt.Errorf("marquees.%s.direction: %w", id, err)
		}
		dir = d
	}
	if rc.DurationMs < 0 {
		return marquee.Config{}, fmt.Errorf("marquees.%s.duration_ms must be positive (got %d)", id, rc.DurationMs)
	}
	if rc.SpeedPxPerS < 0 || math.IsNaN(rc.SpeedPxPerS) || math.IsInf(rc.SpeedPxPerS, 0) {
		return marquee.Config{}, fmt.Errorf("marquees.%s.speed_px_per_s must be a finite positive number", id)
	}
	pause := defaultPause
	if rc.PauseOnHover != nil {
		pause = *rc.PauseOnHover
	}
	return marquee.Config{
		ContainerID:         id,
		Direction:           dir,
		Duration:            time.Duration(rc.DurationMs) * time.Millisecond,
		Speed:               rc.SpeedPxPerS,
		PauseOnHover:        pause,
		StartOffsetFraction: rc.StartOffsetFraction,
	}, nil
}

// checkVersion accepts an empty version or any v1.x release.
func checkVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("version %q is not a valid semantic version", v)
	}
	if semver.Major(v) != "v1" {
		return fmt.Errorf("unsupported %s version %s (want v1.x)", FileName, semver.Canonical(v))
	}
	return nil
}

// loadEnv returns a lookup that prefers the process environment over an
// optional .env file in dir.
func loadEnv(dir string) (func(string) string, error) {
	file, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
		file = map[string]string{}
	}
	return func(key string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(file[key])
	}, nil
}

// FindProjectRoot walks up from the current directory to find marquee.yaml
// or go.mod. Without either, the current directory is used.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

// defaultTitle derives a title from the last element of the module path,
// ignoring a major version suffix.
func defaultTitle(modulePath string) string {
	if modulePath == "" {
		return ""
	}
	prefix, _, ok := module.SplitPathVersion(modulePath)
	if !ok {
		prefix = modulePath
	}
	parts := strings.Split(prefix, "/")
	return parts[len(parts)-1]
}

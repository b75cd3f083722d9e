package cmd

import (
	"strings"

	"github.com/go-drift/marquee/cmd/marquee/internal/config"
	"github.com/go-drift/marquee/pkg/content"
	"github.com/go-drift/marquee/pkg/errors"
	"github.com/go-drift/marquee/pkg/layout"
	"github.com/go-drift/marquee/pkg/marquee"
)

// cardGap separates project cards on the projects row.
const cardGap = "   "

// page is the resolved configuration plus the rows derived from content.
type page struct {
	cfg    *config.Resolved
	doc    *content.Document
	banner []string
	cards  []content.Card
	titles map[string]string
}

// loadPage resolves configuration from dir, or from the project root when
// dir is empty, and loads the content document.
func loadPage(dir string) (*page, error) {
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return nil, err
		}
		dir = root
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		errors.SetHandler(&errors.LogHandler{Verbose: true})
	}

	doc, err := content.Load(cfg.ContentPath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Site.Title) == "" {
		doc.Site.Title = cfg.Title
	}

	p := &page{
		cfg:    cfg,
		doc:    doc,
		banner: content.NameBanner(doc.Site),
		cards:  content.ProjectCards(doc.Projects),
		titles: make(map[string]string),
	}
	for _, c := range p.cards {
		if c.Key != "" {
			p.titles[c.Key] = c.Title
		}
	}
	return p, nil
}

// cardTexts returns the projects row items, one per card.
func (p *page) cardTexts() []string {
	texts := make([]string, len(p.cards))
	for i, c := range p.cards {
		texts[i] = c.Text() + cardGap
	}
	return texts
}

// startMarquees starts the name and projects marquees on host and returns
// a function that stops both. With sync enabled the projects row takes its
// speed from the name row.
func startMarquees(host layout.Host, cfg *config.Resolved) (stop func()) {
	if cfg.Sync {
		co := marquee.Coordinate(host, cfg.Name, cfg.Projects, cfg.Fallback)
		return co.Stop
	}

	name, _ := marquee.New(host, cfg.Name)
	projectsCfg := cfg.Projects
	if projectsCfg.Speed <= 0 && projectsCfg.Duration <= 0 {
		projectsCfg.Duration = cfg.Fallback
	}
	projects, _ := marquee.New(host, projectsCfg)
	return func() {
		name.Stop()
		projects.Stop()
	}
}

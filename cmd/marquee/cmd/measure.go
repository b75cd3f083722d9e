package cmd

import (
	"fmt"

	"github.com/go-drift/marquee/cmd/marquee/internal/config"
	"github.com/go-drift/marquee/pkg/layout"
	"github.com/go-drift/marquee/pkg/marquee"
	"github.com/go-drift/marquee/pkg/term"
)

func init() {
	RegisterCommand(&Command{
		Name:  "measure",
		Short: "Print loop widths and speeds",
		Long: `Measure both rows in terminal columns without opening a screen and print
the loop width, resolved speed and starting offset of each.

Flags:
  --dir DIR          Project directory (default: nearest marquee.yaml or go.mod)`,
		Usage: "marquee measure [--dir DIR]",
		Run:   runMeasure,
	})
}

func runMeasure(args []string) error {
	dir, err := parseDirArg(args)
	if err != nil {
		return err
	}
	p, err := loadPage(dir)
	if err != nil {
		return err
	}
	name, projects, err := measurePage(p)
	if err != nil {
		return err
	}
	printMeasurement(config.NameRow, p.cfg.Name.Direction, name)
	printMeasurement(config.ProjectsRow, p.cfg.Projects.Direction, projects)
	return nil
}

// measurePage measures both rows with the terminal cell metric, resolving
// the projects row's timing the same way the page does.
func measurePage(p *page) (name, projects marquee.Measurement, err error) {
	name, err = marquee.Measure(cellRow(config.NameRow, p.banner), p.cfg.Name)
	if err != nil {
		return name, projects, fmt.Errorf("%s: %w", config.NameRow, err)
	}

	cfg := p.cfg.Projects
	switch {
	case p.cfg.Sync:
		cfg.Speed = name.Speed
	case cfg.Speed <= 0 && cfg.Duration <= 0:
		cfg.Duration = p.cfg.Fallback
	}
	projects, err = marquee.Measure(cellRow(config.ProjectsRow, p.cardTexts()), cfg)
	if err != nil {
		return name, projects, fmt.Errorf("%s: %w", config.ProjectsRow, err)
	}
	return name, projects, nil
}

func cellRow(id string, texts []string) *layout.Row {
	cells := make([]layout.Element, len(texts))
	for i, t := range texts {
		cells[i] = &term.Cell{Text: t}
	}
	return layout.NewRow(id, cells...)
}

func printMeasurement(id string, dir marquee.Direction, m marquee.Measurement) {
	fmt.Printf("%-10s loop %6.0f cols  speed %6.2f cols/s  start %7.1f  %s\n",
		id, m.LoopWidth, m.Speed, m.InitialOffset, dir)
}

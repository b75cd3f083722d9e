package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/marquee/cmd/marquee/internal/config"
	"github.com/go-drift/marquee/pkg/content"
	"github.com/go-drift/marquee/pkg/layout"
	"github.com/go-drift/marquee/pkg/term"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Show the page in the terminal",
		Long: `Show the name banner and the projects strip in the terminal.

The projects row pauses while the mouse is over it. Clicking a project
opens its preview on the status line; Esc closes it. Press q or Ctrl-C
to quit.

Flags:
  --dir DIR          Project directory (default: nearest marquee.yaml or go.mod)`,
		Usage: "marquee run [--dir DIR]",
		Run:   runRun,
	})
}

// Screen lines of the two rows.
const (
	nameLine     = 1
	projectsLine = 3
)

func runRun(args []string) error {
	dir, err := parseDirArg(args)
	if err != nil {
		return err
	}
	p, err := loadPage(dir)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	h := term.NewHost(screen, term.Options{
		FPS:         p.cfg.FPS,
		StatusStyle: tcell.StyleDefault.Reverse(true),
	})
	buildTermRows(h, p)

	stop := startMarquees(h, p.cfg)
	defer stop()

	session := content.NewSession(p.doc.Projects)
	h.OnClick(func(rowID string, el layout.Element) {
		openPreview(h, p, session, rowID, el)
	})
	h.OnEscape(func() {
		if session.Close() {
			h.SetStatus("")
		}
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := h.Run(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func buildTermRows(h *term.Host, p *page) {
	bold := tcell.StyleDefault.Bold(true)
	nameCells := make([]layout.Element, len(p.banner))
	for i, block := range p.banner {
		nameCells[i] = &term.Cell{Text: block, Style: bold}
	}
	h.AddRow(config.NameRow, nameLine, nameCells...)

	texts := p.cardTexts()
	cardCells := make([]layout.Element, len(p.cards))
	for i, c := range p.cards {
		style := tcell.StyleDefault
		if c.Key != "" {
			style = style.Underline(true)
		}
		cardCells[i] = &term.Cell{Text: texts[i], Key: c.Key, Style: style}
	}
	h.AddRow(config.ProjectsRow, projectsLine, cardCells...)
}

// openPreview opens the preview of a clicked project card.
func openPreview(h *term.Host, p *page, session *content.Session, rowID string, el layout.Element) {
	cell, ok := el.(*term.Cell)
	if !ok || rowID != config.ProjectsRow || cell.Key == "" {
		return
	}
	preview := session.Open(cell.Key, p.titles[cell.Key])
	h.SetStatus(preview.Text() + "  [Esc to close]")
}

func parseDirArg(args []string) (string, error) {
	dir := ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--dir":
			if i+1 >= len(args) {
				return "", fmt.Errorf("--dir requires a directory path")
			}
			dir = args[i+1]
			i++
		default:
			return "", fmt.Errorf("unknown flag %q", args[i])
		}
	}
	return dir, nil
}

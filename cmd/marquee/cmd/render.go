package cmd

import (
	"fmt"
	"image/color"
	"image/gif"
	"os"
	"strconv"
	"time"

	"github.com/go-drift/marquee/cmd/marquee/internal/config"
	"github.com/go-drift/marquee/pkg/headless"
	"github.com/go-drift/marquee/pkg/text"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Record both rows to an animated GIF",
		Long: `Render the name banner and the projects strip off screen with the Go
fonts and write the frames as an endlessly looping GIF.

Flags:
  -o FILE            Output file (default: marquee.gif)
  --frames N         Number of frames (default: 100)
  --fps N            Frame rate of the recording (default: 25)
  --width N          Frame width in pixels (default: 640)
  --dir DIR          Project directory (default: nearest marquee.yaml or go.mod)`,
		Usage: "marquee render [-o FILE] [--frames N] [--fps N] [--width N] [--dir DIR]",
		Run:   runRender,
	})
}

type renderOptions struct {
	out    string
	frames int
	fps    int
	width  int
	dir    string
}

// Pixel layout of the recording.
const (
	renderHeight   = 96
	nameTop        = 8
	projectsTop    = 56
	nameFontSize   = 28
	cardFontSize   = 20
	defaultFrames  = 100
	defaultGIFRate = 25
)

func runRender(args []string) error {
	opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	p, err := loadPage(opts.dir)
	if err != nil {
		return err
	}

	anim, err := renderPage(p, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.out, err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", opts.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %d frames to %s\n", len(anim.Image), opts.out)
	return nil
}

func renderPage(p *page, opts renderOptions) (*gif.GIF, error) {
	fonts := text.NewFontManager()
	if err := fonts.RegisterGoFont(); err != nil {
		return nil, err
	}
	h := headless.NewHost(headless.Options{Width: opts.width, Height: renderHeight, Fonts: fonts})

	nameStyle := text.TextStyle{FontFamily: text.FamilyGo, FontSize: nameFontSize, FontWeight: text.FontWeightBold}
	cardStyle := text.TextStyle{FontFamily: text.FamilyGo, FontSize: cardFontSize}
	h.AddRow(config.NameRow, nameTop, nameStyle, color.Black, p.banner...)
	h.AddRow(config.ProjectsRow, projectsTop, cardStyle, color.RGBA{R: 0x33, G: 0x33, B: 0x99, A: 0xff}, p.cardTexts()...)

	stop := startMarquees(h, p.cfg)
	defer stop()

	return h.Record(opts.frames, time.Second/time.Duration(opts.fps)), nil
}

func parseRenderArgs(args []string) (renderOptions, error) {
	opts := renderOptions{
		out:    "marquee.gif",
		frames: defaultFrames,
		fps:    defaultGIFRate,
		width:  640,
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if i+1 >= len(args) {
			return opts, fmt.Errorf("%s requires a value", arg)
		}
		value := args[i+1]
		i++
		switch arg {
		case "-o", "--out":
			opts.out = value
		case "--dir":
			opts.dir = value
		case "--frames", "--fps", "--width":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("%s must be a positive integer (got %q)", arg, value)
			}
			switch arg {
			case "--frames":
				opts.frames = n
			case "--fps":
				opts.fps = n
			default:
				opts.width = n
			}
		default:
			return opts, fmt.Errorf("unknown flag %q", arg)
		}
	}
	return opts, nil
}

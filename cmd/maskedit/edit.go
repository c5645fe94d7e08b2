package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/example/maskedit/internal/brush"
	"github.com/example/maskedit/internal/clipboard"
	"github.com/example/maskedit/internal/config"
	"github.com/example/maskedit/internal/display"
	"github.com/example/maskedit/internal/editor"
	"github.com/example/maskedit/internal/render"
	"github.com/example/maskedit/internal/session"
	"github.com/example/maskedit/internal/viewport"
)

// runEditor opens the window; tests replace it.
var runEditor = func(ed *editor.Editor, fps int) { ed.Run(fps) }

// editCmd represents the edit subcommand.
type editCmd struct {
	*root
	fs      *flag.FlagSet
	images  string
	masks   string
	output  string
	budget  int
	brush   int
	history int
	window  string
	monitor string
	fps     int
	fast    bool
}

func (e *editCmd) Program() string { return e.subcommand("edit") }

func (e *editCmd) FlagSet() *flag.FlagSet { return e.fs }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	cfg := r.config
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.StringVar(&e.images, "images", cfg.Images, "directory of source images")
	fs.StringVar(&e.masks, "masks", cfg.Masks, "directory of existing masks")
	fs.StringVar(&e.output, "output", cfg.Output, "directory edited masks are saved to")
	fs.IntVar(&e.budget, "budget", cfg.PixelBudget, "largest image area in pixels edited at full size")
	fs.IntVar(&e.brush, "brush", cfg.Brush.Size, "initial brush radius in screen pixels")
	fs.IntVar(&e.history, "history", cfg.History.Limit, "undo depth")
	window := ""
	if cfg.View.Width > 0 && cfg.View.Height > 0 {
		window = fmt.Sprintf("%dx%d", cfg.View.Width, cfg.View.Height)
	}
	fs.StringVar(&e.window, "window", window, "initial window size as WxH (default fits the display)")
	fs.StringVar(&e.monitor, "monitor", "", "monitor used to size the window: primary, an index or a name")
	fs.IntVar(&e.fps, "fps", cfg.View.FPS, "redraw rate")
	fs.BoolVar(&e.fast, "fast", !cfg.View.Smooth, "scale the image with nearest-neighbour instead of bilinear filtering")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *editCmd) Run() error {
	paths := config.Config{Images: e.images, Masks: e.masks, Output: e.output}
	if err := paths.Validate(); err != nil {
		return &UsageError{of: e, err: err}
	}
	want := image.Point{}
	if e.window != "" {
		w, h, err := config.ParseSize(e.window)
		if err != nil {
			return &UsageError{of: e, err: fmt.Errorf("-window: %w", err)}
		}
		want = image.Pt(w, h)
	}
	if err := os.MkdirAll(e.output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	pairs, err := session.Scan(e.images, e.masks, e.output)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	sess, err := session.New(pairs)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	cfg := e.root.config
	b := &brush.Brush{Min: cfg.Brush.Min, Max: cfg.Brush.Max, Step: cfg.Brush.Step}
	b.Set(e.brush)
	filters := render.DefaultFilters()
	if e.fast {
		filters = render.FastFilters()
	}
	ed := editor.New(sess,
		editor.WithWindowSize(display.InitialSize(want, e.monitor)),
		editor.WithPixelBudget(e.budget),
		editor.WithBrush(b),
		editor.WithHistoryLimit(e.history),
		editor.WithViewport(viewport.WithFactor(cfg.View.ZoomFactor), viewport.WithMaxZoom(cfg.View.ZoomMax)),
		editor.WithTheme(e.activeTheme),
		editor.WithFilters(filters),
		editor.WithNotifier(e.notifier),
		editor.WithClipboard(clipboard.WritePNG),
		editor.WithPathClipboard(clipboard.WriteText),
	)
	runEditor(ed, e.fps)
	return nil
}

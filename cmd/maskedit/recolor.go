package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/example/maskedit/internal/recolor"
	"github.com/example/maskedit/internal/theme"
)

// recolorCmd converts saved masks into red/green class maps.
type recolorCmd struct {
	*root
	fs        *flag.FlagSet
	input     string
	output    string
	threshold int
	fg        string
	bg        string
	workers   int
}

func (c *recolorCmd) Program() string { return c.subcommand("recolor") }

func (c *recolorCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseRecolorCmd(args []string, r *root) (*recolorCmd, error) {
	fs := flag.NewFlagSet("recolor", flag.ExitOnError)
	c := &recolorCmd{root: r, fs: fs}
	input := ""
	if r != nil && r.config != nil {
		input = r.config.Output
	}
	fs.StringVar(&c.input, "input", input, "directory of saved masks")
	fs.StringVar(&c.output, "output", "", "directory recolored masks are written to")
	fs.IntVar(&c.threshold, "threshold", recolor.DefaultThreshold, "R+G+B sum below which a pixel is background")
	fs.StringVar(&c.fg, "fg", "red", "foreground color (name or #RRGGBB)")
	fs.StringVar(&c.bg, "bg", "lime", "background color (name or #RRGGBB)")
	fs.IntVar(&c.workers, "workers", 0, "files processed concurrently (0 uses every CPU)")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *recolorCmd) options() (recolor.Options, error) {
	opts := recolor.DefaultOptions()
	opts.Threshold = c.threshold
	opts.Workers = c.workers
	var err error
	if opts.Foreground, err = theme.ParseColor(c.fg); err != nil {
		return opts, fmt.Errorf("-fg: %w", err)
	}
	if opts.Background, err = theme.ParseColor(c.bg); err != nil {
		return opts, fmt.Errorf("-bg: %w", err)
	}
	return opts, nil
}

func (c *recolorCmd) Run() error {
	if c.input == "" || c.output == "" {
		return &UsageError{of: c, err: fmt.Errorf("-input and -output are required")}
	}
	opts, err := c.options()
	if err != nil {
		return &UsageError{of: c, err: err}
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := recolor.Dir(ctx, c.input, c.output, opts)
	if err != nil {
		return fmt.Errorf("recolor: %w", err)
	}
	fmt.Printf("processed %d masks, %d failed, written to %s\n", res.Processed, res.Failed, c.output)
	if c.notifier != nil {
		c.notifier.Recolor(res.Processed, res.Failed)
	}
	return nil
}

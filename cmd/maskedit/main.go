package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/example/maskedit/internal/config"
	"github.com/example/maskedit/internal/imageio"
	"github.com/example/maskedit/internal/notify"
	"github.com/example/maskedit/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	saveAlerts    bool
	copyAlerts    bool
	recolorAlerts bool
	themeName     string
	activeTheme   *theme.Theme
}

func (r *root) Program() string { return r.program }

func (r *root) FlagSet() *flag.FlagSet { return r.fs }

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

// newRoot loads the config file and applies MASKEDIT_* overrides so that
// flag defaults already reflect env > config > built-in defaults.
func newRoot(lookup func(string) (string, bool)) *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring environment: %v\n", err)
	}

	r := &root{
		fs:       flag.NewFlagSet("maskedit", flag.ExitOnError),
		program:  "maskedit",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a mask")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying a mask to the clipboard")
	r.fs.BoolVar(&r.recolorAlerts, "notify-recolor", false, "show a desktop notification when a recolor run finishes")
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Names(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

// resolveTheme picks the theme named on the command line, else the one from
// the environment or config file. Themes defined in the config win over
// files of the same name.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		t = theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	r.notifier.Enable(notify.EventRecolor, r.recolorAlerts)

	r.activeTheme = r.resolveTheme()
	imageio.PlaceholderColor = r.activeTheme.Placeholder

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "recolor":
		cmd, err = parseRecolorCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	case "help":
		err = &UsageError{of: r}
	default:
		err = &UsageError{of: r, err: fmt.Errorf("unknown command %q", cmdName)}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}
}

func main() {
	loadDotEnv()
	r := newRoot(os.LookupEnv)
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			if uerr.err != nil {
				os.Exit(1)
			}
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

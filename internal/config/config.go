package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/example/maskedit/internal/brush"
	"github.com/example/maskedit/internal/history"
	"github.com/example/maskedit/internal/imageio"
	"github.com/example/maskedit/internal/theme"
	"github.com/example/maskedit/internal/viewport"
)

// ErrMissingPath is returned by Validate when a directory is not set.
var ErrMissingPath = errors.New("path not set")

// Brush holds brush size settings, in screen pixels.
type Brush struct {
	Size int
	Min  int
	Max  int
	Step int
}

// View holds window and viewport settings.
type View struct {
	ZoomFactor float64
	ZoomMax    float64
	// Width and Height of the initial window; zero picks a size from the
	// primary display.
	Width  int
	Height int
	FPS    int
	// Smooth selects bilinear rather than nearest-neighbour image scaling.
	Smooth bool
}

// History holds undo settings.
type History struct {
	Limit int
}

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Images      string
	Masks       string
	Output      string
	Theme       string
	PixelBudget int
	Brush       Brush
	View        View
	History     History
	Notify      Notify
	Themes      map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:       "", // Default to empty to allow fallback to Env/Default
		PixelBudget: imageio.DefaultPixelBudget,
		Brush: Brush{
			Size: brush.DefaultRadius,
			Min:  brush.DefaultMin,
			Max:  brush.DefaultMax,
			Step: brush.DefaultStep,
		},
		View: View{
			ZoomFactor: viewport.DefaultFactor,
			ZoomMax:    viewport.DefaultMaxZoom,
			FPS:        60,
			Smooth:     true,
		},
		History: History{Limit: history.DefaultLimit},
		Themes:  make(map[string]*theme.Theme),
	}
}

// Validate reports which of the three session directories is missing.
func (c *Config) Validate() error {
	var missing []string
	if c.Images == "" {
		missing = append(missing, "images")
	}
	if c.Masks == "" {
		missing = append(missing, "masks")
	}
	if c.Output == "" {
		missing = append(missing, "output")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrMissingPath)
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Images != "" {
		fmt.Fprintf(&sb, "images = %s\n", c.Images)
	}
	if c.Masks != "" {
		fmt.Fprintf(&sb, "masks = %s\n", c.Masks)
	}
	if c.Output != "" {
		fmt.Fprintf(&sb, "output = %s\n", c.Output)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	fmt.Fprintf(&sb, "pixel_budget = %d\n", c.PixelBudget)
	sb.WriteString("\n")

	sb.WriteString("[brush]\n")
	fmt.Fprintf(&sb, "size = %d\n", c.Brush.Size)
	fmt.Fprintf(&sb, "min = %d\n", c.Brush.Min)
	fmt.Fprintf(&sb, "max = %d\n", c.Brush.Max)
	fmt.Fprintf(&sb, "step = %d\n", c.Brush.Step)
	sb.WriteString("\n")

	sb.WriteString("[view]\n")
	fmt.Fprintf(&sb, "zoom_factor = %g\n", c.View.ZoomFactor)
	fmt.Fprintf(&sb, "zoom_max = %g\n", c.View.ZoomMax)
	if c.View.Width > 0 && c.View.Height > 0 {
		fmt.Fprintf(&sb, "window = %dx%d\n", c.View.Width, c.View.Height)
	}
	fmt.Fprintf(&sb, "fps = %d\n", c.View.FPS)
	fmt.Fprintf(&sb, "smooth = %v\n", c.View.Smooth)
	sb.WriteString("\n")

	sb.WriteString("[history]\n")
	fmt.Fprintf(&sb, "limit = %d\n", c.History.Limit)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		sb.WriteString(theme.Format(c.Themes[name]))
		sb.WriteString("\n")
	}

	return sb.String()
}

// Package display picks an initial editor window size from the monitor
// layout.
package display

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strconv"
	"strings"
)

// DefaultSize is used when no monitor information is available.
var DefaultSize = image.Pt(1280, 720)

// Fraction of the monitor the window may cover at most.
const Fraction = 0.9

// ErrNoMonitors is returned when the layout cannot be queried.
var ErrNoMonitors = errors.New("no monitors available")

// Monitor describes an individual monitor in the desktop layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// listMonitors queries the host; tests replace it.
var listMonitors = queryMonitors

// Monitors returns the connected monitors.
func Monitors() ([]Monitor, error) {
	mons, err := listMonitors()
	if err != nil {
		return nil, err
	}
	if len(mons) == 0 {
		return nil, ErrNoMonitors
	}
	return mons, nil
}

// Select resolves "primary", an index (optionally prefixed with #), or a
// name fragment. An empty selector means primary.
func Select(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, ErrNoMonitors
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	if lower == "" || lower == "primary" {
		for _, m := range monitors {
			if m.Primary {
				return m, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(lower, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, m := range monitors {
		if strings.Contains(strings.ToLower(m.Name), lower) {
			return m, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

// Fit shrinks want, keeping its aspect ratio, so it covers at most
// Fraction of monitor. An empty monitor leaves want unchanged.
func Fit(want image.Point, monitor image.Rectangle) image.Point {
	if monitor.Empty() || want.X <= 0 || want.Y <= 0 {
		return want
	}
	maxW := float64(monitor.Dx()) * Fraction
	maxH := float64(monitor.Dy()) * Fraction
	k := 1.0
	if r := maxW / float64(want.X); r < k {
		k = r
	}
	if r := maxH / float64(want.Y); r < k {
		k = r
	}
	if k == 1 {
		return want
	}
	return image.Pt(int(float64(want.X)*k), int(float64(want.Y)*k))
}

// InitialSize returns want (DefaultSize when zero) capped to the selected
// monitor. Failure to read the layout is logged and the size is kept.
func InitialSize(want image.Point, selector string) image.Point {
	if want.X <= 0 || want.Y <= 0 {
		want = DefaultSize
	}
	mons, err := Monitors()
	if err != nil {
		log.Printf("display: %v; using %dx%d", err, want.X, want.Y)
		return want
	}
	m, err := Select(mons, selector)
	if err != nil {
		log.Printf("display: %v; using primary", err)
		m, _ = Select(mons, "")
	}
	return Fit(want, m.Rect)
}

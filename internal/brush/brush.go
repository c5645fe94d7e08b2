// Package brush turns pointer drags into mask edits.
package brush

import (
	"github.com/example/maskedit/internal/mask"
	"github.com/example/maskedit/internal/viewport"
)

// Brush radius defaults, in screen pixels.
const (
	// DefaultRadius is the radius a new brush starts with.
	DefaultRadius = 15
	// DefaultMin is the smallest radius Adjust allows.
	DefaultMin = 1
	// DefaultMax is the largest radius Adjust allows.
	DefaultMax = 200
	// DefaultStep is how far one Adjust moves the radius.
	DefaultStep = 2
)

// Brush is a circular brush whose radius is measured in screen pixels so
// it keeps the same on-screen size at any zoom.
type Brush struct {
	Radius int
	Min    int
	Max    int
	Step   int
}

// New returns the default brush.
func New() *Brush {
	return &Brush{Radius: DefaultRadius, Min: DefaultMin, Max: DefaultMax, Step: DefaultStep}
}

// Adjust grows (dir > 0) or shrinks (dir < 0) the radius by one step within
// [Min, Max] and reports whether it changed.
func (b *Brush) Adjust(dir int) bool {
	r := b.Radius
	switch {
	case dir > 0:
		r += b.Step
	case dir < 0:
		r -= b.Step
	}
	r = b.clamp(r)
	if r == b.Radius {
		return false
	}
	b.Radius = r
	return true
}

// Set assigns the radius, clamped to the brush limits.
func (b *Brush) Set(r int) { b.Radius = b.clamp(r) }

func (b *Brush) clamp(r int) int {
	if r < b.Min {
		r = b.Min
	}
	if b.Max >= b.Min && r > b.Max {
		r = b.Max
	}
	return r
}

// WorldRadius converts the radius to working-image pixels at zoom.
func (b *Brush) WorldRadius(zoom float64) float64 { return float64(b.Radius) / zoom }

// Stroke tracks one press-drag-release gesture.
type Stroke struct {
	active bool
	paint  bool
	last   viewport.Vec
}

// Active reports whether a stroke is in progress.
func (s *Stroke) Active() bool { return s.active }

// Painting reports whether the active stroke paints rather than erases.
func (s *Stroke) Painting() bool { return s.paint }

// Begin starts a stroke at screen point p and applies a single dab.
func (s *Stroke) Begin(b *Brush, v *viewport.Viewport, buf *mask.Buffer, p viewport.Vec, paint bool) {
	s.active = true
	s.paint = paint
	s.last = p
	w := v.ScreenToWorld(p)
	buf.Disk(w.X, w.Y, b.WorldRadius(v.Zoom), paint)
}

// Extend joins the previous sample to p with a line as wide as the brush
// and caps the end with a disk. It does nothing when no stroke is active.
func (s *Stroke) Extend(b *Brush, v *viewport.Viewport, buf *mask.Buffer, p viewport.Vec) {
	if !s.active {
		return
	}
	r := b.WorldRadius(v.Zoom)
	from := v.ScreenToWorld(s.last)
	to := v.ScreenToWorld(p)
	buf.ThickLine(from.X, from.Y, to.X, to.Y, 2*r, s.paint)
	buf.Disk(to.X, to.Y, r, s.paint)
	s.last = p
}

// End finishes the stroke.
func (s *Stroke) End() { s.active = false }

// Package viewport maps between window pixels and working-image pixels and
// implements anchored zooming and panning.
package viewport

import (
	"fmt"
	"image"
	"math"
)

const (
	// DefaultFactor is the multiplicative zoom step per scroll notch.
	DefaultFactor = 1.1
	// DefaultMaxZoom is the largest zoom allowed unless fitting needs more.
	DefaultMaxZoom = 20.0
)

// Vec is a point or displacement in continuous screen or world space.
type Vec struct {
	X, Y float64
}

// Pt converts an integer point.
func Pt(p image.Point) Vec { return Vec{float64(p.X), float64(p.Y)} }

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Mul(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Div(k float64) Vec { return Vec{v.X / k, v.Y / k} }
func (v Vec) String() string { return fmt.Sprintf("(%.2f,%.2f)", v.X, v.Y) }
func lerp(a, b Vec, t float64) Vec { return a.Add(b.Sub(a).Mul(t)) }
func clamp(x, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, x)) }

// Rect is an axis-aligned rectangle in world space.
type Rect struct {
	Min, Max Vec
}

// Pixels returns the smallest integer rectangle containing r.
func (r Rect) Pixels() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Min.X)), int(math.Floor(r.Min.Y)),
		int(math.Ceil(r.Max.X)), int(math.Ceil(r.Max.Y)),
	)
}

// Viewport holds the zoom and the world position of the window's top-left
// corner. World coordinates are working-image pixels.
type Viewport struct {
	Zoom    float64
	Offset  Vec
	MinZoom float64

	Factor  float64
	MaxZoom float64

	Window image.Point
	Image  image.Point
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithFactor sets the zoom step.
func WithFactor(f float64) Option { return func(v *Viewport) { v.Factor = f } }

// WithMaxZoom sets the upper zoom limit.
func WithMaxZoom(z float64) Option { return func(v *Viewport) { v.MaxZoom = z } }

// New returns a viewport at zoom 1 with the given options applied.
func New(opts ...Option) *Viewport {
	v := &Viewport{Zoom: 1, MinZoom: 1, Factor: DefaultFactor, MaxZoom: DefaultMaxZoom}
	for _, o := range opts {
		o(v)
	}
	if v.Factor <= 1 {
		v.Factor = DefaultFactor
	}
	if v.MaxZoom <= 0 {
		v.MaxZoom = DefaultMaxZoom
	}
	return v
}

// Fit records the window and image sizes and resets to the centred fit zoom.
func (v *Viewport) Fit(window, img image.Point) {
	v.Window = window
	v.Image = img
	v.MinZoom = 1
	if window.X > 0 && window.Y > 0 && img.X > 0 && img.Y > 0 {
		v.MinZoom = math.Min(float64(window.X)/float64(img.X), float64(window.Y)/float64(img.Y))
	}
	v.Zoom = v.MinZoom
	v.Offset = v.centred(v.Zoom)
}

// Refit fits the current image to the current window again.
func (v *Viewport) Refit() { v.Fit(v.Window, v.Image) }

// Limit returns the effective maximum zoom, never below the fit zoom.
func (v *Viewport) Limit() float64 { return math.Max(v.MaxZoom, v.MinZoom) }

func (v *Viewport) centred(z float64) Vec {
	return Pt(v.Image).Div(2).Sub(Pt(v.Window).Div(2 * z))
}

// ScreenToWorld converts a window position to world coordinates.
func (v *Viewport) ScreenToWorld(p Vec) Vec { return v.Offset.Add(p.Div(v.Zoom)) }

// WorldToScreen converts a world position to window coordinates.
func (v *Viewport) WorldToScreen(p Vec) Vec { return p.Sub(v.Offset).Mul(v.Zoom) }

// ZoomIn magnifies by one step keeping the world point under anchor fixed.
// It reports whether the zoom changed.
func (v *Viewport) ZoomIn(anchor Vec) bool {
	return v.zoomAt(anchor, math.Min(v.Zoom*v.Factor, v.Limit()))
}

// ZoomOut shrinks by one step around anchor. Below twice the fit zoom the
// offset is blended toward the centred position, reaching it at the fit
// zoom.
func (v *Viewport) ZoomOut(anchor Vec) bool {
	if !v.zoomAt(anchor, math.Max(v.Zoom/v.Factor, v.MinZoom)) {
		return false
	}
	t := clamp((2*v.MinZoom-v.Zoom)/v.MinZoom, 0, 1)
	if t > 0 {
		v.Offset = lerp(v.Offset, v.centred(v.Zoom), t)
	}
	return true
}

func (v *Viewport) zoomAt(anchor Vec, z float64) bool {
	if z == v.Zoom {
		return false
	}
	w0 := v.ScreenToWorld(anchor)
	v.Zoom = z
	v.Offset = w0.Sub(anchor.Div(z))
	return true
}

// Pan moves the view by a screen-space drag delta. The offset is not
// clamped so the image can be dragged partly out of view.
func (v *Viewport) Pan(delta Vec) { v.Offset = v.Offset.Sub(delta.Div(v.Zoom)) }

// Visible returns the world rectangle covered by the window.
func (v *Viewport) Visible() Rect {
	return Rect{Min: v.Offset, Max: v.Offset.Add(Pt(v.Window).Div(v.Zoom))}
}

// Percent reports the zoom relative to the fit zoom, where 100 means fitted.
func (v *Viewport) Percent() float64 {
	if v.MinZoom == 0 {
		return 100
	}
	return v.Zoom / v.MinZoom * 100
}

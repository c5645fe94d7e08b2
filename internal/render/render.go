// Package render composites the working image, the mask and the editor
// chrome into a window-sized frame.
package render

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/example/maskedit/internal/theme"
	"github.com/example/maskedit/internal/viewport"
)

// Filters selects the interpolators used when scaling the visible region.
type Filters struct {
	Image xdraw.Interpolator
	Mask  xdraw.Interpolator
}

// DefaultFilters smooths the photo and keeps mask edges crisp.
func DefaultFilters() Filters {
	return Filters{Image: xdraw.ApproxBiLinear, Mask: xdraw.NearestNeighbor}
}

// FastFilters uses nearest-neighbour for both layers.
func FastFilters() Filters {
	return Filters{Image: xdraw.NearestNeighbor, Mask: xdraw.NearestNeighbor}
}

// Scene is everything needed to draw one frame.
type Scene struct {
	Image   image.Image
	Mask    image.Image
	View    *viewport.Viewport
	Theme   *theme.Theme
	Filters Filters

	// Pointer is the cursor position in window pixels; ShowCursor hides
	// the brush outline when the pointer has left the window.
	Pointer    image.Point
	ShowCursor bool
	Brush      int

	Status  Status
	Message string
}

// Frame draws sc into dst, which should be the size of the window.
func Frame(dst *image.RGBA, sc Scene) {
	th := sc.Theme
	if th == nil {
		th = theme.Default()
	}
	f := sc.Filters
	if f.Image == nil || f.Mask == nil {
		f = DefaultFilters()
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)

	if sc.Image != nil && sc.View != nil {
		src, dr := Visible(sc.View, sc.Image.Bounds())
		if !src.Empty() {
			f.Image.Scale(dst, dr, sc.Image, src, draw.Over, nil)
			if sc.Mask != nil {
				f.Mask.Scale(dst, dr, sc.Mask, src, draw.Over, nil)
			}
		}
	}

	if sc.ShowCursor && sc.Brush > 0 {
		Circle(dst, sc.Pointer.X, sc.Pointer.Y, sc.Brush, th.Cursor)
	}
	StatusBar(dst, sc.Status, th)
	if sc.Message != "" {
		MessageBox(dst, sc.Message, th)
	}
}

// Visible returns the image pixels that intersect the view, expanded to
// whole pixels, and the window rectangle they map onto.
func Visible(v *viewport.Viewport, bounds image.Rectangle) (src, dst image.Rectangle) {
	src = v.Visible().Pixels().Intersect(bounds)
	if src.Empty() {
		return image.Rectangle{}, image.Rectangle{}
	}
	lo := v.WorldToScreen(viewport.Pt(src.Min))
	hi := v.WorldToScreen(viewport.Pt(src.Max))
	dst = image.Rect(
		int(math.Round(lo.X)), int(math.Round(lo.Y)),
		int(math.Round(hi.X)), int(math.Round(hi.Y)),
	)
	return src, dst
}

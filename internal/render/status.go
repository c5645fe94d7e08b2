package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/maskedit/internal/theme"
)

// StatusHeight is the height of the status bar in pixels.
const StatusHeight = 20

// Status describes the current editing position for the status bar.
type Status struct {
	Name  string
	Index int // zero based
	Total int
	Brush int
	Zoom  float64 // percent of the fit zoom
	// Downscaled is set when the image is edited below its native size.
	Downscaled bool
}

// String formats the status line.
func (s Status) String() string {
	if s.Total == 0 {
		return "no images"
	}
	line := fmt.Sprintf("%s [%d/%d]  brush %d  zoom %.0f%%", s.Name, s.Index+1, s.Total, s.Brush, s.Zoom)
	if s.Downscaled {
		line += "  (downscaled)"
	}
	return line
}

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// StatusBar draws s along the bottom edge of dst.
func StatusBar(dst *image.RGBA, s Status, th *theme.Theme) {
	b := dst.Bounds()
	rect := image.Rect(b.Min.X, b.Max.Y-StatusHeight, b.Max.X, b.Max.Y).Intersect(b)
	if rect.Empty() {
		return
	}
	draw.Draw(dst, rect, image.NewUniform(th.StatusBackground), image.Point{}, draw.Over)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: basicfont.Face7x13,
		Dot: fixed.P(rect.Min.X+6, rect.Max.Y-5)}
	d.DrawString(s.String())
}

// MessageBox draws msg centred in dst on a framed panel.
func MessageBox(dst *image.RGBA, msg string, th *theme.Theme) {
	b := dst.Bounds()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.MessageText), Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := b.Min.X + (b.Dx()-wmsg)/2
	py := b.Min.Y + (b.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, rect, image.NewUniform(th.MessageBackground), image.Point{}, draw.Over)
	frame(dst, rect, th.MessageText)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

func frame(dst *image.RGBA, r image.Rectangle, c color.Color) {
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, edge, image.NewUniform(c), image.Point{}, draw.Src)
	}
}

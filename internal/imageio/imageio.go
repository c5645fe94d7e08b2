// Package imageio loads source images at a working resolution bounded by a
// pixel budget.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/gift"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// DefaultPixelBudget caps the working raster at roughly 3162x3162.
const DefaultPixelBudget = 10_000_000

// PlaceholderSize is the edge length of the raster used when a source image
// cannot be loaded.
const PlaceholderSize = 1000

// PlaceholderColor fills the placeholder raster.
var PlaceholderColor = color.RGBA{255, 0, 0, 255}

// WorkingImage is the raster that is displayed and edited.
type WorkingImage struct {
	// Image holds the working-resolution pixels.
	Image *image.RGBA
	// Scale is the working size divided by the original size; 1 when no
	// downscale happened.
	Scale float64
	// OriginalSize is the full-resolution size masks are exported at.
	OriginalSize image.Point
	// Original keeps the decoded full-resolution image when Scale != 1.
	Original image.Image
	// Placeholder reports that loading failed and Image is a solid fill.
	Placeholder bool
}

// Size returns the working dimensions.
func (w *WorkingImage) Size() image.Point { return w.Image.Bounds().Size() }

// Downscaled reports whether the working raster is smaller than the original.
func (w *WorkingImage) Downscaled() bool { return w.Scale != 1 }

// ScaleFactor returns the factor that brings a w x h image within budget
// pixels. Images already within budget get exactly 1.
func ScaleFactor(w, h, budget int) float64 {
	n := float64(w) * float64(h)
	if budget <= 0 || n <= float64(budget) {
		return 1
	}
	return math.Sqrt(float64(budget) / n)
}

// WorkingSize applies scale to a w x h image, rounding to whole pixels.
func WorkingSize(w, h int, scale float64) image.Point {
	if scale == 1 {
		return image.Pt(w, h)
	}
	sw := int(math.Round(float64(w) * scale))
	sh := int(math.Round(float64(h) * scale))
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}
	return image.Pt(sw, sh)
}

// Load decodes path and, when it exceeds budget pixels, downscales it with a
// Lanczos filter. The full-resolution image is retained for export sizing.
func Load(path string, budget int) (*WorkingImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(src, budget, filepath.Base(path)), nil
}

// FromImage builds a WorkingImage from an already decoded image. name is only
// used for logging.
func FromImage(src image.Image, budget int, name string) *WorkingImage {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	scale := ScaleFactor(w, h, budget)
	wi := &WorkingImage{Scale: scale, OriginalSize: image.Pt(w, h)}
	if scale == 1 {
		wi.Image = toRGBA(src)
		return wi
	}
	size := WorkingSize(w, h, scale)
	log.Printf("%s: high-res (%dx%d), downscaling to %dx%d", name, w, h, size.X, size.Y)
	g := gift.New(gift.Resize(size.X, size.Y, gift.LanczosResampling))
	dst := image.NewRGBA(g.Bounds(b))
	g.Draw(dst, src)
	wi.Image = dst
	wi.Original = src
	return wi
}

// Placeholder returns the solid raster substituted for unreadable images.
func Placeholder() *WorkingImage {
	img := image.NewRGBA(image.Rect(0, 0, PlaceholderSize, PlaceholderSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(PlaceholderColor), image.Point{}, draw.Src)
	return &WorkingImage{
		Image:        img,
		Scale:        1,
		OriginalSize: img.Bounds().Size(),
		Placeholder:  true,
	}
}

// LoadOrPlaceholder behaves like Load but logs failures and substitutes the
// placeholder raster so an editing session can continue.
func LoadOrPlaceholder(path string, budget int) *WorkingImage {
	wi, err := Load(path, budget)
	if err != nil {
		log.Printf("load image: %v", err)
		return Placeholder()
	}
	return wi
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return rgba
}

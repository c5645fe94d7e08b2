// Package mask holds the editable two-state mask layer: loading and
// normalising stored masks, brush rasterization and export at original
// resolution.
package mask

import (
	"bytes"
	"image"
	"image/color"
)

const (
	// DisplayAlpha is the opacity of painted pixels while editing.
	DisplayAlpha = 64
	// SaveAlpha is the opacity of painted pixels in exported masks.
	SaveAlpha = 255
)

var (
	// Hue is the fixed colour of painted pixels.
	Hue = color.NRGBA{0, 255, 255, 255}
	// Paint is the colour written by the brush while editing.
	Paint = color.NRGBA{Hue.R, Hue.G, Hue.B, DisplayAlpha}
	// Saved is the colour of painted pixels on disk.
	Saved = color.NRGBA{Hue.R, Hue.G, Hue.B, SaveAlpha}
	// Clear marks an unpainted pixel.
	Clear = color.NRGBA{}
)

// Buffer is the working-resolution mask. Every pixel is either Paint or
// Clear; storage is non-premultiplied RGBA so the same pixels can be
// composited translucently and exported opaque.
type Buffer struct {
	img *image.NRGBA
}

// New returns an unpainted buffer of the given size.
func New(w, h int) *Buffer {
	return &Buffer{img: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

// Image exposes the underlying raster for compositing.
func (b *Buffer) Image() *image.NRGBA { return b.img }

// Bounds returns the buffer bounds, always anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle { return b.img.Rect }

// Size returns the buffer dimensions.
func (b *Buffer) Size() image.Point { return b.img.Rect.Size() }

// Painted reports whether (x, y) is painted. Out-of-range points are not.
func (b *Buffer) Painted(x, y int) bool {
	if !image.Pt(x, y).In(b.img.Rect) {
		return false
	}
	return b.img.Pix[b.img.PixOffset(x, y)+3] != 0
}

// Set paints or clears a single pixel, ignoring out-of-range points.
func (b *Buffer) Set(x, y int, painted bool) {
	if !image.Pt(x, y).In(b.img.Rect) {
		return
	}
	c := Clear
	if painted {
		c = Paint
	}
	i := b.img.PixOffset(x, y)
	b.img.Pix[i+0] = c.R
	b.img.Pix[i+1] = c.G
	b.img.Pix[i+2] = c.B
	b.img.Pix[i+3] = c.A
}

// Count returns the number of painted pixels.
func (b *Buffer) Count() int {
	n := 0
	for i := 3; i < len(b.img.Pix); i += 4 {
		if b.img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy that shares no pixel memory with b.
func (b *Buffer) Clone() *Buffer {
	cp := image.NewNRGBA(b.img.Rect)
	copy(cp.Pix, b.img.Pix)
	return &Buffer{img: cp}
}

// Equal reports whether both buffers have the same size and pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.img.Rect == o.img.Rect && bytes.Equal(b.img.Pix, o.img.Pix)
}

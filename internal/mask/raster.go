package mask

import (
	"image"
	"math"
)

// Disk paints (or clears) every pixel whose centre lies within r of (cx, cy).
// Coordinates are in working-image pixels. The pixel containing the centre is
// always covered so sub-pixel brushes still leave a mark.
func (b *Buffer) Disk(cx, cy, r float64, painted bool) {
	b.Set(int(math.Floor(cx)), int(math.Floor(cy)), painted)
	if r <= 0 {
		return
	}
	area := b.clip(cx-r, cy-r, cx+r, cy+r)
	r2 := r * r
	for y := area.Min.Y; y < area.Max.Y; y++ {
		dy := float64(y) + 0.5 - cy
		for x := area.Min.X; x < area.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				b.Set(x, y, painted)
			}
		}
	}
}

// ThickLine paints (or clears) every pixel whose centre lies within width/2 of
// the segment (x0, y0)-(x1, y1). Widths below one pixel are widened to one so
// fast strokes at high zoom stay connected.
func (b *Buffer) ThickLine(x0, y0, x1, y1, width float64, painted bool) {
	half := width / 2
	if half < 0.5 {
		half = 0.5
	}
	area := b.clip(math.Min(x0, x1)-half, math.Min(y0, y1)-half, math.Max(x0, x1)+half, math.Max(y0, y1)+half)
	vx, vy := x1-x0, y1-y0
	l2 := vx*vx + vy*vy
	h2 := half * half
	for y := area.Min.Y; y < area.Max.Y; y++ {
		py := float64(y) + 0.5
		for x := area.Min.X; x < area.Max.X; x++ {
			px := float64(x) + 0.5
			t := 0.0
			if l2 > 0 {
				t = ((px-x0)*vx + (py-y0)*vy) / l2
				t = math.Max(0, math.Min(1, t))
			}
			dx := px - (x0 + t*vx)
			dy := py - (y0 + t*vy)
			if dx*dx+dy*dy <= h2 {
				b.Set(x, y, painted)
			}
		}
	}
}

// clip converts a float bounding box into the pixel rectangle it touches,
// intersected with the buffer.
func (b *Buffer) clip(minX, minY, maxX, maxY float64) image.Rectangle {
	r := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	)
	return r.Intersect(b.img.Rect)
}

package mask

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestCloneIsDeep(t *testing.T) {
	b := New(4, 4)
	b.Set(1, 1, true)
	c := b.Clone()
	if !c.Equal(b) {
		t.Fatal("clone differs from source")
	}
	b.Set(2, 2, true)
	if c.Painted(2, 2) {
		t.Fatal("clone shares pixels with source")
	}
	if c.Equal(b) {
		t.Fatal("Equal ignored a changed pixel")
	}
}

func TestSetOutOfRangeIsIgnored(t *testing.T) {
	b := New(2, 2)
	b.Set(-1, 0, true)
	b.Set(2, 1, true)
	if b.Count() != 0 {
		t.Fatalf("painted %d pixels out of range", b.Count())
	}
	if b.Painted(5, 5) {
		t.Fatal("out of range pixel reported painted")
	}
}

func TestDiskArea(t *testing.T) {
	b := New(200, 200)
	b.Disk(100, 100, 30, true)
	want := math.Pi * 30 * 30
	if got := float64(b.Count()); math.Abs(got-want)/want > 0.02 {
		t.Fatalf("disk area %v, want about %v", got, want)
	}
	if !b.Painted(100, 100) || b.Painted(100, 140) {
		t.Fatal("disk coverage wrong")
	}
	got := b.Image().NRGBAAt(100, 100)
	if got != Paint {
		t.Fatalf("painted colour %+v, want %+v", got, Paint)
	}
}

func TestDiskSubPixelRadius(t *testing.T) {
	b := New(10, 10)
	b.Disk(3.7, 4.2, 0.05, true)
	if b.Count() != 1 || !b.Painted(3, 4) {
		t.Fatalf("sub-pixel dab painted %d pixels", b.Count())
	}
}

func TestEraseClearsPixels(t *testing.T) {
	b := New(50, 50)
	b.Disk(25, 25, 20, true)
	b.Disk(25, 25, 5, false)
	if b.Painted(25, 25) {
		t.Fatal("erase left centre painted")
	}
	if got := b.Image().NRGBAAt(25, 25); got != Clear {
		t.Fatalf("erased pixel %+v, want transparent", got)
	}
	if !b.Painted(25, 10) {
		t.Fatal("erase removed too much")
	}
}

func TestThickLineCoversSegment(t *testing.T) {
	b := New(100, 40)
	b.ThickLine(10, 20, 90, 20, 10, true)
	for x := 10; x < 90; x++ {
		if !b.Painted(x, 20) || !b.Painted(x, 16) || !b.Painted(x, 23) {
			t.Fatalf("column %d not covered", x)
		}
	}
	if b.Painted(50, 10) || b.Painted(50, 30) {
		t.Fatal("line thicker than width")
	}
}

func TestThinLineStaysConnected(t *testing.T) {
	b := New(100, 100)
	b.ThickLine(0.5, 0.5, 99.5, 99.5, 0.1, true)
	for i := 0; i < 100; i++ {
		if !b.Painted(i, i) {
			t.Fatalf("diagonal gap at %d", i)
		}
	}
}

func TestNormalizeAlphaChannel(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.Set(1, 1, color.NRGBA{255, 0, 0, 10})
	src.Set(2, 2, color.NRGBA{0, 0, 0, 255})
	buf := Normalize(src, image.Pt(4, 4))
	if !buf.Painted(1, 1) || !buf.Painted(2, 2) {
		t.Fatal("non-zero alpha pixels should be painted")
	}
	if buf.Count() != 2 {
		t.Fatalf("painted %d, want 2", buf.Count())
	}
	if got := buf.Image().NRGBAAt(1, 1); got != Paint {
		t.Fatalf("normalised colour %+v, want %+v", got, Paint)
	}
}

func TestNormalizeIntensityWhenOpaque(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 3))
	src.SetGray(0, 0, color.Gray{Y: 1})
	src.SetGray(2, 2, color.Gray{Y: 255})
	buf := Normalize(src, image.Pt(3, 3))
	if buf.Count() != 2 || !buf.Painted(0, 0) || !buf.Painted(2, 2) {
		t.Fatalf("intensity normalisation painted %d", buf.Count())
	}
}

func TestNormalizeOpaqueRGBAUsesColour(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 0xff
	}
	src.SetNRGBA(1, 2, color.NRGBA{255, 255, 255, 255})
	buf := Normalize(src, image.Pt(4, 4))
	if buf.Count() != 1 || !buf.Painted(1, 2) {
		t.Fatalf("opaque RGBA mask painted %d, want only (1,2)", buf.Count())
	}
}

func TestNormalizeResamplesNearest(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 5; x++ {
			src.Set(x, y, color.NRGBA{0, 255, 255, 255})
		}
	}
	buf := Normalize(src, image.Pt(4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if buf.Painted(x, y) != (x < 2) {
				t.Fatalf("pixel (%d,%d) painted=%v", x, y, buf.Painted(x, y))
			}
		}
	}
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestLoadPrefersSavedOutput(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "orig.png")
	output := filepath.Join(dir, "out.png")
	o := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	o.Set(0, 0, color.NRGBA{255, 255, 255, 255})
	writePNG(t, original, o)

	buf, path, err := Load(output, original, image.Pt(8, 8))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != original || !buf.Painted(0, 0) {
		t.Fatalf("expected original mask, got %s", path)
	}

	s := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	s.Set(7, 7, color.NRGBA{0, 255, 255, 255})
	writePNG(t, output, s)

	buf, path, err = Load(output, original, image.Pt(8, 8))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != output {
		t.Fatalf("loaded %s, want saved output", path)
	}
	if buf.Painted(0, 0) || !buf.Painted(7, 7) {
		t.Fatal("loaded region does not match the saved mask")
	}
}

func TestLoadOrBlankOnMissingMask(t *testing.T) {
	dir := t.TempDir()
	buf := LoadOrBlank(filepath.Join(dir, "none.png"), filepath.Join(dir, "gone.png"), image.Pt(5, 7))
	if buf.Size() != image.Pt(5, 7) || buf.Count() != 0 {
		t.Fatalf("blank buffer size %v count %d", buf.Size(), buf.Count())
	}
	buf = LoadOrBlank("", "", image.Pt(3, 3))
	if buf.Size() != image.Pt(3, 3) {
		t.Fatalf("blank buffer size %v", buf.Size())
	}
}

func TestExportCanonicalColours(t *testing.T) {
	b := New(3, 1)
	b.Set(1, 0, true)
	out := Export(b, image.Pt(3, 1))
	if got := out.NRGBAAt(1, 0); got != Saved {
		t.Fatalf("painted export %+v, want %+v", got, Saved)
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{}) {
		t.Fatalf("unpainted export %+v, want zero", got)
	}
}

func TestSaveReloadRoundTripAtWorkingResolution(t *testing.T) {
	working := image.Pt(316, 316)
	original := image.Pt(400, 400)
	b := New(working.X, working.Y)
	b.Disk(120, 150, 40, true)
	b.ThickLine(10, 10, 300, 40, 7, true)
	b.Disk(130, 150, 8, false)

	path := filepath.Join(t.TempDir(), "nested", "mask.png")
	if err := Save(b, original, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reloaded, _, err := Load(path, "", working)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reloaded.Equal(b) {
		t.Fatalf("round trip changed painted set: %d vs %d pixels", reloaded.Count(), b.Count())
	}
}

func TestExportUpscaledDiskRadius(t *testing.T) {
	// Same ratio as a 4000px image edited at 3162px.
	s := math.Sqrt(10_000_000.0 / 16_000_000.0)
	original := image.Pt(400, 400)
	working := image.Pt(int(math.Round(400*s)), int(math.Round(400*s)))
	b := New(working.X, working.Y)
	b.Disk(float64(working.X)/2, float64(working.Y)/2, 50, true)

	out := Export(b, original)
	cy := original.Y / 2
	minX, maxX := original.X, -1
	for x := 0; x < original.X; x++ {
		if out.NRGBAAt(x, cy).A != 0 {
			if x < minX {
				minX = x
			}
			maxX = x
		}
	}
	radius := float64(maxX-minX+1) / 2
	if want := 50 / s; math.Abs(radius-want) > 2 {
		t.Fatalf("exported radius %v, want about %v", radius, want)
	}
}

package mask

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// Export returns the mask at size, resampled nearest-neighbour so painted
// membership is preserved exactly, with painted pixels set to Saved and the
// rest fully transparent.
func Export(b *Buffer, size image.Point) *image.NRGBA {
	src := b.img
	if size != b.Size() {
		scaled := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), src, src.Rect, draw.Src, nil)
		src = scaled
	}
	out := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	for i := 3; i < len(src.Pix); i += 4 {
		if src.Pix[i] == 0 {
			continue
		}
		out.Pix[i-3] = Saved.R
		out.Pix[i-2] = Saved.G
		out.Pix[i-1] = Saved.B
		out.Pix[i] = Saved.A
	}
	return out
}

// EncodePNG exports b at size and encodes it as PNG.
func EncodePNG(b *Buffer, size image.Point) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Export(b, size)); err != nil {
		return nil, fmt.Errorf("encode mask: %w", err)
	}
	return buf.Bytes(), nil
}

// Save exports b at size and writes it to path, creating the parent directory
// when needed. An existing file at path is only replaced once the new mask
// has been written completely.
func Save(b *Buffer, size image.Point, path string) error {
	data, err := EncodePNG(b, size)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".maskedit-*.png")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: closing file: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

package mask

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // register PNG decoder
	"log"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// ErrNoMask is returned when neither an edited nor an original mask exists.
var ErrNoMask = errors.New("no mask available")

// Resolve returns the mask file to load: a previously saved output wins over
// the original annotation so edits survive reopening a pair.
func Resolve(output, original string) (string, error) {
	if output != "" {
		if _, err := os.Stat(output); err == nil {
			return output, nil
		}
	}
	if original == "" {
		return "", ErrNoMask
	}
	return original, nil
}

// Normalize resamples src to size with nearest-neighbour filtering and
// converts it to a two-state buffer. When src has a meaningful alpha channel
// (any pixel below full opacity) a pixel is painted when its alpha is
// non-zero; otherwise it is painted when any colour channel is non-zero.
func Normalize(src image.Image, size image.Point) *Buffer {
	scaled := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	sb := src.Bounds()
	if sb.Size() == size {
		draw.Draw(scaled, scaled.Bounds(), src, sb.Min, draw.Src)
	} else {
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), src, sb, draw.Src, nil)
	}

	useAlpha := false
	for i := 3; i < len(scaled.Pix); i += 4 {
		if scaled.Pix[i] != 0xff {
			useAlpha = true
			break
		}
	}

	buf := New(size.X, size.Y)
	for i := 0; i < len(scaled.Pix); i += 4 {
		p := scaled.Pix[i : i+4 : i+4]
		var active bool
		if useAlpha {
			active = p[3] != 0
		} else {
			active = p[0] != 0 || p[1] != 0 || p[2] != 0
		}
		if active {
			buf.img.Pix[i+0] = Paint.R
			buf.img.Pix[i+1] = Paint.G
			buf.img.Pix[i+2] = Paint.B
			buf.img.Pix[i+3] = Paint.A
		}
	}
	return buf
}

// Load resolves the mask for a pair and normalises it to size. It also
// returns the path that was read.
func Load(output, original string, size image.Point) (*Buffer, string, error) {
	path, err := Resolve(output, original)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, path, fmt.Errorf("open mask %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, path, fmt.Errorf("decode mask %s: %w", path, err)
	}
	return Normalize(img, size), path, nil
}

// LoadOrBlank behaves like Load but logs failures and returns an unpainted
// buffer so the session can continue.
func LoadOrBlank(output, original string, size image.Point) *Buffer {
	buf, path, err := Load(output, original, size)
	if err != nil {
		log.Printf("load mask: %v; starting blank", err)
		return New(size.X, size.Y)
	}
	if path == output {
		log.Printf("loading saved mask from %s", filepath.Base(path))
	} else {
		log.Printf("loading original mask from %s", filepath.Base(path))
	}
	return buf
}

// Package recolor converts stored masks into two-colour class maps: dark
// pixels become the background class and everything else the foreground.
package recolor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/example/maskedit/internal/session"
)

// DefaultThreshold is the R+G+B sum below which a pixel is background.
const DefaultThreshold = 50

// ErrNoInputs is returned when the input directory holds no PNG files.
var ErrNoInputs = errors.New("no PNG files found")

// Options controls the colours and the background threshold.
type Options struct {
	Foreground color.RGBA
	Background color.RGBA
	Threshold  int
	// Workers caps concurrent files; zero uses the CPU count.
	Workers int
}

// DefaultOptions paints foreground red on a green background.
func DefaultOptions() Options {
	return Options{
		Foreground: color.RGBA{255, 0, 0, 255},
		Background: color.RGBA{0, 255, 0, 255},
		Threshold:  DefaultThreshold,
	}
}

// Image classifies every pixel of src by the sum of its stored colour
// channels, ignoring alpha.
func Image(src image.Image, opts Options) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			col := opts.Foreground
			if int(c.R)+int(c.G)+int(c.B) < opts.Threshold {
				col = opts.Background
			}
			out.SetRGBA(x-b.Min.X, y-b.Min.Y, col)
		}
	}
	return out
}

// File recolors the PNG at src and writes the result to dst.
func File(src, dst string, opts Options) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := png.Encode(out, Image(img, opts)); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}

// Result counts the outcome of a Dir run.
type Result struct {
	Processed int
	Failed    int
}

// Inputs lists the mask files in dir in name order.
func Inputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), session.MaskExt) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Dir recolors every PNG in in and writes it under out with the same name,
// creating out if needed. Per-file failures are logged and counted; the
// run stops early only when ctx is cancelled.
func Dir(ctx context.Context, in, out string, opts Options) (Result, error) {
	files, err := Inputs(in)
	if err != nil {
		return Result{}, err
	}
	if len(files) == 0 {
		return Result{}, fmt.Errorf("%s: %w", in, ErrNoInputs)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}
	log.Printf("found %d masks in %s, processing", len(files), in)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var processed, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, src := range files {
		src := src
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dst := filepath.Join(out, filepath.Base(src))
			if err := File(src, dst, opts); err != nil {
				log.Printf("failed to process %s: %v", src, err)
				failed.Add(1)
				return nil
			}
			processed.Add(1)
			return nil
		})
	}
	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return Result{Processed: int(processed.Load()), Failed: int(failed.Load())}, err
}

package editor

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"

	"github.com/example/maskedit/internal/imageio"
	"github.com/example/maskedit/internal/session"
	"github.com/example/maskedit/internal/viewport"
)

type dirs struct {
	images, masks, output string
}

func newDirs(t *testing.T) dirs {
	t.Helper()
	root := t.TempDir()
	d := dirs{
		images: filepath.Join(root, "images"),
		masks:  filepath.Join(root, "masks"),
		output: filepath.Join(root, "output"),
	}
	for _, p := range []string{d.images, d.masks, d.output} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func grey(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	return img
}

// addPair writes a w×h source image and a blank mask named stem.
func (d dirs) addPair(t *testing.T, stem string, w, h int) {
	t.Helper()
	writePNG(t, filepath.Join(d.images, stem+".png"), grey(w, h))
	writePNG(t, filepath.Join(d.masks, stem+".png"), image.NewGray(image.Rect(0, 0, w, h)))
}

func (d dirs) session(t *testing.T) *session.Session {
	t.Helper()
	pairs, err := session.Scan(d.images, d.masks, d.output)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	s, err := session.New(pairs)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func pt(x, y float64) viewport.Vec { return viewport.Vec{X: x, Y: y} }

func press(e *Editor, b Button, p viewport.Vec) {
	e.Handle(Input{Kind: KindPress, Button: b, Pos: p})
}

func move(e *Editor, p viewport.Vec) { e.Handle(Input{Kind: KindMotion, Pos: p}) }

func release(e *Editor, b Button, p viewport.Vec) {
	e.Handle(Input{Kind: KindRelease, Button: b, Pos: p})
}

func stroke(e *Editor, b Button, from, to viewport.Vec) {
	press(e, b, from)
	move(e, to)
	release(e, b, to)
}

func typeKey(e *Editor, r rune, code key.Code, mods key.Modifiers) {
	e.Handle(Input{Kind: KindKey, Key: Shortcut(r, code, mods)})
}

// A 20×20 image in a 200×200 window sits at zoom 10 with a zero offset, so
// screen coordinates are ten times world coordinates.
func newEditor(t *testing.T, d dirs, opts ...Option) *Editor {
	t.Helper()
	opts = append([]Option{WithWindowSize(image.Pt(200, 200))}, opts...)
	return New(d.session(t), opts...)
}

func TestLoadFitsView(t *testing.T) {
	d := newDirs(t)
	d.addPair(t, "a", 20, 20)
	e := newEditor(t, d)
	if e.View().Zoom != 10 || e.View().Offset != (viewport.Vec{}) {
		t.Fatalf("zoom %v offset %v", e.View().Zoom, e.View().Offset)
	}
	if e.Mask().Size() != image.Pt(20, 20) || e.Mask().Count() != 0 {
		t.Fatalf("mask size %v count %d", e.Mask().Size(), e.Mask().Count())
	}
	if !e.Dirty() {
		t.Fatal("fresh editor should need a frame")
	}
}

func TestPaintAndErase(t *testing.T) {
	d := newDirs(t)
	d.addPair(t, "a", 20, 20)
	e := newEditor(t, d)

	stroke(e, ButtonPrimary, pt(25, 55), pt(175, 55))
	for x := 3; x < 17; x++ {
		if !e.Mask().Painted(x, 5) {
			t.Fatalf("pixel (%d,5) not painted", x)
		}
	}
	if e.Mask().Painted(10, 15) {
		t.Fatal("painted outside the stroke")
	}

	stroke(e, ButtonSecondary, pt(100, 55), pt(100, 55))
	if e.Mask().Painted(10, 5) {
		t.Fatal("erase left pixel painted")
	}
	if !e.Mask().Painted(4, 5) {
		t.Fatal("erase removed too much")
	}
	if undo, _ := e.History().Depth(); undo != 2 {
		t.Fatalf("undo depth %d, want one per stroke", undo)
	}
}

func TestUndoRedoKeys(t *testing.T) {
	d := newDirs(t)
	d.addPair(t, "a", 20, 20)
	e := newEditor(t, d)

	stroke(e, ButtonPrimary, pt(50, 50), pt(50, 50))
	first := e.Mask().Clone()
	stroke(e, ButtonPrimary, pt(150, 150), pt(150, 150))
	final := e.Mask().Clone()

	typeKey(e, 'z', key.CodeZ, key.ModControl)
	if !e.Mask().Equal(first) {
		t.Fatal("undo did not restore the first stroke")
	}
	typeKey(e, 'z', key.CodeZ, key.ModControl)
	typeKey(e, 'z', key.CodeZ, key.ModControl)
	if e.Mask().Count() != 0 {
		t.Fatal("undo past the start changed the mask")
	}
	typeKey(e, 'y', key.CodeY, key.ModControl)
	typeKey(e, 'Z', key.CodeZ, key.ModControl|key.ModShift)
	if !e.Mask().Equal(final) {
		t.Fatal("redo did not reproduce the final mask")
	}

	typeKey(e, 'z', key.CodeZ, key.ModControl)
	stroke(e, ButtonPrimary, pt(20, 180), pt(20, 180))
	if e.History().CanRedo() {
		t.Fatal("new stroke should clear redo")
	}
}

func TestSaveReloadRoundTripWhenDownscaled(t *testing.T) {
	d := newDirs(t)
	d.addPair(t, "a", 40, 40)
	// 1600 pixels over a budget of 400 halves each side.
	e := newEditor(t, d, WithPixelBudget(400))
	if !e.Working().Downscaled() || e.Working().Size() != image.Pt(20, 20) {
		t.Fatalf("working size %v", e.Working().Size())
	}
	stroke(e, ButtonPrimary, pt(30, 30), pt(160, 120))
	stroke(e, ButtonSecondary, pt(90, 80), pt(90, 80))
	want := e.Mask().Clone()

	typeKey(e, 's', key.CodeS, 0)
	out := filepath.Join(d.output, "a.png")
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("saved mask missing: %v", err)
	}
	cfg, err := png.DecodeConfig(f)
	f.Close()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 40 || cfg.Height != 40 {
		t.Fatalf("saved at %dx%d, want original size", cfg.Width, cfg.Height)
	}

	reopened := newEditor(t, d, WithPixelBudget(400))
	if !reopened.Mask().Equal(want) {
		t.Fatalf("reloaded mask differs: %d vs %d pixels", reopened.Mask().Count(), want.Count())
	}
}

func TestSaveAdvancesAndStaysAtEnd(t *testing.T) {
	d := newDirs(t)
	d.addPair(t, "a", 20, 20)
	d.addPair(t, "b", 20, 20)
	now := time.Unix(0, 0)
	e := newEditor(t, d, WithClock(func() time.Time { return now }))

	stroke(e, ButtonPrimary, pt(50, 50), pt(50, 50))
	typeKey(e, 's', key.CodeS, 0)
	if e.Session().Index() != 1 {
		t.Fatalf("index %d after save, want 1", e.Session().Index())
	}
	if e.History().CanUndo() || e.Mask().Count() != 0 {
		t.Fatal("navigation should load a fresh mask and clear history")
	}
	if e.Message() == "" {
		t.Fatal("save message not shown")
	}

	typeKey(e, 's', key.CodeS, 0)
	if e.Session().Index() != 1 {
		t.Fatal("save at the last pair should stay")
	}
	if _, err := os.Stat(filepath.Join(d.output, "b.png")); err != nil {
		t.Fatalf("second save missing: %v", err)
	}

	now = now.Add(MessageDuration)
	e.Tick()
	if e.Message() != "" {
		t.Fatalf("message %q outlived its duration", e.Message())
	}

	typeKey(e, -1, key.CodeLeftArrow, 0)
	if e.Session().Index() != 0 || e.Mask().Count() == 0 {
		t.Fatal("returning to the first pair should resume its saved mask")
	}
	typeKey(e, -1, key.CodeLeftArrow, 0)
	if e.Session().Index() != 0 {
		t.Fatal("previous at the start should clamp")
	}
}

func TestResumePrefersSavedOutput(t *testing.T) {
	d := newDirs(t)
	d.addPair(t, "a", 20, 20)
	saved := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	saved.SetNRGBA(7, 7, color.NRGBA{0, 255, 255, 255})
	writePNG(t, filepath.Join(d.output, "a.png"), saved)

	e := newEditor(t, d)
	if e.Mask().Count() != 1 || !e.Mask().Painted(7, 7) {
		t.Fatalf("loaded %d painted pixels, want the saved one", e.Mask().Count())
	}
}

func TestSavePlaceholderRefused(t *testing.T) {
	d := newDirs(t)
	if err := os.WriteFile(filepath.Join(d.images, "a.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(d.masks, "a.png"), image.NewGray(image.Rect(0, 0, 20, 20)))
	e := newEditor(t, d)
	if !e.Working().Placeholder || e.Working().Size() != image.Pt(imageio.PlaceholderSize, imageio.PlaceholderSize) {
		t.Fatalf("expected placeholder, got %v", e.Working().Size())
	}
	if err := e.Save(); !errors.Is(err, ErrPlaceholder) {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(d.output, "a.png")); !os.IsNotExist(err) {
		t.Fatal("placeholder mask was written")
	}
}

func TestCopyPublishesExportedMask(t *testing.T) {
	d := newDirs(t)
	d.addPair(t, "a", 40, 40)
	var got []byte
	e := newEditor(t, d, WithPixelBudget(400), WithClipboard(func(b []byte) error {
		got = b
		return nil
	}))
	stroke(e, ButtonPrimary, pt(100, 100), pt(100, 100))
	typeKey(e, 'c', key.CodeC, key.ModControl)
	img, err := png.Decode(bytes.NewReader(got))
	if err != nil {
		t.Fatalf("clipboard bytes: %v", err)
	}
	if img.Bounds().Size() != image.Pt(40, 40) {
		t.Fatalf("copied size %v, want original", img.Bounds().Size())
	}
	if _, _, _, a := img.At(20, 20).RGBA(); a != 0xffff {
		t.Fatal("painted pixel not opaque in copy")
	}

	fail := errors.New("no clipboard")
	e = newEditor(t, d, WithClipboard(func([]byte) error { return fail }))
	if err := e.Copy(); !errors.Is(err, fail) {
		t.Fatalf("Copy: %v", err)
	}
	if e.Message() != "copy failed" {
		t.Fatalf("message %q", e.Message())
	}
}

func TestHeldSaveKeySavesOnce(t *testing.T) {
	d := newDirs(t)
	for _, n := range []string{"a", "b", "c"} {
		d.addPair(t, n, 20, 20)
	}
	e := newEditor(t, d)
	e.Handle(Input{Kind: KindKey, Key: Shortcut('s', key.CodeS, 0)})
	for i := 0; i < 5; i++ {
		e.Handle(Input{Kind: KindKey, Key: Shortcut('s', key.CodeS, 0), Repeat: true})
	}
	if e.Session().Index() != 1 {
		t.Fatalf("index %d, want 1", e.Session().Index())
	}
	entries, err := os.ReadDir(d.output)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.png" {
		t.Fatalf("outputs %v, want only a.png", entries)
	}
}

func TestCopyPath(t *testing.T) {
	d := newDirs(t)
	d.addPair(t, "a", 20, 20)
	var got string
	e := newEditor(t, d, WithPathClipboard(func(s string) error {
		got = s
		return nil
	}))
	typeKey(e, 'C', key.CodeC, key.ModControl|key.ModShift)
	if want := filepath.Join(d.output, "a.png"); got != want {
		t.Fatalf("copied %q, want %q", got, want)
	}
	if e.Message() != "path copied to clipboard" {
		t.Fatalf("message %q", e.Message())
	}
}

func TestZoomPanAndBrush(t *testing.T) {
	d := newDirs(t)
	d.addPair(t, "a", 20, 20)
	e := newEditor(t, d)

	anchor := pt(50, 50)
	before := e.View().ScreenToWorld(anchor)
	e.Handle(Input{Kind: KindScroll, Scroll: 1, Pos: anchor})
	if e.View().Zoom <= 10 {
		t.Fatalf("zoom %v did not increase", e.View().Zoom)
	}
	after := e.View().ScreenToWorld(anchor)
	if diff := after.Sub(before); diff.X*diff.X+diff.Y*diff.Y > 1e-9 {
		t.Fatalf("anchor moved from %v to %v", before, after)
	}
	e.Handle(Input{Kind: KindScroll, Scroll: -1, Pos: anchor})
	e.Handle(Input{Kind: KindScroll, Scroll: -1, Pos: anchor})
	if e.View().Zoom != e.View().MinZoom {
		t.Fatalf("zoom %v below fit %v", e.View().Zoom, e.View().MinZoom)
	}

	r := e.Brush().Radius
	e.Handle(Input{Kind: KindScroll, Scroll: 1, Modifiers: key.ModShift, Pos: anchor})
	if e.Brush().Radius != r+e.Brush().Step {
		t.Fatalf("brush %d, want %d", e.Brush().Radius, r+e.Brush().Step)
	}

	press(e, ButtonMiddle, pt(100, 100))
	move(e, pt(120, 90))
	release(e, ButtonMiddle, pt(120, 90))
	want := pt(-2, 1)
	if got := e.View().Offset; got != want {
		t.Fatalf("offset %v after pan, want %v", got, want)
	}
	if e.Mask().Count() != 0 {
		t.Fatal("panning painted")
	}

	typeKey(e, 'f', key.CodeF, 0)
	if e.View().Offset != (viewport.Vec{}) || e.View().Zoom != 10 {
		t.Fatal("fit did not reset the view")
	}
}

func TestResizeRefits(t *testing.T) {
	d := newDirs(t)
	d.addPair(t, "a", 20, 20)
	e := newEditor(t, d)
	e.Resize(image.Pt(400, 200))
	if e.View().Zoom != 10 || e.View().Offset != pt(-10, 0) {
		t.Fatalf("zoom %v offset %v", e.View().Zoom, e.View().Offset)
	}
	if e.Window() != image.Pt(400, 200) {
		t.Fatalf("window %v", e.Window())
	}
}

func TestDrawClearsDirtyAndQuit(t *testing.T) {
	d := newDirs(t)
	d.addPair(t, "a", 20, 20)
	e := newEditor(t, d)
	dst := image.NewRGBA(image.Rect(0, 0, 200, 200))
	e.Draw(dst)
	if e.Dirty() {
		t.Fatal("Draw should clear dirty")
	}
	if got := e.Status(); got.Name != "a.png" || got.Total != 1 || got.Zoom != 100 {
		t.Fatalf("status %+v", got)
	}
	typeKey(e, 'q', key.CodeQ, 0)
	if !e.Done() {
		t.Fatal("q should quit")
	}
}

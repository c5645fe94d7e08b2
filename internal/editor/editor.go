// Package editor owns the state of an editing session and applies input
// commands to it. The shiny window in window.go feeds it events and
// presents the frames it renders.
package editor

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/example/maskedit/internal/brush"
	"github.com/example/maskedit/internal/history"
	"github.com/example/maskedit/internal/imageio"
	"github.com/example/maskedit/internal/mask"
	"github.com/example/maskedit/internal/notify"
	"github.com/example/maskedit/internal/render"
	"github.com/example/maskedit/internal/session"
	"github.com/example/maskedit/internal/theme"
	"github.com/example/maskedit/internal/viewport"
)

// MessageDuration is how long transient messages stay on screen.
const MessageDuration = 2 * time.Second

// ErrPlaceholder is returned when saving a pair whose image failed to load.
var ErrPlaceholder = errors.New("image failed to load")

// Editor holds everything about the pair being edited. It is not safe for
// concurrent use; the window loop is its only caller.
type Editor struct {
	session *session.Session
	budget  int
	window  image.Point

	work *imageio.WorkingImage
	buf  *mask.Buffer
	view *viewport.Viewport

	brush   *brush.Brush
	stroke  brush.Stroke
	hist    *history.History
	keys    Keymap
	gesture Gesture
	panLast viewport.Vec

	pointer     viewport.Vec
	pointerSeen bool

	theme    *theme.Theme
	filters  render.Filters
	notifier *notify.Notifier
	copyPNG  func([]byte) error
	copyText func(string) error
	now      func() time.Time

	message      string
	messageUntil time.Time

	dirty bool
	done  bool
}

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithWindowSize sets the initial window size in pixels.
func WithWindowSize(size image.Point) Option { return func(e *Editor) { e.window = size } }

// WithPixelBudget sets the largest working image area before downscaling.
func WithPixelBudget(n int) Option { return func(e *Editor) { e.budget = n } }

// WithBrush replaces the default brush.
func WithBrush(b *brush.Brush) Option { return func(e *Editor) { e.brush = b } }

// WithViewport configures the zoom behaviour.
func WithViewport(opts ...viewport.Option) Option {
	return func(e *Editor) { e.view = viewport.New(opts...) }
}

// WithHistoryLimit sets the undo depth.
func WithHistoryLimit(n int) Option { return func(e *Editor) { e.hist = history.New(n) } }

// WithTheme sets the chrome colours.
func WithTheme(t *theme.Theme) Option { return func(e *Editor) { e.theme = t } }

// WithFilters selects the scaling interpolators.
func WithFilters(f render.Filters) Option { return func(e *Editor) { e.filters = f } }

// WithNotifier sends desktop notifications on save and copy.
func WithNotifier(n *notify.Notifier) Option { return func(e *Editor) { e.notifier = n } }

// WithClipboard sets the function that publishes exported PNG bytes.
func WithClipboard(fn func([]byte) error) Option { return func(e *Editor) { e.copyPNG = fn } }

// WithPathClipboard sets the function that publishes the output path.
func WithPathClipboard(fn func(string) error) Option { return func(e *Editor) { e.copyText = fn } }

// WithKeymap replaces the default key bindings.
func WithKeymap(k Keymap) Option { return func(e *Editor) { e.keys = k } }

// WithClock overrides time.Now for message expiry.
func WithClock(fn func() time.Time) Option { return func(e *Editor) { e.now = fn } }

// New creates an Editor and loads the current pair of s.
func New(s *session.Session, opts ...Option) *Editor {
	e := &Editor{
		session: s,
		budget:  imageio.DefaultPixelBudget,
		window:  image.Pt(1280, 720),
		view:    viewport.New(),
		brush:   brush.New(),
		hist:    history.New(history.DefaultLimit),
		keys:    defaultKeymap,
		theme:   theme.Default(),
		filters: render.DefaultFilters(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	e.Load()
	return e
}

// Load reads the current pair: the image (downscaled if needed, or a
// placeholder) and its mask at working resolution. History is discarded and
// the view refitted.
func (e *Editor) Load() {
	p := e.session.Current()
	log.Printf("Loading [%d/%d]: %s", e.session.Index()+1, e.session.Len(), p.Name())
	e.work = imageio.LoadOrPlaceholder(p.Image, e.budget)
	e.buf = mask.LoadOrBlank(p.Output, p.Mask, e.work.Size())
	e.hist.Clear()
	e.stroke.End()
	e.gesture = GestureNone
	e.view.Fit(e.window, e.work.Size())
	e.dirty = true
}

// Resize refits the view to a new window size.
func (e *Editor) Resize(size image.Point) {
	if size == e.window || size.X <= 0 || size.Y <= 0 {
		return
	}
	e.window = size
	e.view.Fit(size, e.work.Size())
	e.dirty = true
}

// Handle resolves in against the current gesture and applies the result.
func (e *Editor) Handle(in Input) {
	if in.Kind == KindKey {
		in.Pos = e.pointer
	} else {
		e.pointer = in.Pos
		e.pointerSeen = true
	}
	e.Apply(e.keys.Resolve(in, e.gesture))
}

// Apply performs cmd.
func (e *Editor) Apply(cmd Command) {
	switch cmd.Action {
	case ActionNone:
		return
	case ActionHover:
		if !e.pointerSeen {
			return
		}
	case ActionPaintBegin, ActionEraseBegin:
		e.hist.Snapshot(e.buf)
		paint := cmd.Action == ActionPaintBegin
		e.stroke.Begin(e.brush, e.view, e.buf, cmd.Pos, paint)
		e.gesture = GestureErase
		if paint {
			e.gesture = GesturePaint
		}
	case ActionStrokeExtend:
		e.stroke.Extend(e.brush, e.view, e.buf, cmd.Pos)
	case ActionStrokeEnd, ActionPanEnd:
		e.endGesture()
	case ActionPanBegin:
		e.gesture = GesturePan
		e.panLast = cmd.Pos
	case ActionPanMove:
		e.view.Pan(cmd.Pos.Sub(e.panLast))
		e.panLast = cmd.Pos
	case ActionZoomIn:
		e.view.ZoomIn(cmd.Pos)
	case ActionZoomOut:
		e.view.ZoomOut(cmd.Pos)
	case ActionBrushGrow:
		e.brush.Adjust(1)
	case ActionBrushShrink:
		e.brush.Adjust(-1)
	case ActionUndo:
		e.endGesture()
		e.buf = e.hist.Undo(e.buf)
	case ActionRedo:
		e.endGesture()
		e.buf = e.hist.Redo(e.buf)
	case ActionSave:
		e.endGesture()
		if err := e.Save(); err == nil {
			e.Next()
		}
	case ActionNext:
		e.Next()
	case ActionPrevious:
		e.Previous()
	case ActionFit:
		e.view.Refit()
	case ActionCopy:
		e.Copy()
	case ActionCopyPath:
		e.CopyPath()
	case ActionQuit:
		e.endGesture()
		e.done = true
	}
	e.dirty = true
}

func (e *Editor) endGesture() {
	e.stroke.End()
	e.gesture = GestureNone
}

// Next moves to the following pair, if any.
func (e *Editor) Next() bool {
	if !e.session.Next() {
		return false
	}
	e.Load()
	return true
}

// Previous moves to the preceding pair, if any.
func (e *Editor) Previous() bool {
	if !e.session.Previous() {
		return false
	}
	e.Load()
	return true
}

// Save exports the mask at the original image size to the pair's output
// path. Failures are logged and shown; the session carries on.
func (e *Editor) Save() error {
	p := e.session.Current()
	if e.work.Placeholder {
		err := fmt.Errorf("save %s: %w", p.Name(), ErrPlaceholder)
		log.Printf("save: %v", err)
		e.show("not saved: image failed to load")
		return err
	}
	if err := mask.Save(e.buf, e.work.OriginalSize, p.Output); err != nil {
		log.Printf("save: %v", err)
		e.show("save failed")
		return err
	}
	e.show(fmt.Sprintf("saved %s", p.Output))
	e.notifier.Save(p.Output)
	return nil
}

// Copy publishes the exported mask to the clipboard.
func (e *Editor) Copy() error {
	if e.copyPNG == nil {
		return nil
	}
	data, err := mask.EncodePNG(e.buf, e.work.OriginalSize)
	if err == nil {
		err = e.copyPNG(data)
	}
	if err != nil {
		log.Printf("copy: %v", err)
		e.show("copy failed")
		return err
	}
	e.show("mask copied to clipboard")
	e.notifier.Copy(e.session.Current().Name())
	return nil
}

// CopyPath publishes the output path of the current pair.
func (e *Editor) CopyPath() error {
	if e.copyText == nil {
		return nil
	}
	out := e.session.Current().Output
	if err := e.copyText(out); err != nil {
		log.Printf("copy path: %v", err)
		e.show("copy failed")
		return err
	}
	e.show("path copied to clipboard")
	return nil
}

func (e *Editor) show(msg string) {
	e.message = msg
	e.messageUntil = e.now().Add(MessageDuration)
	log.Print(msg)
	e.dirty = true
}

// Tick expires the transient message.
func (e *Editor) Tick() {
	if e.message != "" && !e.now().Before(e.messageUntil) {
		e.message = ""
		e.dirty = true
	}
}

// Status describes the current position for the status bar.
func (e *Editor) Status() render.Status {
	return render.Status{
		Name:       e.session.Current().Name(),
		Index:      e.session.Index(),
		Total:      e.session.Len(),
		Brush:      e.brush.Radius,
		Zoom:       e.view.Percent(),
		Downscaled: e.work.Downscaled(),
	}
}

// Scene returns the frame description for the current state.
func (e *Editor) Scene() render.Scene {
	return render.Scene{
		Image:      e.work.Image,
		Mask:       e.buf.Image(),
		View:       e.view,
		Theme:      e.theme,
		Filters:    e.filters,
		Pointer:    image.Pt(int(e.pointer.X), int(e.pointer.Y)),
		ShowCursor: e.pointerSeen,
		Brush:      e.brush.Radius,
		Status:     e.Status(),
		Message:    e.message,
	}
}

// Draw renders the current frame into dst and clears the dirty flag.
func (e *Editor) Draw(dst *image.RGBA) {
	render.Frame(dst, e.Scene())
	e.dirty = false
}

// Dirty reports whether the state changed since the last Draw.
func (e *Editor) Dirty() bool { return e.dirty }

// Done reports whether quit was requested.
func (e *Editor) Done() bool { return e.done }

// Window returns the window size the view is fitted to.
func (e *Editor) Window() image.Point { return e.window }

// Mask returns the current mask buffer.
func (e *Editor) Mask() *mask.Buffer { return e.buf }

// Working returns the current working image.
func (e *Editor) Working() *imageio.WorkingImage { return e.work }

// View returns the viewport.
func (e *Editor) View() *viewport.Viewport { return e.view }

// Brush returns the brush.
func (e *Editor) Brush() *brush.Brush { return e.brush }

// History returns the undo history.
func (e *Editor) History() *history.History { return e.hist }

// Session returns the session being edited.
func (e *Editor) Session() *session.Session { return e.session }

// Message returns the message currently on screen, if any.
func (e *Editor) Message() string { return e.message }

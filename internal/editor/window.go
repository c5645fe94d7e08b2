package editor

import (
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/maskedit/internal/viewport"
)

// DefaultFPS is the default redraw rate.
const DefaultFPS = 60

// Title is the window title.
const Title = "maskedit"

// tickEvent is posted by the frame ticker.
type tickEvent struct{}

// Run opens a window and processes events until the window closes or quit
// is requested. fps <= 0 uses DefaultFPS.
func (e *Editor) Run(fps int) { driver.Main(func(s screen.Screen) { e.Main(s, fps) }) }

// Main runs the event loop on an existing screen. Input is applied as it
// arrives; frames are drawn on ticks when something changed.
func (e *Editor) Main(s screen.Screen, fps int) {
	if fps <= 0 {
		fps = DefaultFPS
	}
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: e.window.X, Height: e.window.Y, Title: Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	stop := startTicker(fps, func() { w.Send(tickEvent{}) })
	defer stop()

	var buf screen.Buffer
	defer func() {
		if buf != nil {
			buf.Release()
		}
	}()
	present := func() {
		if buf == nil || buf.Size() != e.window {
			if buf != nil {
				buf.Release()
			}
			buf, err = s.NewBuffer(e.window)
			if err != nil {
				log.Printf("new buffer: %v", err)
				buf = nil
				return
			}
		}
		e.Draw(buf.RGBA())
		w.Upload(image.Point{}, buf, buf.Bounds())
		w.Publish()
	}

	for !e.Done() {
		switch ev := w.NextEvent().(type) {
		case lifecycle.Event:
			if ev.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			e.Resize(image.Pt(ev.WidthPx, ev.HeightPx))
		case paint.Event:
			if !ev.External {
				break
			}
			e.dirty = true
		case mouse.Event:
			if in, ok := FromMouse(ev); ok {
				e.Handle(in)
			}
		case key.Event:
			if in, ok := FromKey(ev); ok {
				e.Handle(in)
			}
		case tickEvent:
			e.Tick()
			if e.Dirty() {
				present()
			}
		case error:
			log.Print(ev)
		}
	}
}

// startTicker calls send fps times a second until the returned stop
// function is called. stop waits for the ticker goroutine to exit.
func startTicker(fps int, send func()) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(time.Second / time.Duration(fps))
		defer t.Stop()
		for {
			select {
			case <-t.C:
				send()
			case <-done:
				return
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}

// FromMouse converts a shiny mouse event. Wheel buttons become scroll
// inputs; unknown buttons are dropped.
func FromMouse(ev mouse.Event) (Input, bool) {
	in := Input{Pos: viewport.Vec{X: float64(ev.X), Y: float64(ev.Y)}, Modifiers: ev.Modifiers}
	switch ev.Button {
	case mouse.ButtonWheelUp, mouse.ButtonWheelDown:
		if ev.Direction == mouse.DirRelease {
			return Input{}, false
		}
		in.Kind = KindScroll
		in.Scroll = 1
		if ev.Button == mouse.ButtonWheelDown {
			in.Scroll = -1
		}
		return in, true
	case mouse.ButtonLeft:
		in.Button = ButtonPrimary
	case mouse.ButtonRight:
		in.Button = ButtonSecondary
	case mouse.ButtonMiddle:
		in.Button = ButtonMiddle
	case mouse.ButtonNone:
	default:
		return Input{}, false
	}
	switch ev.Direction {
	case mouse.DirPress:
		in.Kind = KindPress
	case mouse.DirRelease:
		in.Kind = KindRelease
	case mouse.DirNone:
		in.Kind = KindMotion
	default:
		return Input{}, false
	}
	if in.Kind != KindMotion && in.Button == ButtonNone {
		return Input{}, false
	}
	return in, true
}

// FromKey converts a shiny key press. Releases are dropped; auto-repeat is
// flagged so only repeatable actions fire while a key is held.
func FromKey(ev key.Event) (Input, bool) {
	if ev.Direction == key.DirRelease {
		return Input{}, false
	}
	return Input{
		Kind:      KindKey,
		Key:       Shortcut(ev.Rune, ev.Code, ev.Modifiers),
		Modifiers: ev.Modifiers,
		Repeat:    ev.Direction == key.DirNone,
	}, true
}

package editor

import (
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/maskedit/internal/viewport"
)

func TestResolvePointer(t *testing.T) {
	pos := viewport.Vec{X: 3, Y: 4}
	cases := []struct {
		name string
		in   Input
		g    Gesture
		want Action
	}{
		{"paint", Input{Kind: KindPress, Button: ButtonPrimary}, GestureNone, ActionPaintBegin},
		{"erase", Input{Kind: KindPress, Button: ButtonSecondary}, GestureNone, ActionEraseBegin},
		{"middle pans", Input{Kind: KindPress, Button: ButtonMiddle}, GestureNone, ActionPanBegin},
		{"alt pans", Input{Kind: KindPress, Button: ButtonPrimary, Modifiers: key.ModAlt}, GestureNone, ActionPanBegin},
		{"press during stroke", Input{Kind: KindPress, Button: ButtonSecondary}, GesturePaint, ActionNone},
		{"drag paints", Input{Kind: KindMotion}, GesturePaint, ActionStrokeExtend},
		{"drag erases", Input{Kind: KindMotion}, GestureErase, ActionStrokeExtend},
		{"drag pans", Input{Kind: KindMotion}, GesturePan, ActionPanMove},
		{"hover", Input{Kind: KindMotion}, GestureNone, ActionHover},
		{"paint release", Input{Kind: KindRelease, Button: ButtonPrimary}, GesturePaint, ActionStrokeEnd},
		{"erase release", Input{Kind: KindRelease, Button: ButtonSecondary}, GestureErase, ActionStrokeEnd},
		{"other release", Input{Kind: KindRelease, Button: ButtonSecondary}, GesturePaint, ActionNone},
		{"pan release", Input{Kind: KindRelease, Button: ButtonMiddle}, GesturePan, ActionPanEnd},
		{"alt pan release", Input{Kind: KindRelease, Button: ButtonPrimary}, GesturePan, ActionPanEnd},
		{"wheel up", Input{Kind: KindScroll, Scroll: 1}, GestureNone, ActionZoomIn},
		{"wheel down", Input{Kind: KindScroll, Scroll: -1}, GestureNone, ActionZoomOut},
		{"shift wheel up", Input{Kind: KindScroll, Scroll: 1, Modifiers: key.ModShift}, GestureNone, ActionBrushGrow},
		{"shift wheel down", Input{Kind: KindScroll, Scroll: -1, Modifiers: key.ModShift}, GestureNone, ActionBrushShrink},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.in.Pos = pos
			got := Resolve(c.in, c.g)
			if got.Action != c.want {
				t.Fatalf("got %v, want %v", got.Action, c.want)
			}
			if got.Pos != pos {
				t.Fatalf("pos %v, want %v", got.Pos, pos)
			}
		})
	}
}

func TestResolveKeys(t *testing.T) {
	cases := []struct {
		r    rune
		code key.Code
		mods key.Modifiers
		want Action
	}{
		{'z', key.CodeZ, key.ModControl, ActionUndo},
		{'y', key.CodeY, key.ModControl, ActionRedo},
		{'Z', key.CodeZ, key.ModControl | key.ModShift, ActionRedo},
		{0x1a, key.CodeZ, key.ModControl, ActionUndo},
		{'c', key.CodeC, key.ModControl, ActionCopy},
		{'C', key.CodeC, key.ModControl | key.ModShift, ActionCopyPath},
		{'s', key.CodeS, 0, ActionSave},
		{'f', key.CodeF, 0, ActionFit},
		{'q', key.CodeQ, 0, ActionQuit},
		{-1, key.CodeEscape, 0, ActionQuit},
		{-1, key.CodeRightArrow, 0, ActionNext},
		{-1, key.CodeLeftArrow, 0, ActionPrevious},
		{'+', key.CodeEqualSign, key.ModShift, ActionZoomIn},
		{'-', key.CodeHyphenMinus, 0, ActionZoomOut},
		{'z', key.CodeZ, 0, ActionNone},
	}
	for _, c := range cases {
		in := Input{Kind: KindKey, Key: Shortcut(c.r, c.code, c.mods)}
		if got := Resolve(in, GestureNone).Action; got != c.want {
			t.Errorf("key %q/%v mods %v: got %v, want %v", c.r, c.code, c.mods, got, c.want)
		}
	}
}

func TestCustomKeymap(t *testing.T) {
	k := Keymap{}
	k.register(ActionSave, KeyShortcut{Rune: 'w'})
	in := Input{Kind: KindKey, Key: Shortcut('w', key.CodeW, 0)}
	if got := k.Resolve(in, GestureNone).Action; got != ActionSave {
		t.Fatalf("got %v", got)
	}
	in.Key = Shortcut('s', key.CodeS, 0)
	if got := k.Resolve(in, GestureNone).Action; got != ActionNone {
		t.Fatalf("unbound key resolved to %v", got)
	}
}

func TestFromMouse(t *testing.T) {
	in, ok := FromMouse(mouse.Event{X: 10, Y: 20, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if !ok || in.Kind != KindPress || in.Button != ButtonPrimary || in.Pos != (viewport.Vec{X: 10, Y: 20}) {
		t.Fatalf("press %+v ok=%v", in, ok)
	}
	in, ok = FromMouse(mouse.Event{Button: mouse.ButtonRight, Direction: mouse.DirRelease})
	if !ok || in.Kind != KindRelease || in.Button != ButtonSecondary {
		t.Fatalf("release %+v ok=%v", in, ok)
	}
	in, ok = FromMouse(mouse.Event{Direction: mouse.DirNone})
	if !ok || in.Kind != KindMotion {
		t.Fatalf("motion %+v ok=%v", in, ok)
	}
	in, ok = FromMouse(mouse.Event{Button: mouse.ButtonWheelDown, Direction: mouse.DirStep, Modifiers: key.ModShift})
	if !ok || in.Kind != KindScroll || in.Scroll != -1 || in.Modifiers != key.ModShift {
		t.Fatalf("wheel %+v ok=%v", in, ok)
	}
	if _, ok := FromMouse(mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirRelease}); ok {
		t.Fatal("wheel release should be dropped")
	}
	if _, ok := FromMouse(mouse.Event{Button: mouse.ButtonNone, Direction: mouse.DirPress}); ok {
		t.Fatal("press without button should be dropped")
	}
}

func TestFromKey(t *testing.T) {
	if _, ok := FromKey(key.Event{Rune: 's', Code: key.CodeS, Direction: key.DirRelease}); ok {
		t.Fatal("release should be dropped")
	}
	in, ok := FromKey(key.Event{Rune: 'S', Code: key.CodeS, Direction: key.DirPress, Modifiers: key.ModControl})
	if !ok {
		t.Fatal("press dropped")
	}
	if in.Key != (KeyShortcut{Rune: 's', Modifiers: key.ModControl}) || in.Repeat {
		t.Fatalf("shortcut %+v repeat %v", in.Key, in.Repeat)
	}
	in, ok = FromKey(key.Event{Rune: 's', Code: key.CodeS, Direction: key.DirNone})
	if !ok || !in.Repeat {
		t.Fatalf("auto-repeat %+v ok %v", in, ok)
	}
}

func TestResolveKeyRepeat(t *testing.T) {
	cases := []struct {
		r    rune
		code key.Code
		mods key.Modifiers
		want Action
	}{
		{'s', key.CodeS, 0, ActionNone},
		{'c', key.CodeC, key.ModControl, ActionNone},
		{'q', key.CodeQ, 0, ActionNone},
		{'f', key.CodeF, 0, ActionNone},
		{-1, key.CodeRightArrow, 0, ActionNext},
		{-1, key.CodeLeftArrow, 0, ActionPrevious},
		{'z', key.CodeZ, key.ModControl, ActionUndo},
		{']', key.CodeRightSquareBracket, 0, ActionBrushGrow},
		{'-', key.CodeHyphenMinus, 0, ActionZoomOut},
	}
	for _, c := range cases {
		in := Input{Kind: KindKey, Key: Shortcut(c.r, c.code, c.mods), Repeat: true}
		if got := Resolve(in, GestureNone).Action; got != c.want {
			t.Errorf("repeat %q/%v: got %v, want %v", c.r, c.code, got, c.want)
		}
	}
}

package editor

import (
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/maskedit/internal/viewport"
)

// Kind classifies an input event.
type Kind int

const (
	KindMotion Kind = iota
	KindPress
	KindRelease
	KindScroll
	KindKey
)

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// Input is a window-system independent event.
type Input struct {
	Kind   Kind
	Button Button
	Pos    viewport.Vec
	// Scroll is positive for wheel-up and negative for wheel-down.
	Scroll    int
	Key       KeyShortcut
	Modifiers key.Modifiers
	// Repeat marks a key auto-repeat.
	Repeat bool
}

// Gesture is the pointer gesture in progress.
type Gesture int

const (
	GestureNone Gesture = iota
	GesturePaint
	GestureErase
	GesturePan
)

// Action is what the editor should do in response to an input.
type Action int

const (
	ActionNone Action = iota
	ActionHover
	ActionPaintBegin
	ActionEraseBegin
	ActionStrokeExtend
	ActionStrokeEnd
	ActionPanBegin
	ActionPanMove
	ActionPanEnd
	ActionZoomIn
	ActionZoomOut
	ActionBrushGrow
	ActionBrushShrink
	ActionUndo
	ActionRedo
	ActionSave
	ActionNext
	ActionPrevious
	ActionFit
	ActionCopy
	ActionCopyPath
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:         "none",
	ActionHover:        "hover",
	ActionPaintBegin:   "paint",
	ActionEraseBegin:   "erase",
	ActionStrokeExtend: "stroke",
	ActionStrokeEnd:    "stroke-end",
	ActionPanBegin:     "pan",
	ActionPanMove:      "pan-move",
	ActionPanEnd:       "pan-end",
	ActionZoomIn:       "zoom-in",
	ActionZoomOut:      "zoom-out",
	ActionBrushGrow:    "brush-grow",
	ActionBrushShrink:  "brush-shrink",
	ActionUndo:         "undo",
	ActionRedo:         "redo",
	ActionSave:         "save",
	ActionNext:         "next",
	ActionPrevious:     "previous",
	ActionFit:          "fit",
	ActionCopy:         "copy",
	ActionCopyPath:     "copy-path",
	ActionQuit:         "quit",
}

// Repeatable reports whether a held key may fire the action again.
// Saving, copying and quitting fire once per press.
func (a Action) Repeatable() bool {
	switch a {
	case ActionNext, ActionPrevious, ActionZoomIn, ActionZoomOut,
		ActionBrushGrow, ActionBrushShrink, ActionUndo, ActionRedo:
		return true
	}
	return false
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// Command is a resolved Action with the pointer position it applies to.
type Command struct {
	Action Action
	Pos    viewport.Vec
}

// KeyShortcut describes a keyboard combination that triggers an action.
// Printable keys are matched by Rune, others by Code.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

const modMask = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

// Shortcut normalises a key press into the form stored in a Keymap.
func Shortcut(r rune, code key.Code, mods key.Modifiers) KeyShortcut {
	mods &= modMask
	if r > ' ' && unicode.IsPrint(r) {
		if !unicode.IsLetter(r) {
			// Shift is already reflected in the rune, as with '+'.
			mods &^= key.ModShift
		}
		return KeyShortcut{Rune: unicode.ToLower(r), Modifiers: mods}
	}
	return KeyShortcut{Code: code, Modifiers: mods}
}

// Keymap binds shortcuts to actions.
type Keymap map[KeyShortcut]Action

func (k Keymap) register(a Action, keys ...KeyShortcut) {
	for _, sc := range keys {
		k[sc] = a
	}
}

// DefaultKeymap returns the standard bindings.
func DefaultKeymap() Keymap {
	k := Keymap{}
	ctrl := key.ModControl
	k.register(ActionUndo,
		KeyShortcut{Rune: 'z', Modifiers: ctrl},
		KeyShortcut{Code: key.CodeZ, Modifiers: ctrl})
	k.register(ActionRedo,
		KeyShortcut{Rune: 'y', Modifiers: ctrl},
		KeyShortcut{Code: key.CodeY, Modifiers: ctrl},
		KeyShortcut{Rune: 'z', Modifiers: ctrl | key.ModShift},
		KeyShortcut{Code: key.CodeZ, Modifiers: ctrl | key.ModShift})
	k.register(ActionCopy,
		KeyShortcut{Rune: 'c', Modifiers: ctrl},
		KeyShortcut{Code: key.CodeC, Modifiers: ctrl})
	k.register(ActionCopyPath,
		KeyShortcut{Rune: 'c', Modifiers: ctrl | key.ModShift},
		KeyShortcut{Code: key.CodeC, Modifiers: ctrl | key.ModShift})
	k.register(ActionSave, KeyShortcut{Rune: 's'})
	k.register(ActionFit, KeyShortcut{Rune: 'f'})
	k.register(ActionNext, KeyShortcut{Code: key.CodeRightArrow})
	k.register(ActionPrevious, KeyShortcut{Code: key.CodeLeftArrow})
	k.register(ActionQuit, KeyShortcut{Rune: 'q'}, KeyShortcut{Code: key.CodeEscape})
	k.register(ActionZoomIn, KeyShortcut{Rune: '+'}, KeyShortcut{Rune: '='})
	k.register(ActionZoomOut, KeyShortcut{Rune: '-'})
	k.register(ActionBrushGrow, KeyShortcut{Rune: ']'})
	k.register(ActionBrushShrink, KeyShortcut{Rune: '['})
	return k
}

var defaultKeymap = DefaultKeymap()

// Resolve maps an input to a command using the default bindings.
func Resolve(in Input, g Gesture) Command { return defaultKeymap.Resolve(in, g) }

// Resolve maps an input to a command given the gesture in progress. It has
// no side effects.
func (k Keymap) Resolve(in Input, g Gesture) Command {
	cmd := Command{Pos: in.Pos}
	switch in.Kind {
	case KindKey:
		cmd.Action = k[in.Key]
		if in.Repeat && !cmd.Action.Repeatable() {
			cmd.Action = ActionNone
		}
	case KindPress:
		if g != GestureNone {
			break
		}
		switch {
		case in.Button == ButtonMiddle,
			in.Button == ButtonPrimary && in.Modifiers&key.ModAlt != 0:
			cmd.Action = ActionPanBegin
		case in.Button == ButtonPrimary:
			cmd.Action = ActionPaintBegin
		case in.Button == ButtonSecondary:
			cmd.Action = ActionEraseBegin
		}
	case KindRelease:
		switch {
		case g == GesturePaint && in.Button == ButtonPrimary,
			g == GestureErase && in.Button == ButtonSecondary:
			cmd.Action = ActionStrokeEnd
		case g == GesturePan && (in.Button == ButtonMiddle || in.Button == ButtonPrimary):
			cmd.Action = ActionPanEnd
		}
	case KindMotion:
		switch g {
		case GesturePaint, GestureErase:
			cmd.Action = ActionStrokeExtend
		case GesturePan:
			cmd.Action = ActionPanMove
		default:
			cmd.Action = ActionHover
		}
	case KindScroll:
		shift := in.Modifiers&key.ModShift != 0
		switch {
		case in.Scroll > 0 && shift:
			cmd.Action = ActionBrushGrow
		case in.Scroll < 0 && shift:
			cmd.Action = ActionBrushShrink
		case in.Scroll > 0:
			cmd.Action = ActionZoomIn
		case in.Scroll < 0:
			cmd.Action = ActionZoomOut
		}
	}
	return cmd
}

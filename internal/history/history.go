// Package history keeps bounded undo and redo stacks of mask snapshots.
package history

import "github.com/example/maskedit/internal/mask"

// DefaultLimit is the number of snapshots kept on each stack.
const DefaultLimit = 30

// History stores deep copies of the mask buffer. Pushing a snapshot clears
// the redo stack; undo and redo move the current buffer onto the opposite
// stack.
type History struct {
	limit int
	undo  []*mask.Buffer
	redo  []*mask.Buffer
}

// New returns an empty history holding at most limit entries per stack.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Limit returns the per-stack capacity.
func (h *History) Limit() int { return h.limit }

// Snapshot records a copy of cur as the state to return to, dropping the
// oldest entry when full.
func (h *History) Snapshot(cur *mask.Buffer) {
	h.undo = push(h.undo, cur.Clone(), h.limit)
	h.redo = nil
}

// Undo returns the previous state, saving cur for Redo. With nothing to
// undo it returns cur unchanged.
func (h *History) Undo(cur *mask.Buffer) *mask.Buffer {
	if len(h.undo) == 0 {
		return cur
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = push(h.redo, cur, h.limit)
	return prev
}

// Redo reapplies the most recently undone state.
func (h *History) Redo(cur *mask.Buffer) *mask.Buffer {
	if len(h.redo) == 0 {
		return cur
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = push(h.undo, cur, h.limit)
	return next
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// CanUndo reports whether Undo would change the buffer.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would change the buffer.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) { return len(h.undo), len(h.redo) }

func push(stack []*mask.Buffer, b *mask.Buffer, limit int) []*mask.Buffer {
	stack = append(stack, b)
	if over := len(stack) - limit; over > 0 {
		copy(stack, stack[over:])
		for i := len(stack) - over; i < len(stack); i++ {
			stack[i] = nil
		}
		stack = stack[:len(stack)-over]
	}
	return stack
}

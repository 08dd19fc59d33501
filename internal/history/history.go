// Package history provides a bounded undo/redo journal of label collection
// snapshots.
package history

import "yolo-labeler/internal/label"

// MaxUndo bounds the undo stack. The oldest snapshot is evicted first once
// the stack is full.
const MaxUndo = 20

// History journals one collection. Every committed mutation calls Snapshot
// exactly once, before the mutation is applied.
type History struct {
	target *label.Collection
	undo   [][]label.Box
	redo   [][]label.Box
}

// New creates a history journaling the given collection.
func New(target *label.Collection) *History {
	return &History{target: target}
}

// Snapshot pushes a deep copy of the current collection state onto the undo
// stack, evicting the oldest entry beyond MaxUndo, and clears the redo stack.
func (h *History) Snapshot() {
	h.Push(h.target.Snapshot())
}

// Push records a snapshot taken by the caller. Gestures that mutate
// incrementally (drag, resize) capture their pre-gesture state at pointer
// down and push it on release, so one gesture costs one undo step.
func (h *History) Push(snapshot []label.Box) {
	h.undo = append(h.undo, snapshot)
	if len(h.undo) > MaxUndo {
		h.undo = h.undo[len(h.undo)-MaxUndo:]
	}
	h.redo = nil
}

// Undo restores the most recent snapshot, pushing the current state onto the
// redo stack first. It is a no-op when the undo stack is empty.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	h.redo = append(h.redo, h.target.Snapshot())
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.target.Restore(last)
	return true
}

// Redo reverses the most recent Undo. It is a no-op when the redo stack is
// empty.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	h.undo = append(h.undo, h.target.Snapshot())
	if len(h.undo) > MaxUndo {
		h.undo = h.undo[len(h.undo)-MaxUndo:]
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.target.Restore(last)
	return true
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

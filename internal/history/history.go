// Package history records checkpoints of editable state for undo and redo.
package history

import "errors"

var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// Stack is a linear undo history of snapshots. The current state is the
// snapshot at the cursor; recording after an undo discards the redo tail.
type Stack[T comparable] struct {
	states []T
	cursor int
	limit  int
}

// NewStack starts a history at initial. A positive limit bounds the number
// of snapshots kept; the oldest are dropped first.
func NewStack[T comparable](initial T, limit int) *Stack[T] {
	return &Stack[T]{states: []T{initial}, limit: limit}
}

// Record pushes s unless it equals the current snapshot. It reports
// whether a checkpoint was added.
func (h *Stack[T]) Record(s T) bool {
	if h.states[h.cursor] == s {
		return false
	}
	h.states = append(h.states[:h.cursor+1], s)
	h.cursor++
	if h.limit > 0 && len(h.states) > h.limit {
		drop := len(h.states) - h.limit
		h.states = append(h.states[:0], h.states[drop:]...)
		h.cursor -= drop
	}
	return true
}

func (h *Stack[T]) Current() T { return h.states[h.cursor] }

func (h *Stack[T]) CanUndo() bool { return h.cursor > 0 }

func (h *Stack[T]) CanRedo() bool { return h.cursor < len(h.states)-1 }

// Undo moves back one checkpoint and returns the snapshot to restore.
func (h *Stack[T]) Undo() (T, error) {
	if !h.CanUndo() {
		var zero T
		return zero, ErrNothingToUndo
	}
	h.cursor--
	return h.states[h.cursor], nil
}

// Redo moves forward one checkpoint and returns the snapshot to restore.
func (h *Stack[T]) Redo() (T, error) {
	if !h.CanRedo() {
		var zero T
		return zero, ErrNothingToRedo
	}
	h.cursor++
	return h.states[h.cursor], nil
}

// Len returns the number of snapshots held, including the current one.
func (h *Stack[T]) Len() int { return len(h.states) }

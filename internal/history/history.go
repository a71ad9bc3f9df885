// Package history implements a linear undo/redo stack of full scene
// snapshots.
package history

// DefaultLimit caps the number of retained snapshots.
const DefaultLimit = 50

// Stack is a bounded linear history. Snapshots are opaque to the stack;
// sessions push deep copies and restore whatever comes back, so a
// restored snapshot fully replaces the live scene.
type Stack[S any] struct {
	entries []S
	index   int
	limit   int
}

// NewStack creates a history stack seeded with the initial snapshot.
// A limit of 0 or below uses DefaultLimit.
func NewStack[S any](initial S, limit int) *Stack[S] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack[S]{entries: []S{initial}, limit: limit}
}

// Push records a snapshot taken after a completed mutation. Any redo
// branch beyond the current position is discarded; when the limit is
// reached the oldest snapshot is dropped.
func (s *Stack[S]) Push(snapshot S) {
	s.entries = append(s.entries[:s.index+1], snapshot)
	if len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}
	s.index = len(s.entries) - 1
}

// Undo steps back one snapshot. Returns ok=false at the oldest entry.
func (s *Stack[S]) Undo() (snapshot S, ok bool) {
	if s.index <= 0 {
		var zero S
		return zero, false
	}
	s.index--
	return s.entries[s.index], true
}

// Redo steps forward one snapshot. Returns ok=false at the newest entry.
func (s *Stack[S]) Redo() (snapshot S, ok bool) {
	if s.index >= len(s.entries)-1 {
		var zero S
		return zero, false
	}
	s.index++
	return s.entries[s.index], true
}

// CanUndo reports whether an older snapshot exists.
func (s *Stack[S]) CanUndo() bool {
	return s.index > 0
}

// CanRedo reports whether a newer snapshot exists.
func (s *Stack[S]) CanRedo() bool {
	return s.index < len(s.entries)-1
}

// Len returns the number of retained snapshots.
func (s *Stack[S]) Len() int {
	return len(s.entries)
}

// Index returns the current position within the stack.
func (s *Stack[S]) Index() int {
	return s.index
}

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndoRedo(t *testing.T) {
	s := NewStack(0, DefaultLimit)
	s.Push(1)
	s.Push(2)

	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	v, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = s.Undo()
	require.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = s.Undo()
	assert.False(t, ok)

	v, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestPushTruncatesRedoBranch(t *testing.T) {
	s := NewStack(0, DefaultLimit)
	s.Push(1)
	s.Push(2)

	_, ok := s.Undo()
	require.True(t, ok)
	require.True(t, s.CanRedo())

	s.Push(9)
	assert.False(t, s.CanRedo())

	v, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestLimitDropsOldest(t *testing.T) {
	s := NewStack(0, 3)
	s.Push(1)
	s.Push(2)
	s.Push(3) // snapshot 0 falls off

	assert.Equal(t, 3, s.Len())

	v, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = s.Undo()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = s.Undo()
	assert.False(t, ok)
}

func TestRedoAtTip(t *testing.T) {
	s := NewStack("a", DefaultLimit)
	_, ok := s.Redo()
	assert.False(t, ok)
}

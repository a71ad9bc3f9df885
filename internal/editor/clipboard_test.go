package editor

import (
	"testing"

	"github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"print-studio/internal/scene"
)

func requireClipboard(t *testing.T) {
	t.Helper()
	if err := clipboard.WriteAll("probe"); err != nil {
		t.Skipf("system clipboard unavailable: %v", err)
	}
}

func TestCopyPasteRoundTrip(t *testing.T) {
	requireClipboard(t)

	s := NewTemplateSession(nil)
	s.ActivateTool(TemplateToolText)
	el := s.Scene.Elements[0]
	require.True(t, s.UpdateElement(el.ID, func(e *scene.Element) {
		e.Text.Content = "Copied"
	}))

	require.NoError(t, s.CopySelected())
	require.NoError(t, s.Paste())

	require.Len(t, s.Scene.Elements, 2)
	pasted := s.Scene.Elements[1]
	assert.NotEqual(t, el.ID, pasted.ID)
	assert.Equal(t, "Copied", pasted.Text.Content)
	assert.Equal(t, el.X+scene.DuplicateOffset, pasted.X)
	assert.Equal(t, el.Y+scene.DuplicateOffset, pasted.Y)
	assert.Equal(t, []string{pasted.ID}, s.Scene.SelectedIDs())
}

func TestPasteIgnoresForeignContent(t *testing.T) {
	requireClipboard(t)

	require.NoError(t, clipboard.WriteAll("just some text"))

	s := NewTemplateSession(nil)
	require.NoError(t, s.Paste())
	assert.Empty(t, s.Scene.Elements)

	require.NoError(t, clipboard.WriteAll(`{"kind":"other/app","elements":[]}`))
	require.NoError(t, s.Paste())
	assert.Empty(t, s.Scene.Elements)
}

func TestCopyEmptySelectionIsNoOp(t *testing.T) {
	s := NewTemplateSession(nil)
	s.Scene.ClearSelection()
	assert.NoError(t, s.CopySelected())
}

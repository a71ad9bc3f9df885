package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"print-studio/internal/scene"
)

func TestModifiedReflectsSessionDirty(t *testing.T) {
	st := NewState()
	assert.False(t, st.Modified())

	st.Template.Scene.AddElement(scene.NewTextElement())
	assert.True(t, st.Modified())

	st.Template.ClearDirty()
	assert.False(t, st.Modified())

	st.Areas.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, X: 10, Y: 10, Width: 50, Height: 50})
	assert.True(t, st.Modified())
}

func TestSavingIdleByDefault(t *testing.T) {
	st := NewState()
	assert.False(t, st.Saving())
}

func TestNewDocumentsStartClean(t *testing.T) {
	st := NewState()
	st.Template.Scene.AddElement(scene.NewTextElement())
	st.Areas.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, X: 10, Y: 10, Width: 50, Height: 50})

	st.NewTemplateDocument()
	st.NewAreaDocument()
	assert.False(t, st.Modified())
	assert.Empty(t, st.Template.Scene.Elements)
	assert.Empty(t, st.Areas.Scene.Areas)
}

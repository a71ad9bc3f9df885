package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"print-studio/internal/persist"
	"print-studio/internal/scene"
)

func TestRenderAreaPaintsInZOrder(t *testing.T) {
	dir := t.TempDir()
	doc := persist.NewAreaDocument("order")
	// Topmost area listed first to prove paint order follows zIndex,
	// not slice order.
	doc.Areas = []*scene.PrintArea{
		{ID: "top", Shape: scene.ShapeRectangle, X: 50, Y: 50, Width: 100, Height: 100,
			Color: "#00FF00", Opacity: 1, ZIndex: 2, IsActive: true},
		{ID: "bottom", Shape: scene.ShapeRectangle, X: 0, Y: 0, Width: 200, Height: 200,
			Color: "#FF0000", Opacity: 1, ZIndex: 1, IsActive: true},
	}

	docPath := filepath.Join(dir, "order.psarea")
	require.NoError(t, doc.Save(docPath))

	outPath := filepath.Join(dir, "order.png")
	require.NoError(t, renderArea(docPath, "", outPath, 300, 300, 1.0))

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)

	r, g, _, _ := img.At(100, 100).RGBA()
	assert.Greater(t, g>>8, r>>8, "higher zIndex area must paint over the lower one")

	r, g, _, _ = img.At(20, 20).RGBA()
	assert.Greater(t, r>>8, g>>8, "area outside the overlap keeps its own color")
}

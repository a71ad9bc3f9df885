package export

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"print-studio/internal/scene"
)

func TestTemplatePNGWritesCanvas(t *testing.T) {
	shape := scene.NewShapeElement("rectangle")
	shape.X, shape.Y = 10, 10
	shape.Width, shape.Height = 40, 40
	shape.Shape.FillColor = "#FF0000"

	path := filepath.Join(t.TempDir(), "out.png")
	err := TemplatePNG(path, []*scene.Element{shape}, Options{
		CanvasWidth:  120,
		CanvasHeight: 80,
	})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())

	r, _, b, _ := img.At(30, 30).RGBA()
	assert.Greater(t, r>>8, b>>8, "shape interior should be red")

	r, g, b, _ := img.At(100, 70).RGBA()
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}, "background stays white")
}

func TestTemplatePNGScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scaled.png")
	err := TemplatePNG(path, nil, Options{CanvasWidth: 50, CanvasHeight: 30, Scale: 2})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
}

func TestTemplatePNGSkipsHidden(t *testing.T) {
	shape := scene.NewShapeElement("rectangle")
	shape.X, shape.Y = 0, 0
	shape.Width, shape.Height = 50, 50
	shape.Shape.FillColor = "#0000FF"
	shape.IsVisible = false

	path := filepath.Join(t.TempDir(), "hidden.png")
	require.NoError(t, TemplatePNG(path, []*scene.Element{shape}, Options{CanvasWidth: 50, CanvasHeight: 50}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	_, _, b, _ := img.At(25, 25).RGBA()
	assert.Equal(t, uint32(255), b>>8, "hidden element must not paint")
}

func TestTemplatePNGInvalidCanvas(t *testing.T) {
	err := TemplatePNG(filepath.Join(t.TempDir(), "bad.png"), nil, Options{})
	assert.Error(t, err)
}

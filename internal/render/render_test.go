package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/image/font/gofont/goregular"

	"print-studio/internal/measure"
	"print-studio/internal/scene"
	"print-studio/pkg/geometry"
)

func testViewport() *measure.Viewport {
	return measure.NewViewport(0.1, 5.0)
}

func pixelAt(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func TestPaintAreaFrameEmpty(t *testing.T) {
	out := PaintAreaFrame(AreaFrame{Width: 100, Height: 80, Viewport: testViewport()})
	require.Equal(t, 100, out.Bounds().Dx())
	require.Equal(t, 80, out.Bounds().Dy())

	// Uniform background fill.
	assert.Equal(t, uint8(245), pixelAt(out, 0, 0).R)
	assert.Equal(t, pixelAt(out, 0, 0), pixelAt(out, 99, 79))
}

func TestPaintAreaFrameDrawsArea(t *testing.T) {
	frame := AreaFrame{
		Width: 200, Height: 200, Viewport: testViewport(),
		Areas: []*scene.PrintArea{{
			ID: "a", Shape: scene.ShapeRectangle,
			X: 50, Y: 50, Width: 100, Height: 100,
			Color: "#3B82F6", Opacity: 0.3, IsActive: true,
		}},
	}
	out := PaintAreaFrame(frame)

	inside := pixelAt(out, 100, 100)
	outside := pixelAt(out, 10, 10)
	assert.NotEqual(t, outside, inside)
	// The blue overlay shifts the blue channel up.
	assert.Greater(t, inside.B, inside.R)
}

func TestPaintAreaFrameSkipsInactive(t *testing.T) {
	frame := AreaFrame{
		Width: 200, Height: 200, Viewport: testViewport(),
		Areas: []*scene.PrintArea{{
			ID: "a", Shape: scene.ShapeRectangle,
			X: 50, Y: 50, Width: 100, Height: 100,
			Color: "#3B82F6", Opacity: 0.3,
		}},
	}
	out := PaintAreaFrame(frame)
	assert.Equal(t, pixelAt(out, 10, 10), pixelAt(out, 100, 100))
}

func TestPaintAreaFrameSelectionHandles(t *testing.T) {
	area := &scene.PrintArea{
		ID: "a", Shape: scene.ShapeRectangle,
		X: 50, Y: 50, Width: 100, Height: 100,
		Color: "#3B82F6", Opacity: 0.3, IsActive: true,
	}
	frame := AreaFrame{
		Width: 200, Height: 200, Viewport: testViewport(),
		Areas: []*scene.PrintArea{area}, SelectedID: "a",
	}
	out := PaintAreaFrame(frame)

	// Corner handle is a white square.
	assert.Equal(t, uint8(255), pixelAt(out, 50, 50).R)
	assert.Equal(t, uint8(255), pixelAt(out, 50, 50).G)
	assert.Equal(t, uint8(255), pixelAt(out, 50, 50).B)
}

func TestPaintAreaFrameZoomScalesGeometry(t *testing.T) {
	area := &scene.PrintArea{
		ID: "a", Shape: scene.ShapeRectangle,
		X: 40, Y: 40, Width: 40, Height: 40,
		Color: "#3B82F6", Opacity: 0.5, IsActive: true,
	}
	vp := testViewport()
	vp.SetZoom(2)
	frame := AreaFrame{
		Width: 300, Height: 300, Viewport: vp,
		Areas: []*scene.PrintArea{area},
	}
	out := PaintAreaFrame(frame)

	// Logical (40,40) maps to screen (80,80) at zoom 2.
	assert.NotEqual(t, pixelAt(out, 20, 20), pixelAt(out, 120, 120))
	assert.Greater(t, pixelAt(out, 120, 120).B, pixelAt(out, 120, 120).R)
}

func TestPaintAreaFrameMeasurementLine(t *testing.T) {
	frame := AreaFrame{
		Width: 200, Height: 200, Viewport: testViewport(),
		Lines: []*scene.MeasurementLine{{
			ID:           "m",
			Start:        geometry.NewPoint2D(20, 100),
			End:          geometry.NewPoint2D(180, 100),
			RealDistance: 10,
			Color:        "#EF4444",
		}},
	}
	out := PaintAreaFrame(frame)

	mid := pixelAt(out, 100, 100)
	assert.Greater(t, mid.R, mid.B)
}

func TestPaintTemplateFrameCanvasAndGrid(t *testing.T) {
	frame := TemplateFrame{
		Width: 400, Height: 300, Viewport: testViewport(),
		Canvas:   geometry.NewSize(200, 150),
		ShowGrid: true, GridSize: 20,
	}
	out := PaintTemplateFrame(frame)

	// Inside the canvas is white, outside is the surround gray.
	assert.Equal(t, uint8(255), pixelAt(out, 10, 10).R)
	assert.NotEqual(t, uint8(255), pixelAt(out, 350, 250).R)

	// Grid line at x=20.
	assert.Equal(t, uint8(224), pixelAt(out, 20, 10).R)
}

func TestPaintTemplateFrameShapeElement(t *testing.T) {
	el := scene.NewShapeElement("")
	el.X, el.Y, el.Width, el.Height = 10, 10, 50, 50

	frame := TemplateFrame{
		Width: 200, Height: 200, Viewport: testViewport(),
		Canvas:   geometry.NewSize(200, 200),
		Elements: []*scene.Element{el},
	}
	out := PaintTemplateFrame(frame)

	inside := pixelAt(out, 30, 30)
	assert.Greater(t, inside.B, inside.R)
}

func TestPaintTemplateFrameSkipsHidden(t *testing.T) {
	el := scene.NewShapeElement("")
	el.X, el.Y, el.Width, el.Height = 10, 10, 50, 50
	el.IsVisible = false

	frame := TemplateFrame{
		Width: 200, Height: 200, Viewport: testViewport(),
		Canvas:   geometry.NewSize(200, 200),
		Elements: []*scene.Element{el},
	}
	out := PaintTemplateFrame(frame)
	assert.Equal(t, uint8(255), pixelAt(out, 30, 30).R)
}

func TestPaintTemplateFramePlaceholderForPendingImage(t *testing.T) {
	el := scene.NewImageElement()
	el.X, el.Y, el.Width, el.Height = 10, 10, 50, 50

	frame := TemplateFrame{
		Width: 200, Height: 200, Viewport: testViewport(),
		Canvas:   geometry.NewSize(200, 200),
		Elements: []*scene.Element{el},
	}
	out := PaintTemplateFrame(frame)

	inside := pixelAt(out, 30, 30)
	assert.Equal(t, uint8(229), inside.R)
	assert.Equal(t, uint8(231), inside.G)
}

func TestTextRendererMeasureAndDraw(t *testing.T) {
	r, err := NewTextRenderer(goregular.TTF)
	require.NoError(t, err)

	w, h := r.Measure("Hello", 24)
	assert.Greater(t, w, 0.0)
	assert.Greater(t, h, 0.0)

	wide, _ := r.Measure("Hello, world", 24)
	assert.Greater(t, wide, w)

	out := image.NewRGBA(image.Rect(0, 0, 200, 50))
	r.DrawString(out, "Hello", 10, 30, 24, color.RGBA{A: 255})

	// Some pixel within the text box was inked.
	inked := false
	for y := 0; y < 50 && !inked; y++ {
		for x := 0; x < 200; x++ {
			c := out.RGBAAt(x, y)
			if c.A != 0 {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked)
}

func TestTextRendererRejectsBadFont(t *testing.T) {
	_, err := NewTextRenderer([]byte("not a font"))
	assert.Error(t, err)
}

func TestPaintTemplateFrameMultiSelectUnionHandles(t *testing.T) {
	bg := scene.NewShapeElement("")
	bg.X, bg.Y, bg.Width, bg.Height = 0, 0, 200, 200
	bg.Shape.FillColor = "#FF0000"

	a := scene.NewShapeElement("")
	a.ID = "a"
	a.X, a.Y, a.Width, a.Height = 20, 20, 30, 30
	b := scene.NewShapeElement("")
	b.ID = "b"
	b.X, b.Y, b.Width, b.Height = 100, 100, 40, 40

	frame := TemplateFrame{
		Width: 200, Height: 200, Viewport: testViewport(),
		Canvas:      geometry.NewSize(200, 200),
		Elements:    []*scene.Element{bg, a, b},
		SelectedIDs: []string{"a", "b"},
	}
	out := PaintTemplateFrame(frame)

	// Handle on the combined bounding box corner, not on each element.
	corner := pixelAt(out, 140, 20)
	assert.Equal(t, uint8(255), corner.R)
	assert.Equal(t, uint8(255), corner.G)

	inner := pixelAt(out, 49, 49)
	assert.Greater(t, inner.B, inner.R)
}

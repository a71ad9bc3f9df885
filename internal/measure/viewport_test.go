package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"print-studio/pkg/geometry"
)

func TestViewportZoomClamped(t *testing.T) {
	v := NewViewport(0.1, 3.0)
	assert.Equal(t, 1.0, v.Zoom())

	v.SetZoom(99)
	assert.Equal(t, 3.0, v.Zoom())

	v.SetZoom(0.001)
	assert.Equal(t, 0.1, v.Zoom())
}

func TestViewportZoomSteps(t *testing.T) {
	v := NewViewport(0.1, 3.0)
	v.ZoomIn()
	assert.InDelta(t, ZoomStep, v.Zoom(), 1e-9)

	v.ZoomOut()
	assert.InDelta(t, 1.0, v.Zoom(), 1e-9)

	// Repeated zoom-in saturates at the upper bound.
	for i := 0; i < 20; i++ {
		v.ZoomIn()
	}
	assert.Equal(t, 3.0, v.Zoom())
}

func TestViewportRoundTrip(t *testing.T) {
	v := NewViewport(0.1, 5.0)
	v.SetZoom(2)
	v.PanBy(30, -10)

	p := geometry.NewPoint2D(17, 42)
	sx, sy := v.ToScreen(p)
	back := v.ToLogical(sx, sy)

	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestViewportToLogical(t *testing.T) {
	v := NewViewport(0.1, 5.0)
	v.SetZoom(2)
	v.PanBy(100, 50)

	p := v.ToLogical(300, 250)
	assert.InDelta(t, 100.0, p.X, 1e-9)
	assert.InDelta(t, 100.0, p.Y, 1e-9)
}

func TestViewportReset(t *testing.T) {
	v := NewViewport(0.1, 5.0)
	v.SetZoom(2.5)
	v.PanBy(40, 40)
	v.Reset()

	assert.Equal(t, 1.0, v.Zoom())
	x, y := v.Pan()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestViewportTransformMatchesMapping(t *testing.T) {
	v := NewViewport(0.1, 3.0)
	v.SetZoom(2)
	v.PanBy(100, 50)

	p := v.Transform().Apply(geometry.NewPoint2D(40, 25))
	x, y := v.ToScreen(geometry.NewPoint2D(40, 25))
	assert.Equal(t, x, p.X)
	assert.Equal(t, y, p.Y)
	assert.Equal(t, 180.0, p.X)
	assert.Equal(t, 100.0, p.Y)
}

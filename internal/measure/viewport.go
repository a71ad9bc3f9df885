package measure

import (
	"print-studio/pkg/geometry"
)

// ZoomStep is the multiplicative step applied by zoom in/out controls.
const ZoomStep = 1.2

// Viewport maps between screen (pointer-event) coordinates and logical
// canvas coordinates. Rendering applies pan then zoom; ToLogical is the
// exact inverse: subtract pan, divide by zoom.
type Viewport struct {
	zoom    float64
	panX    float64
	panY    float64
	minZoom float64
	maxZoom float64
}

// NewViewport creates a viewport at zoom 1 with the given zoom bounds.
// The bounds differ per editor (print-area: 0.1–3, template: 0.1–5) and
// are enforced at the single zoom setter.
func NewViewport(minZoom, maxZoom float64) *Viewport {
	return &Viewport{zoom: 1, minZoom: minZoom, maxZoom: maxZoom}
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 {
	return v.zoom
}

// SetZoom sets the zoom factor, clamped to the viewport's bounds.
func (v *Viewport) SetZoom(zoom float64) {
	v.zoom = geometry.Clamp(zoom, v.minZoom, v.maxZoom)
}

// ZoomIn increases the zoom by one step.
func (v *Viewport) ZoomIn() {
	v.SetZoom(v.zoom * ZoomStep)
}

// ZoomOut decreases the zoom by one step.
func (v *Viewport) ZoomOut() {
	v.SetZoom(v.zoom / ZoomStep)
}

// Pan returns the current pan offset in screen pixels.
func (v *Viewport) Pan() (x, y float64) {
	return v.panX, v.panY
}

// PanBy shifts the pan offset by a raw pointer delta.
func (v *Viewport) PanBy(dx, dy float64) {
	v.panX += dx
	v.panY += dy
}

// Reset restores zoom 1 and zero pan.
func (v *Viewport) Reset() {
	v.zoom = 1
	v.panX = 0
	v.panY = 0
}

// Transform returns the logical-to-screen mapping as a single matrix:
// scale by zoom, then translate by the pan offset.
func (v *Viewport) Transform() geometry.AffineTransform {
	return geometry.Translation(v.panX, v.panY).Compose(geometry.Scale(v.zoom, v.zoom))
}

// ToLogical converts screen coordinates (relative to the canvas origin)
// to logical canvas coordinates.
func (v *Viewport) ToLogical(screenX, screenY float64) geometry.Point2D {
	inv, ok := v.Transform().Inverse()
	if !ok {
		return geometry.Point2D{}
	}
	return inv.Apply(geometry.Point2D{X: screenX, Y: screenY})
}

// ToScreen converts logical canvas coordinates to screen coordinates.
func (v *Viewport) ToScreen(p geometry.Point2D) (screenX, screenY float64) {
	sp := v.Transform().Apply(p)
	return sp.X, sp.Y
}

// Package canvas provides the editor drawing surface with pan, zoom,
// and pointer forwarding.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Session is the interaction state machine behind a canvas. The canvas
// owns no editing state itself; it forwards pointer events and paints
// whatever the session's frame function returns.
type Session interface {
	PointerDown(screenX, screenY float64)
	PointerMove(screenX, screenY float64)
	PointerUp(screenX, screenY float64)
}

// EditorCanvas displays rendered frames and translates Fyne input
// events into session pointer events.
type EditorCanvas struct {
	widget.BaseWidget

	raster  *fynecanvas.Raster
	session Session

	// paint renders a frame at the given pixel size.
	paint func(w, h int) image.Image

	// Wheel zoom callbacks
	onZoomIn  func()
	onZoomOut func()

	dragging bool
	lastX    float32
	lastY    float32
}

// NewEditorCanvas creates a canvas over the given session and frame
// painter.
func NewEditorCanvas(session Session, paint func(w, h int) image.Image) *EditorCanvas {
	ec := &EditorCanvas{
		session: session,
		paint:   paint,
	}
	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.raster.ScaleMode = fynecanvas.ImageScalePixels
	ec.ExtendBaseWidget(ec)
	return ec
}

// SetSession swaps the session behind the canvas, used when a document
// load rebuilds the editing session.
func (ec *EditorCanvas) SetSession(session Session) {
	ec.session = session
	ec.dragging = false
	ec.Refresh()
}

// OnZoom sets the wheel zoom callbacks.
func (ec *EditorCanvas) OnZoom(zoomIn, zoomOut func()) {
	ec.onZoomIn = zoomIn
	ec.onZoomOut = zoomOut
}

func (ec *EditorCanvas) draw(w, h int) image.Image {
	if ec.paint == nil || w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return ec.paint(w, h)
}

// Tapped forwards a click as an immediate press and release.
func (ec *EditorCanvas) Tapped(ev *fyne.PointEvent) {
	if ec.session == nil {
		return
	}

	// Reject clicks outside widget bounds, Fyne can deliver these
	// during window transitions.
	size := ec.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	ec.session.PointerDown(float64(ev.Position.X), float64(ev.Position.Y))
	ec.session.PointerUp(float64(ev.Position.X), float64(ev.Position.Y))
	ec.Refresh()
}

// Dragged synthesizes the press on the first event of a drag, then
// streams moves.
func (ec *EditorCanvas) Dragged(ev *fyne.DragEvent) {
	if ec.session == nil {
		return
	}

	if !ec.dragging {
		ec.dragging = true
		startX := ev.Position.X - ev.Dragged.DX
		startY := ev.Position.Y - ev.Dragged.DY
		ec.session.PointerDown(float64(startX), float64(startY))
	}
	ec.lastX = ev.Position.X
	ec.lastY = ev.Position.Y
	ec.session.PointerMove(float64(ev.Position.X), float64(ev.Position.Y))
	ec.Refresh()
}

// DragEnd completes the gesture at the last seen position.
func (ec *EditorCanvas) DragEnd() {
	if ec.session == nil || !ec.dragging {
		return
	}
	ec.dragging = false
	ec.session.PointerUp(float64(ec.lastX), float64(ec.lastY))
	ec.Refresh()
}

// Scrolled zooms with the mouse wheel.
func (ec *EditorCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 && ec.onZoomIn != nil {
		ec.onZoomIn()
	} else if ev.Scrolled.DY < 0 && ec.onZoomOut != nil {
		ec.onZoomOut()
	}
	ec.Refresh()
}

// Refresh redraws the current frame.
func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
	ec.BaseWidget.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ec.raster)
}

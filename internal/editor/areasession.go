package editor

import (
	"print-studio/internal/history"
	"print-studio/internal/measure"
	"print-studio/internal/scene"
	"print-studio/pkg/geometry"
)

// Zoom bounds of the print-area editor.
const (
	areaMinZoom = 0.1
	areaMaxZoom = 3.0
)

// handleHitRadius is the pick radius (logical px at zoom 1) around a
// resize handle. Handle hits take priority over area hits.
const handleHitRadius = 8.0

type areaGesture int

const (
	gestureNone areaGesture = iota
	gestureCreate
	gestureMeasure
	gesturePan
	gestureMove
	gestureResize
)

// PendingMeasurement is a measure gesture awaiting its real-world
// distance. The session stays in this state until the host confirms or
// cancels; no calibration changes until confirmation.
type PendingMeasurement struct {
	Start geometry.Point2D
	End   geometry.Point2D
}

// PixelLength returns the gesture's line length in logical pixels.
func (p *PendingMeasurement) PixelLength() float64 {
	return p.Start.Distance(p.End)
}

// AreaSession is the interaction state machine of the print-area editor.
// All methods are called from the UI event loop; there is no internal
// locking.
type AreaSession struct {
	Scene       *scene.AreaScene
	Viewport    *measure.Viewport
	Calibration *measure.Calibration

	tool    AreaTool
	gesture areaGesture

	// Creation transient state.
	start        geometry.Point2D
	current      geometry.Point2D
	previewShape scene.Shape

	// Drag transient state (select tool).
	dragID      string
	dragHandle  int // -1 = moving, 0..7 = resize handle
	dragOrigin  *scene.PrintArea
	dragChanged bool

	// Pan transient state (raw screen coords).
	lastScreenX float64
	lastScreenY float64

	pending *PendingMeasurement

	// Natural dimensions of the background image, zero until loaded.
	imageSize geometry.Size

	history  *history.Stack[*scene.AreaScene]
	dirty    bool
	onChange func()
}

// NewAreaSession builds a session over existing areas and measurement
// data. With no valid calibration the measure tool starts active,
// otherwise select.
func NewAreaSession(areas []*scene.PrintArea, lines []*scene.MeasurementLine, pixelsPerCm float64, hasValidMeasurement bool) *AreaSession {
	sc := scene.NewAreaScene()
	for _, a := range areas {
		sc.Areas = append(sc.Areas, a.Clone())
	}
	for _, l := range lines {
		sc.Lines = append(sc.Lines, l.Clone())
	}

	s := &AreaSession{
		Scene:       sc,
		Viewport:    measure.NewViewport(areaMinZoom, areaMaxZoom),
		Calibration: measure.NewCalibration(),
		dragHandle:  -1,
	}
	s.Calibration.Restore(pixelsPerCm, hasValidMeasurement)

	if s.Calibration.Valid() {
		s.tool = AreaToolSelect
	} else {
		s.tool = AreaToolMeasure
	}

	sc.OnMutate(func() {
		s.dirty = true
		s.changed()
	})
	s.history = history.NewStack(sc.Clone(), history.DefaultLimit)
	return s
}

// OnChange registers a redraw hook fired after any state change.
func (s *AreaSession) OnChange(fn func()) {
	s.onChange = fn
}

func (s *AreaSession) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Dirty reports whether unsaved changes exist.
func (s *AreaSession) Dirty() bool {
	return s.dirty
}

// ClearDirty resets the unsaved-changes flag after a successful save.
func (s *AreaSession) ClearDirty() {
	s.dirty = false
}

// SetImageSize records the background image's natural dimensions once the
// asynchronous load completes.
func (s *AreaSession) SetImageSize(size geometry.Size) {
	s.imageSize = size
	s.changed()
}

// ImageSize returns the background image's natural dimensions, zero until
// loaded.
func (s *AreaSession) ImageSize() geometry.Size {
	return s.imageSize
}

// Tool returns the active tool.
func (s *AreaSession) Tool() AreaTool {
	return s.tool
}

// SetTool switches the active tool, cancelling any in-progress gesture or
// pending measurement without committing a partial entity.
func (s *AreaSession) SetTool(t AreaTool) {
	s.cancelGesture()
	s.pending = nil
	s.tool = t
	if t != AreaToolSelect {
		s.Scene.Select("")
	}
	s.changed()
}

func (s *AreaSession) cancelGesture() {
	s.gesture = gestureNone
	s.dragID = ""
	s.dragHandle = -1
	s.dragOrigin = nil
	s.dragChanged = false
}

// SetZoom sets the zoom factor, clamped to the editor's bounds.
func (s *AreaSession) SetZoom(zoom float64) {
	s.Viewport.SetZoom(zoom)
	s.changed()
}

// PointerDown starts a gesture at the given screen coordinates.
func (s *AreaSession) PointerDown(screenX, screenY float64) {
	if s.pending != nil {
		// A measurement is awaiting confirmation; ignore input until the
		// host resolves it.
		return
	}

	p := s.Viewport.ToLogical(screenX, screenY)

	switch s.tool {
	case AreaToolRectangle, AreaToolCircle:
		s.gesture = gestureCreate
		s.start = p
		s.current = p
		if s.tool == AreaToolCircle {
			s.previewShape = scene.ShapeCircle
		} else {
			s.previewShape = scene.ShapeRectangle
		}

	case AreaToolMeasure:
		s.gesture = gestureMeasure
		s.start = p
		s.current = p

	case AreaToolPan:
		s.gesture = gesturePan
		s.lastScreenX = screenX
		s.lastScreenY = screenY

	case AreaToolSelect:
		s.selectAt(p)
	}
	s.changed()
}

// selectAt resolves a select-tool pointer-down: resize handles of the
// current selection first, then topmost area, then empty space.
func (s *AreaSession) selectAt(p geometry.Point2D) {
	if sel := s.Scene.Selected(); sel != nil && !sel.Locked {
		if h := s.hitHandle(sel, p); h >= 0 {
			s.gesture = gestureResize
			s.dragID = sel.ID
			s.dragHandle = h
			s.dragOrigin = sel.Clone()
			s.start = p
			return
		}
	}

	hit := s.Scene.HitTest(p)
	if hit == nil {
		s.Scene.Select("")
		return
	}
	s.Scene.Select(hit.ID)
	if !hit.Locked {
		s.gesture = gestureMove
		s.dragID = hit.ID
		s.dragHandle = -1
		s.dragOrigin = hit.Clone()
		s.start = p
	}
}

func (s *AreaSession) hitHandle(a *scene.PrintArea, p geometry.Point2D) int {
	radius := handleHitRadius / s.Viewport.Zoom()
	for i, hp := range a.Bounds().HandlePositions() {
		if hp.Distance(p) <= radius {
			return i
		}
	}
	return -1
}

// PointerMove updates the gesture in flight.
func (s *AreaSession) PointerMove(screenX, screenY float64) {
	switch s.gesture {
	case gestureNone:
		return

	case gesturePan:
		s.Viewport.PanBy(screenX-s.lastScreenX, screenY-s.lastScreenY)
		s.lastScreenX = screenX
		s.lastScreenY = screenY

	case gestureCreate, gestureMeasure:
		s.current = s.Viewport.ToLogical(screenX, screenY)

	case gestureMove:
		p := s.Viewport.ToLogical(screenX, screenY)
		d := p.Sub(s.start)
		if s.Scene.UpdateArea(s.dragID, func(a *scene.PrintArea) {
			a.X = s.dragOrigin.X + d.X
			a.Y = s.dragOrigin.Y + d.Y
		}) {
			s.dragChanged = true
		} else {
			// Area vanished mid-drag (deleted through the panel).
			s.cancelGesture()
		}

	case gestureResize:
		p := s.Viewport.ToLogical(screenX, screenY)
		if !s.resizeTo(p) {
			s.cancelGesture()
		}
	}
	s.changed()
}

// resizeTo applies a resize-handle drag: the handle follows the pointer
// while the opposite corner/edge stays anchored. Sizes never shrink below
// the minimum area size.
func (s *AreaSession) resizeTo(p geometry.Point2D) bool {
	o := s.dragOrigin
	x1, y1 := o.X, o.Y
	x2, y2 := o.X+o.Width, o.Y+o.Height

	// Corners 0..3 clockwise from top-left, edge midpoints 4..7
	// clockwise from top.
	switch s.dragHandle {
	case 0:
		x1, y1 = p.X, p.Y
	case 1:
		x2, y1 = p.X, p.Y
	case 2:
		x2, y2 = p.X, p.Y
	case 3:
		x1, y2 = p.X, p.Y
	case 4:
		y1 = p.Y
	case 5:
		x2 = p.X
	case 6:
		y2 = p.Y
	case 7:
		x1 = p.X
	}

	rect := geometry.RectFromCorners(geometry.Point2D{X: x1, Y: y1}, geometry.Point2D{X: x2, Y: y2})
	if rect.Width < scene.MinAreaSize || rect.Height < scene.MinAreaSize {
		return true // ignore movement past the minimum, keep dragging
	}

	ok := s.Scene.UpdateArea(s.dragID, func(a *scene.PrintArea) {
		a.X, a.Y, a.Width, a.Height = rect.X, rect.Y, rect.Width, rect.Height
	})
	if ok {
		s.dragChanged = true
	}
	return ok
}

// PointerUp completes the gesture in flight.
func (s *AreaSession) PointerUp(screenX, screenY float64) {
	switch s.gesture {
	case gestureCreate:
		s.current = s.Viewport.ToLogical(screenX, screenY)
		rect := geometry.RectFromCorners(s.start, s.current)
		area := s.Scene.AddArea(scene.PrintArea{
			Shape:  s.previewShape,
			X:      rect.X,
			Y:      rect.Y,
			Width:  rect.Width,
			Height: rect.Height,
		})
		if area != nil {
			s.applyRealSize(area)
			s.SaveToHistory()
		}
		s.cancelGesture()
		s.tool = AreaToolSelect

	case gestureMeasure:
		s.current = s.Viewport.ToLogical(screenX, screenY)
		if s.start.Distance(s.current) >= scene.MinMeasurementLength {
			s.pending = &PendingMeasurement{Start: s.start, End: s.current}
		}
		s.cancelGesture()

	case gestureMove, gestureResize:
		if s.dragChanged {
			s.SaveToHistory()
		}
		s.cancelGesture()

	case gesturePan:
		s.cancelGesture()
	}
	s.changed()
}

// applyRealSize fills an area's physical dimensions from the active
// calibration, when one exists.
func (s *AreaSession) applyRealSize(a *scene.PrintArea) {
	if w, ok := s.Calibration.ToRealWorld(a.Width); ok {
		h, _ := s.Calibration.ToRealWorld(a.Height)
		s.Scene.UpdateArea(a.ID, func(area *scene.PrintArea) {
			area.RealWidth = w
			area.RealHeight = h
		})
	}
}

// Preview returns the creation preview rectangle while a draw gesture is
// in flight.
func (s *AreaSession) Preview() (shape scene.Shape, rect geometry.Rect, ok bool) {
	if s.gesture != gestureCreate {
		return "", geometry.Rect{}, false
	}
	return s.previewShape, geometry.RectFromCorners(s.start, s.current), true
}

// MeasurePreview returns the measurement line endpoints while a measure
// gesture or confirmation is in flight.
func (s *AreaSession) MeasurePreview() (start, end geometry.Point2D, ok bool) {
	if s.gesture == gestureMeasure {
		return s.start, s.current, true
	}
	if s.pending != nil {
		return s.pending.Start, s.pending.End, true
	}
	return geometry.Point2D{}, geometry.Point2D{}, false
}

// PendingMeasurement returns the measurement awaiting confirmation, or
// nil.
func (s *AreaSession) PendingMeasurement() *PendingMeasurement {
	return s.pending
}

// ConfirmMeasurement commits the pending measurement with the given
// real-world distance in cm, recalculating the calibration scale from the
// line's pixel length (last write wins). A non-positive distance discards
// the gesture without touching calibration state. Returns true when a
// line was committed.
func (s *AreaSession) ConfirmMeasurement(realDistance float64) bool {
	pending := s.pending
	s.pending = nil
	if pending == nil {
		return false
	}
	if realDistance <= 0 {
		s.changed()
		return false
	}

	line := s.Scene.AddLine(scene.MeasurementLine{
		Start:        pending.Start,
		End:          pending.End,
		RealDistance: realDistance,
	})
	if line == nil {
		s.changed()
		return false
	}

	s.Calibration.ApplyLine(line)
	s.SaveToHistory()
	s.changed()
	return true
}

// CancelMeasurement discards the pending measurement without mutating
// calibration state.
func (s *AreaSession) CancelMeasurement() {
	s.pending = nil
	s.changed()
}

// RemoveMeasurementLine deletes a committed line. The active calibration
// scale is untouched: it reflects the last confirmed value.
func (s *AreaSession) RemoveMeasurementLine(id string) {
	if s.Scene.RemoveLine(id) {
		s.SaveToHistory()
	}
}

// DeleteArea removes an area and records history. Selection is cleared by
// the scene when the deleted area was selected; an active drag on it is
// cancelled.
func (s *AreaSession) DeleteArea(id string) {
	if s.dragID == id {
		s.cancelGesture()
	}
	if s.Scene.RemoveArea(id) {
		s.SaveToHistory()
	}
}

// SetRealSize sets the selected area's physical size in cm, resizing its
// pixel footprint through the calibration scale. With proportional set,
// the height follows the width by the area's current aspect ratio.
// Without a valid calibration this is a no-op.
func (s *AreaSession) SetRealSize(id string, widthCm, heightCm float64, proportional bool) bool {
	if widthCm <= 0 {
		return false
	}
	a := s.Scene.Area(id)
	if a == nil {
		return false
	}
	pxW, ok := s.Calibration.ToPixels(widthCm)
	if !ok {
		return false
	}

	if proportional && a.RealWidth > 0 && a.RealHeight > 0 {
		heightCm = widthCm * (a.RealHeight / a.RealWidth)
	}
	if heightCm <= 0 {
		return false
	}
	pxH, _ := s.Calibration.ToPixels(heightCm)

	s.Scene.UpdateArea(id, func(area *scene.PrintArea) {
		area.Width = pxW
		area.Height = pxH
		area.RealWidth = widthCm
		area.RealHeight = heightCm
	})
	s.SaveToHistory()
	return true
}

// ApplyStandardSize resizes an area to a standard print format. Requires
// a valid calibration.
func (s *AreaSession) ApplyStandardSize(id, name string) bool {
	size, ok := StandardSizeByName(name)
	if !ok {
		return false
	}
	return s.SetRealSize(id, size.Width, size.Height, false)
}

// SaveToHistory records a snapshot of the scene after a completed
// mutation. Intermediate pointer-move states are not recorded.
func (s *AreaSession) SaveToHistory() {
	s.history.Push(s.Scene.Clone())
}

// Undo restores the previous snapshot. No-op at the oldest entry.
func (s *AreaSession) Undo() {
	if snapshot, ok := s.history.Undo(); ok {
		s.cancelGesture()
		s.Scene.Restore(snapshot)
		s.dirty = true
		s.changed()
	}
}

// Redo restores the next snapshot. No-op at the newest entry.
func (s *AreaSession) Redo() {
	if snapshot, ok := s.history.Redo(); ok {
		s.cancelGesture()
		s.Scene.Restore(snapshot)
		s.dirty = true
		s.changed()
	}
}

// CanUndo reports whether an undo step exists.
func (s *AreaSession) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo step exists.
func (s *AreaSession) CanRedo() bool { return s.history.CanRedo() }

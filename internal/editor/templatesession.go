package editor

import (
	"print-studio/internal/history"
	"print-studio/internal/measure"
	"print-studio/internal/scene"
	"print-studio/pkg/geometry"
)

// Zoom bounds of the template editor.
const (
	templateMinZoom = 0.1
	templateMaxZoom = 5.0
)

// Template canvas defaults.
const (
	DefaultCanvasWidth  = 800.0
	DefaultCanvasHeight = 600.0

	// SnapGridSize is the drag snap unit; GridDisplaySize is the spacing
	// of the painted grid.
	SnapGridSize    = 10.0
	GridDisplaySize = 20.0
)

// TemplateSession is the interaction state machine of the template
// editor.
type TemplateSession struct {
	Scene    *scene.TemplateScene
	Viewport *measure.Viewport
	Canvas   geometry.Size

	tool TemplateTool

	SnapToGrid bool
	ShowGrid   bool
	ShowRulers bool

	dragging    bool
	dragID      string
	lastLogical geometry.Point2D
	dragChanged bool

	history  *history.Stack[*scene.TemplateScene]
	dirty    bool
	onChange func()

	// onImagePick is invoked when the image tool needs a file from the
	// host; the host answers through SetElementImageSource.
	onImagePick func(elementID string)
}

// NewTemplateSession builds a session over existing elements.
func NewTemplateSession(elements []*scene.Element) *TemplateSession {
	sc := scene.NewTemplateScene()
	for _, el := range elements {
		sc.Elements = append(sc.Elements, el.Clone())
	}

	s := &TemplateSession{
		Scene:      sc,
		Viewport:   measure.NewViewport(templateMinZoom, templateMaxZoom),
		Canvas:     geometry.NewSize(DefaultCanvasWidth, DefaultCanvasHeight),
		tool:       TemplateToolSelect,
		SnapToGrid: true,
	}
	sc.OnMutate(func() {
		s.dirty = true
		s.changed()
	})
	s.history = history.NewStack(sc.Clone(), history.DefaultLimit)
	return s
}

// OnChange registers a redraw hook fired after any state change.
func (s *TemplateSession) OnChange(fn func()) {
	s.onChange = fn
}

// OnImagePick registers the host's file-pick flow for the image tool.
func (s *TemplateSession) OnImagePick(fn func(elementID string)) {
	s.onImagePick = fn
}

func (s *TemplateSession) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Dirty reports whether unsaved changes exist.
func (s *TemplateSession) Dirty() bool { return s.dirty }

// ClearDirty resets the unsaved-changes flag after a successful save.
func (s *TemplateSession) ClearDirty() { s.dirty = false }

// Tool returns the active tool.
func (s *TemplateSession) Tool() TemplateTool { return s.tool }

// ActivateTool switches tools, cancelling any drag in flight. The text,
// image, and shape tools create their element immediately and fall back
// to select so the new element can be dragged right away; the image tool
// additionally asks the host for a file, leaving the element in a
// pending state until SetElementImageSource is called.
func (s *TemplateSession) ActivateTool(t TemplateTool) {
	s.cancelDrag()

	switch t {
	case TemplateToolText:
		s.Scene.AddElement(scene.NewTextElement())
		s.SaveToHistory()
		s.tool = TemplateToolSelect

	case TemplateToolImage:
		el := s.Scene.AddElement(scene.NewImageElement())
		s.SaveToHistory()
		s.tool = TemplateToolSelect
		if s.onImagePick != nil {
			s.onImagePick(el.ID)
		}

	case TemplateToolShape:
		s.Scene.AddElement(scene.NewShapeElement(""))
		s.SaveToHistory()
		s.tool = TemplateToolSelect

	default:
		s.tool = t
	}
	s.changed()
}

func (s *TemplateSession) cancelDrag() {
	s.dragging = false
	s.dragID = ""
	s.dragChanged = false
}

// SetZoom sets the zoom factor, clamped to the editor's bounds.
func (s *TemplateSession) SetZoom(zoom float64) {
	s.Viewport.SetZoom(zoom)
	s.changed()
}

// SetElementImageSource completes an image element's pending file read.
// Missing elements are tolerated: the user may have deleted the element
// while the read was in flight.
func (s *TemplateSession) SetElementImageSource(id, source string) {
	s.Scene.UpdateElement(id, func(el *scene.Element) {
		if el.Image != nil {
			el.Image.Source = source
		}
	})
}

// PointerDown interprets a press at the given screen coordinates.
func (s *TemplateSession) PointerDown(screenX, screenY float64) {
	p := s.Viewport.ToLogical(screenX, screenY)

	switch s.tool {
	case TemplateToolSelect:
		hit := s.Scene.HitTest(p)
		if hit == nil {
			s.Scene.ClearSelection()
			break
		}
		s.Scene.Select(hit.ID)
		if !hit.IsLocked {
			s.dragging = true
			s.dragID = hit.ID
			s.lastLogical = p
		}

	case TemplateToolDraw:
		// Freehand shape placement: one shape per tap, centered on the
		// pointer.
		el := scene.NewShapeElement("")
		el.X = geometry.Clamp(p.X-el.Width/2, 0, s.Canvas.Width-el.Width)
		el.Y = geometry.Clamp(p.Y-el.Height/2, 0, s.Canvas.Height-el.Height)
		s.Scene.AddElement(el)
		s.SaveToHistory()
	}
	s.changed()
}

// PointerMove drags the grabbed element, snapping the delta to the grid
// when enabled and clamping the element to the canvas.
func (s *TemplateSession) PointerMove(screenX, screenY float64) {
	if !s.dragging {
		return
	}
	p := s.Viewport.ToLogical(screenX, screenY)
	d := p.Sub(s.lastLogical)

	snap := 1.0
	if s.SnapToGrid {
		snap = SnapGridSize
	}
	if s.Scene.MoveElement(s.dragID, d.X, d.Y, s.Canvas, snap) {
		s.dragChanged = true
		s.lastLogical = p
	} else if s.Scene.Element(s.dragID) == nil {
		// Deleted mid-drag.
		s.cancelDrag()
	}
	s.changed()
}

// PointerUp completes a drag, recording a history snapshot if the
// element moved.
func (s *TemplateSession) PointerUp(screenX, screenY float64) {
	if s.dragging && s.dragChanged {
		s.SaveToHistory()
	}
	s.cancelDrag()
	s.changed()
}

// DeleteSelected removes every selected element.
func (s *TemplateSession) DeleteSelected() {
	ids := s.Scene.SelectedIDs()
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		s.Scene.RemoveElement(id)
	}
	s.SaveToHistory()
}

// DuplicateElement clones an element offset down-right and selects the
// copy.
func (s *TemplateSession) DuplicateElement(id string) *scene.Element {
	dup := s.Scene.Duplicate(id)
	if dup != nil {
		s.SaveToHistory()
	}
	return dup
}

// UpdateElement applies a property edit and records history.
func (s *TemplateSession) UpdateElement(id string, mutate func(*scene.Element)) bool {
	if !s.Scene.UpdateElement(id, mutate) {
		return false
	}
	s.SaveToHistory()
	return true
}

// SetShowGrid sets grid display. View settings never dirty the document.
func (s *TemplateSession) SetShowGrid(on bool) {
	s.ShowGrid = on
	s.changed()
}

// SetSnapToGrid sets grid snapping.
func (s *TemplateSession) SetSnapToGrid(on bool) {
	s.SnapToGrid = on
	s.changed()
}

// SaveToHistory records a snapshot of the scene after a completed
// mutation.
func (s *TemplateSession) SaveToHistory() {
	s.history.Push(s.Scene.Clone())
}

// Undo restores the previous snapshot. No-op at the oldest entry.
func (s *TemplateSession) Undo() {
	if snapshot, ok := s.history.Undo(); ok {
		s.cancelDrag()
		s.Scene.Restore(snapshot)
		s.dirty = true
		s.changed()
	}
}

// Redo restores the next snapshot. No-op at the newest entry.
func (s *TemplateSession) Redo() {
	if snapshot, ok := s.history.Redo(); ok {
		s.cancelDrag()
		s.Scene.Restore(snapshot)
		s.dirty = true
		s.changed()
	}
}

// CanUndo reports whether an undo step exists.
func (s *TemplateSession) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo step exists.
func (s *TemplateSession) CanRedo() bool { return s.history.CanRedo() }

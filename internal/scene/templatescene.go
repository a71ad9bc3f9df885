package scene

import (
	"sort"

	"print-studio/pkg/geometry"
)

// DuplicateOffset is the x/y displacement applied to duplicated elements.
const DuplicateOffset = 20.0

// TemplateScene is the authoritative element list of a template editing
// session. Selection may hold several element ids.
type TemplateScene struct {
	Elements []*Element

	selectedIDs []string
	onMutate    func()
}

// NewTemplateScene creates an empty scene.
func NewTemplateScene() *TemplateScene {
	return &TemplateScene{}
}

// OnMutate registers a hook called after every successful mutation.
func (s *TemplateScene) OnMutate(fn func()) {
	s.onMutate = fn
}

func (s *TemplateScene) mutated() {
	if s.onMutate != nil {
		s.onMutate()
	}
}

// AddElement appends an element, assigns zIndex = max(existing)+1 so new
// elements paint on top without renumbering others, and makes it the sole
// selection.
func (s *TemplateScene) AddElement(el *Element) *Element {
	added := el.Clone()
	if added.ID == "" {
		added.ID = NewID("element")
	}
	added.ZIndex = s.MaxZIndex() + 1

	s.Elements = append(s.Elements, added)
	s.selectedIDs = []string{added.ID}
	s.mutated()
	return added
}

// UpdateElement applies mutate to the element with the given id. Returns
// false when no such element exists.
func (s *TemplateScene) UpdateElement(id string, mutate func(*Element)) bool {
	for _, el := range s.Elements {
		if el.ID == id {
			mutate(el)
			s.mutated()
			return true
		}
	}
	return false
}

// RemoveElement deletes the element with the given id and drops it from
// the selection.
func (s *TemplateScene) RemoveElement(id string) bool {
	for i, el := range s.Elements {
		if el.ID == id {
			s.Elements = append(s.Elements[:i], s.Elements[i+1:]...)
			s.deselect(id)
			s.mutated()
			return true
		}
	}
	return false
}

// Duplicate clones the element with the given id offset by
// (+DuplicateOffset, +DuplicateOffset) and adds it on top. Returns nil
// when the source is missing.
func (s *TemplateScene) Duplicate(id string) *Element {
	src := s.Element(id)
	if src == nil {
		return nil
	}
	dup := src.Clone()
	dup.ID = ""
	dup.X += DuplicateOffset
	dup.Y += DuplicateOffset
	return s.AddElement(dup)
}

// MoveElement translates an unlocked element by (dx, dy), keeping its
// bounding box inside the canvas. When snap is above 1, the delta is
// rounded to the nearest snap unit before applying.
func (s *TemplateScene) MoveElement(id string, dx, dy float64, canvas geometry.Size, snap float64) bool {
	el := s.Element(id)
	if el == nil || el.IsLocked {
		return false
	}

	dx = geometry.Snap(dx, snap)
	dy = geometry.Snap(dy, snap)
	if dx == 0 && dy == 0 {
		return false
	}

	el.X = geometry.Clamp(el.X+dx, 0, canvas.Width-el.Width)
	el.Y = geometry.Clamp(el.Y+dy, 0, canvas.Height-el.Height)
	s.mutated()
	return true
}

// Element returns the element with the given id, or nil.
func (s *TemplateScene) Element(id string) *Element {
	for _, el := range s.Elements {
		if el.ID == id {
			return el
		}
	}
	return nil
}

// Select replaces the selection with the given ids. Unknown ids are
// dropped.
func (s *TemplateScene) Select(ids ...string) {
	s.selectedIDs = s.selectedIDs[:0]
	for _, id := range ids {
		if s.Element(id) != nil {
			s.selectedIDs = append(s.selectedIDs, id)
		}
	}
}

// ClearSelection empties the selection.
func (s *TemplateScene) ClearSelection() {
	s.selectedIDs = nil
}

// SelectedIDs returns the ids of the selected elements.
func (s *TemplateScene) SelectedIDs() []string {
	out := make([]string, len(s.selectedIDs))
	copy(out, s.selectedIDs)
	return out
}

// Selected returns the selected elements in selection order.
func (s *TemplateScene) Selected() []*Element {
	var out []*Element
	for _, id := range s.selectedIDs {
		if el := s.Element(id); el != nil {
			out = append(out, el)
		}
	}
	return out
}

// IsSelected reports whether the element id is part of the selection.
func (s *TemplateScene) IsSelected(id string) bool {
	for _, sel := range s.selectedIDs {
		if sel == id {
			return true
		}
	}
	return false
}

func (s *TemplateScene) deselect(id string) {
	for i, sel := range s.selectedIDs {
		if sel == id {
			s.selectedIDs = append(s.selectedIDs[:i], s.selectedIDs[i+1:]...)
			return
		}
	}
}

// HitTest returns the topmost visible element whose bounding box contains
// the point, testing highest zIndex first.
func (s *TemplateScene) HitTest(p geometry.Point2D) *Element {
	sorted := s.SortedByZ()
	for i := len(sorted) - 1; i >= 0; i-- {
		el := sorted[i]
		if !el.IsVisible {
			continue
		}
		if el.Bounds().Contains(p) {
			return el
		}
	}
	return nil
}

// SortedByZ returns the elements in paint order (ascending zIndex).
func (s *TemplateScene) SortedByZ() []*Element {
	sorted := make([]*Element, len(s.Elements))
	copy(sorted, s.Elements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZIndex < sorted[j].ZIndex
	})
	return sorted
}

// MaxZIndex returns the highest zIndex in the scene, or 0 when empty.
func (s *TemplateScene) MaxZIndex() int {
	maxZ := 0
	for _, el := range s.Elements {
		if el.ZIndex > maxZ {
			maxZ = el.ZIndex
		}
	}
	return maxZ
}

// Clone returns a deep copy of the scene, selection included. Mutation
// hooks are not carried over.
func (s *TemplateScene) Clone() *TemplateScene {
	c := &TemplateScene{}
	c.Elements = make([]*Element, len(s.Elements))
	for i, el := range s.Elements {
		c.Elements[i] = el.Clone()
	}
	c.selectedIDs = make([]string, len(s.selectedIDs))
	copy(c.selectedIDs, s.selectedIDs)
	return c
}

// Restore replaces this scene's contents with a snapshot, keeping the
// mutation hook.
func (s *TemplateScene) Restore(snapshot *TemplateScene) {
	restored := snapshot.Clone()
	s.Elements = restored.Elements
	s.selectedIDs = restored.selectedIDs
}

package scene

import (
	"fmt"
	"sort"

	"print-studio/pkg/geometry"
)

// AreaScene is the authoritative entity list of a print-area editing
// session: print areas plus measurement lines, with a single selection.
//
// Mutations tolerate missing ids as no-ops so that user-driven races
// (delete during a drag) never corrupt state. Every successful mutation
// invokes the onMutate hook, which the owning session uses to mark the
// session dirty.
type AreaScene struct {
	Areas []*PrintArea
	Lines []*MeasurementLine

	selectedID string
	onMutate   func()
}

// NewAreaScene creates an empty scene.
func NewAreaScene() *AreaScene {
	return &AreaScene{}
}

// OnMutate registers a hook called after every successful mutation.
func (s *AreaScene) OnMutate(fn func()) {
	s.onMutate = fn
}

func (s *AreaScene) mutated() {
	if s.onMutate != nil {
		s.onMutate()
	}
}

// AddArea validates, defaults, and appends a new area, and selects it.
// Areas below the minimum size are rejected and nil is returned.
func (s *AreaScene) AddArea(a PrintArea) *PrintArea {
	if a.Shape != ShapePolygon && (a.Width < MinAreaSize || a.Height < MinAreaSize) {
		return nil
	}

	area := a.Clone()
	if area.ID == "" {
		area.ID = NewID("area")
	}
	if area.Name == "" {
		area.Name = fmt.Sprintf("Area %d", len(s.Areas)+1)
	}
	if area.Color == "" {
		area.Color = defaultAreaColor
	}
	if area.Opacity == 0 {
		area.Opacity = 0.3
	}
	area.IsActive = true
	area.ZIndex = s.maxAreaZ() + 1

	s.Areas = append(s.Areas, area)
	s.selectedID = area.ID
	s.mutated()
	return area
}

// UpdateArea applies mutate to the area with the given id. Returns false
// when no such area exists. The selection is id-based, so a selected
// area's view reflects the update with no stale copy.
func (s *AreaScene) UpdateArea(id string, mutate func(*PrintArea)) bool {
	for _, a := range s.Areas {
		if a.ID == id {
			mutate(a)
			s.mutated()
			return true
		}
	}
	return false
}

// RemoveArea deletes the area with the given id. Deleting the selected
// area clears the selection.
func (s *AreaScene) RemoveArea(id string) bool {
	for i, a := range s.Areas {
		if a.ID == id {
			s.Areas = append(s.Areas[:i], s.Areas[i+1:]...)
			if s.selectedID == id {
				s.selectedID = ""
			}
			s.mutated()
			return true
		}
	}
	return false
}

// Area returns the area with the given id, or nil.
func (s *AreaScene) Area(id string) *PrintArea {
	for _, a := range s.Areas {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Select sets the selection. An empty id clears it; an unknown id is a
// no-op.
func (s *AreaScene) Select(id string) {
	if id == "" {
		s.selectedID = ""
		return
	}
	if s.Area(id) != nil {
		s.selectedID = id
	}
}

// Selected returns the selected area, or nil.
func (s *AreaScene) Selected() *PrintArea {
	if s.selectedID == "" {
		return nil
	}
	return s.Area(s.selectedID)
}

// SelectedID returns the selected area id, or "".
func (s *AreaScene) SelectedID() string {
	if s.Selected() == nil {
		return ""
	}
	return s.selectedID
}

// HitTest returns the topmost area containing the point, testing highest
// zIndex first. Hidden areas are skipped. Polygon areas are tested
// against their actual outline once the bounding box matches.
func (s *AreaScene) HitTest(p geometry.Point2D) *PrintArea {
	sorted := s.SortedByZ()
	for i := len(sorted) - 1; i >= 0; i-- {
		a := sorted[i]
		if !a.IsActive {
			continue
		}
		if !a.Bounds().Contains(p) {
			continue
		}
		if a.Shape == ShapePolygon && len(a.Points) >= 3 && !geometry.PointInPolygon(p, a.Points) {
			continue
		}
		return a
	}
	return nil
}

// SortedByZ returns the areas in paint order (ascending zIndex).
func (s *AreaScene) SortedByZ() []*PrintArea {
	sorted := make([]*PrintArea, len(s.Areas))
	copy(sorted, s.Areas)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZIndex < sorted[j].ZIndex
	})
	return sorted
}

func (s *AreaScene) maxAreaZ() int {
	maxZ := 0
	for _, a := range s.Areas {
		if a.ZIndex > maxZ {
			maxZ = a.ZIndex
		}
	}
	return maxZ
}

// AddLine defaults and appends a measurement line. Lines shorter than the
// minimum pixel length or with a non-positive real distance are rejected.
func (s *AreaScene) AddLine(l MeasurementLine) *MeasurementLine {
	if l.RealDistance <= 0 || l.Start.Distance(l.End) < MinMeasurementLength {
		return nil
	}

	line := l.Clone()
	if line.ID == "" {
		line.ID = NewID("measure")
	}
	if line.Color == "" {
		line.Color = defaultMeasurementColor
	}
	if line.Label == "" {
		line.Label = fmt.Sprintf("%g cm", line.RealDistance)
	}

	s.Lines = append(s.Lines, line)
	s.mutated()
	return line
}

// RemoveLine deletes the measurement line with the given id.
func (s *AreaScene) RemoveLine(id string) bool {
	for i, l := range s.Lines {
		if l.ID == id {
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
			s.mutated()
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the scene, selection included. Mutation
// hooks are not carried over.
func (s *AreaScene) Clone() *AreaScene {
	c := &AreaScene{selectedID: s.selectedID}
	c.Areas = make([]*PrintArea, len(s.Areas))
	for i, a := range s.Areas {
		c.Areas[i] = a.Clone()
	}
	c.Lines = make([]*MeasurementLine, len(s.Lines))
	for i, l := range s.Lines {
		c.Lines[i] = l.Clone()
	}
	return c
}

// Restore replaces this scene's contents with a snapshot, keeping the
// mutation hook. The snapshot fully replaces the entity lists.
func (s *AreaScene) Restore(snapshot *AreaScene) {
	restored := snapshot.Clone()
	s.Areas = restored.Areas
	s.Lines = restored.Lines
	s.selectedID = restored.selectedID
}

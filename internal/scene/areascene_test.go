package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"print-studio/pkg/geometry"
)

func TestAddAreaDefaults(t *testing.T) {
	s := NewAreaScene()
	a := s.AddArea(PrintArea{Shape: ShapeRectangle, X: 10, Y: 20, Width: 100, Height: 50})
	require.NotNil(t, a)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Area 1", a.Name)
	assert.Equal(t, "#3B82F6", a.Color)
	assert.Equal(t, 0.3, a.Opacity)
	assert.True(t, a.IsActive)
	assert.Equal(t, 1, a.ZIndex)
	assert.Equal(t, a.ID, s.SelectedID())
}

func TestAddAreaRejectsTooSmall(t *testing.T) {
	s := NewAreaScene()
	assert.Nil(t, s.AddArea(PrintArea{Shape: ShapeRectangle, Width: 5, Height: 100}))
	assert.Nil(t, s.AddArea(PrintArea{Shape: ShapeRectangle, Width: 100, Height: 9.9}))
	assert.Empty(t, s.Areas)
}

func TestAddAreaStacksZIndex(t *testing.T) {
	s := NewAreaScene()
	a := s.AddArea(PrintArea{Shape: ShapeRectangle, Width: 50, Height: 50})
	b := s.AddArea(PrintArea{Shape: ShapeRectangle, Width: 50, Height: 50})

	assert.Equal(t, "Area 2", b.Name)
	assert.Greater(t, b.ZIndex, a.ZIndex)
}

func TestRemoveAreaClearsSelection(t *testing.T) {
	s := NewAreaScene()
	a := s.AddArea(PrintArea{Shape: ShapeRectangle, Width: 50, Height: 50})

	require.True(t, s.RemoveArea(a.ID))
	assert.Empty(t, s.SelectedID())
	assert.False(t, s.RemoveArea(a.ID))
}

func TestUpdateAreaUnknownID(t *testing.T) {
	s := NewAreaScene()
	assert.False(t, s.UpdateArea("missing", func(a *PrintArea) { a.X = 1 }))
}

func TestSelectUnknownIDIsNoOp(t *testing.T) {
	s := NewAreaScene()
	a := s.AddArea(PrintArea{Shape: ShapeRectangle, Width: 50, Height: 50})

	s.Select("missing")
	assert.Equal(t, a.ID, s.SelectedID())

	s.Select("")
	assert.Empty(t, s.SelectedID())
}

func TestHitTestTopmostFirst(t *testing.T) {
	s := NewAreaScene()
	bottom := s.AddArea(PrintArea{Shape: ShapeRectangle, X: 0, Y: 0, Width: 100, Height: 100})
	top := s.AddArea(PrintArea{Shape: ShapeRectangle, X: 50, Y: 50, Width: 100, Height: 100})

	hit := s.HitTest(geometry.NewPoint2D(75, 75))
	require.NotNil(t, hit)
	assert.Equal(t, top.ID, hit.ID)

	hit = s.HitTest(geometry.NewPoint2D(10, 10))
	require.NotNil(t, hit)
	assert.Equal(t, bottom.ID, hit.ID)

	assert.Nil(t, s.HitTest(geometry.NewPoint2D(500, 500)))
}

func TestHitTestSkipsInactive(t *testing.T) {
	s := NewAreaScene()
	a := s.AddArea(PrintArea{Shape: ShapeRectangle, X: 0, Y: 0, Width: 100, Height: 100})
	s.UpdateArea(a.ID, func(area *PrintArea) { area.IsActive = false })

	assert.Nil(t, s.HitTest(geometry.NewPoint2D(50, 50)))
}

func TestAddLineValidation(t *testing.T) {
	s := NewAreaScene()

	assert.Nil(t, s.AddLine(MeasurementLine{
		Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(100, 0),
	}))
	assert.Nil(t, s.AddLine(MeasurementLine{
		Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(5, 0), RealDistance: 10,
	}))

	l := s.AddLine(MeasurementLine{
		Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(100, 0), RealDistance: 10,
	})
	require.NotNil(t, l)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, "#EF4444", l.Color)
	assert.Equal(t, "10 cm", l.Label)
}

func TestCloneIsDeep(t *testing.T) {
	s := NewAreaScene()
	a := s.AddArea(PrintArea{Shape: ShapeRectangle, X: 10, Y: 10, Width: 50, Height: 50})
	s.AddLine(MeasurementLine{
		Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(100, 0), RealDistance: 10,
	})

	snapshot := s.Clone()
	s.UpdateArea(a.ID, func(area *PrintArea) { area.X = 999 })

	assert.Equal(t, 10.0, snapshot.Areas[0].X)
	assert.Equal(t, a.ID, snapshot.SelectedID())
}

func TestRestoreReplacesContents(t *testing.T) {
	s := NewAreaScene()
	a := s.AddArea(PrintArea{Shape: ShapeRectangle, X: 10, Y: 10, Width: 50, Height: 50})
	snapshot := s.Clone()

	s.UpdateArea(a.ID, func(area *PrintArea) { area.X = 999 })
	s.AddArea(PrintArea{Shape: ShapeRectangle, Width: 50, Height: 50})

	s.Restore(snapshot)
	assert.Len(t, s.Areas, 1)
	assert.Equal(t, 10.0, s.Areas[0].X)
}

func TestPolygonAreaBounds(t *testing.T) {
	a := &PrintArea{
		Shape:  ShapePolygon,
		Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 20, Y: 30}},
	}
	assert.Equal(t, geometry.NewRect(0, 0, 40, 30), a.Bounds())
}

func TestHitTestPolygonOutline(t *testing.T) {
	s := NewAreaScene()
	tri := s.AddArea(PrintArea{
		Shape:  ShapePolygon,
		Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 100}},
	})
	require.NotNil(t, tri)

	assert.Equal(t, tri.ID, s.HitTest(geometry.NewPoint2D(50, 30)).ID)
	// Inside the bounding box but outside the triangle.
	assert.Nil(t, s.HitTest(geometry.NewPoint2D(5, 90)))
}

package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"print-studio/internal/scene"
	"print-studio/pkg/geometry"
)

func newCalibratedSession(t *testing.T) *AreaSession {
	t.Helper()
	// 10 px/cm
	return NewAreaSession(nil, nil, 10, true)
}

func TestNewSessionToolDependsOnCalibration(t *testing.T) {
	s := NewAreaSession(nil, nil, 0, false)
	assert.Equal(t, AreaToolMeasure, s.Tool())

	s = newCalibratedSession(t)
	assert.Equal(t, AreaToolSelect, s.Tool())
}

func TestCreateRectangleGesture(t *testing.T) {
	s := newCalibratedSession(t)
	s.SetTool(AreaToolRectangle)

	s.PointerDown(10, 20)
	s.PointerMove(110, 80)

	shape, rect, ok := s.Preview()
	require.True(t, ok)
	assert.Equal(t, scene.ShapeRectangle, shape)
	assert.Equal(t, geometry.NewRect(10, 20, 100, 60), rect)

	s.PointerUp(110, 80)

	require.Len(t, s.Scene.Areas, 1)
	a := s.Scene.Areas[0]
	assert.Equal(t, geometry.NewRect(10, 20, 100, 60), geometry.NewRect(a.X, a.Y, a.Width, a.Height))
	assert.InDelta(t, 10.0, a.RealWidth, 1e-9)
	assert.InDelta(t, 6.0, a.RealHeight, 1e-9)

	// Creation auto-switches back to select with the new area selected.
	assert.Equal(t, AreaToolSelect, s.Tool())
	assert.Equal(t, a.ID, s.Scene.SelectedID())

	_, _, ok = s.Preview()
	assert.False(t, ok)
}

func TestCreateRejectsTooSmall(t *testing.T) {
	s := newCalibratedSession(t)
	s.SetTool(AreaToolRectangle)

	s.PointerDown(10, 10)
	s.PointerUp(15, 300)

	assert.Empty(t, s.Scene.Areas)
	assert.False(t, s.CanUndo())
}

func TestCreateCircleReversedCorners(t *testing.T) {
	s := newCalibratedSession(t)
	s.SetTool(AreaToolCircle)

	s.PointerDown(200, 150)
	s.PointerUp(100, 50)

	require.Len(t, s.Scene.Areas, 1)
	a := s.Scene.Areas[0]
	assert.Equal(t, scene.ShapeCircle, a.Shape)
	assert.Equal(t, geometry.NewRect(100, 50, 100, 100), geometry.NewRect(a.X, a.Y, a.Width, a.Height))
}

func TestMeasureFlowConfirm(t *testing.T) {
	s := NewAreaSession(nil, nil, 0, false)
	require.Equal(t, AreaToolMeasure, s.Tool())

	s.PointerDown(0, 0)
	s.PointerMove(60, 80)
	s.PointerUp(60, 80)

	pending := s.PendingMeasurement()
	require.NotNil(t, pending)
	assert.InDelta(t, 100.0, pending.PixelLength(), 1e-9)

	// Input is ignored while the confirmation is outstanding.
	s.PointerDown(300, 300)
	assert.NotNil(t, s.PendingMeasurement())

	require.True(t, s.ConfirmMeasurement(10))
	assert.Nil(t, s.PendingMeasurement())
	require.Len(t, s.Scene.Lines, 1)
	assert.True(t, s.Calibration.Valid())
	assert.InDelta(t, 10.0, s.Calibration.PixelsPerCm(), 1e-9)
}

func TestMeasureFlowCancel(t *testing.T) {
	s := NewAreaSession(nil, nil, 0, false)

	s.PointerDown(0, 0)
	s.PointerUp(100, 0)
	require.NotNil(t, s.PendingMeasurement())

	s.CancelMeasurement()
	assert.Nil(t, s.PendingMeasurement())
	assert.Empty(t, s.Scene.Lines)
	assert.False(t, s.Calibration.Valid())
}

func TestMeasureNonPositiveDistanceDiscards(t *testing.T) {
	s := NewAreaSession(nil, nil, 0, false)

	s.PointerDown(0, 0)
	s.PointerUp(100, 0)
	require.NotNil(t, s.PendingMeasurement())

	assert.False(t, s.ConfirmMeasurement(0))
	assert.Nil(t, s.PendingMeasurement())
	assert.Empty(t, s.Scene.Lines)
	assert.False(t, s.Calibration.Valid())
}

func TestMeasureTooShortNeverPends(t *testing.T) {
	s := NewAreaSession(nil, nil, 0, false)

	s.PointerDown(0, 0)
	s.PointerUp(5, 0)

	assert.Nil(t, s.PendingMeasurement())
}

func TestMeasureLastWriteWins(t *testing.T) {
	s := NewAreaSession(nil, nil, 0, false)

	s.PointerDown(0, 0)
	s.PointerUp(100, 0)
	require.True(t, s.ConfirmMeasurement(10)) // 10 px/cm

	s.SetTool(AreaToolMeasure)
	s.PointerDown(0, 0)
	s.PointerUp(200, 0)
	require.True(t, s.ConfirmMeasurement(10)) // 20 px/cm

	assert.Len(t, s.Scene.Lines, 2)
	assert.InDelta(t, 20.0, s.Calibration.PixelsPerCm(), 1e-9)

	// Removing a line never recomputes the active scale.
	s.RemoveMeasurementLine(s.Scene.Lines[0].ID)
	assert.InDelta(t, 20.0, s.Calibration.PixelsPerCm(), 1e-9)
}

func TestToolSwitchCancelsGesture(t *testing.T) {
	s := newCalibratedSession(t)
	s.SetTool(AreaToolRectangle)

	s.PointerDown(10, 10)
	s.PointerMove(200, 200)
	s.SetTool(AreaToolSelect)

	_, _, ok := s.Preview()
	assert.False(t, ok)

	// The up event that follows the switch must not create anything.
	s.PointerUp(200, 200)
	assert.Empty(t, s.Scene.Areas)
}

func TestToolSwitchDiscardsPending(t *testing.T) {
	s := NewAreaSession(nil, nil, 0, false)
	s.PointerDown(0, 0)
	s.PointerUp(100, 0)
	require.NotNil(t, s.PendingMeasurement())

	s.SetTool(AreaToolSelect)
	assert.Nil(t, s.PendingMeasurement())
}

func TestSelectAndMoveArea(t *testing.T) {
	s := newCalibratedSession(t)
	a := s.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, X: 100, Y: 100, Width: 80, Height: 60})
	require.NotNil(t, a)
	s.SaveToHistory()

	s.PointerDown(120, 120)
	assert.Equal(t, a.ID, s.Scene.SelectedID())

	s.PointerMove(150, 135)
	s.PointerUp(150, 135)

	assert.Equal(t, 130.0, a.X)
	assert.Equal(t, 115.0, a.Y)
}

func TestMoveLockedAreaSelectsWithoutDragging(t *testing.T) {
	s := newCalibratedSession(t)
	a := s.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, X: 100, Y: 100, Width: 80, Height: 60})
	s.Scene.UpdateArea(a.ID, func(area *scene.PrintArea) { area.Locked = true })

	s.PointerDown(120, 120)
	s.PointerMove(200, 200)
	s.PointerUp(200, 200)

	assert.Equal(t, a.ID, s.Scene.SelectedID())
	assert.Equal(t, 100.0, a.X)
}

func TestResizeFromCornerHandle(t *testing.T) {
	s := newCalibratedSession(t)
	a := s.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, X: 100, Y: 100, Width: 80, Height: 60})
	s.Scene.Select(a.ID)

	// Grab the bottom-right corner handle and drag outward.
	s.PointerDown(180, 160)
	s.PointerMove(220, 200)
	s.PointerUp(220, 200)

	assert.Equal(t, 100.0, a.X)
	assert.Equal(t, 100.0, a.Y)
	assert.Equal(t, 120.0, a.Width)
	assert.Equal(t, 100.0, a.Height)
}

func TestResizeNeverBelowMinimum(t *testing.T) {
	s := newCalibratedSession(t)
	a := s.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, X: 100, Y: 100, Width: 80, Height: 60})
	s.Scene.Select(a.ID)

	s.PointerDown(180, 160)
	s.PointerMove(101, 101) // would invert to a sliver
	s.PointerUp(101, 101)

	assert.GreaterOrEqual(t, a.Width, scene.MinAreaSize)
	assert.GreaterOrEqual(t, a.Height, scene.MinAreaSize)
}

func TestDeleteDuringDragCancels(t *testing.T) {
	s := newCalibratedSession(t)
	a := s.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, X: 100, Y: 100, Width: 80, Height: 60})

	s.PointerDown(120, 120)
	s.DeleteArea(a.ID)
	s.PointerMove(400, 400)
	s.PointerUp(400, 400)

	assert.Empty(t, s.Scene.Areas)
}

func TestPanAdjustsViewportOnly(t *testing.T) {
	s := newCalibratedSession(t)
	s.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, X: 100, Y: 100, Width: 80, Height: 60})
	s.SetTool(AreaToolPan)

	s.PointerDown(50, 50)
	s.PointerMove(80, 40)
	s.PointerUp(80, 40)

	x, y := s.Viewport.Pan()
	assert.Equal(t, 30.0, x)
	assert.Equal(t, -10.0, y)
	assert.Equal(t, 100.0, s.Scene.Areas[0].X)
}

func TestUndoRedoAreaLifecycle(t *testing.T) {
	s := newCalibratedSession(t)
	s.SetTool(AreaToolRectangle)
	s.PointerDown(10, 10)
	s.PointerUp(110, 110)
	require.Len(t, s.Scene.Areas, 1)

	s.Undo()
	assert.Empty(t, s.Scene.Areas)

	s.Redo()
	require.Len(t, s.Scene.Areas, 1)

	// A new mutation after undo truncates the redo branch.
	s.Undo()
	s.SetTool(AreaToolRectangle)
	s.PointerDown(200, 200)
	s.PointerUp(300, 300)
	assert.False(t, s.CanRedo())
	require.Len(t, s.Scene.Areas, 1)
	assert.Equal(t, 200.0, s.Scene.Areas[0].X)
}

func TestSetRealSize(t *testing.T) {
	s := newCalibratedSession(t)
	a := s.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, X: 0, Y: 0, Width: 100, Height: 50})
	s.Scene.UpdateArea(a.ID, func(area *scene.PrintArea) {
		area.RealWidth = 10
		area.RealHeight = 5
	})

	require.True(t, s.SetRealSize(a.ID, 20, 8, false))
	assert.Equal(t, 200.0, a.Width)
	assert.Equal(t, 80.0, a.Height)
	assert.Equal(t, 20.0, a.RealWidth)
	assert.Equal(t, 8.0, a.RealHeight)
}

func TestSetRealSizeProportional(t *testing.T) {
	s := newCalibratedSession(t)
	a := s.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, X: 0, Y: 0, Width: 100, Height: 50})
	s.Scene.UpdateArea(a.ID, func(area *scene.PrintArea) {
		area.RealWidth = 10
		area.RealHeight = 5
	})

	require.True(t, s.SetRealSize(a.ID, 20, 999, true))
	assert.Equal(t, 20.0, a.RealWidth)
	assert.Equal(t, 10.0, a.RealHeight)
	assert.Equal(t, 200.0, a.Width)
	assert.Equal(t, 100.0, a.Height)
}

func TestSetRealSizeRequiresCalibration(t *testing.T) {
	s := NewAreaSession(nil, nil, 0, false)
	a := s.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, Width: 100, Height: 50})

	assert.False(t, s.SetRealSize(a.ID, 10, 5, false))
	assert.False(t, s.SetRealSize("missing", 10, 5, false))
}

func TestApplyStandardSize(t *testing.T) {
	s := newCalibratedSession(t)
	a := s.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, Width: 100, Height: 50})

	size, ok := StandardSizeByName("A4")
	require.True(t, ok)

	require.True(t, s.ApplyStandardSize(a.ID, "A4"))
	assert.InDelta(t, size.Width*10, a.Width, 1e-9)
	assert.InDelta(t, size.Height*10, a.Height, 1e-9)

	assert.False(t, s.ApplyStandardSize(a.ID, "Nonexistent"))
}

func TestDirtyTracking(t *testing.T) {
	s := newCalibratedSession(t)
	assert.False(t, s.Dirty())

	s.Scene.AddArea(scene.PrintArea{Shape: scene.ShapeRectangle, Width: 100, Height: 50})
	assert.True(t, s.Dirty())

	s.ClearDirty()
	assert.False(t, s.Dirty())

	s.Undo()
	assert.True(t, s.Dirty())
}

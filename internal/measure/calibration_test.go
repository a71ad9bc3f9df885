package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"print-studio/internal/scene"
	"print-studio/pkg/geometry"
)

func line(x1, y1, x2, y2, realCm float64) *scene.MeasurementLine {
	return &scene.MeasurementLine{
		Start:        geometry.NewPoint2D(x1, y1),
		End:          geometry.NewPoint2D(x2, y2),
		RealDistance: realCm,
	}
}

func TestCalibrationUnsetByDefault(t *testing.T) {
	c := NewCalibration()
	assert.False(t, c.Valid())
	assert.Equal(t, 0.0, c.PixelsPerCm())

	_, ok := c.ToRealWorld(100)
	assert.False(t, ok)
	_, ok = c.ToPixels(10)
	assert.False(t, ok)
}

func TestCalibrationApplyLine(t *testing.T) {
	c := NewCalibration()
	c.ApplyLine(line(0, 0, 100, 0, 10))

	assert.True(t, c.Valid())
	assert.InDelta(t, 10.0, c.PixelsPerCm(), 1e-9)

	cm, ok := c.ToRealWorld(50)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, cm, 1e-9)

	px, ok := c.ToPixels(3)
	assert.True(t, ok)
	assert.InDelta(t, 30.0, px, 1e-9)
}

func TestCalibrationLastWriteWins(t *testing.T) {
	c := NewCalibration()
	c.ApplyLine(line(0, 0, 100, 0, 10))
	c.ApplyLine(line(0, 0, 200, 0, 10))

	assert.InDelta(t, 20.0, c.PixelsPerCm(), 1e-9)
}

func TestCalibrationIgnoresNonPositive(t *testing.T) {
	c := NewCalibration()
	c.SetPixelsPerCm(8)
	c.SetPixelsPerCm(0)
	c.SetPixelsPerCm(-3)

	assert.InDelta(t, 8.0, c.PixelsPerCm(), 1e-9)
}

func TestCalibrationRestore(t *testing.T) {
	c := NewCalibration()
	c.Restore(12.5, true)
	assert.True(t, c.Valid())
	assert.InDelta(t, 12.5, c.PixelsPerCm(), 1e-9)

	c2 := NewCalibration()
	c2.Restore(12.5, false)
	assert.False(t, c2.Valid())

	c3 := NewCalibration()
	c3.Restore(0, true)
	assert.False(t, c3.Valid())
}

func TestLineConsistency(t *testing.T) {
	lines := []*scene.MeasurementLine{
		line(0, 0, 100, 0, 10), // 10 px/cm
		line(0, 0, 0, 120, 10), // 12 px/cm
		line(0, 0, 50, 0, 0),   // skipped, no real distance
	}

	c := LineConsistency(lines)
	assert.Equal(t, 2, c.Count)
	assert.InDelta(t, 11.0, c.Mean, 1e-9)
	assert.Greater(t, c.StdDev, 0.0)
}

func TestLineConsistencyEmpty(t *testing.T) {
	assert.Equal(t, Consistency{}, LineConsistency(nil))

	c := LineConsistency([]*scene.MeasurementLine{line(0, 0, 100, 0, 10)})
	assert.Equal(t, 1, c.Count)
	assert.Equal(t, 0.0, c.StdDev)
}

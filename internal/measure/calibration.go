// Package measure provides the coordinate and calibration engine: the
// mapping between screen and logical canvas coordinates, and between pixel
// distances and real-world centimeters.
package measure

import (
	"gonum.org/v1/gonum/stat"

	"print-studio/internal/scene"
)

// Calibration holds the active pixels-per-centimeter scale for an editing
// session. The most recently confirmed measurement line (or a manual
// override) wins; earlier lines are kept only as reference geometry.
type Calibration struct {
	pixelsPerCm float64
	valid       bool
}

// NewCalibration returns an unset calibration.
func NewCalibration() *Calibration {
	return &Calibration{}
}

// Restore initializes the calibration from persisted measurement data.
// Non-positive values leave it unset.
func (c *Calibration) Restore(pixelsPerCm float64, hasValidMeasurement bool) {
	if pixelsPerCm > 0 && hasValidMeasurement {
		c.pixelsPerCm = pixelsPerCm
		c.valid = true
	}
}

// SetPixelsPerCm sets the active scale. Values of zero or below are
// silently ignored; callers validate user input before calling.
func (c *Calibration) SetPixelsPerCm(v float64) {
	if v <= 0 {
		return
	}
	c.pixelsPerCm = v
	c.valid = true
}

// ApplyLine derives the scale from a confirmed measurement line,
// overwriting any previous scale (last write wins).
func (c *Calibration) ApplyLine(line *scene.MeasurementLine) {
	c.SetPixelsPerCm(line.PixelsPerCm())
}

// PixelsPerCm returns the active scale, or 0 when unset.
func (c *Calibration) PixelsPerCm() float64 {
	if !c.valid {
		return 0
	}
	return c.pixelsPerCm
}

// Valid reports whether a usable scale has been established.
func (c *Calibration) Valid() bool {
	return c.valid
}

// ToRealWorld converts a pixel distance to centimeters. Returns ok=false
// when no calibration is set, so callers never divide by zero.
func (c *Calibration) ToRealWorld(pixels float64) (cm float64, ok bool) {
	if !c.valid || c.pixelsPerCm == 0 {
		return 0, false
	}
	return pixels / c.pixelsPerCm, true
}

// ToPixels converts a centimeter distance to pixels. Returns ok=false when
// no calibration is set.
func (c *Calibration) ToPixels(cm float64) (pixels float64, ok bool) {
	if !c.valid {
		return 0, false
	}
	return cm * c.pixelsPerCm, true
}

// Consistency summarizes how well the derived scales of a set of
// measurement lines agree. Shown in the measurement panel as advisory
// information; it never feeds back into the active scale.
type Consistency struct {
	Count  int
	Mean   float64
	StdDev float64
}

// LineConsistency computes mean and standard deviation of the
// pixels-per-cm values derived from each line. Lines with non-positive
// real distances are skipped.
func LineConsistency(lines []*scene.MeasurementLine) Consistency {
	var scales []float64
	for _, l := range lines {
		if ppc := l.PixelsPerCm(); ppc > 0 {
			scales = append(scales, ppc)
		}
	}
	if len(scales) == 0 {
		return Consistency{}
	}

	out := Consistency{
		Count: len(scales),
		Mean:  stat.Mean(scales, nil),
	}
	if len(scales) > 1 {
		out.StdDev = stat.StdDev(scales, nil)
	}
	return out
}

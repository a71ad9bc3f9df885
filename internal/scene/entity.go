// Package scene holds the editable entities of the print-area and template
// editors and the mutation operations over them.
package scene

import (
	"github.com/google/uuid"

	"print-studio/pkg/colorutil"
	"print-studio/pkg/geometry"
)

// MinAreaSize is the minimum width and height (logical pixels) a drag
// gesture must cover before it commits a print area.
const MinAreaSize = 10.0

// MinMeasurementLength is the minimum pixel length of a measurement line.
// Shorter lines are rejected to avoid deriving a scale from a near-zero
// distance.
const MinMeasurementLength = 10.0

// Shape identifies the geometry variant of a print area.
type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
	ShapeEllipse   Shape = "ellipse"
	ShapePolygon   Shape = "polygon"
)

// PrintArea is a user-defined region on a product image where print
// content is allowed. Coordinates are logical canvas pixels.
type PrintArea struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Shape       Shape   `json:"shape"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Rotation    float64 `json:"rotation"`

	// Polygon vertices, only set for ShapePolygon.
	Points []geometry.Point2D `json:"points,omitempty"`

	// Physical size in cm, derived from the calibration scale.
	RealWidth  float64 `json:"realWidth,omitempty"`
	RealHeight float64 `json:"realHeight,omitempty"`

	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity"`
	ZIndex   int     `json:"zIndex"`
	IsActive bool    `json:"isActive"`
	Locked   bool    `json:"locked"`

	// Reference-relative form, filled in on save when the natural image
	// dimensions are known.
	IsRelativeCoordinates bool    `json:"isRelativeCoordinates,omitempty"`
	ReferenceWidth        float64 `json:"referenceWidth,omitempty"`
	ReferenceHeight       float64 `json:"referenceHeight,omitempty"`
}

// Bounds returns the axis-aligned bounding box used for hit-testing and
// selection handles. Polygon areas are bounded by their vertices.
func (a *PrintArea) Bounds() geometry.Rect {
	if a.Shape == ShapePolygon && len(a.Points) > 0 {
		return geometry.BoundingBox(a.Points)
	}
	return geometry.NewRect(a.X, a.Y, a.Width, a.Height)
}

// Clone returns a deep copy of the area.
func (a *PrintArea) Clone() *PrintArea {
	c := *a
	if len(a.Points) > 0 {
		c.Points = make([]geometry.Point2D, len(a.Points))
		copy(c.Points, a.Points)
	}
	return &c
}

// MeasurementLine is a calibration reference: two points and a known
// real-world distance in cm.
type MeasurementLine struct {
	ID           string           `json:"id"`
	Start        geometry.Point2D `json:"start"`
	End          geometry.Point2D `json:"end"`
	RealDistance float64          `json:"realDistance"`
	Label        string           `json:"label,omitempty"`
	Color        string           `json:"color,omitempty"`
}

// PixelLength returns the Euclidean length of the line in logical pixels.
func (m *MeasurementLine) PixelLength() float64 {
	return m.Start.Distance(m.End)
}

// PixelsPerCm derives the scale from this line. Returns 0 when the real
// distance is not positive.
func (m *MeasurementLine) PixelsPerCm() float64 {
	if m.RealDistance <= 0 {
		return 0
	}
	return m.PixelLength() / m.RealDistance
}

// Clone returns a copy of the line.
func (m *MeasurementLine) Clone() *MeasurementLine {
	c := *m
	return &c
}

// NewID returns a fresh entity id with the given kind prefix, unique for
// the editing session.
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// defaultAreaColor is applied when a created area carries no color.
var defaultAreaColor = colorutil.DefaultAreaHex

// defaultMeasurementColor is applied to confirmed measurement lines.
var defaultMeasurementColor = colorutil.DefaultMeasurementHex

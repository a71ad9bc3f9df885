package persist

import "print-studio/internal/scene"

// makeRelative rewrites an area's geometry as fractions of the reference
// image dimensions and stamps the real-world size from the calibration
// scale. Areas keep their pixel form when the image dimensions are
// unknown.
func makeRelative(a *scene.PrintArea, refWidth, refHeight, pixelsPerCm float64) {
	if refWidth <= 0 || refHeight <= 0 {
		return
	}

	if pixelsPerCm > 0 {
		a.RealWidth = a.Width / pixelsPerCm
		a.RealHeight = a.Height / pixelsPerCm
	}

	a.X /= refWidth
	a.Y /= refHeight
	a.Width /= refWidth
	a.Height /= refHeight
	for i := range a.Points {
		a.Points[i].X /= refWidth
		a.Points[i].Y /= refHeight
	}
	a.IsRelativeCoordinates = true
	a.ReferenceWidth = refWidth
	a.ReferenceHeight = refHeight
}

// resolveRelative converts a relative-form area back to pixel
// coordinates against its stored reference dimensions. Plain pixel
// areas pass through unchanged, keeping older documents loadable.
func resolveRelative(a *scene.PrintArea) {
	if !a.IsRelativeCoordinates || a.ReferenceWidth <= 0 || a.ReferenceHeight <= 0 {
		return
	}

	a.X *= a.ReferenceWidth
	a.Y *= a.ReferenceHeight
	a.Width *= a.ReferenceWidth
	a.Height *= a.ReferenceHeight
	for i := range a.Points {
		a.Points[i].X *= a.ReferenceWidth
		a.Points[i].Y *= a.ReferenceHeight
	}
	a.IsRelativeCoordinates = false
}

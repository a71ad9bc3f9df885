// Package render paints editor frames into RGBA images. Painting is
// stateless: every frame is drawn from scratch out of the data in the
// frame struct, so the output never depends on what a previous frame
// looked like.
package render

import (
	"image"
	"image/color"

	"print-studio/pkg/geometry"
)

// blendPixel alpha-blends col over the existing pixel at the given
// opacity.
func blendPixel(output *image.RGBA, x, y int, col color.RGBA, opacity float64) {
	bounds := output.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	if opacity >= 1 {
		output.SetRGBA(x, y, col)
		return
	}
	if opacity <= 0 {
		return
	}
	existing := output.RGBAAt(x, y)
	inv := 1 - opacity
	output.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(col.R)*opacity + float64(existing.R)*inv),
		G: uint8(float64(col.G)*opacity + float64(existing.G)*inv),
		B: uint8(float64(col.B)*opacity + float64(existing.B)*inv),
		A: 255,
	})
}

// fillRect fills an axis-aligned rectangle with alpha blending.
func fillRect(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, opacity float64) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			blendPixel(output, x, y, col, opacity)
		}
	}
}

// strokeRect draws a rectangle outline with the given thickness.
func strokeRect(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		for x := x1; x <= x2; x++ {
			blendPixel(output, x, y1+t, col, 1)
			blendPixel(output, x, y2-t, col, 1)
		}
		for y := y1; y <= y2; y++ {
			blendPixel(output, x1+t, y, col, 1)
			blendPixel(output, x2-t, y, col, 1)
		}
	}
}

// dashRect draws a dashed rectangle outline, used for drag previews.
func dashRect(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	for x := x1; x <= x2; x++ {
		if (x+y1)%6 < 3 {
			blendPixel(output, x, y1, col, 1)
		}
		if (x+y2)%6 < 3 {
			blendPixel(output, x, y2, col, 1)
		}
	}
	for y := y1; y <= y2; y++ {
		if (x1+y)%6 < 3 {
			blendPixel(output, x1, y, col, 1)
		}
		if (x2+y)%6 < 3 {
			blendPixel(output, x2, y, col, 1)
		}
	}
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				blendPixel(output, x1+s, y1+t, col, 1)
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillEllipse fills the ellipse inscribed in the given rectangle with
// alpha blending. An outline ring is drawn at full opacity when
// thickness is above zero.
func fillEllipse(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, opacity float64, outline color.RGBA, thickness int) {
	cx := float64(x1+x2) / 2
	cy := float64(y1+y2) / 2
	rx := float64(x2-x1) / 2
	ry := float64(y2-y1) / 2
	if rx <= 0 || ry <= 0 {
		return
	}

	// Inner radii of the outline ring.
	irx := rx - float64(thickness)
	iry := ry - float64(thickness)

	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			nx := (float64(x) - cx) / rx
			ny := (float64(y) - cy) / ry
			d := nx*nx + ny*ny
			if d > 1 {
				continue
			}
			if thickness > 0 && irx > 0 && iry > 0 {
				inx := (float64(x) - cx) / irx
				iny := (float64(y) - cy) / iry
				if inx*inx+iny*iny > 1 {
					blendPixel(output, x, y, outline, 1)
					continue
				}
			}
			blendPixel(output, x, y, col, opacity)
		}
	}
}

// fillPolygon fills a polygon using a scanline algorithm and strokes its
// edges.
func fillPolygon(output *image.RGBA, points []geometry.Point2D, col color.RGBA, opacity float64, outline color.RGBA, thickness int) {
	if len(points) < 3 {
		return
	}

	box := geometry.BoundingBox(points)
	minY := int(box.Y)
	maxY := int(box.Y + box.Height)

	for y := minY; y <= maxY; y++ {
		// Find all x intersections with polygon edges at this y.
		var xs []float64
		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]
			if (p1.Y <= float64(y) && p2.Y > float64(y)) ||
				(p2.Y <= float64(y) && p1.Y > float64(y)) {
				t := (float64(y) - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}

		for i := 0; i < len(xs)-1; i++ {
			for j := i + 1; j < len(xs); j++ {
				if xs[j] < xs[i] {
					xs[i], xs[j] = xs[j], xs[i]
				}
			}
		}

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(xs[i]); x <= int(xs[i+1]); x++ {
				blendPixel(output, x, y, col, opacity)
			}
		}
	}

	n := len(points)
	for i := 0; i < n; i++ {
		p1 := points[i]
		p2 := points[(i+1)%n]
		drawLine(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), outline, thickness)
	}
}

// handleSize is the side length of a selection handle square.
const handleSize = 8

// drawHandles draws the eight selection handles of a bounding box:
// white squares with a colored border.
func drawHandles(output *image.RGBA, box geometry.Rect, col color.RGBA) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, p := range box.HandlePositions() {
		x1 := int(p.X) - handleSize/2
		y1 := int(p.Y) - handleSize/2
		x2 := x1 + handleSize
		y2 := y1 + handleSize
		fillRect(output, x1, y1, x2, y2, white, 1)
		strokeRect(output, x1, y1, x2, y2, col, 1)
	}
}

package render

import (
	"fmt"
	"image"
	"image/color"
	draw2 "image/draw"

	xdraw "golang.org/x/image/draw"

	"print-studio/internal/measure"
	"print-studio/internal/scene"
	"print-studio/pkg/colorutil"
	"print-studio/pkg/geometry"
)

// AreaFrame is everything a single print-area editor frame needs.
type AreaFrame struct {
	Width  int
	Height int

	Background image.Image // Product image, nil until loaded
	Viewport   *measure.Viewport

	Areas      []*scene.PrintArea // Paint order (ascending zIndex)
	SelectedID string
	Lines      []*scene.MeasurementLine

	// Drag previews; nil when no gesture is in flight.
	Preview        *geometry.Rect
	PreviewShape   scene.Shape
	MeasurePreview *[2]geometry.Point2D
	Pending        *[2]geometry.Point2D

	Text *TextRenderer
}

var (
	frameBackground = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	previewColor    = colorutil.Accent
)

// PaintAreaFrame renders a complete frame for the print-area editor.
func PaintAreaFrame(f AreaFrame) *image.RGBA {
	output := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	draw2.Draw(output, output.Bounds(), image.NewUniform(frameBackground), image.Point{}, draw2.Src)

	paintBackground(output, f)

	frameRect := geometry.NewRect(0, 0, float64(f.Width), float64(f.Height))
	for _, a := range f.Areas {
		if !a.IsActive {
			continue
		}
		if !screenRect(f.Viewport, a.Bounds()).Intersects(frameRect) {
			continue
		}
		paintArea(output, f, a)
	}

	if f.SelectedID != "" {
		for _, a := range f.Areas {
			if a.ID == f.SelectedID {
				drawHandles(output, screenRect(f.Viewport, a.Bounds()), previewColor)
				break
			}
		}
	}

	for _, line := range f.Lines {
		paintMeasurementLine(output, f, line)
	}

	if f.Preview != nil {
		paintPreview(output, f)
	}
	if f.MeasurePreview != nil {
		paintMeasurePreview(output, f, *f.MeasurePreview, false)
	}
	if f.Pending != nil {
		paintMeasurePreview(output, f, *f.Pending, true)
	}

	return output
}

// paintBackground scales the product image into screen space.
func paintBackground(output *image.RGBA, f AreaFrame) {
	if f.Background == nil {
		return
	}
	b := f.Background.Bounds()
	x0, y0 := f.Viewport.ToScreen(geometry.Point2D{})
	x1, y1 := f.Viewport.ToScreen(geometry.Point2D{X: float64(b.Dx()), Y: float64(b.Dy())})
	dst := image.Rect(int(x0), int(y0), int(x1), int(y1))
	xdraw.ApproxBiLinear.Scale(output, dst, f.Background, b, xdraw.Over, nil)
}

func screenRect(v *measure.Viewport, r geometry.Rect) geometry.Rect {
	x0, y0 := v.ToScreen(geometry.Point2D{X: r.X, Y: r.Y})
	x1, y1 := v.ToScreen(geometry.Point2D{X: r.X + r.Width, Y: r.Y + r.Height})
	return geometry.RectFromCorners(geometry.Point2D{X: x0, Y: y0}, geometry.Point2D{X: x1, Y: y1})
}

func paintArea(output *image.RGBA, f AreaFrame, a *scene.PrintArea) {
	fill := colorutil.ParseHex(a.Color, colorutil.Blue)
	outline := fill
	thickness := 2
	if a.ID == f.SelectedID {
		thickness = 3
	}

	switch a.Shape {
	case scene.ShapePolygon:
		pts := make([]geometry.Point2D, len(a.Points))
		for i, p := range a.Points {
			x, y := f.Viewport.ToScreen(p)
			pts[i] = geometry.Point2D{X: x, Y: y}
		}
		fillPolygon(output, pts, fill, a.Opacity, outline, thickness)

	case scene.ShapeCircle, scene.ShapeEllipse:
		r := screenRect(f.Viewport, a.Bounds())
		fillEllipse(output, int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height), fill, a.Opacity, outline, thickness)

	default:
		r := screenRect(f.Viewport, a.Bounds())
		fillRect(output, int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height), fill, a.Opacity)
		strokeRect(output, int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height), outline, thickness)
	}

	if f.Text != nil && a.Name != "" {
		c := a.Bounds().Center()
		if a.Shape == scene.ShapePolygon && len(a.Points) > 0 {
			c = geometry.Centroid(a.Points)
		}
		cx, cy := f.Viewport.ToScreen(c)
		label := a.Name
		if a.RealWidth > 0 && a.RealHeight > 0 {
			label = fmt.Sprintf("%s (%.1f x %.1f cm)", a.Name, a.RealWidth, a.RealHeight)
		}
		f.Text.DrawStringCentered(output, label, cx, cy, 12, colorutil.Black)
	}
}

func paintPreview(output *image.RGBA, f AreaFrame) {
	r := screenRect(f.Viewport, *f.Preview)
	if f.PreviewShape == scene.ShapeCircle || f.PreviewShape == scene.ShapeEllipse {
		fillEllipse(output, int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height), previewColor, 0.15, previewColor, 1)
	} else {
		fillRect(output, int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height), previewColor, 0.15)
	}
	dashRect(output, int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height), previewColor)
}

func paintMeasurementLine(output *image.RGBA, f AreaFrame, line *scene.MeasurementLine) {
	col := colorutil.ParseHex(line.Color, colorutil.Red)
	x1, y1 := f.Viewport.ToScreen(line.Start)
	x2, y2 := f.Viewport.ToScreen(line.End)
	drawLine(output, int(x1), int(y1), int(x2), int(y2), col, 2)
	paintEndpoint(output, int(x1), int(y1), col)
	paintEndpoint(output, int(x2), int(y2), col)

	if f.Text != nil && line.Label != "" {
		f.Text.DrawStringCentered(output, line.Label, (x1+x2)/2, (y1+y2)/2-10, 12, col)
	}
}

// paintMeasurePreview draws an in-progress or awaiting-confirmation
// measurement line. The pending form is drawn brighter so the user can
// see which line the distance prompt refers to.
func paintMeasurePreview(output *image.RGBA, f AreaFrame, pts [2]geometry.Point2D, pending bool) {
	col := colorutil.Red
	if !pending {
		col = colorutil.Blend(colorutil.White, colorutil.Red, 0.6)
	}
	x1, y1 := f.Viewport.ToScreen(pts[0])
	x2, y2 := f.Viewport.ToScreen(pts[1])
	drawLine(output, int(x1), int(y1), int(x2), int(y2), col, 2)
	paintEndpoint(output, int(x1), int(y1), col)
	paintEndpoint(output, int(x2), int(y2), col)
}

func paintEndpoint(output *image.RGBA, x, y int, col color.RGBA) {
	fillEllipse(output, x-4, y-4, x+4, y+4, col, 1, col, 0)
}

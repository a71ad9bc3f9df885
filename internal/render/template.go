package render

import (
	"image"
	"image/color"
	draw2 "image/draw"

	xdraw "golang.org/x/image/draw"

	"print-studio/internal/measure"
	"print-studio/internal/scene"
	"print-studio/pkg/colorutil"
	"print-studio/pkg/geometry"
)

// TemplateFrame is everything a single template editor frame needs.
// Images maps element image sources to their decoded pixels; elements
// whose source is missing from the map paint as a placeholder.
type TemplateFrame struct {
	Width  int
	Height int

	Viewport *measure.Viewport
	Canvas   geometry.Size

	Elements    []*scene.Element // Paint order (ascending zIndex)
	SelectedIDs []string
	ShowGrid    bool
	GridSize    float64

	Images map[string]image.Image
	Text   *TextRenderer
}

var (
	canvasWhite     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	gridLineColor   = color.RGBA{R: 224, G: 224, B: 224, A: 255}
	placeholderGray = color.RGBA{R: 229, G: 231, B: 235, A: 255}
)

// PaintTemplateFrame renders a complete frame for the template editor.
func PaintTemplateFrame(f TemplateFrame) *image.RGBA {
	output := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	draw2.Draw(output, output.Bounds(), image.NewUniform(frameBackground), image.Point{}, draw2.Src)

	canvas := screenRect(f.Viewport, geometry.NewRect(0, 0, f.Canvas.Width, f.Canvas.Height))
	fillRect(output, int(canvas.X), int(canvas.Y), int(canvas.X+canvas.Width), int(canvas.Y+canvas.Height), canvasWhite, 1)

	if f.ShowGrid {
		paintGrid(output, f, canvas)
	}

	frameRect := geometry.NewRect(0, 0, float64(f.Width), float64(f.Height))
	for _, el := range f.Elements {
		if !el.IsVisible {
			continue
		}
		if !screenRect(f.Viewport, el.Bounds()).Intersects(frameRect) {
			continue
		}
		paintElement(output, f, el)
	}

	paintSelection(output, f)

	strokeRect(output, int(canvas.X), int(canvas.Y), int(canvas.X+canvas.Width), int(canvas.Y+canvas.Height), gridLineColor, 1)
	return output
}

// paintSelection draws resize handles around the selection: on the
// element itself for a single selection, on the combined bounding box
// when several elements are selected.
func paintSelection(output *image.RGBA, f TemplateFrame) {
	var bounds geometry.Rect
	found := false
	for _, id := range f.SelectedIDs {
		for _, el := range f.Elements {
			if el.ID != id {
				continue
			}
			if !found {
				bounds = el.Bounds()
				found = true
			} else {
				bounds = bounds.Union(el.Bounds())
			}
			break
		}
	}
	if found {
		drawHandles(output, screenRect(f.Viewport, bounds), previewColor)
	}
}

func paintGrid(output *image.RGBA, f TemplateFrame, canvas geometry.Rect) {
	step := f.GridSize
	if step <= 0 {
		step = 20
	}

	for gx := step; gx < f.Canvas.Width; gx += step {
		x, _ := f.Viewport.ToScreen(geometry.Point2D{X: gx})
		drawLine(output, int(x), int(canvas.Y), int(x), int(canvas.Y+canvas.Height), gridLineColor, 1)
	}
	for gy := step; gy < f.Canvas.Height; gy += step {
		_, y := f.Viewport.ToScreen(geometry.Point2D{Y: gy})
		drawLine(output, int(canvas.X), int(y), int(canvas.X+canvas.Width), int(y), gridLineColor, 1)
	}
}

func paintElement(output *image.RGBA, f TemplateFrame, el *scene.Element) {
	r := screenRect(f.Viewport, el.Bounds())

	switch el.Type {
	case scene.ElementText:
		if el.Text == nil || f.Text == nil {
			return
		}
		col := colorutil.ParseHex(el.Text.Fill, colorutil.Black)
		size := el.Text.FontSize * f.Viewport.Zoom()
		f.Text.DrawString(output, el.Text.Content, r.X, r.Y+size, size, col)

	case scene.ElementImage:
		if el.Image == nil {
			return
		}
		img := f.Images[el.Image.Source]
		if img == nil {
			// Source still loading or unresolvable.
			fillRect(output, int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height), placeholderGray, el.Opacity)
			strokeRect(output, int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height), gridLineColor, 1)
			return
		}
		dst := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))
		xdraw.ApproxBiLinear.Scale(output, dst, img, img.Bounds(), xdraw.Over, nil)

	case scene.ElementShape:
		if el.Shape == nil {
			return
		}
		fill := colorutil.ParseHex(el.Shape.FillColor, colorutil.Blue)
		stroke := colorutil.ParseHex(el.Shape.StrokeColor, fill)
		thickness := int(el.Shape.StrokeWidth)
		switch el.Shape.ShapeType {
		case "circle", "ellipse":
			fillEllipse(output, int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height), fill, el.Opacity, stroke, thickness)
		default:
			fillRect(output, int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height), fill, el.Opacity)
			if thickness > 0 {
				strokeRect(output, int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height), stroke, thickness)
			}
		}
	}
}

// Package export renders template designs to PNG files.
package export

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"print-studio/internal/imageio"
	"print-studio/internal/scene"
	"print-studio/pkg/colorutil"
)

// Options controls a template export.
type Options struct {
	CanvasWidth  float64
	CanvasHeight float64

	// Scale multiplies the canvas dimensions, 1 exports at design size.
	Scale float64

	// FontData overrides the embedded fallback font.
	FontData []byte
}

// TemplatePNG renders the elements to a PNG file at the given path.
// Hidden elements are skipped; paint order follows zIndex.
func TemplatePNG(path string, elements []*scene.Element, opts Options) error {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(opts.CanvasWidth * scale)
	h := int(opts.CanvasHeight * scale)
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid canvas size %vx%v", opts.CanvasWidth, opts.CanvasHeight)
	}

	fontData := opts.FontData
	if fontData == nil {
		fontData = goregular.TTF
	}
	ttf, err := truetype.Parse(fontData)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(colorutil.White)
	dc.Clear()
	dc.Scale(scale, scale)

	sorted := sortByZ(elements)
	for _, el := range sorted {
		if !el.IsVisible {
			continue
		}
		drawElement(dc, el, ttf)
	}

	return dc.SavePNG(path)
}

func sortByZ(elements []*scene.Element) []*scene.Element {
	s := scene.NewTemplateScene()
	for _, el := range elements {
		s.Elements = append(s.Elements, el)
	}
	return s.SortedByZ()
}

func drawElement(dc *gg.Context, el *scene.Element, ttf *truetype.Font) {
	switch el.Type {
	case scene.ElementText:
		if el.Text == nil {
			return
		}
		face := truetype.NewFace(ttf, &truetype.Options{
			Size:    el.Text.FontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		dc.SetFontFace(face)
		col := colorutil.ParseHex(el.Text.Fill, colorutil.Black)
		dc.SetRGBA255(int(col.R), int(col.G), int(col.B), int(255*el.Opacity))
		dc.DrawString(el.Text.Content, el.X, el.Y+el.Text.FontSize)

	case scene.ElementImage:
		if el.Image == nil || el.Image.Source == "" {
			return
		}
		img, err := resolveImage(el.Image.Source)
		if err != nil {
			// Unresolvable sources are skipped rather than failing the
			// whole export.
			return
		}
		b := img.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			return
		}
		dc.Push()
		dc.Translate(el.X, el.Y)
		dc.Scale(el.Width/float64(b.Dx()), el.Height/float64(b.Dy()))
		dc.DrawImage(img, 0, 0)
		dc.Pop()

	case scene.ElementShape:
		if el.Shape == nil {
			return
		}
		fill := colorutil.ParseHex(el.Shape.FillColor, colorutil.Blue)
		dc.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(255*el.Opacity))
		switch el.Shape.ShapeType {
		case "circle", "ellipse":
			dc.DrawEllipse(el.X+el.Width/2, el.Y+el.Height/2, el.Width/2, el.Height/2)
		default:
			dc.DrawRectangle(el.X, el.Y, el.Width, el.Height)
		}
		dc.Fill()

		if el.Shape.StrokeWidth > 0 && el.Shape.StrokeColor != "" {
			stroke := colorutil.ParseHex(el.Shape.StrokeColor, fill)
			dc.SetRGBA255(int(stroke.R), int(stroke.G), int(stroke.B), 255)
			dc.SetLineWidth(el.Shape.StrokeWidth)
			switch el.Shape.ShapeType {
			case "circle", "ellipse":
				dc.DrawEllipse(el.X+el.Width/2, el.Y+el.Height/2, el.Width/2, el.Height/2)
			default:
				dc.DrawRectangle(el.X, el.Y, el.Width, el.Height)
			}
			dc.Stroke()
		}
	}
}

// resolveImage loads an element image source: a data URI or a file path.
func resolveImage(source string) (image.Image, error) {
	if img, err := imageio.DecodeDataURI(source); err == nil {
		return img, nil
	}
	p, err := imageio.Load(source)
	if err != nil {
		return nil, err
	}
	return p.Image, nil
}

package render

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// TextRenderer rasterizes strings with a TrueType font. Faces are cached
// per point size; the renderer is safe for concurrent frames.
type TextRenderer struct {
	font *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewTextRenderer parses TTF data into a renderer. The UI feeds it the
// toolkit's bundled text font so painted text matches the widgets.
func NewTextRenderer(ttf []byte) (*TextRenderer, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &TextRenderer{font: f, faces: make(map[float64]font.Face)}, nil
}

func (r *TextRenderer) face(size float64) font.Face {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(r.font, &truetype.Options{Size: size})
	r.faces[size] = f
	return f
}

// Measure returns the advance width and line height of s at the given
// point size.
func (r *TextRenderer) Measure(s string, size float64) (width, height float64) {
	face := r.face(size)
	adv := font.MeasureString(face, s)
	metrics := face.Metrics()
	return float64(adv) / 64, float64(metrics.Ascent+metrics.Descent) / 64
}

// DrawString draws s with its baseline-left origin at (x, y).
func (r *TextRenderer) DrawString(output *image.RGBA, s string, x, y float64, size float64, col color.RGBA) {
	d := &font.Drawer{
		Dst:  output,
		Src:  image.NewUniform(col),
		Face: r.face(size),
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(s)
}

// DrawStringCentered draws s centered on (cx, cy).
func (r *TextRenderer) DrawStringCentered(output *image.RGBA, s string, cx, cy float64, size float64, col color.RGBA) {
	w, _ := r.Measure(s, size)
	metrics := r.face(size).Metrics()
	ascent := float64(metrics.Ascent) / 64
	descent := float64(metrics.Descent) / 64
	r.DrawString(output, s, cx-w/2, cy+(ascent-descent)/2, size, col)
}

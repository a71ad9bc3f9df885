// Command scenerender renders a document to a PNG without the GUI, for
// inspecting save files and the paint pipeline.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"print-studio/internal/editor"
	"print-studio/internal/export"
	"print-studio/internal/imageio"
	"print-studio/internal/measure"
	"print-studio/internal/persist"
	"print-studio/internal/render"
	"print-studio/internal/scene"
	"print-studio/internal/version"

	"golang.org/x/image/font/gofont/goregular"
)

func main() {
	doc := flag.String("doc", "", "Path to a .psarea or .pstmpl document")
	img := flag.String("img", "", "Product image override (area documents)")
	out := flag.String("o", "render.png", "Output PNG path")
	width := flag.Int("w", 1200, "Frame width in pixels")
	height := flag.Int("h", 900, "Frame height in pixels")
	zoom := flag.Float64("zoom", 1.0, "Zoom factor")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("scenerender", version.String())
		return
	}

	if *doc == "" {
		fmt.Println("Usage: scenerender -doc <file> [-img <image>] [-o out.png]")
		os.Exit(1)
	}

	var err error
	switch filepath.Ext(*doc) {
	case ".pstmpl":
		err = renderTemplate(*doc, *out)
	default:
		err = renderArea(*doc, *img, *out, *width, *height, *zoom)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *out)
}

func renderArea(docPath, imgPath, outPath string, width, height int, zoom float64) error {
	doc, err := persist.LoadAreaDocument(docPath)
	if err != nil {
		return err
	}

	text, err := render.NewTextRenderer(goregular.TTF)
	if err != nil {
		return err
	}

	viewport := measure.NewViewport(0.1, 10)
	viewport.SetZoom(zoom)

	sc := scene.NewAreaScene()
	sc.Areas = doc.Areas

	frame := render.AreaFrame{
		Width:    width,
		Height:   height,
		Viewport: viewport,
		Areas:    sc.SortedByZ(),
		Lines:    doc.Lines,
		Text:     text,
	}

	if imgPath == "" {
		imgPath = doc.GetImagePath(docPath)
	}
	if imgPath != "" {
		product, err := imageio.Load(imgPath)
		if err != nil {
			return fmt.Errorf("load image: %w", err)
		}
		frame.Background = product.Image
	}

	fmt.Printf("Areas: %d, measurement lines: %d, scale: %.2f px/cm\n",
		len(doc.Areas), len(doc.Lines), doc.PixelsPerCm)

	output := render.PaintAreaFrame(frame)

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, output)
}

func renderTemplate(docPath, outPath string) error {
	doc, err := persist.LoadTemplateDocument(docPath)
	if err != nil {
		return err
	}

	w := doc.CanvasWidth
	h := doc.CanvasHeight
	if w <= 0 {
		w = editor.DefaultCanvasWidth
	}
	if h <= 0 {
		h = editor.DefaultCanvasHeight
	}

	fmt.Printf("Elements: %d, canvas: %.0fx%.0f\n", len(doc.Elements), w, h)

	return export.TemplatePNG(outPath, doc.Elements, export.Options{
		CanvasWidth:  w,
		CanvasHeight: h,
		Scale:        1.0,
	})
}

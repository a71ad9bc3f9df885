// Package persist provides design file handling and persistence.
package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"print-studio/internal/scene"
)

// AreaDocument is a saved print-area configuration (.psarea).
type AreaDocument struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Product image path (relative to the document file) and its natural
	// pixel dimensions at save time.
	ImagePath   string  `json:"image,omitempty"`
	ImageWidth  float64 `json:"imageWidth,omitempty"`
	ImageHeight float64 `json:"imageHeight,omitempty"`

	// Calibration scale, 0 when never calibrated.
	PixelsPerCm float64 `json:"pixelsPerCm,omitempty"`

	Areas []*scene.PrintArea       `json:"printAreas"`
	Lines []*scene.MeasurementLine `json:"measurementLines,omitempty"`
}

// TemplateDocument is a saved template design (.pstmpl).
type TemplateDocument struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	CanvasWidth  float64 `json:"canvasWidth"`
	CanvasHeight float64 `json:"canvasHeight"`

	Elements []*scene.Element `json:"elements"`
}

// NewAreaDocument creates an empty area document.
func NewAreaDocument(name string) *AreaDocument {
	now := time.Now()
	return &AreaDocument{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
	}
}

// NewTemplateDocument creates an empty template document with the given
// canvas size.
func NewTemplateDocument(name string, canvasWidth, canvasHeight float64) *TemplateDocument {
	now := time.Now()
	return &TemplateDocument{
		Version:      1,
		Name:         name,
		Created:      now,
		Modified:     now,
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
	}
}

// LoadAreaDocument loads an area document from a file. Relative area
// coordinates are resolved back to pixels using the stored reference
// dimensions.
func LoadAreaDocument(path string) (*AreaDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc AreaDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	for _, a := range doc.Areas {
		resolveRelative(a)
	}
	return &doc, nil
}

// Save writes the document to a file. Areas are converted to the
// reference-relative form when the image dimensions are known, so the
// configuration survives the product image being re-exported at another
// resolution.
func (d *AreaDocument) Save(path string) error {
	d.Modified = time.Now()

	out := *d
	out.Areas = make([]*scene.PrintArea, len(d.Areas))
	for i, a := range d.Areas {
		saved := a.Clone()
		makeRelative(saved, d.ImageWidth, d.ImageHeight, d.PixelsPerCm)
		out.Areas[i] = saved
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplateDocument loads a template document from a file.
func LoadTemplateDocument(path string) (*TemplateDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc TemplateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if doc.CanvasWidth <= 0 {
		doc.CanvasWidth = 800
	}
	if doc.CanvasHeight <= 0 {
		doc.CanvasHeight = 600
	}
	return &doc, nil
}

// Save writes the template document to a file.
func (d *TemplateDocument) Save(path string) error {
	d.Modified = time.Now()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SetImage sets the product image path (relative to the document) and
// records its natural dimensions.
func (d *AreaDocument) SetImage(docPath, imagePath string, width, height float64) {
	rel, err := filepath.Rel(filepath.Dir(docPath), imagePath)
	if err != nil {
		d.ImagePath = imagePath
	} else {
		d.ImagePath = rel
	}
	d.ImageWidth = width
	d.ImageHeight = height
	d.Modified = time.Now()
}

// GetImagePath returns the absolute path to the product image.
func (d *AreaDocument) GetImagePath(docPath string) string {
	if d.ImagePath == "" {
		return ""
	}
	if filepath.IsAbs(d.ImagePath) {
		return d.ImagePath
	}
	return filepath.Join(filepath.Dir(docPath), d.ImagePath)
}

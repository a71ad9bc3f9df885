// Package imageio provides product and element image loading.
package imageio

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"print-studio/pkg/geometry"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ProductImage is a loaded product photo: the backdrop the print areas
// are drawn over.
type ProductImage struct {
	Path  string      // Original file path
	Image image.Image // Decoded pixel data
}

// Load loads an image from the specified path.
func Load(path string) (*ProductImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return &ProductImage{Path: path, Image: img}, nil
}

// LoadAsync decodes the image on a background goroutine and delivers the
// result through done. Editing continues while the image loads; the
// caller repaints when the callback fires.
func LoadAsync(path string, done func(*ProductImage, error)) {
	go func() {
		done(Load(path))
	}()
}

// Width returns the image width in pixels.
func (p *ProductImage) Width() int {
	if p.Image == nil {
		return 0
	}
	return p.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (p *ProductImage) Height() int {
	if p.Image == nil {
		return 0
	}
	return p.Image.Bounds().Dy()
}

// Size returns the natural image dimensions.
func (p *ProductImage) Size() geometry.Size {
	return geometry.Size{
		Width:  float64(p.Width()),
		Height: float64(p.Height()),
	}
}

// ToDataURI encodes an image as a base64 PNG data URI, the form template
// elements store their sources in.
func ToDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// FileToDataURI reads an image file and re-encodes it as a PNG data URI.
func FileToDataURI(path string) (string, error) {
	img, err := Load(path)
	if err != nil {
		return "", err
	}
	return ToDataURI(img.Image)
}

// DecodeDataURI decodes a base64 image data URI back into pixel data.
func DecodeDataURI(uri string) (image.Image, error) {
	idx := strings.Index(uri, "base64,")
	if !strings.HasPrefix(uri, "data:image/") || idx < 0 {
		return nil, fmt.Errorf("not an image data URI")
	}

	raw, err := base64.StdEncoding.DecodeString(uri[idx+len("base64,"):])
	if err != nil {
		return nil, fmt.Errorf("decoding data URI: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding image data: %w", err)
	}
	return img, nil
}

// SupportedFormats returns the list of supported image formats.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".tif", ".bmp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

package imageio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestPNG(t, 40, 30)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, p.Path)
	assert.Equal(t, 40, p.Width())
	assert.Equal(t, 30, p.Height())
	assert.Equal(t, 40.0, p.Size().Width)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestLoadAsync(t *testing.T) {
	path := writeTestPNG(t, 8, 8)

	done := make(chan *ProductImage, 1)
	LoadAsync(path, func(p *ProductImage, err error) {
		require.NoError(t, err)
		done <- p
	})

	p := <-done
	assert.Equal(t, 8, p.Width())
}

func TestDataURIRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 5, 7))
	src.Set(2, 3, color.RGBA{R: 200, G: 10, B: 30, A: 255})

	uri, err := ToDataURI(src)
	require.NoError(t, err)
	assert.Contains(t, uri, "data:image/png;base64,")

	decoded, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, 5, decoded.Bounds().Dx())
	assert.Equal(t, 7, decoded.Bounds().Dy())

	r, g, b, _ := decoded.At(2, 3).RGBA()
	assert.Equal(t, uint32(200), r>>8)
	assert.Equal(t, uint32(10), g>>8)
	assert.Equal(t, uint32(30), b>>8)
}

func TestDecodeDataURIRejectsGarbage(t *testing.T) {
	_, err := DecodeDataURI("not a uri")
	assert.Error(t, err)

	_, err = DecodeDataURI("data:image/png;base64,!!!")
	assert.Error(t, err)

	_, err = DecodeDataURI("data:text/plain;base64,aGVsbG8=")
	assert.Error(t, err)
}

func TestFileToDataURI(t *testing.T) {
	path := writeTestPNG(t, 4, 4)

	uri, err := FileToDataURI(path)
	require.NoError(t, err)

	img, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("photo.PNG"))
	assert.True(t, IsSupportedFormat("scan.tiff"))
	assert.True(t, IsSupportedFormat("pic.jpeg"))
	assert.False(t, IsSupportedFormat("notes.txt"))
	assert.False(t, IsSupportedFormat("archive"))
}

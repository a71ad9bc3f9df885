package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHex(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 59, G: 130, B: 246, A: 255}, ParseHex("#3B82F6", Black))
	assert.Equal(t, color.RGBA{R: 59, G: 130, B: 246, A: 255}, ParseHex("#3b82f6", Black))
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, ParseHex("#F00", Black))
}

func TestParseHexFallback(t *testing.T) {
	assert.Equal(t, Red, ParseHex("", Red))
	assert.Equal(t, Red, ParseHex("3B82F6", Red))
	assert.Equal(t, Red, ParseHex("#12345", Red))
	assert.Equal(t, Red, ParseHex("#GGGGGG", Red))
}

func TestFormatHexRoundTrip(t *testing.T) {
	c := color.RGBA{R: 239, G: 68, B: 68, A: 255}
	assert.Equal(t, "#EF4444", FormatHex(c))
	assert.Equal(t, c, ParseHex(FormatHex(c), Black))
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(White, 0.5)
	assert.Equal(t, uint8(127), c.A)
	assert.Equal(t, uint8(255), WithAlpha(White, 2).A)
	assert.Equal(t, uint8(0), WithAlpha(White, -1).A)
}

func TestBlend(t *testing.T) {
	assert.Equal(t, Black, Blend(Black, White, 0))
	assert.Equal(t, White, Blend(Black, White, 1))

	mid := Blend(Black, White, 0.5)
	assert.Equal(t, uint8(127), mid.R)
	assert.Equal(t, uint8(255), mid.A)
}

package ahi

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, m image.Image) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, m))
	return &buf
}

func TestDecodePNGGrayMatchesRGB(t *testing.T) {
	levels := []uint8{0, 60, 127, 200, 255, 10}

	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	rgb := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i, v := range levels {
		x, y := i%3, i/3
		gray.SetGray(x, y, color.Gray{Y: v})
		rgb.SetRGBA(x, y, color.RGBA{v, v, v, 255})
	}

	p := DefaultPalette
	a, err := DecodePNG(encodePNG(t, gray), &p)
	require.NoError(t, err)
	b, err := DecodePNG(encodePNG(t, rgb), &p)
	require.NoError(t, err)

	assert.True(t, a.SamePixels(b))
	assert.Equal(t, C1, a.ColorAt(0, 0))
	assert.Equal(t, Ce, a.ColorAt(2, 0))
	assert.Equal(t, Cf, a.ColorAt(1, 1))
}

func TestDecodePNGTransparentPixels(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	m.SetNRGBA(1, 0, color.NRGBA{255, 0, 0, 255})

	p := DefaultPalette
	out, err := DecodePNG(encodePNG(t, m), &p)
	require.NoError(t, err)
	assert.Equal(t, C0, out.ColorAt(0, 0))
	assert.Equal(t, C3, out.ColorAt(1, 0))
}

func TestDecodePNGRejectsIndexed(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	p := DefaultPalette
	_, err := DecodePNG(encodePNG(t, m), &p)
	assert.ErrorIs(t, err, ErrUnsupportedColorType)
}

func TestDecodePNGRejectsGarbage(t *testing.T) {
	p := DefaultPalette
	_, err := DecodePNG(bytes.NewReader([]byte("not a png")), &p)
	assert.Error(t, err)
}

func TestNearestTiesGoToLowestIndex(t *testing.T) {
	var p Palette
	for i := range p {
		p[i] = color.NRGBA{255, 255, 255, 255}
	}
	p[0] = color.NRGBA{}
	p[4] = color.NRGBA{0, 0, 0, 255}
	p[9] = color.NRGBA{2, 0, 0, 255}

	assert.Equal(t, C4, p.Nearest(color.NRGBA{1, 0, 0, 255}))
	assert.Equal(t, C9, p.Nearest(color.NRGBA{2, 0, 0, 255}))
	assert.Equal(t, C1, p.Nearest(color.NRGBA{250, 250, 250, 255}))
	assert.Equal(t, C0, p.Nearest(color.NRGBA{}))
}

func TestDerivePalette(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x < 2 {
				m.SetRGBA(x, y, color.RGBA{200, 0, 0, 255})
			} else {
				m.SetRGBA(x, y, color.RGBA{0, 0, 200, 255})
			}
		}
	}

	p := DerivePalette(m)
	assert.Equal(t, color.NRGBA{}, p[0])
	for i := 1; i < NumColors; i++ {
		assert.Equal(t, uint8(255), p[i].A, "entry %d", i)
	}

	out := FromImage(m, &p)
	assert.NotEqual(t, C0, out.ColorAt(0, 0))
	assert.NotEqual(t, out.ColorAt(0, 0), out.ColorAt(3, 0))
}

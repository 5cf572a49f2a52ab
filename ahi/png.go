package ahi

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

// ErrUnsupportedColorType is returned when importing an indexed PNG.
var ErrUnsupportedColorType = errors.New("ahi: unsupported color type")

// DecodePNG reads a grayscale, grayscale+alpha, RGB or RGBA PNG from r and
// reduces it to an indexed image by nearest-color matching against p.
func DecodePNG(r io.Reader, p *Palette) (*Image, error) {
	m, err := ReadPNG(r)
	if err != nil {
		return nil, err
	}
	return FromImage(m, p), nil
}

// ReadPNG decodes a PNG that can be imported, without quantizing it.
func ReadPNG(r io.Reader) (image.Image, error) {
	m, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode PNG: %w", err)
	}
	if _, ok := m.(*image.Paletted); ok {
		return nil, ErrUnsupportedColorType
	}
	b := m.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		return nil, ErrBadDimensions
	}
	return m, nil
}

// FromImage quantizes any image to p. Gray and opaque pixels take part with
// an alpha of 255.
func FromImage(m image.Image, p *Palette) *Image {
	b := m.Bounds()
	out := NewImage(b.Dx(), b.Dy())
	cache := make(map[color.NRGBA]Color)
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			c := color.NRGBAModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			idx, ok := cache[c]
			if !ok {
				idx = p.Nearest(c)
				cache[c] = idx
			}
			out.pixels[y*out.width+x] = idx
		}
	}
	return out
}

// DerivePalette builds a palette for m with a median cut over its colors.
// C0 stays transparent and unused entries are opaque black.
func DerivePalette(m image.Image) Palette {
	q := quantize.MedianCutQuantizer{}
	colors := q.Quantize(make(color.Palette, 0, NumColors-1), m)

	var p Palette
	for i := 1; i < NumColors; i++ {
		p[i] = color.NRGBA{A: 0xff}
	}
	for i, c := range colors {
		if i+1 >= NumColors {
			break
		}
		p[i+1] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return p
}

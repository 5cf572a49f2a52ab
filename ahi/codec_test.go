package ahi

import (
	"bytes"
	"image/color"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionRoundTrip(t *testing.T) {
	second := DefaultPalette
	second[3] = color.NRGBA{1, 2, 3, 4}

	a := pattern(5, 3)
	a.Tag = "idle"
	a.Metadata = Metadata{{"frames", "4"}, {"loop", "yes"}}
	b := NewImage(1, 1)
	b.PaletteIndex = 1
	b.SetColorAt(0, 0, Cf)

	in := &Collection{Palettes: []Palette{DefaultPalette, second}, Images: []*Image{a, b}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))
	// b is written last and its lone pixel fills the high nibble.
	assert.Equal(t, byte(0xf0), buf.Bytes()[buf.Len()-1])

	out, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, in.Palettes, out.Palettes)
	require.Len(t, out.Images, 2)
	for i := range in.Images {
		assert.True(t, in.Images[i].Equal(out.Images[i]), "image %d", i)
	}
}

func TestEncodeWithoutPalettesUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &Collection{Images: []*Image{NewImage(2, 2)}}))
	out, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultPalettes(), out.Palettes)
}

func TestEncodeRejects(t *testing.T) {
	bad := NewImage(2, 2)
	bad.PaletteIndex = 3
	assert.ErrorIs(t, Encode(io.Discard, &Collection{Images: []*Image{bad}}), ErrBadPaletteIndex)
	assert.ErrorIs(t, Encode(io.Discard, &Collection{Images: []*Image{NewImage(0, 2)}}), ErrBadDimensions)

	tagged := NewImage(2, 2)
	tagged.Tag = "walk\xff"
	var buf bytes.Buffer
	assert.ErrorIs(t, Encode(&buf, &Collection{Images: []*Image{tagged}}), errStringNotUTF8)
	assert.Zero(t, buf.Len(), "nothing is written before validation")

	described := NewImage(2, 2)
	described.Metadata = Metadata{{Key: "k", Value: "\xc3"}}
	assert.ErrorIs(t, Encode(io.Discard, &Collection{Images: []*Image{described}}), errStringNotUTF8)

	font := &Font{Baseline: 1, LineHeight: 2, Glyphs: []Glyph{{Char: 'a', Image: tagged}}}
	assert.ErrorIs(t, EncodeFont(io.Discard, font), errStringNotUTF8)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("nope")))
	assert.ErrorIs(t, err, ErrBadMagic)

	_, err = Decode(bytes.NewReader([]byte("ah")))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &Collection{Images: []*Image{pattern(8, 8)}}))
	truncated := buf.Bytes()[:buf.Len()-3]
	_, err = Decode(bytes.NewReader(truncated))
	assert.ErrorIs(t, err, errNotEnoughData)
}

func TestFontRoundTrip(t *testing.T) {
	glyph := func(ch rune, w int) Glyph {
		m := pattern(w, 7)
		return Glyph{Char: ch, Image: m, LeftEdge: 1, RightEdge: -1}
	}
	in := &Font{
		Baseline:   5,
		LineHeight: 7,
		Palettes:   DefaultPalettes(),
		Glyphs:     []Glyph{glyph('b', 4), glyph('a', 3), glyph('é', 5)},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeFont(&buf, in))
	out, err := DecodeFont(&buf)
	require.NoError(t, err)

	assert.Equal(t, 5, out.Baseline)
	assert.Equal(t, 7, out.LineHeight)
	require.Len(t, out.Glyphs, 3)
	assert.Equal(t, 'a', out.Glyphs[0].Char)
	assert.Equal(t, 'b', out.Glyphs[1].Char)
	assert.Equal(t, 'é', out.Glyphs[2].Char)

	g, ok := out.Glyph('b')
	require.True(t, ok)
	assert.Equal(t, 1, g.LeftEdge)
	assert.Equal(t, -1, g.RightEdge)
	assert.Equal(t, 4, g.Advance())
	assert.True(t, g.Image.Equal(in.Glyphs[0].Image))

	_, ok = out.Glyph('z')
	assert.False(t, ok)
}

func TestFontRejects(t *testing.T) {
	f := &Font{Baseline: 3, LineHeight: 2}
	assert.ErrorIs(t, EncodeFont(io.Discard, f), ErrBadMetrics)

	f = &Font{Baseline: 1, LineHeight: 2, Glyphs: []Glyph{{Char: 'a', Image: NewImage(2, 3)}}}
	assert.ErrorIs(t, EncodeFont(io.Discard, f), ErrGlyphHeight)

	f = &Font{Baseline: 1, LineHeight: 2, Glyphs: []Glyph{
		{Char: 'a', Image: NewImage(2, 2)},
		{Char: 'a', Image: NewImage(2, 2)},
	}}
	assert.ErrorIs(t, EncodeFont(io.Discard, f), ErrDuplicateGlyph)
}

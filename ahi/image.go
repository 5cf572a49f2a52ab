/*
Package ahi implements the AHI indexed image collection format and the AHF
bitmap font format, together with the in-memory indexed Image both formats
are built on.

Every pixel is one of sixteen palette indices. Index 0 is transparent by
convention; the remaining fifteen are opaque and are mapped to RGBA through
a Palette when rendered or exported.
*/
package ahi

import (
	"fmt"
	"image"
	"image/color"
)

// NumColors is the number of entries in a palette.
const NumColors = 16

// MaxDimension is the largest width or height an image may have.
const MaxDimension = 1024

// Color is a palette index in the range 0..15.
type Color uint8

const (
	C0 Color = iota
	C1
	C2
	C3
	C4
	C5
	C6
	C7
	C8
	C9
	Ca
	Cb
	Cc
	Cd
	Ce
	Cf
)

// Transparent reports whether c is the transparent index.
func (c Color) Transparent() bool { return c == C0 }

func (c Color) String() string { return fmt.Sprintf("C%x", uint8(c)) }

// Image is a width by height grid of palette indices, plus the per-image data
// that AHI files carry alongside the pixels.
type Image struct {
	width, height int
	pixels        []Color

	// PaletteIndex selects which palette of the collection the image is
	// shown with.
	PaletteIndex int
	Tag          string
	Metadata     Metadata
}

// NewImage returns a fully transparent image. Negative dimensions are
// treated as zero.
func NewImage(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		width:  width,
		height: height,
		pixels: make([]Color, width*height),
	}
}

func (m *Image) Width() int  { return m.width }
func (m *Image) Height() int { return m.height }

// Bounds returns the image rectangle anchored at the origin.
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

func (m *Image) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// ColorAt returns the pixel at (x, y). Pixels outside the image read as C0.
func (m *Image) ColorAt(x, y int) Color {
	if !m.in(x, y) {
		return C0
	}
	return m.pixels[y*m.width+x]
}

// SetColorAt writes the pixel at (x, y). Writes outside the image are dropped.
func (m *Image) SetColorAt(x, y int, c Color) {
	if !m.in(x, y) {
		return
	}
	m.pixels[y*m.width+x] = c & 0x0f
}

// FillRect fills r, clipped to the image, with c.
func (m *Image) FillRect(r image.Rectangle, c Color) {
	r = r.Canon().Intersect(m.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.pixels[y*m.width : (y+1)*m.width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = c & 0x0f
		}
	}
}

// Draw blits src onto m with its top-left corner at (dx, dy). Transparent
// source pixels and target pixels outside m are skipped.
func (m *Image) Draw(src *Image, dx, dy int) {
	for sy := 0; sy < src.height; sy++ {
		ty := sy + dy
		if ty < 0 || ty >= m.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			tx := sx + dx
			if tx < 0 || tx >= m.width {
				continue
			}
			if c := src.pixels[sy*src.width+sx]; c != C0 {
				m.pixels[ty*m.width+tx] = c
			}
		}
	}
}

// Crop returns a copy of the pixels under r. Parts of r outside the image
// read as transparent.
func (m *Image) Crop(r image.Rectangle) *Image {
	r = r.Canon()
	out := m.derive(r.Dx(), r.Dy())
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			out.pixels[y*out.width+x] = m.ColorAt(r.Min.X+x, r.Min.Y+y)
		}
	}
	return out
}

// Resized returns an image of the given size with m drawn at the origin, so
// shrinking crops from the top-left corner.
func (m *Image) Resized(width, height int) *Image {
	out := m.derive(width, height)
	out.Draw(m, 0, 0)
	return out
}

func (m *Image) FlipHorz() *Image {
	out := m.derive(m.width, m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			out.pixels[y*m.width+(m.width-1-x)] = m.pixels[y*m.width+x]
		}
	}
	return out
}

func (m *Image) FlipVert() *Image {
	out := m.derive(m.width, m.height)
	for y := 0; y < m.height; y++ {
		copy(out.pixels[(m.height-1-y)*m.width:(m.height-y)*m.width], m.pixels[y*m.width:(y+1)*m.width])
	}
	return out
}

// RotateCW rotates a quarter turn clockwise; the result has swapped
// dimensions.
func (m *Image) RotateCW() *Image {
	out := m.derive(m.height, m.width)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			out.pixels[x*out.width+(m.height-1-y)] = m.pixels[y*m.width+x]
		}
	}
	return out
}

// RotateCCW rotates a quarter turn counterclockwise.
func (m *Image) RotateCCW() *Image {
	out := m.derive(m.height, m.width)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			out.pixels[(m.width-1-x)*out.width+y] = m.pixels[y*m.width+x]
		}
	}
	return out
}

// Scale2x doubles both dimensions with nearest-neighbor replication.
func (m *Image) Scale2x() *Image {
	out := m.derive(m.width*2, m.height*2)
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			out.pixels[y*out.width+x] = m.pixels[(y/2)*m.width+x/2]
		}
	}
	return out
}

// Clone returns a deep copy of m.
func (m *Image) Clone() *Image {
	out := m.derive(m.width, m.height)
	copy(out.pixels, m.pixels)
	return out
}

// derive returns a blank image of the given size carrying m's side data.
func (m *Image) derive(width, height int) *Image {
	out := NewImage(width, height)
	out.PaletteIndex = m.PaletteIndex
	out.Tag = m.Tag
	out.Metadata = m.Metadata.Clone()
	return out
}

// SamePixels reports whether m and o have the same size and pixels.
func (m *Image) SamePixels(o *Image) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i, c := range m.pixels {
		if o.pixels[i] != c {
			return false
		}
	}
	return true
}

// Equal reports whether m and o have the same pixels and side data.
func (m *Image) Equal(o *Image) bool {
	return m.SamePixels(o) && m.PaletteIndex == o.PaletteIndex && m.Tag == o.Tag && m.Metadata.Equal(o.Metadata)
}

// CountOpaque returns the number of non-transparent pixels.
func (m *Image) CountOpaque() int {
	n := 0
	for _, c := range m.pixels {
		if c != C0 {
			n++
		}
	}
	return n
}

// RGBA renders m through p.
func (m *Image) RGBA(p *Palette) *image.RGBA {
	out := image.NewRGBA(m.Bounds())
	var table [NumColors]color.RGBA
	for i := range table {
		table[i] = color.RGBAModel.Convert(p[i]).(color.RGBA)
	}
	for i, c := range m.pixels {
		t := table[c]
		out.Pix[i*4+0] = t.R
		out.Pix[i*4+1] = t.G
		out.Pix[i*4+2] = t.B
		out.Pix[i*4+3] = t.A
	}
	return out
}

// Paletted returns m as a standard library paletted image using p, suitable
// for the image encoders.
func (m *Image) Paletted(p *Palette) *image.Paletted {
	cp := make(color.Palette, NumColors)
	for i := range cp {
		cp[i] = p[i]
	}
	out := image.NewPaletted(m.Bounds(), cp)
	for i, c := range m.pixels {
		out.Pix[i] = uint8(c)
	}
	return out
}

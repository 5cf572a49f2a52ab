package ahi

import "image/color"

// Palette maps each of the sixteen color indices to a non-premultiplied RGBA
// value.
type Palette [NumColors]color.NRGBA

// DefaultPalette is used by new documents and by files that carry no
// palette of their own. C0 is fully transparent.
var DefaultPalette = Palette{
	{0, 0, 0, 0},
	{0, 0, 0, 255},
	{127, 0, 0, 255},
	{255, 0, 0, 255},
	{0, 127, 0, 255},
	{0, 255, 0, 255},
	{127, 127, 0, 255},
	{255, 255, 0, 255},
	{0, 0, 127, 255},
	{0, 0, 255, 255},
	{127, 0, 127, 255},
	{255, 0, 255, 255},
	{0, 127, 127, 255},
	{0, 255, 255, 255},
	{127, 127, 127, 255},
	{255, 255, 255, 255},
}

// DefaultPalettes returns a fresh single-entry palette list.
func DefaultPalettes() []Palette {
	return []Palette{DefaultPalette}
}

// Nearest returns the index whose entry is closest to c by squared Euclidean
// distance over the four channels. Ties go to the lowest index.
func (p *Palette) Nearest(c color.NRGBA) Color {
	best, bestSum := C0, -1
	for i, e := range p {
		dr := int(c.R) - int(e.R)
		dg := int(c.G) - int(e.G)
		db := int(c.B) - int(e.B)
		da := int(c.A) - int(e.A)
		sum := dr*dr + dg*dg + db*db + da*da
		if bestSum < 0 || sum < bestSum {
			if sum == 0 {
				return Color(i)
			}
			best, bestSum = Color(i), sum
		}
	}
	return best
}

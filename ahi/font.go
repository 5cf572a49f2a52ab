package ahi

import (
	"errors"
	"io"
	"math"
	"sort"
)

const fontMagic = "ahf1"

var (
	ErrBadMetrics     = errors.New("ahi: invalid font metrics")
	ErrDuplicateGlyph = errors.New("ahi: duplicate glyph")
	ErrGlyphHeight    = errors.New("ahi: glyph height does not match line height")
	errBadEdge        = errors.New("ahi: side-bearing out of range")
)

// Glyph is a single character of an AHF font. LeftEdge and RightEdge are
// the side-bearings: the number of columns at either side of the image that
// overlap the neighbouring glyphs.
type Glyph struct {
	Char      rune
	Image     *Image
	LeftEdge  int
	RightEdge int
}

// Advance is how far the pen moves after drawing g.
func (g *Glyph) Advance() int {
	return g.Image.Width() - g.LeftEdge - g.RightEdge
}

// Font is the content of an AHF file. Every glyph image is LineHeight
// pixels tall and Baseline is measured from the top.
type Font struct {
	Baseline   int
	LineHeight int
	Palettes   []Palette
	Glyphs     []Glyph
}

// Glyph returns the glyph for ch, if any. Glyphs must be sorted.
func (f *Font) Glyph(ch rune) (*Glyph, bool) {
	i := sort.Search(len(f.Glyphs), func(i int) bool { return f.Glyphs[i].Char >= ch })
	if i < len(f.Glyphs) && f.Glyphs[i].Char == ch {
		return &f.Glyphs[i], true
	}
	return nil, false
}

func checkMetrics(baseline, lineHeight int) error {
	if lineHeight < 1 || lineHeight > MaxDimension || baseline < 0 || baseline > lineHeight {
		return ErrBadMetrics
	}
	return nil
}

// DecodeFont reads an AHF font from r.
func DecodeFont(r io.Reader) (*Font, error) {
	d := decoder{r: r}
	if err := d.magic(fontMagic); err != nil {
		return nil, err
	}
	baseline, err := d.u16()
	if err != nil {
		return nil, err
	}
	lineHeight, err := d.u16()
	if err != nil {
		return nil, err
	}
	f := &Font{Baseline: int(int16(baseline)), LineHeight: int(lineHeight)}
	if err := checkMetrics(f.Baseline, f.LineHeight); err != nil {
		return nil, err
	}
	if err := d.readPalettes(); err != nil {
		return nil, err
	}
	f.Palettes = d.palettes

	n, err := d.u16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(n); i++ {
		ch, err := d.u32()
		if err != nil {
			return nil, err
		}
		left, err := d.u16()
		if err != nil {
			return nil, err
		}
		right, err := d.u16()
		if err != nil {
			return nil, err
		}
		m, err := d.readImage()
		if err != nil {
			return nil, err
		}
		if m.Height() != f.LineHeight {
			return nil, ErrGlyphHeight
		}
		g := Glyph{Char: rune(ch), Image: m, LeftEdge: int(int16(left)), RightEdge: int(int16(right))}
		if i > 0 && f.Glyphs[i-1].Char >= g.Char {
			return nil, ErrDuplicateGlyph
		}
		f.Glyphs = append(f.Glyphs, g)
	}
	return f, nil
}

// EncodeFont writes f to w in AHF format. Glyphs are written sorted by
// character.
func EncodeFont(w io.Writer, f *Font) error {
	if err := checkMetrics(f.Baseline, f.LineHeight); err != nil {
		return err
	}
	palettes := f.Palettes
	if len(palettes) == 0 {
		palettes = DefaultPalettes()
	}
	if err := checkPalettes(palettes); err != nil {
		return err
	}
	if len(f.Glyphs) > maxImages {
		return ErrTooManyImages
	}

	glyphs := append([]Glyph(nil), f.Glyphs...)
	sort.Slice(glyphs, func(i, j int) bool { return glyphs[i].Char < glyphs[j].Char })
	for i, g := range glyphs {
		if i > 0 && glyphs[i-1].Char == g.Char {
			return ErrDuplicateGlyph
		}
		if err := checkImage(g.Image, len(palettes)); err != nil {
			return err
		}
		if g.Image.Height() != f.LineHeight {
			return ErrGlyphHeight
		}
		if g.LeftEdge < math.MinInt16 || g.LeftEdge > math.MaxInt16 || g.RightEdge < math.MinInt16 || g.RightEdge > math.MaxInt16 {
			return errBadEdge
		}
	}

	e := newEncoder(w)
	e.write([]byte(fontMagic))
	e.u16(uint16(int16(f.Baseline)))
	e.u16(uint16(f.LineHeight))
	e.writePalettes(palettes)
	e.u16(uint16(len(glyphs)))
	for _, g := range glyphs {
		e.u32(uint32(g.Char))
		e.u16(uint16(int16(g.LeftEdge)))
		e.u16(uint16(int16(g.RightEdge)))
		e.writeImage(g.Image)
	}
	return e.flush()
}

package editor

import (
	"image"
	"slices"

	"github.com/ha1tch/tuna/ahi"
)

// Floater is a selection lifted off the image. The pixels it covers have
// already been cleared from the image underneath. Floaters are never
// modified in place; operations replace them.
type Floater struct {
	Image   *ahi.Image
	TopLeft image.Point
}

// Rect is the area the floater covers in document pixels. It may extend past
// the image.
func (f *Floater) Rect() image.Rectangle {
	return image.Rectangle{Min: f.TopLeft, Max: f.TopLeft.Add(image.Pt(f.Image.Width(), f.Image.Height()))}
}

// ColorAt returns the floater pixel at document position p, or C0 when p
// is outside it.
func (f *Floater) ColorAt(p image.Point) ahi.Color {
	return f.Image.ColorAt(p.X-f.TopLeft.X, p.Y-f.TopLeft.Y)
}

func (f *Floater) equal(o *Floater) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.TopLeft == o.TopLeft && f.Image.Equal(o.Image)
}

type GlyphMetrics struct {
	Char      rune
	LeftEdge  int
	RightEdge int
}

// FontMetrics is present on snapshots of AHF documents. Glyphs runs
// parallel to the snapshot images and is sorted by Char.
type FontMetrics struct {
	Baseline   int
	LineHeight int
	Glyphs     []GlyphMetrics
}

func (fm *FontMetrics) clone() *FontMetrics {
	if fm == nil {
		return nil
	}
	c := *fm
	c.Glyphs = slices.Clone(fm.Glyphs)
	return &c
}

func (fm *FontMetrics) equal(o *FontMetrics) bool {
	if fm == nil || o == nil {
		return fm == o
	}
	return fm.Baseline == o.Baseline && fm.LineHeight == o.LineHeight && slices.Equal(fm.Glyphs, o.Glyphs)
}

// Index returns the position of ch among the glyphs, or where it would be
// inserted.
func (fm *FontMetrics) Index(ch rune) (int, bool) {
	return slices.BinarySearchFunc(fm.Glyphs, ch, func(g GlyphMetrics, ch rune) int {
		return int(g.Char) - int(ch)
	})
}

// handle shares an image between snapshots. Only a unique handle may be
// written through.
type handle struct {
	img    *ahi.Image
	unique bool
}

// Snapshot is one state of the document. Undo and redo keep whole
// snapshots; cloning one copies the image handles, not the pixels.
type Snapshot struct {
	ImageIndex int
	images     []handle

	Selection    *Floater
	Palettes     []ahi.Palette
	PaletteIndex int
	TestSentence string
	Font         *FontMetrics
	Unsaved      bool
}

func newSnapshot(images []*ahi.Image, palettes []ahi.Palette) *Snapshot {
	s := &Snapshot{Palettes: palettes}
	if len(s.Palettes) == 0 {
		s.Palettes = ahi.DefaultPalettes()
	}
	for _, m := range images {
		s.images = append(s.images, handle{img: m, unique: true})
	}
	if len(s.images) == 0 {
		s.images = append(s.images, handle{img: ahi.NewImage(DefaultImageSize, DefaultImageSize), unique: true})
	}
	s.syncPalette()
	return s
}

func (s *Snapshot) clone() *Snapshot {
	c := *s
	c.images = make([]handle, len(s.images))
	for i := range s.images {
		s.images[i].unique = false
		c.images[i] = handle{img: s.images[i].img}
	}
	c.Font = s.Font.clone()
	return &c
}

func (s *Snapshot) NumImages() int { return len(s.images) }

// Image returns the current image. It must not be modified.
func (s *Snapshot) Image() *ahi.Image { return s.images[s.ImageIndex].img }

// ImageAt returns image i. It must not be modified.
func (s *Snapshot) ImageAt(i int) *ahi.Image { return s.images[i].img }

// Images returns the images in order. They must not be modified.
func (s *Snapshot) Images() []*ahi.Image {
	out := make([]*ahi.Image, len(s.images))
	for i, h := range s.images {
		out[i] = h.img
	}
	return out
}

// Palette returns the palette the document is rendered with.
func (s *Snapshot) Palette() *ahi.Palette {
	if s.PaletteIndex < 0 || s.PaletteIndex >= len(s.Palettes) {
		return &s.Palettes[0]
	}
	return &s.Palettes[s.PaletteIndex]
}

// Glyph returns the metrics of the current glyph of a font document.
func (s *Snapshot) Glyph() (GlyphMetrics, bool) {
	if s.Font == nil {
		return GlyphMetrics{}, false
	}
	return s.Font.Glyphs[s.ImageIndex], true
}

// ColorAt reads the document as displayed: the floater pixel where it is
// opaque, the image pixel otherwise.
func (s *Snapshot) ColorAt(p image.Point) ahi.Color {
	if f := s.Selection; f != nil {
		if c := f.ColorAt(p); c != ahi.C0 {
			return c
		}
	}
	return s.Image().ColorAt(p.X, p.Y)
}

// Composited returns the current image with the floater drawn on top.
func (s *Snapshot) Composited() *ahi.Image {
	f := s.Selection
	if f == nil {
		return s.Image()
	}
	m := s.Image().Clone()
	m.Draw(f.Image, f.TopLeft.X, f.TopLeft.Y)
	return m
}

// Equal compares the document contents of two snapshots, including the
// unsaved flag.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s.ImageIndex != o.ImageIndex || len(s.images) != len(o.images) ||
		s.PaletteIndex != o.PaletteIndex || s.TestSentence != o.TestSentence ||
		s.Unsaved != o.Unsaved || !slices.Equal(s.Palettes, o.Palettes) {
		return false
	}
	for i := range s.images {
		if a, b := s.images[i].img, o.images[i].img; a != b && !a.Equal(b) {
			return false
		}
	}
	return s.Selection.equal(o.Selection) && s.Font.equal(o.Font)
}

func (s *Snapshot) mutableImage(i int) *ahi.Image {
	h := &s.images[i]
	if !h.unique {
		h.img = h.img.Clone()
		h.unique = true
	}
	return h.img
}

func (s *Snapshot) setImage(i int, m *ahi.Image) {
	s.images[i] = handle{img: m, unique: true}
}

func (s *Snapshot) insertImage(i int, m *ahi.Image) {
	s.images = slices.Insert(s.images, i, handle{img: m, unique: true})
}

func (s *Snapshot) removeImage(i int) {
	s.images = slices.Delete(s.images, i, i+1)
}

// syncPalette makes the render palette follow the current image.
func (s *Snapshot) syncPalette() {
	if p := s.Image().PaletteIndex; p >= 0 && p < len(s.Palettes) {
		s.PaletteIndex = p
	}
}

package editor

import (
	"image"

	"github.com/ha1tch/tuna/ahi"
)

// Mutation is the only way to change the document. Obtain one from
// State.Mutation or State.PersistentMutation; the undo snapshot has already
// been taken when it is returned.
type Mutation struct {
	st *State
}

// Image returns the current image, writable.
func (m *Mutation) Image() *ahi.Image {
	s := m.st.current
	return s.mutableImage(s.ImageIndex)
}

func (m *Mutation) SetSelection(f *Floater) {
	m.st.current.Selection = f
}

// Select lifts r, clipped to the image, into a floater. Any existing
// floater is committed first.
func (m *Mutation) Select(r image.Rectangle) bool {
	m.Unselect()
	s := m.st.current
	r = r.Canon().Intersect(s.Image().Bounds())
	if r.Empty() {
		return false
	}
	img := m.Image()
	s.Selection = &Floater{Image: img.Crop(r), TopLeft: r.Min}
	img.FillRect(r, ahi.C0)
	return true
}

// Unselect draws the floater back into the image and drops it, returning
// the area it covered.
func (m *Mutation) Unselect() (image.Rectangle, bool) {
	s := m.st.current
	f := s.Selection
	if f == nil {
		return image.Rectangle{}, false
	}
	m.Image().Draw(f.Image, f.TopLeft.X, f.TopLeft.Y)
	s.Selection = nil
	return f.Rect(), true
}

func (m *Mutation) RepositionSelection(topLeft image.Point) bool {
	s := m.st.current
	f := s.Selection
	if f == nil || f.TopLeft == topLeft {
		return false
	}
	s.Selection = &Floater{Image: f.Image, TopLeft: topLeft}
	return true
}

// transformSelection replaces the floater with fn applied to it, or the
// whole current image when nothing is selected.
func (m *Mutation) transformSelection(fn func(*ahi.Image) *ahi.Image) bool {
	s := m.st.current
	if f := s.Selection; f != nil {
		s.Selection = &Floater{Image: fn(f.Image), TopLeft: f.TopLeft}
		return true
	}
	s.setImage(s.ImageIndex, fn(s.Image()))
	return true
}

func (m *Mutation) FlipSelectionHorz() bool  { return m.transformSelection((*ahi.Image).FlipHorz) }
func (m *Mutation) FlipSelectionVert() bool  { return m.transformSelection((*ahi.Image).FlipVert) }
func (m *Mutation) RotateSelectionCW() bool  { return m.transformSelection((*ahi.Image).RotateCW) }
func (m *Mutation) RotateSelectionCCW() bool { return m.transformSelection((*ahi.Image).RotateCCW) }

// ScaleSelection2x doubles the floater. Without one, the whole image is
// lifted first. The result is cropped to the maximum image size.
func (m *Mutation) ScaleSelection2x() bool {
	s := m.st.current
	if s.Selection == nil && !m.Select(s.Image().Bounds()) {
		return false
	}
	f := s.Selection
	scaled := f.Image.Scale2x()
	if scaled.Width() > ahi.MaxDimension || scaled.Height() > ahi.MaxDimension {
		scaled = scaled.Crop(image.Rect(0, 0, min(scaled.Width(), ahi.MaxDimension), min(scaled.Height(), ahi.MaxDimension)))
	}
	s.Selection = &Floater{Image: scaled, TopLeft: f.TopLeft}
	return true
}

// CutSelection moves the floater to the clipboard.
func (m *Mutation) CutSelection() bool {
	s := m.st.current
	if s.Selection == nil {
		return false
	}
	m.st.clipboard = s.Selection
	s.Selection = nil
	return true
}

// PasteSelection commits any floater and replaces it with the clipboard
// contents, switching to the select tool so it can be moved.
func (m *Mutation) PasteSelection() bool {
	cb := m.st.clipboard
	if cb == nil {
		return false
	}
	m.Unselect()
	m.st.current.Selection = &Floater{Image: cb.Image, TopLeft: cb.TopLeft}
	m.st.SetTool(ToolSelect)
	return true
}

// SelectAll lifts the whole current image.
func (m *Mutation) SelectAll() bool {
	if !m.Select(m.st.current.Image().Bounds()) {
		return false
	}
	m.st.SetTool(ToolSelect)
	return true
}

// DeleteImage removes the current image. The last remaining image cannot be
// deleted.
func (m *Mutation) DeleteImage() bool {
	s := m.st.current
	if s.NumImages() <= 1 {
		return false
	}
	i := s.ImageIndex
	s.Selection = nil
	s.removeImage(i)
	if s.Font != nil {
		s.Font.Glyphs = append(s.Font.Glyphs[:i], s.Font.Glyphs[i+1:]...)
	}
	if s.ImageIndex >= s.NumImages() {
		s.ImageIndex = s.NumImages() - 1
	}
	s.syncPalette()
	return true
}

// AddNewImage inserts a blank image the size of the current one after it
// and makes it current.
func (m *Mutation) AddNewImage() bool {
	s := m.st.current
	if s.Font != nil || s.NumImages() >= 0xffff {
		return false
	}
	m.Unselect()
	cur := s.Image()
	img := ahi.NewImage(cur.Width(), cur.Height())
	img.PaletteIndex = s.PaletteIndex
	s.ImageIndex++
	s.insertImage(s.ImageIndex, img)
	return true
}

// InsertGlyph adds an empty glyph for ch at its sorted position. It is as
// wide as the current glyph.
func (m *Mutation) InsertGlyph(ch rune) bool {
	s := m.st.current
	if s.Font == nil {
		return false
	}
	i, found := s.Font.Index(ch)
	if found {
		return false
	}
	m.Unselect()
	img := ahi.NewImage(s.Image().Width(), s.Font.LineHeight)
	img.PaletteIndex = s.PaletteIndex
	s.insertImage(i, img)
	s.Font.Glyphs = append(s.Font.Glyphs, GlyphMetrics{})
	copy(s.Font.Glyphs[i+1:], s.Font.Glyphs[i:])
	s.Font.Glyphs[i] = GlyphMetrics{Char: ch}
	s.ImageIndex = i
	return true
}

// Resize changes the size of every image, keeping the top-left corner. In a
// font only the current glyph is resized and its height must stay the line
// height.
func (m *Mutation) Resize(width, height int) bool {
	s := m.st.current
	m.Unselect()
	if s.Font != nil {
		if height != s.Font.LineHeight {
			return false
		}
		s.setImage(s.ImageIndex, s.Image().Resized(width, height))
		return true
	}
	for i, img := range s.Images() {
		s.setImage(i, img.Resized(width, height))
	}
	return true
}

func (m *Mutation) SetTag(tag string) bool {
	img := m.Image()
	if img.Tag == tag {
		return false
	}
	img.Tag = tag
	return true
}

func (m *Mutation) SetMetadata(md ahi.Metadata) bool {
	img := m.Image()
	if img.Metadata.Equal(md) {
		return false
	}
	img.Metadata = md
	return true
}

// SetMetrics changes the font baseline and line height, resizing every glyph
// to the new height.
func (m *Mutation) SetMetrics(baseline, lineHeight int) bool {
	s := m.st.current
	if s.Font == nil {
		return false
	}
	m.Unselect()
	s.Font.Baseline = baseline
	if s.Font.LineHeight != lineHeight {
		s.Font.LineHeight = lineHeight
		for i, img := range s.Images() {
			s.setImage(i, img.Resized(img.Width(), lineHeight))
		}
	}
	return true
}

// SetEdges sets the side-bearings of the current glyph.
func (m *Mutation) SetEdges(left, right int) bool {
	s := m.st.current
	if s.Font == nil {
		return false
	}
	g := &s.Font.Glyphs[s.ImageIndex]
	g.LeftEdge, g.RightEdge = left, right
	return true
}

// CyclePalette moves the current image to the next (delta > 0) or previous
// palette, wrapping around.
func (m *Mutation) CyclePalette(delta int) bool {
	s := m.st.current
	n := len(s.Palettes)
	if n <= 1 {
		return false
	}
	idx := ((s.PaletteIndex+delta)%n + n) % n
	m.Image().PaletteIndex = idx
	s.PaletteIndex = idx
	return true
}

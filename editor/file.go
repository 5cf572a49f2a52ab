package editor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/tuna/ahi"
)

// Load replaces the document with the file at path. Fonts are recognised by
// an .ahf extension. A .png is imported against the first palette and
// will be saved next to it with an .ahi extension.
func (st *State) Load(path string) error {
	s, savePath, err := st.readDocument(path)
	if err != nil {
		st.logger.Error("could not load file", "path", path, "error", err)
		return err
	}

	st.current = s
	clear(st.undo)
	st.undo = st.undo[:0]
	clear(st.redo)
	st.redo = st.redo[:0]
	st.strokeOpen = false
	st.Filepath = savePath

	st.logger.Info("loaded file", "path", path, "images", s.NumImages())
	return nil
}

func (st *State) readDocument(path string) (*Snapshot, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".ahf":
		font, err := ahi.DecodeFont(f)
		if err != nil {
			return nil, "", fmt.Errorf("could not decode font: %w", err)
		}
		return fontSnapshot(font), path, nil

	case ".png":
		m, err := ahi.DecodePNG(f, &st.palettes[0])
		if err != nil {
			return nil, "", err
		}
		s := newSnapshot([]*ahi.Image{m}, st.palettes)
		s.Unsaved = true
		return s, strings.TrimSuffix(path, ext) + ".ahi", nil
	}

	c, err := ahi.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode collection: %w", err)
	}
	return newSnapshot(c.Images, c.Palettes), path, nil
}

func fontSnapshot(font *ahi.Font) *Snapshot {
	glyphs := font.Glyphs
	if len(glyphs) == 0 {
		glyphs = []ahi.Glyph{{Char: ' ', Image: ahi.NewImage(max(1, font.LineHeight/2), font.LineHeight)}}
	}

	images := make([]*ahi.Image, len(glyphs))
	fm := &FontMetrics{Baseline: font.Baseline, LineHeight: font.LineHeight}
	for i, g := range glyphs {
		images[i] = g.Image
		fm.Glyphs = append(fm.Glyphs, GlyphMetrics{Char: g.Char, LeftEdge: g.LeftEdge, RightEdge: g.RightEdge})
	}

	s := newSnapshot(images, font.Palettes)
	s.Font = fm
	s.TestSentence = DefaultTestSentence
	return s
}

// AsFont returns the document as an AHF font, or nil for collections.
func (s *Snapshot) AsFont() *ahi.Font {
	if s.Font == nil {
		return nil
	}
	f := &ahi.Font{Baseline: s.Font.Baseline, LineHeight: s.Font.LineHeight, Palettes: s.Palettes}
	for i, g := range s.Font.Glyphs {
		f.Glyphs = append(f.Glyphs, ahi.Glyph{Char: g.Char, Image: s.images[i].img, LeftEdge: g.LeftEdge, RightEdge: g.RightEdge})
	}
	return f
}

// AsCollection returns the document images as an AHI collection.
func (s *Snapshot) AsCollection() *ahi.Collection {
	return &ahi.Collection{Palettes: s.Palettes, Images: s.Images()}
}

// Save commits the floater and writes the document to Filepath. Every
// snapshot in the history is marked unsaved afterwards, since none of them
// matches the file any more.
func (st *State) Save() error {
	st.Unselect()
	s := st.current

	var buf bytes.Buffer
	var err error
	if s.Font != nil {
		err = ahi.EncodeFont(&buf, s.AsFont())
	} else {
		err = ahi.Encode(&buf, s.AsCollection())
	}
	if err == nil {
		err = os.WriteFile(st.Filepath, buf.Bytes(), 0o644)
	}
	if err != nil {
		st.logger.Error("could not save file", "path", st.Filepath, "error", err)
		return fmt.Errorf("could not save %s: %w", st.Filepath, err)
	}

	s.Unsaved = false
	for _, u := range st.undo {
		u.Unsaved = true
	}
	for _, r := range st.redo {
		r.Unsaved = true
	}
	st.strokeOpen = false

	st.logger.Info("saved file", "path", st.Filepath, "images", s.NumImages())
	return nil
}

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/tuna/ahi"
)

// document is the content of an AHI or AHF file, flattened to a list of
// images. For fonts every glyph is one image.
type document struct {
	palettes []ahi.Palette
	images   []*ahi.Image
	// names give every image a file-name friendly label
	names []string
	font  *ahi.Font
}

func isFont(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".ahf")
}

func readDocument(path string) (*document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()

	if isFont(path) {
		font, err := ahi.DecodeFont(f)
		if err != nil {
			return nil, fmt.Errorf("could not read font %q: %w", path, err)
		}
		doc := &document{palettes: font.Palettes, font: font}
		for _, g := range font.Glyphs {
			doc.images = append(doc.images, g.Image)
			doc.names = append(doc.names, fmt.Sprintf("u%04x", g.Char))
		}
		return doc, nil
	}

	c, err := ahi.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not read collection %q: %w", path, err)
	}
	doc := &document{palettes: c.Palettes, images: c.Images}
	for i, img := range c.Images {
		name := fmt.Sprintf("%03d", i)
		if img.Tag != "" {
			name += "-" + sanitize(img.Tag)
		}
		doc.names = append(doc.names, name)
	}
	return doc, nil
}

// sanitize keeps letters, digits, dashes and underscores.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}

func writeCollection(path string, c *ahi.Collection) error {
	var buf bytes.Buffer
	if err := ahi.Encode(&buf, c); err != nil {
		return fmt.Errorf("could not encode collection: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}

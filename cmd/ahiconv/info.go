package main

import (
	"fmt"
	"io"
	"os"
)

type InfoCmd struct {
	Inputs []string `arg:"" type:"existingfile" help:"AHI or AHF files"`
}

func (c *InfoCmd) Run() error {
	for _, name := range c.Inputs {
		doc, err := readDocument(name)
		if err != nil {
			return err
		}
		describe(os.Stdout, name, doc)
	}
	return nil
}

func describe(w io.Writer, name string, doc *document) {
	if f := doc.font; f != nil {
		fmt.Fprintf(w, "%s: font, baseline %d, line height %d, %d palettes, %d glyphs\n",
			name, f.Baseline, f.LineHeight, len(doc.palettes), len(f.Glyphs))
		for _, g := range f.Glyphs {
			fmt.Fprintf(w, "  %q: %dx%d edges %d,%d advance %d\n",
				g.Char, g.Image.Width(), g.Image.Height(), g.LeftEdge, g.RightEdge, g.Advance())
		}
		return
	}

	fmt.Fprintf(w, "%s: collection, %d palettes, %d images\n", name, len(doc.palettes), len(doc.images))
	for i, img := range doc.images {
		fmt.Fprintf(w, "  %d: %dx%d palette %d", i, img.Width(), img.Height(), img.PaletteIndex)
		if img.Tag != "" {
			fmt.Fprintf(w, " tag %q", img.Tag)
		}
		if len(img.Metadata) > 0 {
			fmt.Fprintf(w, " %s", img.Metadata)
		}
		fmt.Fprintln(w)
	}
}

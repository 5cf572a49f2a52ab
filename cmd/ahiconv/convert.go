package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/ha1tch/tuna/ahi"
	"github.com/ha1tch/tuna/palette"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

type ImportCmd struct {
	Inputs  []string `arg:"" type:"existingfile" help:"PNG files, one image each"`
	Output  string   `short:"o" help:"Destination AHI file" default:"out.ahi"`
	Palette string   `help:"RIFF PAL file whose first palette the colors are matched against" type:"existingfile"`
	Derive  bool     `name:"derive-palette" help:"Derive the palette from the first PNG with a median cut"`
	Tag     string   `help:"Tag stored with every image"`
}

func (c *ImportCmd) Validate(kctx *kong.Context) error {
	if c.Palette != "" && c.Derive {
		return fmt.Errorf("--palette and --derive-palette are mutually exclusive")
	}
	return nil
}

func (c *ImportCmd) Run(logger *slog.Logger) error {
	pal := ahi.DefaultPalette
	if c.Palette != "" {
		pals, err := palette.Load(c.Palette)
		if err != nil {
			return err
		}
		pal = pals[0]
	}

	coll := &ahi.Collection{}
	for i, name := range c.Inputs {
		m, err := readPNG(name)
		if err != nil {
			return err
		}
		if i == 0 && c.Derive {
			pal = ahi.DerivePalette(m)
		}
		img := ahi.FromImage(m, &pal)
		img.Tag = c.Tag
		coll.Images = append(coll.Images, img)
		logger.Info("imported", "file", name, "width", img.Width(), "height", img.Height())
	}
	coll.Palettes = []ahi.Palette{pal}

	if err := writeCollection(c.Output, coll); err != nil {
		return err
	}
	logger.Info("saved", "file", c.Output, "images", len(coll.Images))
	return nil
}

func readPNG(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", name, err)
	}
	defer f.Close()

	m, err := ahi.ReadPNG(f)
	if err != nil {
		return nil, fmt.Errorf("could not import %q: %w", name, err)
	}
	return m, nil
}

type ExportCmd struct {
	Input  string `arg:"" type:"existingfile" help:"AHI or AHF file"`
	Dest   string `help:"Destination folder" default:"."`
	Format string `help:"Output format" enum:"png,bmp,tiff" default:"png"`
	Scale  int    `help:"Integer upscaling factor" default:"1"`
	Index  int    `help:"Export only the image at this index" default:"-1"`
}

func (c *ExportCmd) Validate(kctx *kong.Context) error {
	if c.Scale < 1 || c.Scale > 64 {
		return fmt.Errorf("invalid scale: %d", c.Scale)
	}
	return nil
}

func (c *ExportCmd) Run(logger *slog.Logger) error {
	doc, err := readDocument(c.Input)
	if err != nil {
		return err
	}
	if c.Index >= len(doc.images) {
		return fmt.Errorf("no image %d in %q, it has %d", c.Index, c.Input, len(doc.images))
	}
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	base := filepath.Base(c.Input)
	base = base[:len(base)-len(filepath.Ext(base))]
	for i, img := range doc.images {
		if c.Index >= 0 && i != c.Index {
			continue
		}
		pal := doc.palettes[img.PaletteIndex]
		out := scaled(img.Paletted(&pal), c.Scale)
		name := filepath.Join(c.Dest, fmt.Sprintf("%s-%s.%s", base, doc.names[i], c.Format))
		if err := writeImage(name, c.Format, out); err != nil {
			return err
		}
		logger.Info("exported", "file", name)
	}
	return nil
}

func scaled(m *image.Paletted, factor int) *image.Paletted {
	if factor == 1 {
		return m
	}
	b := m.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor), m.Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)
	return dst
}

func writeImage(name, format string, m image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close %q: %w", name, cerr)
		}
	}()

	switch format {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(f, m)
	case "bmp":
		err = bmp.Encode(f, m)
	case "tiff":
		err = tiff.Encode(f, m, nil)
	default:
		err = fmt.Errorf("unsupported format")
	}
	if err != nil {
		return fmt.Errorf("could not encode %s %q: %w", format, name, err)
	}
	return nil
}

type PaletteCmd struct {
	Input  string `arg:"" type:"existingfile" help:"AHI or AHF file"`
	Output string `short:"o" help:"Destination PAL file" required:""`
}

func (c *PaletteCmd) Run(logger *slog.Logger) error {
	doc, err := readDocument(c.Input)
	if err != nil {
		return err
	}
	if err := palette.Save(c.Output, doc.palettes); err != nil {
		return fmt.Errorf("could not save palettes: %w", err)
	}
	logger.Info("saved", "file", c.Output, "palettes", len(doc.palettes))
	return nil
}

package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ha1tch/tuna/ahi"
	"github.com/ha1tch/tuna/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func writePNG(t *testing.T, dir, name string, m image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, m))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func readCollection(t *testing.T, path string) *ahi.Collection {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	c, err := ahi.Decode(f)
	require.NoError(t, err)
	return c
}

func sprites(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	a := image.NewRGBA(image.Rect(0, 0, 4, 2))
	a.Set(1, 0, color.RGBA{255, 0, 0, 255})
	b := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			b.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}

	cmd := ImportCmd{
		Inputs: []string{writePNG(t, dir, "a.png", a), writePNG(t, dir, "b.png", b)},
		Output: filepath.Join(dir, "sprites.ahi"),
		Tag:    "walk",
	}
	require.NoError(t, cmd.Validate(nil))
	require.NoError(t, cmd.Run(discard))
	return cmd.Output
}

func TestImport(t *testing.T) {
	c := readCollection(t, sprites(t))
	require.Len(t, c.Images, 2)
	assert.Equal(t, ahi.DefaultPalettes(), c.Palettes)

	a, b := c.Images[0], c.Images[1]
	assert.Equal(t, ahi.C3, a.ColorAt(1, 0))
	assert.Equal(t, 1, a.CountOpaque())
	assert.Equal(t, "walk", a.Tag)
	assert.Equal(t, 9, b.CountOpaque())
	assert.Equal(t, ahi.C9, b.ColorAt(2, 2))
}

func TestImportRejectsIndexedPNG(t *testing.T) {
	dir := t.TempDir()
	m := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	cmd := ImportCmd{Inputs: []string{writePNG(t, dir, "p.png", m)}, Output: filepath.Join(dir, "out.ahi")}
	err := cmd.Run(discard)
	require.ErrorIs(t, err, ahi.ErrUnsupportedColorType)
	assert.NoFileExists(t, cmd.Output)
}

func TestImportPaletteOptions(t *testing.T) {
	dir := t.TempDir()
	cmd := ImportCmd{Palette: "x.pal", Derive: true}
	assert.Error(t, cmd.Validate(nil))

	green := color.NRGBA{10, 200, 30, 255}
	purple := color.NRGBA{200, 10, 90, 255}
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			m.Set(x, y, green)
			m.Set(x+4, y, purple)
		}
	}
	src := writePNG(t, dir, "m.png", m)

	cmd = ImportCmd{Inputs: []string{src}, Output: filepath.Join(dir, "derived.ahi"), Derive: true}
	require.NoError(t, cmd.Run(discard))
	c := readCollection(t, cmd.Output)
	img := c.Images[0]
	assert.NotEqual(t, ahi.C0, img.ColorAt(0, 0))
	assert.NotEqual(t, img.ColorAt(0, 0), img.ColorAt(7, 7))

	custom := ahi.DefaultPalette
	custom[1] = green
	pal := filepath.Join(dir, "custom.pal")
	require.NoError(t, palette.Save(pal, []ahi.Palette{custom}))
	cmd = ImportCmd{Inputs: []string{src}, Output: filepath.Join(dir, "custom.ahi"), Palette: pal}
	require.NoError(t, cmd.Run(discard))
	c = readCollection(t, cmd.Output)
	assert.Equal(t, ahi.C1, c.Images[0].ColorAt(0, 0))
	assert.Equal(t, green, c.Palettes[0][1])
}

func TestExportScaledPNG(t *testing.T) {
	src := sprites(t)
	dest := filepath.Join(t.TempDir(), "png")
	cmd := ExportCmd{Input: src, Dest: dest, Format: "png", Scale: 3, Index: -1}
	require.NoError(t, cmd.Validate(nil))
	require.NoError(t, cmd.Run(discard))

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"sprites-000-walk.png", "sprites-001-walk.png"}, names)

	f, err := os.Open(filepath.Join(dest, "sprites-000-walk.png"))
	require.NoError(t, err)
	defer f.Close()
	m, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 6), m.Bounds())
	r, g, b, a := m.At(4, 2).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0, 0, 0xffff}, [4]uint32{r, g, b, a})
	_, _, _, a = m.At(0, 0).RGBA()
	assert.Zero(t, a)
}

func TestExportSingleBMP(t *testing.T) {
	src := sprites(t)
	dest := t.TempDir()
	cmd := ExportCmd{Input: src, Dest: dest, Format: "bmp", Scale: 1, Index: 1}
	require.NoError(t, cmd.Run(discard))

	assert.NoFileExists(t, filepath.Join(dest, "sprites-000-walk.bmp"))
	f, err := os.Open(filepath.Join(dest, "sprites-001-walk.bmp"))
	require.NoError(t, err)
	defer f.Close()
	m, err := bmp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 3), m.Bounds())
	r, g, b, _ := m.At(1, 1).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b})

	cmd.Index = 2
	assert.Error(t, cmd.Run(discard))

	cmd.Scale = 0
	assert.Error(t, cmd.Validate(nil))
}

func TestPaletteExtraction(t *testing.T) {
	dir := t.TempDir()
	second := ahi.DefaultPalette
	second[5] = color.NRGBA{1, 2, 3, 255}
	img := ahi.NewImage(2, 2)
	img.PaletteIndex = 1
	src := filepath.Join(dir, "two.ahi")
	require.NoError(t, writeCollection(src, &ahi.Collection{
		Palettes: []ahi.Palette{ahi.DefaultPalette, second},
		Images:   []*ahi.Image{img},
	}))

	cmd := PaletteCmd{Input: src, Output: filepath.Join(dir, "two.pal")}
	require.NoError(t, cmd.Run(discard))
	pals, err := palette.Load(cmd.Output)
	require.NoError(t, err)
	assert.Equal(t, []ahi.Palette{ahi.DefaultPalette, second}, pals)
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	img := ahi.NewImage(4, 2)
	img.Tag = "run"
	img.Metadata = ahi.Metadata{{Key: "frames", Value: "2"}}
	src := filepath.Join(dir, "one.ahi")
	require.NoError(t, writeCollection(src, &ahi.Collection{Images: []*ahi.Image{img, ahi.NewImage(1, 1)}}))

	doc, err := readDocument(src)
	require.NoError(t, err)
	var out strings.Builder
	describe(&out, "one.ahi", doc)
	assert.Equal(t, "one.ahi: collection, 1 palettes, 2 images\n"+
		"  0: 4x2 palette 0 tag \"run\" frames=2\n"+
		"  1: 1x1 palette 0\n", out.String())

	font := &ahi.Font{Baseline: 6, LineHeight: 8, Palettes: ahi.DefaultPalettes(), Glyphs: []ahi.Glyph{
		{Char: 'A', Image: ahi.NewImage(6, 8), LeftEdge: 1, RightEdge: 1},
	}}
	var buf bytes.Buffer
	require.NoError(t, ahi.EncodeFont(&buf, font))
	fsrc := filepath.Join(dir, "f.ahf")
	require.NoError(t, os.WriteFile(fsrc, buf.Bytes(), 0o644))

	doc, err = readDocument(fsrc)
	require.NoError(t, err)
	assert.Equal(t, []string{"u0041"}, doc.names)
	out.Reset()
	describe(&out, "f.ahf", doc)
	assert.Equal(t, "f.ahf: font, baseline 6, line height 8, 1 palettes, 1 glyphs\n"+
		"  'A': 6x8 edges 1,1 advance 4\n", out.String())
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "walk_cycle_2", sanitize("walk cycle/2"))
}

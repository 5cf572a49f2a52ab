// Package palette reads and writes Microsoft RIFF palette files (.pal) as
// lists of sixteen-color AHI palettes.
package palette

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/ha1tch/tuna/ahi"
	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;
*/

const palVersion = 0x0300

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}

	ErrNoColors = errors.New("palette: no colors")
)

// Read parses a RIFF palette and splits its entries into groups of sixteen.
// Entry 0 of every group is forced transparent and a short final group is
// padded with opaque black.
func Read(r io.Reader) ([]ahi.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	var colors []color.NRGBA
	for chunk := 0; ; chunk++ {
		id, _, data, err := rd.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("could not read chunk %d: %w", chunk, err)
		}
		if id != dataType {
			continue
		}
		c, err := readEntries(data)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", chunk, err)
		}
		colors = append(colors, c...)
	}
	return group(colors)
}

func readEntries(r io.Reader) ([]color.NRGBA, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("could not read palette header: %w", err)
	}
	if v := binary.LittleEndian.Uint16(hdr[:2]); v != palVersion {
		return nil, fmt.Errorf("unsupported palette version: %#04x", v)
	}
	count := int(binary.LittleEndian.Uint16(hdr[2:]))
	buf := make([]byte, count*4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read %d colors: %w", count, err)
	}
	res := make([]color.NRGBA, count)
	for i := range res {
		res[i] = color.NRGBA{R: buf[i*4], G: buf[i*4+1], B: buf[i*4+2], A: 0xff}
	}
	return res, nil
}

func group(colors []color.NRGBA) ([]ahi.Palette, error) {
	if len(colors) == 0 {
		return nil, ErrNoColors
	}
	n := (len(colors) + ahi.NumColors - 1) / ahi.NumColors
	if n > 255 {
		n = 255
	}
	res := make([]ahi.Palette, n)
	for i := range res {
		for j := range res[i] {
			k := i*ahi.NumColors + j
			switch {
			case j == 0:
				res[i][j] = color.NRGBA{}
			case k < len(colors):
				res[i][j] = colors[k]
			default:
				res[i][j] = color.NRGBA{A: 0xff}
			}
		}
	}
	return res, nil
}

// Write stores pals as a single RIFF data chunk of 16*len(pals) entries.
// Alpha is not representable and is dropped.
func Write(w io.Writer, pals []ahi.Palette) error {
	if len(pals) == 0 {
		return ErrNoColors
	}
	count := len(pals) * ahi.NumColors
	chunk := 4 + count*4 // palVersion + palNumEntries + 4 bytes/color

	bw := bufio.NewWriter(w)
	bw.Write(riffType[:])
	bw.Write(binary.LittleEndian.AppendUint32(nil, uint32(4+8+chunk)))
	bw.Write(palType[:])
	bw.Write(dataType[:])
	bw.Write(binary.LittleEndian.AppendUint32(nil, uint32(chunk)))
	bw.Write(binary.LittleEndian.AppendUint16(nil, palVersion))
	bw.Write(binary.LittleEndian.AppendUint16(nil, uint16(count)))
	for _, p := range pals {
		for _, c := range p {
			bw.Write([]byte{c.R, c.G, c.B, 0x00})
		}
	}
	return bw.Flush()
}

// Load reads the RIFF palette file at path.
func Load(path string) ([]ahi.Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pals, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pals, nil
}

// Save writes pals to path.
func Save(path string, pals []ahi.Palette) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, pals); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

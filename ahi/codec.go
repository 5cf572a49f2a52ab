package ahi

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"unicode/utf8"
)

var (
	ErrBadMagic        = errors.New("ahi: bad magic")
	ErrBadDimensions   = errors.New("ahi: invalid image dimensions")
	ErrBadPaletteIndex = errors.New("ahi: invalid palette index")
	ErrNoPalettes      = errors.New("ahi: no palettes")
	ErrTooManyPalettes = errors.New("ahi: too many palettes")
	ErrTooManyImages   = errors.New("ahi: too many images")
	errStringTooLong   = errors.New("ahi: string too long")
	errStringNotUTF8   = errors.New("ahi: string is not valid UTF-8")
	errTooManyMetadata = errors.New("ahi: too many metadata pairs")
	errNotEnoughData   = errors.New("ahi: not enough image data")
)

const (
	magicLen    = 4
	maxPalettes = math.MaxUint8
	maxImages   = math.MaxUint16
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func pixelBytes(width, height int) int {
	return (width*height + 1) >> 1
}

type decoder struct {
	r        io.Reader
	palettes []Palette
	tmp      [4]byte
}

func (d *decoder) magic(want string) error {
	if err := readFull(d.r, d.tmp[:magicLen]); err != nil {
		return err
	}
	if string(d.tmp[:magicLen]) != want {
		return ErrBadMagic
	}
	return nil
}

func (d *decoder) u8() (uint8, error) {
	if err := readFull(d.r, d.tmp[:1]); err != nil {
		return 0, err
	}
	return d.tmp[0], nil
}

func (d *decoder) u16() (uint16, error) {
	if err := readFull(d.r, d.tmp[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(d.tmp[:2]), nil
}

func (d *decoder) u32() (uint32, error) {
	if err := readFull(d.r, d.tmp[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(d.tmp[:4]), nil
}

func (d *decoder) str() (string, error) {
	n, err := d.u16()
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if err := readFull(d.r, b); err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errStringNotUTF8
	}
	return string(b), nil
}

func (d *decoder) readPalettes() error {
	n, err := d.u8()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoPalettes
	}
	d.palettes = make([]Palette, n)
	var b [NumColors * 4]byte
	for i := range d.palettes {
		if err := readFull(d.r, b[:]); err != nil {
			return err
		}
		for c := range d.palettes[i] {
			d.palettes[i][c].R = b[c*4+0]
			d.palettes[i][c].G = b[c*4+1]
			d.palettes[i][c].B = b[c*4+2]
			d.palettes[i][c].A = b[c*4+3]
		}
	}
	return nil
}

func (d *decoder) readImage() (*Image, error) {
	w, err := d.u16()
	if err != nil {
		return nil, err
	}
	h, err := d.u16()
	if err != nil {
		return nil, err
	}
	if w == 0 || h == 0 || w > MaxDimension || h > MaxDimension {
		return nil, ErrBadDimensions
	}
	p, err := d.u8()
	if err != nil {
		return nil, err
	}
	if int(p) >= len(d.palettes) {
		return nil, ErrBadPaletteIndex
	}

	m := NewImage(int(w), int(h))
	m.PaletteIndex = int(p)

	if m.Tag, err = d.str(); err != nil {
		return nil, err
	}
	n, err := d.u16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(n); i++ {
		k, err := d.str()
		if err != nil {
			return nil, err
		}
		v, err := d.str()
		if err != nil {
			return nil, err
		}
		m.Metadata = append(m.Metadata, Pair{Key: k, Value: v})
	}

	b := make([]byte, pixelBytes(m.width, m.height))
	if err := readFull(d.r, b); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, errNotEnoughData
		}
		return nil, err
	}
	for i := range m.pixels {
		if i&1 == 0 {
			m.pixels[i] = Color(b[i>>1] >> 4)
		} else {
			m.pixels[i] = Color(b[i>>1] & 0x0f)
		}
	}
	return m, nil
}

type encoder struct {
	w   *bufio.Writer
	err error
	tmp [4]byte
}

func newEncoder(w io.Writer) *encoder {
	return &encoder{w: bufio.NewWriter(w)}
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) u8(v uint8) {
	e.tmp[0] = v
	e.write(e.tmp[:1])
}

func (e *encoder) u16(v uint16) {
	binary.BigEndian.PutUint16(e.tmp[:2], v)
	e.write(e.tmp[:2])
}

func (e *encoder) u32(v uint32) {
	binary.BigEndian.PutUint32(e.tmp[:4], v)
	e.write(e.tmp[:4])
}

func (e *encoder) str(s string) {
	if e.err != nil {
		return
	}
	if len(s) > math.MaxUint16 {
		e.err = errStringTooLong
		return
	}
	e.u16(uint16(len(s)))
	e.write([]byte(s))
}

func (e *encoder) flush() error {
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

func checkPalettes(palettes []Palette) error {
	switch {
	case len(palettes) == 0:
		return ErrNoPalettes
	case len(palettes) > maxPalettes:
		return ErrTooManyPalettes
	}
	return nil
}

func (e *encoder) writePalettes(palettes []Palette) {
	e.u8(uint8(len(palettes)))
	var b [NumColors * 4]byte
	for _, p := range palettes {
		for c, col := range p {
			b[c*4+0] = col.R
			b[c*4+1] = col.G
			b[c*4+2] = col.B
			b[c*4+3] = col.A
		}
		e.write(b[:])
	}
}

func checkImage(m *Image, numPalettes int) error {
	switch {
	case m.width == 0 || m.height == 0 || m.width > MaxDimension || m.height > MaxDimension:
		return ErrBadDimensions
	case m.PaletteIndex < 0 || m.PaletteIndex >= numPalettes:
		return ErrBadPaletteIndex
	case len(m.Metadata) > math.MaxUint16:
		return errTooManyMetadata
	case !utf8.ValidString(m.Tag):
		return errStringNotUTF8
	}
	for _, p := range m.Metadata {
		if !utf8.ValidString(p.Key) || !utf8.ValidString(p.Value) {
			return errStringNotUTF8
		}
	}
	return nil
}

func (e *encoder) writeImage(m *Image) {
	e.u16(uint16(m.width))
	e.u16(uint16(m.height))
	e.u8(uint8(m.PaletteIndex))
	e.str(m.Tag)
	e.u16(uint16(len(m.Metadata)))
	for _, p := range m.Metadata {
		e.str(p.Key)
		e.str(p.Value)
	}

	// high nibble first
	b := make([]byte, pixelBytes(m.width, m.height))
	for i, c := range m.pixels {
		if i&1 == 0 {
			b[i>>1] |= byte(c&0x0f) << 4
		} else {
			b[i>>1] |= byte(c & 0x0f)
		}
	}
	e.write(b)
}

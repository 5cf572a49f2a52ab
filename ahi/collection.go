package ahi

import (
	"io"
)

const collectionMagic = "ahi1"

// Collection is the content of an AHI file: an ordered list of images and
// the palettes they refer to.
type Collection struct {
	Palettes []Palette
	Images   []*Image
}

// Decode reads an AHI collection from r.
func Decode(r io.Reader) (*Collection, error) {
	d := decoder{r: r}
	if err := d.magic(collectionMagic); err != nil {
		return nil, err
	}
	if err := d.readPalettes(); err != nil {
		return nil, err
	}
	n, err := d.u16()
	if err != nil {
		return nil, err
	}
	c := &Collection{Palettes: d.palettes}
	for i := 0; i < int(n); i++ {
		m, err := d.readImage()
		if err != nil {
			return nil, err
		}
		c.Images = append(c.Images, m)
	}
	return c, nil
}

// Encode writes c to w in AHI format. A collection without palettes is
// written with the default palette.
func Encode(w io.Writer, c *Collection) error {
	palettes := c.Palettes
	if len(palettes) == 0 {
		palettes = DefaultPalettes()
	}
	if err := checkPalettes(palettes); err != nil {
		return err
	}
	if len(c.Images) > maxImages {
		return ErrTooManyImages
	}
	for _, m := range c.Images {
		if err := checkImage(m, len(palettes)); err != nil {
			return err
		}
	}

	e := newEncoder(w)
	e.write([]byte(collectionMagic))
	e.writePalettes(palettes)
	e.u16(uint16(len(c.Images)))
	for _, m := range c.Images {
		e.writeImage(m)
	}
	return e.flush()
}

package editor

import (
	"image"

	"github.com/ha1tch/tuna/ahi"
)

// Drag is an in-progress mouse stroke on the canvas, in document pixels.
type Drag struct {
	FromSelection image.Point
	From, To      image.Point

	// Moving is set when a select drag started on the floater.
	Moving bool
	// Picked is the color under the pointer at mouse-down, used by the
	// palette swap and replace tools.
	Picked ahi.Color

	// painting is set once a pencil stroke has written to the image.
	painting bool
}

// Rect is the rectangle spanned by the drag, both ends included.
func (d *Drag) Rect() image.Rectangle { return dragRect(d.From, d.To) }

// Canvas interprets mouse strokes on the image according to the current
// tool. Positions are document pixel coordinates.
type Canvas struct {
	drag *Drag

	// Marquee is the marching-ants phase, 0..MarqueeAnimationModulus-1.
	Marquee int
}

// Drag returns the stroke in progress, if any.
func (c *Canvas) Drag() *Drag { return c.drag }

func (c *Canvas) MouseDown(st *State, p image.Point) bool {
	if st.Mode.Kind != ModeEdit {
		return false
	}
	s := st.current
	c.drag = nil

	switch st.Tool {
	case ToolPencil:
		c.drag = &Drag{From: p, To: p}
		if s.Selection == nil && !p.In(s.Image().Bounds()) {
			return false
		}
		m := st.ResetPersistentMutation()
		m.Unselect()
		m.Image().SetColorAt(p.X, p.Y, st.Color)
		c.drag.painting = true
		return true

	case ToolPaintBucket:
		if s.Selection == nil {
			if !p.In(s.Image().Bounds()) || s.Image().ColorAt(p.X, p.Y) == st.Color {
				return false
			}
		}
		m := st.Mutation()
		m.Unselect()
		FloodFill(m.Image(), p, st.Color)
		return true

	case ToolEyedropper:
		if !p.In(s.Image().Bounds()) && (s.Selection == nil || !p.In(s.Selection.Rect())) {
			return false
		}
		st.Color = s.ColorAt(p)
		st.SetTool(st.PrevTool)
		return true

	case ToolSelect:
		if f := s.Selection; f != nil && p.In(f.Rect()) {
			c.drag = &Drag{FromSelection: f.TopLeft, From: p, To: p, Moving: true}
			return false
		}
		st.Unselect()
		c.drag = &Drag{From: p, To: p}
		return true

	default:
		c.drag = &Drag{From: p, To: p, Picked: s.ColorAt(p)}
		return true
	}
}

func (c *Canvas) MouseDrag(st *State, p image.Point) bool {
	d := c.drag
	if d == nil || st.Mode.Kind != ModeEdit || p == d.To {
		return false
	}
	prev := d.To
	d.To = p

	switch st.Tool {
	case ToolPencil:
		pts := Bresenham(prev, p)
		if !hits(st.current.Image(), pts) {
			return false
		}
		var m *Mutation
		if d.painting {
			m = st.PersistentMutation()
		} else {
			m = st.ResetPersistentMutation()
			m.Unselect()
			d.painting = true
		}
		plot(m.Image(), pts, st.Color)
		return true

	case ToolSelect:
		if d.Moving {
			st.PersistentMutation().RepositionSelection(d.FromSelection.Add(p.Sub(d.From)))
		}
		return true
	}
	return true
}

func (c *Canvas) MouseUp(st *State, p image.Point) bool {
	d := c.drag
	if d == nil {
		return false
	}
	c.drag = nil
	if st.Mode.Kind != ModeEdit {
		return true
	}
	d.To = p
	r := d.Rect()

	touched := r.Overlaps(st.current.Image().Bounds())
	var draw func(img *ahi.Image)
	switch st.Tool {
	case ToolLine:
		pts := Bresenham(d.From, d.To)
		touched = hits(st.current.Image(), pts)
		draw = func(img *ahi.Image) { plot(img, pts, st.Color) }
	case ToolRectangle:
		pts := RectOutline(r)
		touched = hits(st.current.Image(), pts)
		draw = func(img *ahi.Image) { plot(img, pts, st.Color) }
	case ToolOval:
		pts := Ellipse(r)
		touched = hits(st.current.Image(), pts)
		draw = func(img *ahi.Image) { plot(img, pts, st.Color) }
	case ToolCheckerboard:
		draw = func(img *ahi.Image) { Checkerboard(img, r, st.Color) }
	case ToolPaletteSwap:
		draw = func(img *ahi.Image) { SwapColors(img, r, st.Color, d.Picked) }
	case ToolPaletteReplace:
		draw = func(img *ahi.Image) { ReplaceColor(img, r, d.Picked, st.Color) }
	case ToolSelect:
		if d.Moving {
			st.PersistentMutation().RepositionSelection(d.FromSelection.Add(p.Sub(d.From)))
			return true
		}
		if st.current.Selection == nil && touched {
			st.ResetPersistentMutation().Select(r)
		}
		return true
	default:
		return true
	}

	// a shape off the image with no floater to commit changes nothing
	if !touched && st.current.Selection == nil {
		return true
	}
	m := st.Mutation()
	m.Unselect()
	draw(m.Image())
	return true
}

// Tick advances the marquee while a floater exists.
func (c *Canvas) Tick(st *State) bool {
	if st.current.Selection == nil {
		return false
	}
	c.Marquee = (c.Marquee + 1) % MarqueeAnimationModulus
	return true
}

// Preview returns the pixels the stroke in progress would draw, for tools
// that show one.
func (c *Canvas) Preview(st *State) []image.Point {
	d := c.drag
	if d == nil {
		return nil
	}
	switch st.Tool {
	case ToolLine:
		return Bresenham(d.From, d.To)
	case ToolOval:
		return Ellipse(d.Rect())
	}
	return nil
}

// PreviewRect returns the marquee to show for the stroke in progress.
func (c *Canvas) PreviewRect(st *State) (image.Rectangle, bool) {
	d := c.drag
	if d == nil || d.Moving {
		return image.Rectangle{}, false
	}
	switch st.Tool {
	case ToolRectangle, ToolCheckerboard, ToolPaletteSwap, ToolPaletteReplace, ToolSelect:
		return d.Rect(), true
	}
	return image.Rectangle{}, false
}

// hits reports whether any of pts lies on img.
func hits(img *ahi.Image, pts []image.Point) bool {
	b := img.Bounds()
	for _, p := range pts {
		if p.In(b) {
			return true
		}
	}
	return false
}

func plot(img *ahi.Image, pts []image.Point, c ahi.Color) {
	for _, p := range pts {
		img.SetColorAt(p.X, p.Y, c)
	}
}

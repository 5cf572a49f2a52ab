package gui

import (
	"image"
	"image/color"

	"github.com/ha1tch/tuna/editor"
)

var (
	canvasBackground = color.NRGBA{30, 30, 30, 255}
	checkerLight     = color.NRGBA{150, 150, 150, 255}
	checkerDark      = color.NRGBA{100, 100, 100, 255}
)

const checkerSize = 4

// CanvasView shows the current image at the largest integer zoom that
// fits Size, centred, and feeds mouse strokes to the tool engine in
// document pixels.
type CanvasView struct {
	Size   image.Point
	Canvas editor.Canvas
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Zoom returns the scale and the screen position of the image's top-left
// corner.
func (v *CanvasView) Zoom(s *editor.Snapshot) (int, image.Point) {
	img := s.Image()
	zoom := max(1, min(v.Size.X/img.Width(), v.Size.Y/img.Height()))
	origin := image.Pt(
		max(0, (v.Size.X-img.Width()*zoom)/2),
		max(0, (v.Size.Y-img.Height()*zoom)/2),
	)
	return zoom, origin
}

// ToPixel converts a widget position to document pixels.
func (v *CanvasView) ToPixel(s *editor.Snapshot, p image.Point) image.Point {
	zoom, origin := v.Zoom(s)
	p = p.Sub(origin)
	return image.Pt(floorDiv(p.X, zoom), floorDiv(p.Y, zoom))
}

// ToScreen converts a rectangle in document pixels to widget space.
func (v *CanvasView) ToScreen(s *editor.Snapshot, r image.Rectangle) image.Rectangle {
	zoom, origin := v.Zoom(s)
	return r.Mul(zoom).Add(origin)
}

func (v *CanvasView) Draw(st *editor.State, rd Renderer) {
	s := st.Current()
	pal := s.Palette()
	rd.FillRect(image.Rectangle{Max: v.Size}, canvasBackground)

	area := v.ToScreen(s, s.Image().Bounds())
	rd.FillRect(area, checkerDark)
	for y := area.Min.Y; y < area.Max.Y; y += checkerSize {
		for x := area.Min.X; x < area.Max.X; x += checkerSize {
			if ((x-area.Min.X)/checkerSize+(y-area.Min.Y)/checkerSize)%2 == 0 {
				cell := image.Rect(x, y, x+checkerSize, y+checkerSize).Intersect(area)
				rd.FillRect(cell, checkerLight)
			}
		}
	}
	rd.DrawImage(s.Image(), pal, area)

	if f := s.Selection; f != nil {
		r := v.ToScreen(s, f.Rect())
		rd.DrawImage(f.Image, pal, r)
		DrawMarquee(rd, r, v.Canvas.Marquee)
	}

	ink := pal[st.Color]
	for _, p := range v.Canvas.Preview(st) {
		rd.FillRect(v.ToScreen(s, image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))}), ink)
	}
	if r, ok := v.Canvas.PreviewRect(st); ok {
		DrawMarquee(rd, v.ToScreen(s, r), v.Canvas.Marquee)
	}
}

func (v *CanvasView) OnEvent(ev editor.Event, st *editor.State) Action {
	s := st.Current()
	switch e := ev.(type) {
	case editor.MouseDown:
		return handled(v.Canvas.MouseDown(st, v.ToPixel(s, e.Pos)))
	case editor.MouseDrag:
		if v.Canvas.Drag() == nil {
			return Ignore()
		}
		return handled(v.Canvas.MouseDrag(st, v.ToPixel(s, e.Pos)))
	case editor.MouseUp:
		if v.Canvas.Drag() == nil {
			return Ignore()
		}
		return handled(v.Canvas.MouseUp(st, v.ToPixel(s, e.Pos)))
	case editor.ClockTick:
		return Continue(v.Canvas.Tick(st))
	}
	return Ignore()
}

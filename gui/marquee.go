package gui

import (
	"image"
	"image/color"

	"github.com/ha1tch/tuna/editor"
)

var (
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
)

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// MarqueeDots returns the black dots of the marching-ants border of r at
// animation phase a. As a grows the dots travel clockwise.
func MarqueeDots(r image.Rectangle, a int) []image.Point {
	if r.Empty() {
		return nil
	}
	const n = editor.MarqueeAnimationModulus
	var pts []image.Point
	for x := r.Min.X; x < r.Max.X; x++ {
		if mod(x-a, n) < n/2 {
			pts = append(pts, image.Pt(x, r.Min.Y))
		}
		if mod(x+a, n) < n/2 {
			pts = append(pts, image.Pt(x, r.Max.Y-1))
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if mod(y+a, n) >= n/2 {
			pts = append(pts, image.Pt(r.Min.X, y))
		}
		if mod(y-a, n) >= n/2 {
			pts = append(pts, image.Pt(r.Max.X-1, y))
		}
	}
	return pts
}

// DrawMarquee draws the marching-ants border of r.
func DrawMarquee(rd Renderer, r image.Rectangle, a int) {
	if r.Empty() {
		return
	}
	rd.StrokeRect(r, white)
	for _, p := range MarqueeDots(r, a) {
		rd.FillRect(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))}, black)
	}
}

package editor

import (
	"image"
	"slices"

	"github.com/ha1tch/tuna/ahi"
)

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// Bresenham returns the pixels of the line from p to q, both included, in
// order from p. Lines are computed left to right in their shallow octant so
// the result for (q, p) is the reverse of (p, q).
func Bresenham(p, q image.Point) []image.Point {
	x1, y1, x2, y2 := p.X, p.Y, q.X, q.Y

	steep := abs(y2-y1) > abs(x2-x1)
	if steep {
		x1, y1 = y1, x1
		x2, y2 = y2, x2
	}
	reversed := false
	if x1 > x2 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
		reversed = true
	}

	dx := x2 - x1
	dy := abs(y2 - y1)
	err := dx / 2
	ystep := 1
	if y1 > y2 {
		ystep = -1
	}

	pts := make([]image.Point, 0, dx+1)
	y := y1
	for x := x1; x <= x2; x++ {
		if steep {
			pts = append(pts, image.Pt(y, x))
		} else {
			pts = append(pts, image.Pt(x, y))
		}
		err -= dy
		if err < 0 {
			y += ystep
			err += dx
		}
	}
	if reversed {
		slices.Reverse(pts)
	}
	return pts
}

// Ellipse returns the outline of the ellipse inscribed in r. Points may
// repeat.
func Ellipse(r image.Rectangle) []image.Point {
	r = r.Canon()
	if r.Empty() {
		return nil
	}
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1

	a := x1 - x0
	b := y1 - y0
	b1 := b & 1
	dx := 4 * (1 - a) * b * b
	dy := 4 * (b1 + 1) * a * a
	err := dx + dy + b1*a*a

	y0 += (b + 1) / 2
	y1 = y0 - b1
	a *= 8 * a
	b1 = 8 * b * b

	var pts []image.Point
	for {
		pts = append(pts, image.Pt(x1, y0), image.Pt(x0, y0), image.Pt(x0, y1), image.Pt(x1, y1))
		e2 := 2 * err
		if e2 <= dy {
			y0++
			y1--
			dy += a
			err += dy
		}
		if e2 >= dx || 2*err > dy {
			x0++
			x1--
			dx += b1
			err += dx
		}
		if x0 > x1 {
			break
		}
	}
	// flat ellipses stop early; finish the tips
	for y0-y1 < b {
		pts = append(pts, image.Pt(x0-1, y0), image.Pt(x1+1, y0))
		y0++
		pts = append(pts, image.Pt(x0-1, y1), image.Pt(x1+1, y1))
		y1--
	}
	return pts
}

// FloodFill replaces the 4-connected region of p's color with c. It
// returns false when p is outside the image or already has color c.
func FloodFill(img *ahi.Image, p image.Point, c ahi.Color) bool {
	if !p.In(img.Bounds()) {
		return false
	}
	src := img.ColorAt(p.X, p.Y)
	if src == c {
		return false
	}
	w, h := img.Width(), img.Height()
	stack := []image.Point{p}
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if img.ColorAt(q.X, q.Y) != src {
			continue
		}
		img.SetColorAt(q.X, q.Y, c)
		if q.X > 0 {
			stack = append(stack, image.Pt(q.X-1, q.Y))
		}
		if q.X < w-1 {
			stack = append(stack, image.Pt(q.X+1, q.Y))
		}
		if q.Y > 0 {
			stack = append(stack, image.Pt(q.X, q.Y-1))
		}
		if q.Y < h-1 {
			stack = append(stack, image.Pt(q.X, q.Y+1))
		}
	}
	return true
}

// RectOutline returns the border pixels of r.
func RectOutline(r image.Rectangle) []image.Point {
	r = r.Canon()
	if r.Empty() {
		return nil
	}
	var pts []image.Point
	for x := r.Min.X; x < r.Max.X; x++ {
		pts = append(pts, image.Pt(x, r.Min.Y))
		if r.Dy() > 1 {
			pts = append(pts, image.Pt(x, r.Max.Y-1))
		}
	}
	for y := r.Min.Y + 1; y < r.Max.Y-1; y++ {
		pts = append(pts, image.Pt(r.Min.X, y))
		if r.Dx() > 1 {
			pts = append(pts, image.Pt(r.Max.X-1, y))
		}
	}
	return pts
}

// Checkerboard fills r with c on the squares where x+y is even and with C0
// on the others.
func Checkerboard(img *ahi.Image, r image.Rectangle, c ahi.Color) {
	r = r.Canon().Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if (x+y)%2 == 0 {
				img.SetColorAt(x, y, c)
			} else {
				img.SetColorAt(x, y, ahi.C0)
			}
		}
	}
}

// SwapColors exchanges a and b inside r.
func SwapColors(img *ahi.Image, r image.Rectangle, a, b ahi.Color) {
	r = r.Canon().Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			switch img.ColorAt(x, y) {
			case a:
				img.SetColorAt(x, y, b)
			case b:
				img.SetColorAt(x, y, a)
			}
		}
	}
}

// ReplaceColor changes every from pixel inside r to to.
func ReplaceColor(img *ahi.Image, r image.Rectangle, from, to ahi.Color) {
	r = r.Canon().Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.ColorAt(x, y) == from {
				img.SetColorAt(x, y, to)
			}
		}
	}
}

// dragRect is the rectangle spanned by two pixels, both included.
func dragRect(a, b image.Point) image.Rectangle {
	return image.Rect(min(a.X, b.X), min(a.Y, b.Y), max(a.X, b.X)+1, max(a.Y, b.Y)+1)
}

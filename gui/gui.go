// Package gui lays the editor out as a tree of widgets. Widgets draw
// through a Renderer and receive editor events in their own coordinate
// space; the window backend lives elsewhere.
package gui

import (
	"image"
	"image/color"

	"github.com/ha1tch/tuna/ahi"
	"github.com/ha1tch/tuna/editor"
)

// Renderer is the drawing surface handed to widgets. Coordinates are
// logical screen pixels.
type Renderer interface {
	FillRect(r image.Rectangle, c color.NRGBA)
	StrokeRect(r image.Rectangle, c color.NRGBA)
	// DrawImage scales img to fill dst, rendering C0 as transparent.
	DrawImage(img *ahi.Image, pal *ahi.Palette, dst image.Rectangle)
	DrawText(text string, at image.Point, c color.NRGBA)
}

// Action is a widget's answer to an event.
type Action struct {
	Redraw bool
	// Stop ends event propagation to the remaining siblings.
	Stop  bool
	Value any
}

// Ignore leaves the event to other widgets.
func Ignore() Action { return Action{} }

// Redraw consumes the event and asks for a new frame.
func Redraw() Action { return Action{Redraw: true, Stop: true} }

// Continue lets the event propagate.
func Continue(redraw bool) Action { return Action{Redraw: redraw} }

func handled(redraw bool) Action { return Action{Redraw: redraw, Stop: true} }

// Merge combines two answers to the same event. The first non-nil value
// wins.
func (a Action) Merge(b Action) Action {
	v := a.Value
	if v == nil {
		v = b.Value
	}
	return Action{Redraw: a.Redraw || b.Redraw, Stop: a.Stop || b.Stop, Value: v}
}

// Element is a widget.
type Element interface {
	Draw(st *editor.State, r Renderer)
	OnEvent(ev editor.Event, st *editor.State) Action
}

// SubrectElement places a child at Rect. The child draws and receives
// mouse positions relative to Rect.Min.
type SubrectElement struct {
	Rect  image.Rectangle
	Child Element
}

func (e *SubrectElement) Draw(st *editor.State, r Renderer) {
	e.Child.Draw(st, &offsetRenderer{r: r, off: e.Rect.Min})
}

// OnEvent drops a mouse-down outside Rect. Drags and releases are always
// passed on so that a stroke leaving the widget still ends.
func (e *SubrectElement) OnEvent(ev editor.Event, st *editor.State) Action {
	if down, ok := ev.(editor.MouseDown); ok && !down.Pos.In(e.Rect) {
		return Ignore()
	}
	return e.Child.OnEvent(editor.Translate(ev, e.Rect.Min), st)
}

// AggregateElement stacks widgets. Elements are drawn in order, so the
// last one is in front, and events visit them front to back.
type AggregateElement struct {
	Elements []Element
}

func (e *AggregateElement) Draw(st *editor.State, r Renderer) {
	for _, el := range e.Elements {
		el.Draw(st, r)
	}
}

func (e *AggregateElement) OnEvent(ev editor.Event, st *editor.State) Action {
	var acc Action
	for i := len(e.Elements) - 1; i >= 0; i-- {
		acc = acc.Merge(e.Elements[i].OnEvent(ev, st))
		if acc.Stop {
			break
		}
	}
	return acc
}

type offsetRenderer struct {
	r   Renderer
	off image.Point
}

func (o *offsetRenderer) FillRect(r image.Rectangle, c color.NRGBA) {
	o.r.FillRect(r.Add(o.off), c)
}

func (o *offsetRenderer) StrokeRect(r image.Rectangle, c color.NRGBA) {
	o.r.StrokeRect(r.Add(o.off), c)
}

func (o *offsetRenderer) DrawImage(img *ahi.Image, pal *ahi.Palette, dst image.Rectangle) {
	o.r.DrawImage(img, pal, dst.Add(o.off))
}

func (o *offsetRenderer) DrawText(text string, at image.Point, c color.NRGBA) {
	o.r.DrawText(text, at.Add(o.off), c)
}

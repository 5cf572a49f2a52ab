package gui

import (
	"image"
	"image/color"
	"strings"

	"github.com/ha1tch/tuna/ahi"
	"github.com/ha1tch/tuna/editor"
)

var (
	panelColor    = color.NRGBA{50, 50, 50, 255}
	barColor      = color.NRGBA{60, 60, 60, 255}
	buttonColor   = color.NRGBA{70, 70, 70, 255}
	borderColor   = color.NRGBA{90, 90, 90, 255}
	selectedColor = color.NRGBA{100, 100, 200, 255}
	textColor     = color.NRGBA{255, 255, 255, 255}
	dimTextColor  = color.NRGBA{200, 200, 200, 255}
)

const (
	buttonSize = 17
	buttonGap  = 2
	fontHeight = 8
)

// cell is the rectangle of button i in a two-column grid.
func cell(i int) image.Rectangle {
	x := buttonGap + (i%2)*(buttonSize+buttonGap)
	y := buttonGap + (i/2)*(buttonSize+buttonGap)
	return image.Rect(x, y, x+buttonSize, y+buttonSize)
}

// cellAt is the inverse of cell, or -1 between buttons.
func cellAt(p image.Point, n int) int {
	for i := 0; i < n; i++ {
		if p.In(cell(i)) {
			return i
		}
	}
	return -1
}

// Toolbox is the column of tool buttons, labelled with their shortcut.
type Toolbox struct{}

func (Toolbox) Draw(st *editor.State, rd Renderer) {
	for i := range editor.NumTools {
		t := editor.Tool(i)
		r := cell(i)
		bg := buttonColor
		if t == st.Tool {
			bg = selectedColor
		}
		rd.FillRect(r, bg)
		rd.StrokeRect(r, borderColor)
		rd.DrawText(strings.ToUpper(string(t.Key())), r.Min.Add(image.Pt(6, 5)), textColor)
	}
}

func (Toolbox) OnEvent(ev editor.Event, st *editor.State) Action {
	if e, ok := ev.(editor.MouseDown); ok {
		if i := cellAt(e.Pos, editor.NumTools); i >= 0 {
			return handled(st.SetTool(editor.Tool(i)))
		}
	}
	return Ignore()
}

// PaletteView shows the sixteen colors of the current palette.
type PaletteView struct{}

func (PaletteView) Draw(st *editor.State, rd Renderer) {
	pal := st.Current().Palette()
	for i := range pal {
		r := cell(i)
		if ahi.Color(i).Transparent() {
			rd.FillRect(r, checkerDark)
			half := r.Min.Add(r.Size().Div(2))
			rd.FillRect(image.Rectangle{r.Min, half}, checkerLight)
			rd.FillRect(image.Rectangle{half, r.Max}, checkerLight)
		} else {
			rd.FillRect(r, pal[i])
		}
		if ahi.Color(i) == st.Color {
			rd.StrokeRect(r.Inset(-1), white)
		} else {
			rd.StrokeRect(r, borderColor)
		}
	}
}

func (PaletteView) OnEvent(ev editor.Event, st *editor.State) Action {
	if e, ok := ev.(editor.MouseDown); ok {
		if i := cellAt(e.Pos, len(ahi.Palette{})); i >= 0 {
			return handled(st.SetColor(ahi.Color(i)))
		}
	}
	return Ignore()
}

// Navigator is the top bar: previous and next image buttons followed by
// the status line.
type Navigator struct {
	Width int
}

var (
	prevButton = image.Rect(1, 1, 11, 11)
	nextButton = image.Rect(13, 1, 23, 11)
)

func (n *Navigator) Draw(st *editor.State, rd Renderer) {
	rd.FillRect(image.Rect(0, 0, n.Width, barHeight), barColor)
	for _, b := range []struct {
		r     image.Rectangle
		label string
	}{{prevButton, "<"}, {nextButton, ">"}} {
		rd.FillRect(b.r, buttonColor)
		rd.DrawText(b.label, b.r.Min.Add(image.Pt(3, 1)), textColor)
	}
	rd.DrawText(st.Status(), image.Pt(nextButton.Max.X+6, 2), textColor)
}

func (n *Navigator) OnEvent(ev editor.Event, st *editor.State) Action {
	e, ok := ev.(editor.MouseDown)
	if !ok {
		return Ignore()
	}
	switch {
	case e.Pos.In(prevButton):
		return handled(st.PrevImage())
	case e.Pos.In(nextButton):
		return handled(st.NextImage())
	}
	return Ignore()
}

// PromptLine shows the open prompt and its text.
type PromptLine struct {
	Width int
}

func (p *PromptLine) Draw(st *editor.State, rd Renderer) {
	k := st.Mode.Kind
	if k == editor.ModeEdit || k == editor.ModeTestSentence {
		return
	}
	rd.FillRect(image.Rect(0, 0, p.Width, bottomHeight), panelColor)
	rd.DrawText(k.Prompt(), image.Pt(4, 4), dimTextColor)
	rd.DrawText(st.Mode.Text+"_", image.Pt(4, 4+fontHeight+2), textColor)
}

func (p *PromptLine) OnEvent(editor.Event, *editor.State) Action { return Ignore() }

// Placement is where one glyph of the test sentence is drawn, in
// unscaled pixels relative to the start of the line.
type Placement struct {
	Index int
	At    image.Point
}

// LayoutSentence places the glyphs of the test sentence. Each glyph is
// drawn left_edge columns to the left of the pen and the pen advances by
// width - left_edge - right_edge. Characters without a glyph are skipped.
// The second result is the final pen position.
func LayoutSentence(s *editor.Snapshot) ([]Placement, int) {
	if s.Font == nil {
		return nil, 0
	}
	var out []Placement
	x := 0
	for _, ch := range s.TestSentence {
		i, ok := s.Font.Index(ch)
		if !ok {
			continue
		}
		g := s.Font.Glyphs[i]
		out = append(out, Placement{Index: i, At: image.Pt(x-g.LeftEdge, 0)})
		x += s.ImageAt(i).Width() - g.LeftEdge - g.RightEdge
	}
	return out, x
}

// SentenceView renders the font test sentence with the document's own
// glyphs.
type SentenceView struct {
	Size image.Point
}

func (v *SentenceView) Draw(st *editor.State, rd Renderer) {
	s := st.Current()
	k := st.Mode.Kind
	if s.Font == nil || (k != editor.ModeEdit && k != editor.ModeTestSentence) {
		return
	}
	rd.FillRect(image.Rectangle{Max: v.Size}, panelColor)

	zoom := max(1, (v.Size.Y-4)/max(1, s.Font.LineHeight))
	origin := image.Pt(4, 2)
	pal := s.Palette()
	placements, end := LayoutSentence(s)
	for _, p := range placements {
		img := s.ImageAt(p.Index)
		r := image.Rectangle{Min: p.At, Max: p.At.Add(image.Pt(img.Width(), img.Height()))}
		rd.DrawImage(img, pal, r.Mul(zoom).Add(origin))
	}
	if k == editor.ModeTestSentence {
		x := origin.X + end*zoom
		rd.FillRect(image.Rect(x, origin.Y, x+1, origin.Y+s.Font.LineHeight*zoom), textColor)
	}
}

func (v *SentenceView) OnEvent(editor.Event, *editor.State) Action { return Ignore() }

package gui

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ha1tch/tuna/ahi"
	"github.com/ha1tch/tuna/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawCall struct {
	op   string
	rect image.Rectangle
	img  *ahi.Image
	text string
}

// recorder is a Renderer that remembers what it was asked to draw.
type recorder struct {
	calls []drawCall
}

func (r *recorder) FillRect(rect image.Rectangle, c color.NRGBA) {
	r.calls = append(r.calls, drawCall{op: "fill", rect: rect})
}

func (r *recorder) StrokeRect(rect image.Rectangle, c color.NRGBA) {
	r.calls = append(r.calls, drawCall{op: "stroke", rect: rect})
}

func (r *recorder) DrawImage(img *ahi.Image, pal *ahi.Palette, dst image.Rectangle) {
	r.calls = append(r.calls, drawCall{op: "image", rect: dst, img: img})
}

func (r *recorder) DrawText(text string, at image.Point, c color.NRGBA) {
	r.calls = append(r.calls, drawCall{op: "text", rect: image.Rectangle{at, at}, text: text})
}

func (r *recorder) images() []drawCall {
	var out []drawCall
	for _, c := range r.calls {
		if c.op == "image" {
			out = append(out, c)
		}
	}
	return out
}

func newState(t *testing.T) *editor.State {
	t.Helper()
	return editor.NewState(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

// probe is an Element that records the events it receives and answers
// with a fixed action.
type probe struct {
	events []editor.Event
	answer Action
	drawn  int
}

func (p *probe) Draw(*editor.State, Renderer) { p.drawn++ }

func (p *probe) OnEvent(ev editor.Event, _ *editor.State) Action {
	p.events = append(p.events, ev)
	return p.answer
}

func TestActionMerge(t *testing.T) {
	a := Continue(true).Merge(Action{Stop: true, Value: 1})
	assert.Equal(t, Action{Redraw: true, Stop: true, Value: 1}, a)
	assert.Equal(t, "x", Action{Value: "x"}.Merge(Action{Value: "y"}).Value)
	assert.Equal(t, Action{}, Ignore().Merge(Ignore()))
	assert.True(t, Redraw().Stop)
}

func TestSubrectTranslates(t *testing.T) {
	st := newState(t)
	p := &probe{answer: Redraw()}
	e := &SubrectElement{Rect: image.Rect(10, 20, 30, 40), Child: p}

	assert.Equal(t, Ignore(), e.OnEvent(editor.MouseDown{Pos: image.Pt(5, 25)}, st))
	assert.Empty(t, p.events)

	e.OnEvent(editor.MouseDown{Pos: image.Pt(12, 21)}, st)
	e.OnEvent(editor.MouseDrag{Pos: image.Pt(50, 0)}, st)
	e.OnEvent(editor.MouseUp{Pos: image.Pt(0, 0)}, st)
	e.OnEvent(editor.ClockTick{}, st)
	assert.Equal(t, []editor.Event{
		editor.MouseDown{Pos: image.Pt(2, 1)},
		editor.MouseDrag{Pos: image.Pt(40, -20)},
		editor.MouseUp{Pos: image.Pt(-10, -20)},
		editor.ClockTick{},
	}, p.events)
}

func TestSubrectOffsetsDrawing(t *testing.T) {
	var rec recorder
	e := &SubrectElement{Rect: image.Rect(100, 50, 200, 100), Child: &PromptLine{Width: 100}}
	st := newState(t)
	st.BeginPrompt(editor.ModeGoto)
	e.Draw(st, &rec)
	require.NotEmpty(t, rec.calls)
	assert.Equal(t, image.Pt(100, 50), rec.calls[0].rect.Min)
}

func TestAggregateOrder(t *testing.T) {
	st := newState(t)
	back := &probe{answer: Continue(true)}
	middle := &probe{answer: handled(false)}
	front := &probe{answer: Continue(false)}
	agg := &AggregateElement{Elements: []Element{back, middle, front}}

	a := agg.OnEvent(editor.ClockTick{}, st)
	assert.True(t, a.Stop)
	assert.False(t, a.Redraw)
	assert.Len(t, front.events, 1)
	assert.Len(t, middle.events, 1)
	assert.Empty(t, back.events, "propagation stops at the first Stop")

	middle.answer = Continue(false)
	a = agg.OnEvent(editor.ClockTick{}, st)
	assert.Equal(t, Continue(true), a)
	assert.Len(t, back.events, 1)

	agg.Draw(st, &recorder{})
	assert.Equal(t, []int{1, 1, 1}, []int{back.drawn, middle.drawn, front.drawn})
}

func TestMarqueeDots(t *testing.T) {
	r := image.Rect(0, 0, 8, 8)
	has := func(pts []image.Point, p image.Point) bool {
		for _, q := range pts {
			if q == p {
				return true
			}
		}
		return false
	}

	dots := MarqueeDots(r, 0)
	for x := 0; x < 8; x++ {
		assert.Equal(t, x < 4, has(dots, image.Pt(x, 0)), "top x=%d", x)
	}
	for y := 1; y < 7; y++ {
		assert.Equal(t, y >= 4, has(dots, image.Pt(0, y)), "left y=%d", y)
		assert.Equal(t, y >= 4, has(dots, image.Pt(7, y)), "right y=%d", y)
	}

	// one step later the top edge has moved right and the bottom left
	dots = MarqueeDots(r, 1)
	assert.False(t, has(dots, image.Pt(0, 0)))
	assert.True(t, has(dots, image.Pt(4, 0)))
	assert.True(t, has(dots, image.Pt(7, 7)))
	assert.False(t, has(dots, image.Pt(3, 7)))

	assert.Nil(t, MarqueeDots(image.Rectangle{}, 3))
	assert.Equal(t, MarqueeDots(r, 2), MarqueeDots(r, 2+editor.MarqueeAnimationModulus))
}

func TestCanvasZoom(t *testing.T) {
	st := newState(t)
	v := &CanvasView{Size: image.Pt(400, 288)}
	zoom, origin := v.Zoom(st.Current())
	assert.Equal(t, 9, zoom)
	assert.Equal(t, image.Pt(56, 0), origin)

	assert.Equal(t, image.Pt(0, 0), v.ToPixel(st.Current(), image.Pt(56, 0)))
	assert.Equal(t, image.Pt(-1, 0), v.ToPixel(st.Current(), image.Pt(55, 8)))
	assert.Equal(t, image.Pt(31, 31), v.ToPixel(st.Current(), image.Pt(56+287, 287)))
	assert.Equal(t, image.Rect(56+9, 9, 56+27, 27), v.ToScreen(st.Current(), image.Rect(1, 1, 3, 3)))
}

func TestEditorViewPencil(t *testing.T) {
	st := newState(t)
	v := NewEditorView()

	// canvasRect starts at (40,12); the 32x32 image is drawn at zoom 8
	// from (72,12) inside it.
	at := func(x, y int) image.Point { return image.Pt(40+72+8*x+4, 12+12+8*y+4) }
	require.True(t, v.OnEvent(editor.MouseDown{Pos: at(3, 2)}, st).Redraw)
	require.True(t, v.OnEvent(editor.MouseDrag{Pos: at(5, 2)}, st).Redraw)
	v.OnEvent(editor.MouseUp{Pos: at(5, 2)}, st)

	img := st.Current().Image()
	for x := 3; x <= 5; x++ {
		assert.Equal(t, ahi.C1, img.ColorAt(x, 2))
	}
	assert.Equal(t, 3, img.CountOpaque())
	assert.Equal(t, 1, st.UndoDepth())
	assert.Nil(t, v.Canvas().Canvas.Drag())
}

func TestEditorViewPanels(t *testing.T) {
	st := newState(t)
	v := NewEditorView()

	// palette column, cell 5 is in the second column of the third row
	c := cell(5).Min.Add(paletteRect.Min).Add(image.Pt(1, 1))
	require.True(t, v.OnEvent(editor.MouseDown{Pos: c}, st).Redraw)
	assert.Equal(t, ahi.C5, st.Color)

	c = cell(int(editor.ToolLine)).Min.Add(toolboxRect.Min).Add(image.Pt(1, 1))
	require.True(t, v.OnEvent(editor.MouseDown{Pos: c}, st).Redraw)
	assert.Equal(t, editor.ToolLine, st.Tool)

	// gaps between buttons do nothing
	a := v.OnEvent(editor.MouseDown{Pos: toolboxRect.Min}, st)
	assert.False(t, a.Redraw)
}

func TestNavigator(t *testing.T) {
	st := newState(t)
	require.True(t, st.Mutation().AddNewImage())
	st.SelectImage(0)
	v := NewEditorView()

	a := v.OnEvent(editor.MouseDown{Pos: nextButton.Min.Add(image.Pt(2, 2))}, st)
	assert.True(t, a.Redraw)
	assert.Equal(t, 1, st.Current().ImageIndex)

	a = v.OnEvent(editor.MouseDown{Pos: nextButton.Min.Add(image.Pt(2, 2))}, st)
	assert.False(t, a.Redraw, "already at the last image")

	v.OnEvent(editor.MouseDown{Pos: prevButton.Min.Add(image.Pt(2, 2))}, st)
	assert.Equal(t, 0, st.Current().ImageIndex)
}

func TestEditorViewPrompt(t *testing.T) {
	st := newState(t)
	v := NewEditorView()

	require.True(t, v.OnEvent(editor.KeyDown{Key: 'g', Mods: editor.ModCommand}, st).Redraw)
	require.Equal(t, editor.ModeGoto, st.Mode.Kind)

	center := canvasRect.Min.Add(canvasRect.Size().Div(2))
	assert.Equal(t, Ignore(), v.OnEvent(editor.MouseDown{Pos: center}, st))
	assert.Zero(t, st.Current().Image().CountOpaque())

	require.True(t, v.OnEvent(editor.TextInput{Text: "0"}, st).Redraw)
	assert.Equal(t, "0", st.Mode.Text)

	var rec recorder
	v.Draw(st, &rec)
	var texts []string
	for _, c := range rec.calls {
		if c.op == "text" {
			texts = append(texts, c.text)
		}
	}
	assert.Contains(t, texts, "Goto:")
	assert.Contains(t, texts, "0_")

	require.True(t, v.OnEvent(editor.KeyDown{Key: editor.KeyEscape}, st).Redraw)
	assert.Equal(t, editor.ModeEdit, st.Mode.Kind)
}

func TestCanvasDrawsFloater(t *testing.T) {
	st := newState(t)
	st.Mutation().Image().FillRect(image.Rect(0, 0, 4, 4), ahi.C2)
	st.Mutation().Select(image.Rect(0, 0, 2, 2))
	v := NewEditorView()

	var rec recorder
	v.Draw(st, &rec)
	imgs := rec.images()
	require.Len(t, imgs, 2)
	assert.Same(t, st.Current().Image(), imgs[0].img)
	assert.Same(t, st.Current().Selection.Image, imgs[1].img)
	assert.Equal(t, image.Rect(112, 24, 112+16, 24+16), imgs[1].rect)

	require.True(t, v.OnEvent(editor.ClockTick{}, st).Redraw)
	assert.Equal(t, 1, v.Canvas().Canvas.Marquee)
}

func TestLineCanvasPreview(t *testing.T) {
	st := newState(t)
	st.SetTool(editor.ToolLine)
	v := &CanvasView{Size: image.Pt(32, 32)}

	v.OnEvent(editor.MouseDown{Pos: image.Pt(0, 0)}, st)
	v.OnEvent(editor.MouseDrag{Pos: image.Pt(3, 0)}, st)
	var rec recorder
	v.Draw(st, &rec)

	var dots []image.Rectangle
	for _, c := range rec.calls[len(rec.calls)-4:] {
		dots = append(dots, c.rect)
	}
	assert.Equal(t, []image.Rectangle{
		image.Rect(0, 0, 1, 1), image.Rect(1, 0, 2, 1), image.Rect(2, 0, 3, 1), image.Rect(3, 0, 4, 1),
	}, dots)
	assert.Zero(t, st.Current().Image().CountOpaque())
}

func writeFont(t *testing.T) string {
	t.Helper()
	font := &ahi.Font{Baseline: 6, LineHeight: 8, Palettes: ahi.DefaultPalettes()}
	for _, g := range []struct {
		ch          rune
		width       int
		left, right int
	}{{'a', 5, 1, 0}, {'b', 6, 0, 2}, {' ', 3, 0, 0}} {
		font.Glyphs = append(font.Glyphs, ahi.Glyph{Char: g.ch, Image: ahi.NewImage(g.width, 8), LeftEdge: g.left, RightEdge: g.right})
	}
	var buf bytes.Buffer
	require.NoError(t, ahi.EncodeFont(&buf, font))
	path := filepath.Join(t.TempDir(), "test.ahf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestLayoutSentence(t *testing.T) {
	st := newState(t)
	pl, end := LayoutSentence(st.Current())
	assert.Nil(t, pl)
	assert.Zero(t, end)

	require.NoError(t, st.Load(writeFont(t)))
	s := st.Current()
	s.TestSentence = "ab?a b"

	// glyphs are sorted: ' ' 0, 'a' 1, 'b' 2
	pl, end = LayoutSentence(s)
	assert.Equal(t, []Placement{
		{Index: 1, At: image.Pt(-1, 0)},
		{Index: 2, At: image.Pt(4, 0)},
		{Index: 1, At: image.Pt(7, 0)},
		{Index: 0, At: image.Pt(12, 0)},
		{Index: 2, At: image.Pt(15, 0)},
	}, pl)
	assert.Equal(t, 19, end)
}

func TestSentenceViewDrawsGlyphs(t *testing.T) {
	st := newState(t)
	require.NoError(t, st.Load(writeFont(t)))
	st.Current().TestSentence = "ba"
	v := &SentenceView{Size: bottomRect.Size()}

	var rec recorder
	v.Draw(st, &rec)
	imgs := rec.images()
	require.Len(t, imgs, 2)
	// (28-4)/8 = zoom 3 from (4,2)
	assert.Equal(t, image.Rect(4, 2, 4+18, 2+24), imgs[0].rect)
	assert.Equal(t, image.Rect(4+3*3, 2, 4+3*3+15, 2+24), imgs[1].rect)

	st.BeginPrompt(editor.ModeGoto)
	rec = recorder{}
	v.Draw(st, &rec)
	assert.Empty(t, rec.calls, "hidden behind other prompts")
}

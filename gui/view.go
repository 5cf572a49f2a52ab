package gui

import (
	"image"

	"github.com/ha1tch/tuna/editor"
)

// Logical screen size. Backends scale it by an integer factor.
const (
	ScreenWidth  = 480
	ScreenHeight = 320
)

const (
	barHeight    = 12
	sideWidth    = 40
	bottomHeight = 28
)

var (
	navigatorRect = image.Rect(0, 0, ScreenWidth, barHeight)
	toolboxRect   = image.Rect(0, barHeight, sideWidth, ScreenHeight-bottomHeight)
	paletteRect   = image.Rect(ScreenWidth-sideWidth, barHeight, ScreenWidth, ScreenHeight-bottomHeight)
	canvasRect    = image.Rect(sideWidth, barHeight, ScreenWidth-sideWidth, ScreenHeight-bottomHeight)
	bottomRect    = image.Rect(0, ScreenHeight-bottomHeight, ScreenWidth, ScreenHeight)
)

// EditorView is the root widget. Keyboard and text go to the editor's
// bindings, mouse presses reach the widgets only while no prompt is open
// and clock ticks drive the canvas.
type EditorView struct {
	canvas *CanvasView
	root   AggregateElement
}

func NewEditorView() *EditorView {
	v := &EditorView{canvas: &CanvasView{Size: canvasRect.Size()}}
	v.root.Elements = []Element{
		&SubrectElement{Rect: canvasRect, Child: v.canvas},
		&SubrectElement{Rect: toolboxRect, Child: Toolbox{}},
		&SubrectElement{Rect: paletteRect, Child: PaletteView{}},
		&SubrectElement{Rect: navigatorRect, Child: &Navigator{Width: navigatorRect.Dx()}},
		&SubrectElement{Rect: bottomRect, Child: &SentenceView{Size: bottomRect.Size()}},
		&SubrectElement{Rect: bottomRect, Child: &PromptLine{Width: bottomRect.Dx()}},
	}
	return v
}

// Canvas returns the canvas widget.
func (v *EditorView) Canvas() *CanvasView { return v.canvas }

func (v *EditorView) Draw(st *editor.State, rd Renderer) {
	rd.FillRect(image.Rect(0, 0, ScreenWidth, ScreenHeight), panelColor)
	v.root.Draw(st, rd)
}

func (v *EditorView) OnEvent(ev editor.Event, st *editor.State) Action {
	switch e := ev.(type) {
	case editor.KeyDown:
		return handled(st.HandleKey(e))
	case editor.TextInput:
		return handled(st.HandleText(e))
	case editor.ClockTick:
		return v.canvas.OnEvent(ev, st)
	case editor.MouseDown, editor.MouseDrag:
		if st.Mode.Kind != editor.ModeEdit {
			return Ignore()
		}
	}
	// Releases always get through so a stroke interrupted by a prompt
	// is closed.
	return v.root.OnEvent(ev, st)
}

package main

import (
	"image"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ha1tch/tuna/editor"
	"github.com/ha1tch/tuna/gui"
)

// tickInterval is the clock tick period in seconds.
const tickInterval = 0.05

// App owns the window and pumps raylib input into the editor.
type App struct {
	st     *editor.State
	view   *gui.EditorView
	logger *slog.Logger

	// The view is rendered at logical size into target, which is blitted
	// scaled to the window.
	target rl.RenderTexture2D
	scale  int
	dirty  bool

	renderer *renderer

	mouseDown bool
	lastMouse image.Point
	lastTick  float64
	title     string
}

func NewApp(st *editor.State, scale int, logger *slog.Logger) *App {
	app := &App{
		st:       st,
		view:     gui.NewEditorView(),
		logger:   logger,
		target:   rl.LoadRenderTexture(gui.ScreenWidth, gui.ScreenHeight),
		scale:    scale,
		dirty:    true,
		renderer: &renderer{},
		lastTick: rl.GetTime(),
	}
	return app
}

// ScreenToLogical maps a window position to the 480x320 view.
func (app *App) ScreenToLogical(v rl.Vector2) image.Point {
	return image.Pt(int(v.X)/app.scale, int(v.Y)/app.scale)
}

func (app *App) dispatch(ev editor.Event) {
	if app.view.OnEvent(ev, app.st).Redraw {
		app.dirty = true
	}
}

// Update turns this frame's input into editor events.
func (app *App) Update() {
	mods := modifiers()
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if k, ok := translateKey(key); ok {
			app.dispatch(editor.KeyDown{Key: k, Mods: mods})
		}
	}
	for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		if mods.Has(editor.ModCommand) {
			continue
		}
		app.dispatch(editor.TextInput{Text: string(rune(ch))})
	}

	pos := app.ScreenToLogical(rl.GetMousePosition())
	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		app.mouseDown = true
		app.dispatch(editor.MouseDown{Pos: pos})
	case app.mouseDown && rl.IsMouseButtonReleased(rl.MouseLeftButton):
		app.mouseDown = false
		app.dispatch(editor.MouseUp{Pos: pos})
	case app.mouseDown && pos != app.lastMouse:
		app.dispatch(editor.MouseDrag{Pos: pos})
	}
	app.lastMouse = pos

	if now := rl.GetTime(); now-app.lastTick >= tickInterval {
		app.lastTick = now
		app.dispatch(editor.ClockTick{})
	}

	if title := app.st.Title(); title != app.title {
		app.title = title
		rl.SetWindowTitle(title)
	}
}

// Draw re-renders the view when something changed and presents it.
func (app *App) Draw() {
	if app.dirty {
		rl.BeginTextureMode(app.target)
		rl.ClearBackground(rl.Black)
		app.view.Draw(app.st, app.renderer)
		rl.EndTextureMode()
		app.renderer.release()
		app.dirty = false
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	// Render textures are stored upside down
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: gui.ScreenWidth, Height: -gui.ScreenHeight}
	dstRect := rl.Rectangle{
		X:      0,
		Y:      0,
		Width:  float32(gui.ScreenWidth * app.scale),
		Height: float32(gui.ScreenHeight * app.scale),
	}
	rl.DrawTexturePro(app.target.Texture, srcRect, dstRect, rl.Vector2{}, 0, rl.White)

	rl.EndDrawing()
}

func (app *App) Close() {
	rl.UnloadRenderTexture(app.target)
}

// fitScale is the largest integer scale that leaves room for window
// decorations on the current monitor.
func fitScale() int {
	m := rl.GetCurrentMonitor()
	w := rl.GetMonitorWidth(m) * 9 / 10
	h := rl.GetMonitorHeight(m) * 9 / 10
	return max(1, min(w/gui.ScreenWidth, h/gui.ScreenHeight))
}

func run(st *editor.State, scale int, logger *slog.Logger) {
	rl.InitWindow(gui.ScreenWidth, gui.ScreenHeight, st.Title())
	defer rl.CloseWindow()
	if scale == 0 {
		scale = fitScale()
	}
	rl.SetWindowSize(gui.ScreenWidth*scale, gui.ScreenHeight*scale)
	rl.SetTargetFPS(60)
	// Escape belongs to the editor.
	rl.SetExitKey(0)

	logger.Debug("window open", "scale", scale)

	app := NewApp(st, scale, logger)
	defer app.Close()

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()
	}
}

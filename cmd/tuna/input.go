package main

import (
	"runtime"
	"unicode"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ha1tch/tuna/editor"
)

var specialKeys = map[int32]editor.Key{
	rl.KeyUp:        editor.KeyArrowUp,
	rl.KeyDown:      editor.KeyArrowDown,
	rl.KeyLeft:      editor.KeyArrowLeft,
	rl.KeyRight:     editor.KeyArrowRight,
	rl.KeyBackspace: editor.KeyBackspace,
	rl.KeyDelete:    editor.KeyDelete,
	rl.KeyEnter:     editor.KeyReturn,
	rl.KeyKpEnter:   editor.KeyReturn,
	rl.KeyEscape:    editor.KeyEscape,
	rl.KeyTab:       editor.KeyTab,
}

// translateKey maps a raylib key code to an editor key. Letters are
// reported in lower case whatever the shift state.
func translateKey(key int32) (editor.Key, bool) {
	switch {
	case key >= rl.KeyA && key <= rl.KeyZ:
		return editor.Key(unicode.ToLower(rune(key))), true
	case key >= rl.KeyZero && key <= rl.KeyNine:
		return editor.Key(key), true
	case key == rl.KeyLeftBracket || key == rl.KeyRightBracket:
		return editor.Key(key), true
	}
	k, ok := specialKeys[key]
	return k, ok
}

// modifiers reads the modifier state. Command is the Super key on macOS
// and Control elsewhere.
func modifiers() editor.Mods {
	var m editor.Mods
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		m |= editor.ModShift
	}
	left, right := int32(rl.KeyLeftControl), int32(rl.KeyRightControl)
	if runtime.GOOS == "darwin" {
		left, right = rl.KeyLeftSuper, rl.KeyRightSuper
	}
	if rl.IsKeyDown(left) || rl.IsKeyDown(right) {
		m |= editor.ModCommand
	}
	return m
}

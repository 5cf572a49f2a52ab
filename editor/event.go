package editor

import (
	"image"
	"unicode"
)

// Event is an input delivered by the platform layer.
type Event interface {
	isEvent()
}

type MouseDown struct{ Pos image.Point }
type MouseDrag struct{ Pos image.Point }
type MouseUp struct{ Pos image.Point }

// KeyDown is a key press. Printable keys use their unshifted lower-case
// rune; the others use the Key constants below.
type KeyDown struct {
	Key  Key
	Mods Mods
}

// TextInput carries text typed while a prompt is open.
type TextInput struct{ Text string }

type ClockTick struct{}

func (MouseDown) isEvent() {}
func (MouseDrag) isEvent() {}
func (MouseUp) isEvent()   {}
func (KeyDown) isEvent()   {}
func (TextInput) isEvent() {}
func (ClockTick) isEvent() {}

type Key rune

// Special keys sit above the Unicode range.
const (
	KeyArrowUp Key = unicode.MaxRune + 1 + iota
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyBackspace
	KeyDelete
	KeyReturn
	KeyEscape
	KeyTab
)

type Mods uint8

const (
	ModShift Mods = 1 << iota
	// ModCommand is Command on macOS and Control elsewhere.
	ModCommand
)

func (m Mods) Has(o Mods) bool { return m&o == o }

// Translate returns ev with its mouse position moved by -offset. Other
// events are returned unchanged.
func Translate(ev Event, offset image.Point) Event {
	switch e := ev.(type) {
	case MouseDown:
		return MouseDown{Pos: e.Pos.Sub(offset)}
	case MouseDrag:
		return MouseDrag{Pos: e.Pos.Sub(offset)}
	case MouseUp:
		return MouseUp{Pos: e.Pos.Sub(offset)}
	}
	return ev
}

package main

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ha1tch/tuna/ahi"
)

const fontSize = 8

// renderer draws the gui into the current raylib target.
type renderer struct {
	// textures uploaded during a frame, released once it is rendered
	textures []rl.Texture2D
}

func toColor(c color.NRGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func toRect(r image.Rectangle) rl.Rectangle {
	return rl.Rectangle{X: float32(r.Min.X), Y: float32(r.Min.Y), Width: float32(r.Dx()), Height: float32(r.Dy())}
}

func (rd *renderer) FillRect(r image.Rectangle, c color.NRGBA) {
	if r.Empty() {
		return
	}
	rl.DrawRectangleRec(toRect(r), toColor(c))
}

func (rd *renderer) StrokeRect(r image.Rectangle, c color.NRGBA) {
	if r.Empty() {
		return
	}
	rl.DrawRectangleLinesEx(toRect(r), 1, toColor(c))
}

func (rd *renderer) DrawImage(img *ahi.Image, pal *ahi.Palette, dst image.Rectangle) {
	pix := img.RGBA(pal)
	tex := rl.LoadTextureFromImage(rl.NewImage(pix.Pix, int32(img.Width()), int32(img.Height()), 1, rl.UncompressedR8g8b8a8))
	rd.textures = append(rd.textures, tex)

	src := rl.Rectangle{Width: float32(img.Width()), Height: float32(img.Height())}
	rl.DrawTexturePro(tex, src, toRect(dst), rl.Vector2{}, 0, rl.White)
}

func (rd *renderer) DrawText(text string, at image.Point, c color.NRGBA) {
	rl.DrawText(text, int32(at.X), int32(at.Y), fontSize, toColor(c))
}

func (rd *renderer) release() {
	for _, t := range rd.textures {
		rl.UnloadTexture(t)
	}
	rd.textures = rd.textures[:0]
}

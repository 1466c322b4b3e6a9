package colors

import (
	"fmt"
	"image/color"
)

// Color is linear RGBA in [0..1], the layout shaders consume.
type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Transparent = Color{0, 0, 0, 0}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
)

// RGB8 builds an opaque color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

// Hex builds an opaque color from 0xRRGGBB.
func Hex(v uint32) Color {
	return RGB8(uint8(v>>16), uint8(v>>8), uint8(v))
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// RGB returns the color channels without alpha.
func (c Color) RGB() [3]float32 { return [3]float32{c[0], c[1], c[2]} }

// NRGBA converts to a straight-alpha 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: to8(c[3])}
}

// HexString formats the color channels as "#rrggbb".
func (c Color) HexString() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

package text

import (
	"github.com/hubastard/atomview/engine/colors"
	"github.com/hubastard/atomview/engine/gfx/renderer2d"
)

// Draw draws s with its top-left corner at (x, y), Y down. Runes missing
// from the atlas advance like a space.
func Draw(r2d *renderer2d.Renderer2D, a *Atlas, x, y float32, s string, color colors.Color) {
	penX, baseY := x, y+a.Ascent
	prev := rune(-1)
	for _, r := range s {
		if r == '\n' {
			penX, baseY, prev = x, baseY+a.LineHeight(), -1
			continue
		}
		g, ok := a.Glyphs[r]
		if !ok {
			penX += a.Glyphs[' '].Advance
			prev = -1
			continue
		}
		if prev >= 0 {
			penX += a.Kern(prev, r)
		}
		if g.W > 0 && g.H > 0 {
			r2d.DrawTexturedQuadUV(penX+g.BearingX, baseY-g.BearingY, float32(g.W), float32(g.H),
				a.Texture, color, g.U0, g.V0, g.U1, g.V1)
		}
		penX += g.Advance
		prev = r
	}
}

// Measure returns the size of the box Draw fills for s.
func Measure(a *Atlas, s string) (w, h float32) {
	var line float32
	prev := rune(-1)
	h = a.LineHeight()
	for _, r := range s {
		if r == '\n' {
			w, line, prev = max(w, line), 0, -1
			h += a.LineHeight()
			continue
		}
		g, ok := a.Glyphs[r]
		if !ok {
			line += a.Glyphs[' '].Advance
			prev = -1
			continue
		}
		if prev >= 0 {
			line += a.Kern(prev, r)
		}
		line += g.Advance
		prev = r
	}
	return max(w, line), h
}

// Package text rasterizes a TrueType font into a glyph atlas and draws
// strings with the 2D renderer.
package text

import (
	"fmt"
	"image"

	"github.com/hubastard/atomview/engine/core"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type Glyph struct {
	Advance  float32 // pixels
	BearingX float32 // left bearing
	BearingY float32 // baseline to glyph top
	W, H     int
	U0, V0   float32
	U1, V1   float32
}

// Atlas holds white glyphs with alpha coverage for runes 32..255.
type Atlas struct {
	SizePx          float32
	Ascent, Descent float32
	LineGap         float32
	Glyphs          map[rune]Glyph
	Image           *image.RGBA
	Texture         core.Texture

	kern map[[2]rune]float32
}

const (
	firstRune = 32
	lastRune  = 255
	padding   = 2
	maxAtlas  = 4096
)

// NewAtlas builds the atlas for ttf at sizePx and uploads it to dev.
func NewAtlas(dev core.Device, ttf []byte, sizePx float32) (*Atlas, error) {
	a, err := Build(ttf, sizePx)
	if err != nil {
		return nil, err
	}
	w, h := a.Image.Rect.Dx(), a.Image.Rect.Dy()
	a.Texture, err = dev.CreateTexture(core.TextureDesc{
		Width: w, Height: h,
		Format:    core.TextureRGBA8,
		Pixels:    a.Image.Pix,
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, fmt.Errorf("text: upload atlas: %w", err)
	}
	return a, nil
}

// Build rasterizes the atlas on the CPU without uploading it.
func Build(ttf []byte, sizePx float32) (*Atlas, error) {
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: new face: %w", err)
	}
	defer face.Close()

	m := face.Metrics()
	a := &Atlas{
		SizePx:  sizePx,
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(-m.Descent.Round()),
		Glyphs:  make(map[rune]Glyph),
		kern:    make(map[[2]rune]float32),
	}
	a.LineGap = float32(m.Height.Round()) - a.Ascent + a.Descent

	type cell struct {
		r      rune
		bounds fixed.Rectangle26_6
		w, h   int
	}
	var cells []cell
	for r := rune(firstRune); r <= lastRune; r++ {
		b, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		c := cell{r: r, bounds: b, w: (b.Max.X - b.Min.X).Ceil(), h: (b.Max.Y - b.Min.Y).Ceil()}
		cells = append(cells, c)
		a.Glyphs[r] = Glyph{
			Advance:  float32(adv.Round()),
			BearingX: float32(b.Min.X.Round()),
			BearingY: float32(-b.Min.Y.Round()),
			W:        c.w,
			H:        c.h,
		}
	}

	// Shelf packing; the atlas doubles until every glyph fits.
	size := 128
	var pos map[rune]image.Point
	for {
		pos = make(map[rune]image.Point, len(cells))
		x, y, rowH, fits := padding, padding, 0, true
		for _, c := range cells {
			if c.w == 0 || c.h == 0 {
				continue
			}
			if x+c.w+padding > size {
				x, y, rowH = padding, y+rowH+padding, 0
			}
			if x+c.w+padding > size || y+c.h+padding > size {
				fits = false
				break
			}
			pos[c.r] = image.Pt(x, y)
			x += c.w + padding
			rowH = max(rowH, c.h)
		}
		if fits {
			break
		}
		if size *= 2; size > maxAtlas {
			return nil, fmt.Errorf("text: atlas larger than %d px", maxAtlas)
		}
	}

	a.Image = image.NewRGBA(image.Rect(0, 0, size, size))
	d := &font.Drawer{Dst: a.Image, Src: image.White, Face: face}
	inv := 1 / float32(size)
	for _, c := range cells {
		p, ok := pos[c.r]
		if !ok {
			continue
		}
		// The dot sits on the baseline, offset so the glyph's bounds land at p.
		d.Dot = fixed.Point26_6{
			X: fixed.I(p.X) - c.bounds.Min.X,
			Y: fixed.I(p.Y) - c.bounds.Min.Y,
		}
		d.DrawString(string(c.r))

		g := a.Glyphs[c.r]
		g.U0, g.V0 = float32(p.X)*inv, float32(p.Y)*inv
		g.U1, g.V1 = float32(p.X+c.w)*inv, float32(p.Y+c.h)*inv
		a.Glyphs[c.r] = g
	}

	for _, l := range cells {
		for _, r := range cells {
			if k := face.Kern(l.r, r.r); k != 0 {
				a.kern[[2]rune{l.r, r.r}] = float32(k.Round())
			}
		}
	}
	return a, nil
}

// Kern returns the kerning adjustment between l and r in pixels.
func (a *Atlas) Kern(l, r rune) float32 { return a.kern[[2]rune{l, r}] }

func (a *Atlas) LineHeight() float32 { return a.Ascent - a.Descent + a.LineGap }

// Release deletes the atlas texture.
func (a *Atlas) Release(dev core.Device) {
	if a.Texture != nil {
		dev.DeleteTexture(a.Texture)
		a.Texture = nil
	}
}

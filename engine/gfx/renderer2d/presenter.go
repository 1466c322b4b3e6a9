package renderer2d

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/atomview/engine/assets"
	"github.com/hubastard/atomview/engine/colors"
	"github.com/hubastard/atomview/engine/core"
	"github.com/hubastard/atomview/engine/surface"
)

type surfaceTex struct {
	tex core.Texture
	gen uint64
}

// Presenter draws the surfaces of a document as textured quads, uploading a
// surface's image only after its backing buffer changed.
type Presenter struct {
	dev  core.Device
	r2d  *Renderer2D
	texs map[*surface.Surface]*surfaceTex

	// Highlight, if set, is outlined.
	Highlight *surface.Surface
	// HighlightColor is the outline color.
	HighlightColor colors.Color
}

func NewPresenter(dev core.Device, r2d *Renderer2D) *Presenter {
	return &Presenter{
		dev:            dev,
		r2d:            r2d,
		texs:           make(map[*surface.Surface]*surfaceTex),
		HighlightColor: colors.Hex(0x4FC3F7),
	}
}

// Present draws every attached surface at its document position in a
// framebuffer of w×h pixels.
func (p *Presenter) Present(doc *surface.Document, w, h int) {
	children := doc.Children()
	live := make(map[*surface.Surface]bool, len(children))

	p.r2d.BeginScene(mgl32.Ortho2D(0, float32(w), float32(h), 0))
	for _, s := range children {
		live[s] = true
		tex := p.texture(s)
		if tex == nil {
			continue
		}
		b := s.Bounds()
		p.r2d.DrawTexturedQuad(float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), tex, colors.White)
		if s == p.Highlight {
			p.r2d.DrawRect(float32(b.Min.X-2), float32(b.Min.Y-2), float32(b.Dx()+4), float32(b.Dy()+4), 2, p.HighlightColor)
		}
	}
	p.r2d.EndScene()

	for s, st := range p.texs {
		if !live[s] {
			p.dev.DeleteTexture(st.tex)
			delete(p.texs, s)
		}
	}
}

func (p *Presenter) texture(s *surface.Surface) core.Texture {
	bw, bh := s.Size()
	if bw == 0 || bh == 0 {
		return nil
	}
	st, ok := p.texs[s]
	if ok && st.gen == s.Generation() {
		return st.tex
	}
	w, h, pix := assets.Pixels(s.Image())
	if !ok {
		tex, err := p.dev.CreateTexture(core.TextureDesc{
			Width: w, Height: h,
			Format:    core.TextureRGBA8,
			Pixels:    pix,
			MinFilter: "linear", MagFilter: "linear",
			WrapU: "clamp", WrapV: "clamp",
		})
		if err != nil {
			core.Logger().Error("renderer2d: create surface texture", "err", err)
			return nil
		}
		st = &surfaceTex{tex: tex}
		p.texs[s] = st
	} else if err := p.dev.UpdateTexture(st.tex, w, h, pix); err != nil {
		core.Logger().Error("renderer2d: update surface texture", "err", err)
	}
	st.gen = s.Generation()
	return st.tex
}

// Release deletes every texture the presenter created.
func (p *Presenter) Release() {
	for s, st := range p.texs {
		p.dev.DeleteTexture(st.tex)
		delete(p.texs, s)
	}
}

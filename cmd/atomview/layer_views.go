package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/atomview/engine/assets"
	"github.com/hubastard/atomview/engine/colors"
	"github.com/hubastard/atomview/engine/core"
	"github.com/hubastard/atomview/engine/gfx/renderer2d"
	"github.com/hubastard/atomview/engine/gfx/spheres"
	"github.com/hubastard/atomview/engine/surface"
	"github.com/hubastard/atomview/engine/text"
	"github.com/hubastard/atomview/engine/views"
)

// mouse is the pointer id of the system mouse.
const mouse = 1

// ViewsLayer shows one thumbnail per source in a grid and routes window
// input to the surface under the cursor.
type ViewsLayer struct {
	sources   []source
	size      int
	cols      int
	renderer  *spheres.Renderer
	presenter *renderer2d.Presenter
	r2d       *renderer2d.Renderer2D
	font      *text.Atlas

	doc      *surface.Document
	views    *views.Manager
	captions map[*surface.Surface]string
	saved    int
}

func (l *ViewsLayer) OnAttach(e *core.Engine) {
	l.doc = surface.NewDocument()
	l.doc.OnCursorChange = func(c surface.Cursor) {
		e.Window.SetCursorVisible(c != surface.CursorNone)
	}
	l.views = views.New(l.doc, l.renderer, views.WithSurfaceSize(l.size, l.size))
	l.captions = make(map[*surface.Surface]string, len(l.sources))

	for _, src := range l.sources {
		s, err := l.views.AddView(src.text)
		if err != nil {
			core.Logger().Warn("atomview: skipping file", "file", src.name, "err", err)
			continue
		}
		l.captions[s] = src.name
		l.doc.Append(s)
	}
	l.layout(e)
	e.Window.SetTitle(fmt.Sprintf("atomview (%d views)", l.views.Len()))
}

func (l *ViewsLayer) OnDetach(e *core.Engine) {
	l.views.Close()
	l.presenter.Release()
	l.font.Release(e.Device)
	l.renderer.Close()
}

func (l *ViewsLayer) OnUpdate(e *core.Engine, dt float64) {}

func (l *ViewsLayer) OnRender(e *core.Engine, alpha float64) {
	w, h := e.Window.Size()
	l.presenter.Highlight = l.hovered(e)
	l.presenter.Present(l.doc, w, h)

	l.r2d.BeginScene(mgl32.Ortho2D(0, float32(w), float32(h), 0))
	for _, s := range l.doc.Children() {
		b := s.Bounds()
		caption := l.captions[s]
		cw, _ := text.Measure(l.font, caption)
		x := float32(b.Min.X) + (float32(b.Dx())-cw)/2
		text.Draw(l.r2d, l.font, x, float32(b.Max.Y)+4, caption, colors.White)
	}
	l.r2d.EndScene()
}

func (l *ViewsLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventMouseButton:
		if v.Button != core.MouseLeft {
			return false
		}
		if v.Down {
			return l.doc.PointerDown(mouse, v.X, v.Y)
		}
		return l.doc.PointerUp(mouse, v.X, v.Y)
	case core.EventMouseMove:
		return l.doc.PointerMove(mouse, v.X, v.Y)
	case core.EventScroll:
		x, y := e.Input.Mouse()
		return l.doc.Wheel(x, y, -v.Xoff, -v.Yoff)
	case core.EventResize:
		l.layout(e)
	case core.EventKey:
		if !v.Down {
			return false
		}
		return l.onKey(e, v)
	}
	return false
}

func (l *ViewsLayer) onKey(e *core.Engine, k core.EventKey) bool {
	switch {
	case k.Key == core.KeyEscape:
		e.Window.RequestClose()
	case k.Key == core.KeyR:
		if s := l.hovered(e); s != nil {
			if err := l.views.Reset(s); err != nil {
				core.Logger().Error("atomview: reset", "err", err)
			}
		}
	case k.Key == core.KeyDelete:
		if s := l.hovered(e); s != nil {
			l.views.RemoveView(s, true)
			delete(l.captions, s)
			l.layout(e)
		}
	case k.Key == core.KeyS && k.Mods&core.ModCtrl != 0:
		l.save()
	default:
		return false
	}
	return true
}

func (l *ViewsLayer) hovered(e *core.Engine) *surface.Surface {
	return l.doc.SurfaceAt(e.Input.Mouse())
}

// layout fits as many columns as the window allows, up to the -cols flag.
func (l *ViewsLayer) layout(e *core.Engine) {
	w, _ := e.Window.Size()
	fit := max(1, (w-gap)/(l.size+gap))
	l.doc.Grid(l.size, l.size, min(l.cols, fit), gap)
}

// save writes every surface's backing image to view-N.png in the working
// directory.
func (l *ViewsLayer) save() {
	for _, s := range l.doc.Children() {
		l.saved++
		path := fmt.Sprintf("view-%d.png", l.saved)
		if err := assets.SavePNG(path, s.Image()); err != nil {
			core.Logger().Error("atomview: save", "path", path, "err", err)
			continue
		}
		core.Logger().Info("atomview: saved", "path", path)
	}
}

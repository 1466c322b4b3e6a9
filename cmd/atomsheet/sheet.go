package main

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/hubastard/atomview/engine/chem/xyz"
	"github.com/hubastard/atomview/engine/core"
	"github.com/hubastard/atomview/engine/scene"
	"github.com/hubastard/atomview/engine/surface"
	"github.com/hubastard/atomview/engine/views"
)

// captionGap is the spacing between thumbnails; captions sit in it.
const captionGap = 28

type options struct {
	size   int
	cols   int
	rx, ry float64 // degrees
	zoom   float64
}

type entry struct {
	surface *surface.Surface
	caption string
}

// sheet renders one thumbnail per structure and composes them on a page.
type sheet struct {
	opts    options
	doc     *surface.Document
	views   *views.Manager
	entries []entry
}

func newSheet(mgr *views.Manager, doc *surface.Document, opts options) *sheet {
	return &sheet{opts: opts, doc: doc, views: mgr}
}

// add renders every frame of st with the sheet's orientation and zoom.
// name labels the captions.
func (sh *sheet) add(name string, frames []xyz.Structure) error {
	for i, st := range frames {
		s, err := sh.views.AddStructure(st)
		if err != nil {
			return fmt.Errorf("%s frame %d: %w", name, i+1, err)
		}
		sh.doc.Append(s)
		if err := sh.views.Rotate(s, drag(sh.opts.ry), drag(sh.opts.rx)); err != nil {
			return err
		}
		if err := sh.views.SetZoom(s, sh.opts.zoom); err != nil {
			return err
		}
		caption := name
		if len(frames) > 1 {
			caption = fmt.Sprintf("%s #%d", name, i+1)
		}
		sh.entries = append(sh.entries, entry{surface: s, caption: caption})
	}
	return nil
}

// drag converts an angle in degrees into the pointer travel that rotates
// by it.
func drag(deg float64) float64 {
	return deg * math.Pi / 180 / scene.DragSpeed
}

// compose lays the thumbnails out and draws them with their captions on a
// white page.
func (sh *sheet) compose() (*gg.Context, error) {
	sh.doc.Grid(sh.opts.size, sh.opts.size, sh.opts.cols, captionGap)
	w, h := sh.doc.Extent()

	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("caption font: %w", err)
	}

	dc := gg.NewContext(w+captionGap, h+captionGap)
	dc.ClearWithColor(gg.White)
	dc.SetFont(src.Face(12))
	dc.SetLineWidth(1)
	for _, e := range sh.entries {
		b := e.surface.Bounds()
		x, y := float64(b.Min.X), float64(b.Min.Y)
		dc.DrawImage(gg.ImageBufFromImage(e.surface.Image()), x, y)

		dc.SetRGB(0.85, 0.85, 0.85)
		dc.DrawRectangle(x-0.5, y-0.5, float64(b.Dx())+1, float64(b.Dy())+1)
		if err := dc.Stroke(); err != nil {
			return nil, err
		}
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(e.caption, x+float64(b.Dx())/2, float64(b.Max.Y)+captionGap/2, 0.5, 0.5)
	}
	core.Logger().Info("atomsheet: composed", "thumbnails", len(sh.entries), "w", w+captionGap, "h", h+captionGap)
	return dc, nil
}

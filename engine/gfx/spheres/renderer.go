// Package spheres draws atoms as instanced, directionally lit spheres under an
// orthographic camera.
//
// The Renderer keeps an imperative camera/model/data API and turns it into a
// Frame for each draw. The Frame is the only thing a Backend sees, so any
// number of views can share one Renderer as long as they use it one after
// another.
package spheres

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/atomview/engine/chem/elements"
	"github.com/hubastard/atomview/engine/core"
	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r3"
)

// Backend rasterizes frames into an internal RGBA buffer.
type Backend interface {
	// Resize sets the drawing buffer size in pixels.
	Resize(w, h int) error
	// Draw clears the buffer to transparent black and draws f.
	Draw(f *Frame) error
	// ReadPixels copies the buffer into dst, top row first.
	ReadPixels(dst *image.RGBA) error
	Close() error
}

// Table resolves element ids to display properties.
type Table interface {
	Lookup(id int) (elements.Element, bool)
}

// Target is a resizable RGBA destination, such as a surface.
type Target interface {
	Size() (w, h int)
	SetSize(w, h int)
	Image() *image.RGBA
}

// Renderer is the shared sphere renderer.
type Renderer struct {
	backend Backend
	table   Table
	frame   Frame

	w, h    int
	scratch *image.RGBA
}

// New creates a renderer drawing through backend. The camera starts at
// (0,0,16) looking at the origin with an ortho box of ±10.
func New(backend Backend, table Table) *Renderer {
	if table == nil {
		table = elements.Table{}
	}
	return &Renderer{
		backend: backend,
		table:   table,
		frame: Frame{
			Model: mgl32.Ident4(),
			View:  mgl32.LookAtV(mgl32.Vec3{0, 0, 16}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
			Ortho: Ortho{Left: -10, Right: 10, Bottom: -10, Top: 10, Near: -1000, Far: 1000},
		},
	}
}

// SetAtomPositions replaces the per-instance offsets.
func (r *Renderer) SetAtomPositions(positions []r3.Vec) {
	offsets := r.frame.Offsets[:0]
	for _, p := range positions {
		offsets = append(offsets, float32(p.X), float32(p.Y), float32(p.Z))
	}
	r.frame.Offsets = offsets
}

// SetAtomLabels replaces the per-instance colors and radii. Ids missing from
// the table are drawn with elements.Unknown.
func (r *Renderer) SetAtomLabels(ids []int) {
	colors := r.frame.Colors[:0]
	radii := r.frame.Radii[:0]
	missing := 0
	for _, id := range ids {
		e, ok := r.table.Lookup(id)
		if !ok {
			e = elements.Unknown
			missing++
		}
		c := e.Color.RGB()
		colors = append(colors, c[0], c[1], c[2])
		radii = append(radii, e.Radius)
	}
	r.frame.Colors = colors
	r.frame.Radii = radii
	if missing > 0 {
		core.Logger().Debug("spheres: unknown element ids", "count", missing)
	}
}

// MaxDrawnRadius returns the largest sphere radius ids are drawn with,
// RadiusScale included. Unknown ids count as elements.Unknown.
func (r *Renderer) MaxDrawnRadius(ids []int) float64 {
	var out float32
	for _, id := range ids {
		e, ok := r.table.Lookup(id)
		if !ok {
			e = elements.Unknown
		}
		out = max(out, e.Radius)
	}
	return float64(out * RadiusScale)
}

func (r *Renderer) SetModelMatrix(m mgl32.Mat4) { r.frame.Model = m }

func (r *Renderer) SetViewMatrix(eye, center, up mgl32.Vec3) {
	r.frame.View = mgl32.LookAtV(eye, center, up)
}

// OrthoOption changes one or more frustum planes; untouched planes keep
// their previous value.
type OrthoOption func(*Ortho)

func Left(v float32) OrthoOption   { return func(o *Ortho) { o.Left = v } }
func Right(v float32) OrthoOption  { return func(o *Ortho) { o.Right = v } }
func Bottom(v float32) OrthoOption { return func(o *Ortho) { o.Bottom = v } }
func Top(v float32) OrthoOption    { return func(o *Ortho) { o.Top = v } }
func Near(v float32) OrthoOption   { return func(o *Ortho) { o.Near = v } }
func Far(v float32) OrthoOption    { return func(o *Ortho) { o.Far = v } }

// Bounds sets the four side planes.
func Bounds(left, right, bottom, top float32) OrthoOption {
	return func(o *Ortho) { o.Left, o.Right, o.Bottom, o.Top = left, right, bottom, top }
}

// Depth sets the near and far planes.
func Depth(near, far float32) OrthoOption {
	return func(o *Ortho) { o.Near, o.Far = near, far }
}

func (r *Renderer) SetOrthoProjection(opts ...OrthoOption) {
	for _, opt := range opts {
		opt(&r.frame.Ortho)
	}
}

// Frame returns a copy of the state the next draw will use.
func (r *Renderer) Frame() Frame { return r.frame.clone() }

// Size returns the current drawing buffer size.
func (r *Renderer) Size() (int, int) { return r.w, r.h }

// RenderOnce draws the current frame into the backend buffer.
func (r *Renderer) RenderOnce() error {
	if err := r.frame.Validate(); err != nil {
		return err
	}
	core.Logger().Debug("spheres: draw",
		"instances", r.frame.Count(), "w", r.w, "h", r.h,
		"ortho", r.frame.Ortho)
	return r.backend.Draw(&r.frame)
}

// RenderInto resizes the drawing buffer to the target's pixel size, draws,
// resets the target and copies the result into it. Zero-area targets are
// left untouched.
func (r *Renderer) RenderInto(t Target) error {
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	if w != r.w || h != r.h {
		if err := r.backend.Resize(w, h); err != nil {
			return err
		}
		r.w, r.h = w, h
	}
	if err := r.RenderOnce(); err != nil {
		return err
	}
	if r.scratch == nil || r.scratch.Rect.Dx() != w || r.scratch.Rect.Dy() != h {
		r.scratch = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	if err := r.backend.ReadPixels(r.scratch); err != nil {
		return err
	}
	t.SetSize(w, h)
	dst := t.Image()
	draw.Copy(dst, dst.Bounds().Min, r.scratch, r.scratch.Bounds(), draw.Src, nil)
	return nil
}

// Close releases the backend.
func (r *Renderer) Close() error { return r.backend.Close() }

package views

import (
	"github.com/hubastard/atomview/engine/chem/xyz"
	"github.com/hubastard/atomview/engine/scene"
	"github.com/hubastard/atomview/engine/surface"
	"gonum.org/v1/gonum/spatial/r3"
)

// View is one molecule shown on one surface.
type View struct {
	Surface   *surface.Surface
	Structure xyz.Structure
	Framing   scene.Framing
	Orbit     scene.Orbit

	positions []r3.Vec

	dragging bool
	lastX    float64
	lastY    float64

	unbind []func()
}

func newView(s *surface.Surface, st xyz.Structure) *View {
	positions := st.Vecs()
	return &View{
		Surface:   s,
		Structure: st,
		Framing:   scene.NewFraming(positions),
		Orbit:     scene.NewOrbit(),
		positions: positions,
	}
}

// Dragging reports whether a pointer drag is in progress.
func (v *View) Dragging() bool { return v.dragging }

// HalfExtents returns the ortho half-width and half-height the next render
// of the view will use.
func (v *View) HalfExtents() (w, h float64) {
	cw, ch := v.Surface.ClientSize()
	aspect := 1.0
	if ch > 0 {
		aspect = float64(cw) / float64(ch)
	}
	return v.Framing.HalfExtents(aspect, v.Orbit.Zoom)
}

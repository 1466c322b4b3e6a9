// Package scene holds the camera math of a molecule view: framing a
// structure inside an orthographic box and orbiting it with pointer input.
package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Margin scales the half-extent so atoms on the bounding box are not
	// clipped at the edge.
	Margin = 1.01
	// MinHalfExtent replaces the half-extent of structures whose atoms all
	// coincide, unless their drawn sphere needs more.
	MinHalfExtent = 2.0

	degenerate = 1e-6

	// Near and Far are the fixed depth planes of every view.
	Near = -1000
	Far  = 1000
)

// Framing is the axis-aligned extent of a structure.
type Framing struct {
	Bounds   r3.Box
	Centroid r3.Vec // midpoint of Bounds, not the mean of the atoms
	Diagonal float64

	// AtomRadius is the largest drawn sphere radius. It only matters when
	// the framing is degenerate.
	AtomRadius float64
}

// NewFraming computes the bounding box in a single pass. An empty slice
// yields the zero Framing.
func NewFraming(positions []r3.Vec) Framing {
	if len(positions) == 0 {
		return Framing{}
	}
	inf := math.Inf(1)
	lo := r3.Vec{X: inf, Y: inf, Z: inf}
	hi := r3.Vec{X: -inf, Y: -inf, Z: -inf}
	for _, p := range positions {
		lo.X, hi.X = math.Min(lo.X, p.X), math.Max(hi.X, p.X)
		lo.Y, hi.Y = math.Min(lo.Y, p.Y), math.Max(hi.Y, p.Y)
		lo.Z, hi.Z = math.Min(lo.Z, p.Z), math.Max(hi.Z, p.Z)
	}
	return Framing{
		Bounds:   r3.Box{Min: lo, Max: hi},
		Centroid: r3.Scale(0.5, r3.Add(lo, hi)),
		Diagonal: r3.Norm(r3.Sub(hi, lo)),
	}
}

// Degenerate reports whether every atom sits at the same point.
func (f Framing) Degenerate() bool { return f.Diagonal < degenerate }

// Radius is the half-extent of the shorter screen axis at the given zoom.
func (f Framing) Radius(zoom float64) float64 {
	if f.Degenerate() {
		return max(MinHalfExtent, Margin*f.AtomRadius) * zoom
	}
	return Margin * f.Diagonal * 0.5 * zoom
}

// HalfExtents stretches Radius along the longer axis of a w/h aspect
// ratio.
func (f Framing) HalfExtents(aspect, zoom float64) (w, h float64) {
	r := f.Radius(zoom)
	if aspect >= 1 {
		return r * aspect, r
	}
	return r, r / aspect
}

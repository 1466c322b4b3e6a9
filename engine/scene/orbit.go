package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	MinZoom = 0.1
	MaxZoom = 10.0

	// DragSpeed is radians per pixel of pointer travel.
	DragSpeed = 0.01
	// WheelStep is the relative zoom change per wheel event.
	WheelStep = 0.1
)

// Orbit is the accumulated rotation and zoom of one view. Rotation is kept
// in float64 so long drags do not drift.
type Orbit struct {
	Rotation mgl64.Mat4
	Zoom     float64
}

// NewOrbit returns an orbit with no rotation and zoom 1.
func NewOrbit() Orbit {
	return Orbit{Rotation: mgl64.Ident4(), Zoom: 1}
}

// Reset restores zoom 1 and the identity rotation.
func (o *Orbit) Reset() { *o = NewOrbit() }

// Drag applies a pointer delta in pixels: rotate about X by dy, then about
// Y by dx, on top of the current rotation.
func (o *Orbit) Drag(dx, dy float64) {
	inc := mgl64.HomogRotate3DY(dx * DragSpeed).Mul4(mgl64.HomogRotate3DX(dy * DragSpeed))
	o.Rotation = inc.Mul4(o.Rotation)
}

// Wheel scales zoom by one step in the direction of deltaY. Only the sign
// of deltaY matters.
func (o *Orbit) Wheel(deltaY float64) {
	o.SetZoom(o.Zoom * (1 + sign(deltaY)*WheelStep))
}

// SetZoom sets zoom, clamped to [MinZoom, MaxZoom].
func (o *Orbit) SetZoom(z float64) { o.Zoom = min(max(z, MinZoom), MaxZoom) }

// Model returns rotation · translate(-centroid).
func (o *Orbit) Model(centroid r3.Vec) mgl32.Mat4 {
	m := o.Rotation.Mul4(mgl64.Translate3D(-centroid.X, -centroid.Y, -centroid.Z))
	var out mgl32.Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

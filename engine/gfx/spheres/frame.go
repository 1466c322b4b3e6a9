package spheres

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInstanceMismatch is returned when offsets, colors and radii describe a
// different number of instances.
var ErrInstanceMismatch = errors.New("spheres: instance arrays have different lengths")

// RadiusScale multiplies every element radius before drawing.
const RadiusScale = 1.5

// LightDir is the fixed view-space light direction.
var LightDir = mgl32.Vec3{0, 0, 1}

// Ortho holds the six planes of an orthographic frustum.
type Ortho struct {
	Left, Right, Bottom, Top float32
	Near, Far                float32
}

// Frame is the complete input of one draw: camera, model and instance data.
// Backends read nothing else.
type Frame struct {
	Model mgl32.Mat4
	View  mgl32.Mat4
	Ortho Ortho

	Offsets []float32 // xyz per instance
	Colors  []float32 // rgb per instance
	Radii   []float32 // one per instance
}

// Count returns the number of instances the radii describe.
func (f *Frame) Count() int { return len(f.Radii) }

// Validate checks that the instance arrays agree.
func (f *Frame) Validate() error {
	n := len(f.Radii)
	if len(f.Offsets) != 3*n || len(f.Colors) != 3*n {
		return fmt.Errorf("%w: %d offsets, %d colors, %d radii",
			ErrInstanceMismatch, len(f.Offsets)/3, len(f.Colors)/3, n)
	}
	return nil
}

// Projection builds the orthographic projection matrix.
func (f *Frame) Projection() mgl32.Mat4 {
	o := f.Ortho
	return mgl32.Ortho(o.Left, o.Right, o.Bottom, o.Top, o.Near, o.Far)
}

// MVP returns projection * view * model.
func (f *Frame) MVP() mgl32.Mat4 {
	return f.Projection().Mul4(f.View).Mul4(f.Model)
}

// NormalMatrix returns the rotational part of the model matrix. Scale is
// divided out of the basis columns and the result goes through a quaternion
// so translation and shear do not leak into lighting.
func (f *Frame) NormalMatrix() mgl32.Mat4 {
	return rotationOf(f.Model)
}

func rotationOf(m mgl32.Mat4) mgl32.Mat4 {
	var r mgl32.Mat4
	for c := 0; c < 3; c++ {
		col := m.Col(c).Vec3()
		if l := col.Len(); l > 0 {
			col = col.Mul(1 / l)
		}
		r.SetCol(c, col.Vec4(0))
	}
	r.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	q := mgl32.Mat4ToQuat(r).Normalize()
	return q.Mat4()
}

func (f *Frame) clone() Frame {
	c := *f
	c.Offsets = append([]float32(nil), f.Offsets...)
	c.Colors = append([]float32(nil), f.Colors...)
	c.Radii = append([]float32(nil), f.Radii...)
	return c
}

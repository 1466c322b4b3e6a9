// Package soft is a CPU backend for the sphere renderer. It runs the same
// vertex transform, depth test and lighting as the GL shaders, so hosts
// without an OpenGL context (terminals, batch tools, tests) get identical
// framing.
package soft

import (
	"image"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/atomview/engine/gfx/spheres"
	"github.com/hubastard/atomview/engine/mesh"
	"golang.org/x/sync/errgroup"
)

// DefaultSubdivisions is the icosphere level used by New.
const DefaultSubdivisions = 2

// Rasterizer implements spheres.Backend.
//
// Create it once and reuse it; buffers are only reallocated on Resize.
type Rasterizer struct {
	// Workers caps the number of concurrent row bands. Zero means
	// GOMAXPROCS.
	Workers int

	sphere *mesh.Sphere
	w, h   int
	color  []uint8
	depth  []float32

	verts []vertex
}

// vertex is a transformed sphere vertex in screen space.
type vertex struct {
	x, y, z float32    // pixels, pixels, depth in [0,1]
	n       mgl32.Vec3 // rotated normal
	c       [3]float32
}

var _ spheres.Backend = (*Rasterizer)(nil)

// New creates a rasterizer drawing a level DefaultSubdivisions icosphere.
func New() *Rasterizer {
	return NewWithMesh(mesh.Icosphere(DefaultSubdivisions))
}

func NewWithMesh(s *mesh.Sphere) *Rasterizer {
	return &Rasterizer{sphere: s}
}

func (r *Rasterizer) Resize(w, h int) error {
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	r.w, r.h = w, h
	n := w * h
	if cap(r.depth) < n {
		r.depth = make([]float32, n)
		r.color = make([]uint8, 4*n)
	} else {
		r.depth = r.depth[:n]
		r.color = r.color[:4*n]
	}
	return nil
}

// Draw clears to transparent black and draws every instance of f.
func (r *Rasterizer) Draw(f *spheres.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	clear(r.color)
	for i := range r.depth {
		r.depth[i] = 1
	}
	if r.w == 0 || r.h == 0 || f.Count() == 0 {
		return nil
	}

	r.transform(f)

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	bands := min(workers, r.h)
	rows := (r.h + bands - 1) / bands

	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < r.h; y0 += rows {
		y1 := min(y0+rows, r.h)
		g.Go(func() error {
			r.drawBand(f.Count(), y0, y1)
			return nil
		})
	}
	return g.Wait()
}

// transform runs the vertex stage for every instance.
func (r *Rasterizer) transform(f *spheres.Frame) {
	nv := r.sphere.VertexCount()
	total := nv * f.Count()
	if cap(r.verts) < total {
		r.verts = make([]vertex, total)
	}
	r.verts = r.verts[:total]

	mvp := f.MVP()
	rot := f.NormalMatrix().Mat3()
	w, h := float32(r.w), float32(r.h)
	pos, nrm := r.sphere.Positions, r.sphere.Normals

	for i := 0; i < f.Count(); i++ {
		off := mgl32.Vec3{f.Offsets[3*i], f.Offsets[3*i+1], f.Offsets[3*i+2]}
		scale := f.Radii[i] * spheres.RadiusScale
		col := [3]float32{f.Colors[3*i], f.Colors[3*i+1], f.Colors[3*i+2]}
		for k := 0; k < nv; k++ {
			p := mgl32.Vec3{pos[3*k], pos[3*k+1], pos[3*k+2]}.Mul(scale).Add(off)
			clip := mvp.Mul4x1(p.Vec4(1))
			ndc := clip.Vec3().Mul(1 / clip.W())
			r.verts[i*nv+k] = vertex{
				x: (ndc.X()*0.5 + 0.5) * w,
				y: (1 - (ndc.Y()*0.5 + 0.5)) * h,
				z: ndc.Z()*0.5 + 0.5,
				n: rot.Mul3x1(mgl32.Vec3{nrm[3*k], nrm[3*k+1], nrm[3*k+2]}),
				c: col,
			}
		}
	}
}

// drawBand fills rows [y0, y1). Bands never share pixels.
func (r *Rasterizer) drawBand(instances, y0, y1 int) {
	nv := r.sphere.VertexCount()
	idx := r.sphere.Indices
	for i := 0; i < instances; i++ {
		base := i * nv
		for t := 0; t+2 < len(idx); t += 3 {
			r.fillTriangle(
				&r.verts[base+int(idx[t])],
				&r.verts[base+int(idx[t+1])],
				&r.verts[base+int(idx[t+2])],
				y0, y1)
		}
	}
}

func (r *Rasterizer) fillTriangle(a, b, c *vertex, y0, y1 int) {
	area := edgeFn(a.x, a.y, b.x, b.y, c.x, c.y)
	if area == 0 || isNaN(area) {
		return
	}
	minX := max(int(floor(min(a.x, b.x, c.x))), 0)
	maxX := min(int(ceil(max(a.x, b.x, c.x))), r.w-1)
	minY := max(int(floor(min(a.y, b.y, c.y))), y0)
	maxY := min(int(ceil(max(a.y, b.y, c.y))), y1-1)
	if minX > maxX || minY > maxY {
		return
	}
	inv := 1 / area

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edgeFn(b.x, b.y, c.x, c.y, px, py) * inv
			w1 := edgeFn(c.x, c.y, a.x, a.y, px, py) * inv
			w2 := edgeFn(a.x, a.y, b.x, b.y, px, py) * inv
			// Normalizing by the signed area accepts both windings.
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			if z < 0 || z > 1 {
				continue
			}
			i := y*r.w + x
			if z >= r.depth[i] {
				continue
			}
			r.depth[i] = z

			n := a.n.Mul(w0).Add(b.n.Mul(w1)).Add(c.n.Mul(w2))
			l := float32(0)
			if n.Len() > 0 {
				l = max(n.Normalize().Dot(spheres.LightDir), 0)
			}
			p := r.color[4*i : 4*i+4 : 4*i+4]
			p[0] = to8(l * (w0*a.c[0] + w1*b.c[0] + w2*c.c[0]))
			p[1] = to8(l * (w0*a.c[1] + w1*b.c[1] + w2*c.c[1]))
			p[2] = to8(l * (w0*a.c[2] + w1*b.c[2] + w2*c.c[2]))
			p[3] = 0xFF
		}
	}
}

// ReadPixels copies the color buffer into dst, top row first.
func (r *Rasterizer) ReadPixels(dst *image.RGBA) error {
	w := min(r.w, dst.Rect.Dx())
	h := min(r.h, dst.Rect.Dy())
	for y := 0; y < h; y++ {
		src := r.color[4*y*r.w : 4*(y*r.w+w)]
		off := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		copy(dst.Pix[off:off+4*w], src)
	}
	return nil
}

// Image returns a copy of the color buffer.
func (r *Rasterizer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.w, r.h))
	copy(img.Pix, r.color)
	return img
}

func (r *Rasterizer) Close() error {
	r.color, r.depth, r.verts = nil, nil, nil
	r.w, r.h = 0, 0
	return nil
}

func edgeFn(x0, y0, x1, y1, x, y float32) float32 {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func floor(v float32) float32 { return float32(math.Floor(float64(v))) }
func ceil(v float32) float32  { return float32(math.Ceil(float64(v))) }
func isNaN(v float32) bool    { return v != v }

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}

// Package mesh builds the static geometry shared by every sphere instance.
package mesh

import "math"

// Sphere is an indexed triangle mesh of the unit sphere.
type Sphere struct {
	Positions []float32 // xyz per vertex
	Normals   []float32 // xyz per vertex
	Indices   []uint32  // three per triangle
}

// VertexCount returns the number of vertices.
func (s *Sphere) VertexCount() int { return len(s.Positions) / 3 }

// TriangleCount returns the number of triangles.
func (s *Sphere) TriangleCount() int { return len(s.Indices) / 3 }

// Interleaved returns position+normal pairs (6 floats per vertex) for a
// single vertex buffer.
func (s *Sphere) Interleaved() []float32 {
	out := make([]float32, 0, len(s.Positions)*2)
	for i := 0; i < s.VertexCount(); i++ {
		out = append(out, s.Positions[3*i:3*i+3]...)
		out = append(out, s.Normals[3*i:3*i+3]...)
	}
	return out
}

// Icosphere subdivides an icosahedron `subdivisions` times, projecting new
// vertices onto the unit sphere. Level n has 10*4^n+2 vertices and 20*4^n
// triangles.
func Icosphere(subdivisions int) *Sphere {
	t := (1 + math.Sqrt(5)) / 2
	verts := [][3]float64{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range verts {
		verts[i] = normalize(verts[i])
	}
	faces := [][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for level := 0; level < subdivisions; level++ {
		mid := make(map[[2]uint32]uint32, len(faces)*3/2)
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{a, b}
			if a > b {
				key = [2]uint32{b, a}
			}
			if i, ok := mid[key]; ok {
				return i
			}
			pa, pb := verts[a], verts[b]
			verts = append(verts, normalize([3]float64{
				(pa[0] + pb[0]) / 2, (pa[1] + pb[1]) / 2, (pa[2] + pb[2]) / 2,
			}))
			i := uint32(len(verts) - 1)
			mid[key] = i
			return i
		}
		next := make([][3]uint32, 0, len(faces)*4)
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[3]uint32{f[0], ab, ca},
				[3]uint32{f[1], bc, ab},
				[3]uint32{f[2], ca, bc},
				[3]uint32{ab, bc, ca},
			)
		}
		faces = next
	}

	s := &Sphere{
		Positions: make([]float32, 0, len(verts)*3),
		Normals:   make([]float32, 0, len(verts)*3),
		Indices:   make([]uint32, 0, len(faces)*3),
	}
	for _, v := range verts {
		p := [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
		s.Positions = append(s.Positions, p[:]...)
		// On the unit sphere the outward normal is the position itself.
		s.Normals = append(s.Normals, p[:]...)
	}
	for _, f := range faces {
		s.Indices = append(s.Indices, f[0], f[1], f[2])
	}
	return s
}

func normalize(v [3]float64) [3]float64 {
	l := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float64{v[0] / l, v[1] / l, v[2] / l}
}

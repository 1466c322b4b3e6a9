package mesh

import (
	"math"
	"testing"
)

func TestIcosphereCounts(t *testing.T) {
	for level := 0; level <= 3; level++ {
		s := Icosphere(level)
		pow := 1
		for i := 0; i < level; i++ {
			pow *= 4
		}
		if got, want := s.VertexCount(), 10*pow+2; got != want {
			t.Errorf("Icosphere(%d).VertexCount() = %d, want %d", level, got, want)
		}
		if got, want := s.TriangleCount(), 20*pow; got != want {
			t.Errorf("Icosphere(%d).TriangleCount() = %d, want %d", level, got, want)
		}
	}
}

func TestIcosphereUnitLength(t *testing.T) {
	s := Icosphere(2)
	for i := 0; i < s.VertexCount(); i++ {
		x, y, z := s.Positions[3*i], s.Positions[3*i+1], s.Positions[3*i+2]
		l := math.Sqrt(float64(x*x + y*y + z*z))
		if math.Abs(l-1) > 1e-5 {
			t.Fatalf("vertex %d length = %v, want 1", i, l)
		}
		if s.Normals[3*i] != x || s.Normals[3*i+1] != y || s.Normals[3*i+2] != z {
			t.Fatalf("normal %d differs from position", i)
		}
	}
}

func TestIcosphereIndicesInRange(t *testing.T) {
	s := Icosphere(3)
	n := uint32(s.VertexCount())
	for i, idx := range s.Indices {
		if idx >= n {
			t.Fatalf("Indices[%d] = %d, out of range %d", i, idx, n)
		}
	}
}

func TestInterleaved(t *testing.T) {
	s := Icosphere(0)
	iv := s.Interleaved()
	if len(iv) != s.VertexCount()*6 {
		t.Fatalf("len(Interleaved()) = %d, want %d", len(iv), s.VertexCount()*6)
	}
	for i := 0; i < s.VertexCount(); i++ {
		for k := 0; k < 3; k++ {
			if iv[6*i+k] != s.Positions[3*i+k] || iv[6*i+3+k] != s.Normals[3*i+k] {
				t.Fatalf("vertex %d interleaving mismatch", i)
			}
		}
	}
}

package soft

import (
	"errors"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/atomview/engine/gfx/spheres"
)

func frame(offsets, colors, radii []float32) *spheres.Frame {
	return &spheres.Frame{
		Model:   mgl32.Ident4(),
		View:    mgl32.LookAtV(mgl32.Vec3{0, 0, 16}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		Ortho:   spheres.Ortho{Left: -4, Right: 4, Bottom: -4, Top: 4, Near: -1000, Far: 1000},
		Offsets: offsets,
		Colors:  colors,
		Radii:   radii,
	}
}

func render(t *testing.T, r *Rasterizer, f *spheres.Frame, w, h int) *image.RGBA {
	t.Helper()
	if err := r.Resize(w, h); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if err := r.Draw(f); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := r.ReadPixels(img); err != nil {
		t.Fatalf("ReadPixels() error = %v", err)
	}
	return img
}

func TestCenterLitCornerClear(t *testing.T) {
	r := New()
	img := render(t, r, frame([]float32{0, 0, 0}, []float32{1, 1, 1}, []float32{1}), 64, 64)

	c := img.RGBAAt(32, 32)
	if c.A != 0xFF || c.R < 240 || c.G < 240 || c.B < 240 {
		t.Errorf("center pixel = %v, want near white", c)
	}
	if c := img.RGBAAt(0, 0); c.A != 0 {
		t.Errorf("corner pixel = %v, want transparent", c)
	}
}

func TestEdgeDarkerThanCenter(t *testing.T) {
	r := New()
	img := render(t, r, frame([]float32{0, 0, 0}, []float32{1, 1, 1}, []float32{2}), 64, 64)
	// Radius 2 × 1.5 = 3 world units over a half-extent of 4 puts the rim
	// at 8 + 32*3/4 = 56 pixels.
	center := img.RGBAAt(32, 32)
	rim := img.RGBAAt(54, 32)
	if rim.A != 0xFF {
		t.Fatalf("rim pixel = %v, want covered", rim)
	}
	if rim.R >= center.R {
		t.Errorf("rim %v not darker than center %v", rim, center)
	}
}

func TestDepthLess(t *testing.T) {
	offsets := []float32{0, 0, -3, 0, 0, 3}
	colors := []float32{0, 0, 1, 1, 0, 0}
	radii := []float32{1, 1}

	for _, swap := range []bool{false, true} {
		o, c := offsets, colors
		if swap {
			o = []float32{0, 0, 3, 0, 0, -3}
			c = []float32{1, 0, 0, 0, 0, 1}
		}
		img := render(t, New(), frame(o, c, radii), 32, 32)
		px := img.RGBAAt(16, 16)
		if px.R < 200 || px.B != 0 {
			t.Errorf("swap=%v: center = %v, want the near red sphere", swap, px)
		}
	}
}

func TestYAxisPointsUp(t *testing.T) {
	img := render(t, New(), frame([]float32{0, 3, 0}, []float32{1, 1, 1}, []float32{0.5}), 32, 32)
	if img.RGBAAt(16, 4).A != 0xFF {
		t.Error("sphere above the origin not drawn in the top rows")
	}
	if img.RGBAAt(16, 28).A != 0 {
		t.Error("bottom rows covered")
	}
}

func TestBandsMatchSingleWorker(t *testing.T) {
	f := frame([]float32{-1, 0, 0, 1.5, 1, 1}, []float32{1, 0.5, 0, 0, 0.5, 1}, []float32{1, 0.8})
	one := New()
	one.Workers = 1
	many := New()
	many.Workers = 7
	a := render(t, one, f, 50, 37)
	b := render(t, many, f, 50, 37)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel byte %d differs: %d vs %d", i, a.Pix[i], b.Pix[i])
		}
	}
}

func TestDrawMismatch(t *testing.T) {
	r := New()
	_ = r.Resize(8, 8)
	if err := r.Draw(frame([]float32{0, 0, 0}, nil, []float32{1})); !errors.Is(err, spheres.ErrInstanceMismatch) {
		t.Errorf("Draw() error = %v, want ErrInstanceMismatch", err)
	}
}

func TestRendererIntegration(t *testing.T) {
	r := spheres.New(New(), nil)
	defer r.Close()
	r.SetAtomPositions(nil)
	r.SetAtomLabels(nil)
	dst := &rgbaTarget{img: image.NewRGBA(image.Rect(0, 0, 10, 10))}
	if err := r.RenderInto(dst); err != nil {
		t.Fatalf("RenderInto() error = %v", err)
	}
	for i, v := range dst.img.Pix {
		if v != 0 {
			t.Fatalf("byte %d = %d, want empty image", i, v)
		}
	}
}

type rgbaTarget struct{ img *image.RGBA }

func (t *rgbaTarget) Size() (int, int)   { return t.img.Rect.Dx(), t.img.Rect.Dy() }
func (t *rgbaTarget) SetSize(w, h int)   { t.img = image.NewRGBA(image.Rect(0, 0, w, h)) }
func (t *rgbaTarget) Image() *image.RGBA { return t.img }

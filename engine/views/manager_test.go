package views

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/atomview/engine/chem/elements"
	"github.com/hubastard/atomview/engine/chem/xyz"
	"github.com/hubastard/atomview/engine/core"
	"github.com/hubastard/atomview/engine/gfx/soft"
	"github.com/hubastard/atomview/engine/gfx/spheres"
	"github.com/hubastard/atomview/engine/scene"
	"github.com/hubastard/atomview/engine/surface"
)

const water = `3
water
O   0.000000   0.000000   0.117300
H   0.000000   0.757200  -0.469200
H   0.000000  -0.757200  -0.469200
`

// countingBackend rasterizes on the CPU and counts draws.
type countingBackend struct {
	*soft.Rasterizer
	draws int
}

func (b *countingBackend) Draw(f *spheres.Frame) error {
	b.draws++
	return b.Rasterizer.Draw(f)
}

type fixture struct {
	doc     *surface.Document
	backend *countingBackend
	r       *spheres.Renderer
	m       *Manager
}

func newFixture(opts ...Option) *fixture {
	doc := surface.NewDocument()
	b := &countingBackend{Rasterizer: soft.New()}
	r := spheres.New(b, nil)
	return &fixture{doc: doc, backend: b, r: r, m: New(doc, r, opts...)}
}

func (f *fixture) add(t *testing.T, text string) *surface.Surface {
	t.Helper()
	s, err := f.m.AddView(text)
	if err != nil {
		t.Fatalf("AddView() error = %v", err)
	}
	f.doc.Append(s)
	return s
}

func TestAddViewErrors(t *testing.T) {
	f := newFixture()
	if _, err := f.m.AddView(""); !errors.Is(err, ErrNoStructure) {
		t.Errorf("AddView(\"\") error = %v, want ErrNoStructure", err)
	}
	if _, err := f.m.AddView("2\nc\nH 0 0 0\n"); !errors.Is(err, xyz.ErrSyntax) {
		t.Errorf("AddView(truncated) error = %v, want xyz.ErrSyntax", err)
	}
	if _, err := f.m.AddView("0\nempty\n"); !errors.Is(err, ErrEmptyStructure) {
		t.Errorf("AddView(zero atoms) error = %v, want ErrEmptyStructure", err)
	}
	if _, err := f.m.AddStructure(xyz.Structure{Positions: []float64{0, 0}, Numbers: []int{1}}); !errors.Is(err, ErrMismatch) {
		t.Errorf("AddStructure(mismatch) error = %v, want ErrMismatch", err)
	}
	if f.m.Len() != 0 {
		t.Errorf("Len() = %d after failures, want 0", f.m.Len())
	}
}

func TestWithParser(t *testing.T) {
	called := false
	f := newFixture(WithParser(func(string) ([]xyz.Structure, error) {
		called = true
		return nil, nil
	}))
	if _, err := f.m.AddView("anything"); !called || !errors.Is(err, ErrNoStructure) {
		t.Errorf("custom parser called = %v, err = %v", called, err)
	}
}

func TestAddViewDetachedUntilAppended(t *testing.T) {
	f := newFixture(WithSurfaceSize(64, 32))
	s, err := f.m.AddView(water)
	if err != nil {
		t.Fatalf("AddView() error = %v", err)
	}
	if s.Parent() != nil {
		t.Error("AddView attached the surface")
	}
	if w, h := s.ClientSize(); w != 64 || h != 32 {
		t.Errorf("ClientSize() = %dx%d, want 64x32", w, h)
	}
	if f.backend.draws != 0 {
		t.Errorf("draws = %d before attach, want 0", f.backend.draws)
	}
	f.doc.Append(s)
	if f.backend.draws != 1 {
		t.Errorf("draws = %d after attach, want 1", f.backend.draws)
	}
}

func TestHalfExtentRoundTrip(t *testing.T) {
	f := newFixture()
	s := f.add(t, water)
	v, _ := f.m.Lookup(s)
	d := v.Framing.Diagonal
	want := 1.01 * d * 0.5

	o := f.r.Frame().Ortho
	if math.Abs(float64(o.Right)-want) > 1e-5 || math.Abs(float64(o.Top)-want) > 1e-5 {
		t.Errorf("ortho = %+v, want half-extent %v", o, want)
	}
	if o.Left != -o.Right || o.Bottom != -o.Top {
		t.Errorf("ortho not symmetric: %+v", o)
	}
	if o.Near != scene.Near || o.Far != scene.Far {
		t.Errorf("depth = [%v, %v], want [%v, %v]", o.Near, o.Far, scene.Near, scene.Far)
	}
	if w, h := s.Size(); w != 128 || h != 128 {
		t.Errorf("backing = %dx%d, want 128x128", w, h)
	}
}

func TestWheelZoomClamped(t *testing.T) {
	f := newFixture()
	s := f.add(t, water)
	v, _ := f.m.Lookup(s)
	for i := 0; i < 60; i++ {
		if !f.doc.Wheel(64, 64, 0, 100) {
			t.Fatal("wheel default not prevented")
		}
	}
	if v.Orbit.Zoom != scene.MaxZoom {
		t.Errorf("Zoom = %v, want %v", v.Orbit.Zoom, scene.MaxZoom)
	}
	for i := 0; i < 60; i++ {
		f.doc.Wheel(64, 64, 0, -1)
	}
	if v.Orbit.Zoom != scene.MinZoom {
		t.Errorf("Zoom = %v, want %v", v.Orbit.Zoom, scene.MinZoom)
	}
	want := 1.01 * v.Framing.Diagonal * 0.5 * scene.MinZoom
	if got := float64(f.r.Frame().Ortho.Right); math.Abs(got-want) > 1e-5 {
		t.Errorf("Right = %v, want %v", got, want)
	}
}

func TestDragRotatesAndHidesCursor(t *testing.T) {
	f := newFixture()
	s := f.add(t, water)
	v, _ := f.m.Lookup(s)
	var cursors []surface.Cursor
	f.doc.OnCursorChange = func(c surface.Cursor) { cursors = append(cursors, c) }

	f.doc.PointerDown(1, 10, 10)
	if !v.Dragging() || !s.HasPointerCapture(1) || f.doc.Cursor() != surface.CursorNone {
		t.Fatalf("after pointer down: dragging=%v capture=%v cursor=%v",
			v.Dragging(), s.HasPointerCapture(1), f.doc.Cursor())
	}
	draws := f.backend.draws
	// Leaving the surface keeps the drag thanks to the capture.
	f.doc.PointerMove(1, 210, 10)
	want := mgl64.HomogRotate3DY(2)
	if !v.Orbit.Rotation.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("Rotation = %v, want %v", v.Orbit.Rotation, want)
	}
	if f.backend.draws != draws+1 {
		t.Errorf("draws = %d, want %d", f.backend.draws, draws+1)
	}
	f.doc.PointerUp(1, 210, 10)
	if v.Dragging() || f.doc.Cursor() != surface.CursorDefault {
		t.Error("drag not ended by pointer up")
	}
	if len(cursors) != 2 {
		t.Errorf("cursor changes = %v, want [none default]", cursors)
	}

	// Moves without a pressed pointer do nothing.
	before := v.Orbit.Rotation
	f.doc.PointerMove(1, 20, 20)
	if v.Orbit.Rotation != before {
		t.Error("hover rotated the view")
	}
}

func TestDragOrderDependent(t *testing.T) {
	f := newFixture()
	a := f.add(t, water)
	b := f.add(t, water)
	_ = f.m.Rotate(a, 40, 0)
	_ = f.m.Rotate(a, 0, 40)
	_ = f.m.Rotate(b, 0, 40)
	_ = f.m.Rotate(b, 40, 0)
	va, _ := f.m.Lookup(a)
	vb, _ := f.m.Lookup(b)
	if va.Orbit.Rotation.ApproxEqualThreshold(vb.Orbit.Rotation, 1e-9) {
		t.Error("swapped drags produced the same rotation")
	}
}

func TestRemoveView(t *testing.T) {
	f := newFixture()
	s := f.add(t, water)
	f.doc.PointerDown(1, 5, 5)

	f.m.RemoveView(s, true)
	if f.m.Len() != 0 || s.ListenerCount() != 0 || s.Parent() != nil {
		t.Fatalf("after RemoveView: len=%d listeners=%d parent=%p", f.m.Len(), s.ListenerCount(), s.Parent())
	}
	if f.doc.Cursor() != surface.CursorDefault {
		t.Error("cursor not restored")
	}

	draws := f.backend.draws
	s.Dispatch(&core.EventWheel{DeltaY: 1})
	s.SetClientSize(50, 50)
	f.doc.Append(s)
	f.doc.PointerMove(1, 8, 8)
	if f.backend.draws != draws {
		t.Errorf("removed view rendered %d times", f.backend.draws-draws)
	}

	// Unknown and repeated removals are no-ops.
	f.m.RemoveView(s, false)
	f.m.RemoveView(f.doc.CreateSurface(1, 1), true)
	if s.Parent() != f.doc {
		t.Error("RemoveView of an unknown surface detached it")
	}
}

func TestRemoveViewKeepAttached(t *testing.T) {
	f := newFixture()
	s := f.add(t, water)
	f.m.RemoveView(s, false)
	if s.Parent() != f.doc {
		t.Error("RemoveView(s, false) detached the surface")
	}
}

func TestSingleAtomAtOrigin(t *testing.T) {
	f := newFixture()
	s := f.add(t, "1\nlone\nC 0 0 0\n")
	v, _ := f.m.Lookup(s)
	if v.Framing.Diagonal != 0 {
		t.Fatalf("Diagonal = %v, want 0", v.Framing.Diagonal)
	}
	if err := f.m.Refresh(s); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := f.r.Frame().Ortho.Right; got != scene.MinHalfExtent {
		t.Errorf("Right = %v, want %v", got, scene.MinHalfExtent)
	}
	if px := s.Image().RGBAAt(64, 64); px.A != 0xFF {
		t.Errorf("center pixel = %v, want an opaque atom", px)
	}
	if px := s.Image().RGBAAt(0, 0); px.A != 0 {
		t.Errorf("corner pixel = %v, want transparent", px)
	}
}

func TestSingleLargeAtomFitsFrame(t *testing.T) {
	f := newFixture()
	s := f.add(t, "1\nlone\nCs 0 0 0\n")
	if err := f.m.Refresh(s); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	cs, _ := elements.Lookup(55)
	drawn := cs.Radius * spheres.RadiusScale
	if got := f.r.Frame().Ortho.Right; got < drawn {
		t.Errorf("Right = %v, want at least the drawn radius %v", got, drawn)
	}
}

func TestResizeRerendersAtNewSize(t *testing.T) {
	f := newFixture()
	s := f.add(t, water)
	s.SetClientSize(96, 48)
	if w, h := s.Size(); w != 96 || h != 48 {
		t.Errorf("backing = %dx%d, want 96x48", w, h)
	}
	o := f.r.Frame().Ortho
	if math.Abs(float64(o.Right/o.Top)-2) > 1e-5 {
		t.Errorf("ortho aspect = %v, want 2", o.Right/o.Top)
	}

	// Zero-area surfaces are skipped.
	draws := f.backend.draws
	s.SetClientSize(0, 48)
	if f.backend.draws != draws {
		t.Error("zero-area surface rendered")
	}
}

func TestResetAndClose(t *testing.T) {
	f := newFixture()
	a := f.add(t, water)
	f.add(t, water)
	_ = f.m.Zoom(a, 1)
	_ = f.m.Rotate(a, 3, 4)
	if err := f.m.Reset(a); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	v, _ := f.m.Lookup(a)
	if v.Orbit.Zoom != 1 || v.Orbit.Rotation != mgl64.Ident4() {
		t.Errorf("after Reset: %+v", v.Orbit)
	}
	f.m.Close()
	if f.m.Len() != 0 || f.doc.Len() != 0 {
		t.Errorf("after Close: views=%d children=%d", f.m.Len(), f.doc.Len())
	}
}

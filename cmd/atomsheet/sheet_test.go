package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/hubastard/atomview/engine/assets"
	"github.com/hubastard/atomview/engine/chem/xyz"
	"github.com/hubastard/atomview/engine/gfx/soft"
	"github.com/hubastard/atomview/engine/gfx/spheres"
	"github.com/hubastard/atomview/engine/surface"
	"github.com/hubastard/atomview/engine/views"
)

const trajectory = `2
frame one
C 0 0 0
O 1.2 0 0
2
frame two
C 0 0 0
O 0 1.2 0
`

func newTestSheet(t *testing.T, opts options) *sheet {
	t.Helper()
	doc := surface.NewDocument()
	mgr := views.New(doc, spheres.New(soft.New(), nil), views.WithSurfaceSize(opts.size, opts.size))
	frames, err := xyz.Parse(trajectory)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sh := newSheet(mgr, doc, opts)
	if err := sh.add("co.xyz", frames); err != nil {
		t.Fatalf("add() error = %v", err)
	}
	return sh
}

func TestAddAppliesOrientation(t *testing.T) {
	sh := newTestSheet(t, options{size: 32, cols: 2, ry: 90, zoom: 2})
	if len(sh.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(sh.entries))
	}
	if got := sh.entries[1].caption; got != "co.xyz #2" {
		t.Errorf("caption = %q, want %q", got, "co.xyz #2")
	}
	v, _ := sh.views.Lookup(sh.entries[0].surface)
	want := mgl64.HomogRotate3DY(math.Pi / 2)
	if !v.Orbit.Rotation.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("Rotation = %v, want %v", v.Orbit.Rotation, want)
	}
	if v.Orbit.Zoom != 2 {
		t.Errorf("Zoom = %v, want 2", v.Orbit.Zoom)
	}
}

func TestComposeLayout(t *testing.T) {
	sh := newTestSheet(t, options{size: 32, cols: 1, zoom: 1})
	dc, err := sh.compose()
	if err != nil {
		t.Fatalf("compose() error = %v", err)
	}
	defer dc.Close()

	// One column: two rows of thumbnail plus caption gap, and a margin.
	if w, h := dc.Width(), dc.Height(); w != 32+2*captionGap || h != 2*32+3*captionGap {
		t.Errorf("sheet = %dx%d, want %dx%d", w, h, 32+2*captionGap, 2*32+3*captionGap)
	}
	b := sh.entries[1].surface.Bounds()
	c := b.Min.Add(b.Size().Div(2))
	if r, g, bl, _ := dc.Image().At(c.X, c.Y).RGBA(); r == 0xFFFF && g == 0xFFFF && bl == 0xFFFF {
		t.Error("second thumbnail center is blank")
	}
	if r, g, bl, _ := dc.Image().At(1, 1).RGBA(); r != 0xFFFF || g != 0xFFFF || bl != 0xFFFF {
		t.Error("page margin is not white")
	}

	path := filepath.Join(t.TempDir(), "sheet.png")
	if err := dc.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	img, err := assets.LoadPNG(path)
	if err != nil {
		t.Fatalf("LoadPNG() error = %v", err)
	}
	if img.Bounds().Dx() != dc.Width() {
		t.Errorf("saved width = %d, want %d", img.Bounds().Dx(), dc.Width())
	}
}

func TestRunWithoutStructures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xyz")
	if err := run(filepath.Join(t.TempDir(), "out.png"), []string{path}, options{size: 8, cols: 1, zoom: 1}); err == nil {
		t.Error("run() with a missing file succeeded")
	}
}

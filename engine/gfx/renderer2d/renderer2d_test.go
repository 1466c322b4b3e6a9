package renderer2d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/atomview/engine/colors"
	"github.com/hubastard/atomview/engine/core"
	"github.com/hubastard/atomview/engine/surface"
)

type fakeHandle uint32

func (h fakeHandle) PipelineID() uint32 { return uint32(h) }
func (h fakeHandle) MeshID() uint32     { return uint32(h) }

type fakeTex struct {
	id   uint32
	w, h int
	pix  []byte
}

func (t *fakeTex) TextureID() uint32 { return t.id }
func (t *fakeTex) Size() (int, int)  { return t.w, t.h }

type fakeDevice struct {
	next     uint32
	draws    []core.DrawCmd
	verts    []float32
	created  int
	updated  int
	deleted  int
	lastInds int
}

func (d *fakeDevice) id() uint32 {
	d.next++
	return d.next
}

func (d *fakeDevice) CreatePipeline(core.PipelineDesc) (core.Pipeline, error) {
	return fakeHandle(d.id()), nil
}
func (d *fakeDevice) CreateMesh(core.MeshDesc) (core.Mesh, error) { return fakeHandle(d.id()), nil }
func (d *fakeDevice) UpdateMesh(_ core.Mesh, v []float32, i []uint32) error {
	d.verts = append(d.verts[:0], v...)
	d.lastInds = len(i)
	return nil
}
func (d *fakeDevice) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	d.created++
	return &fakeTex{id: d.id(), w: desc.Width, h: desc.Height, pix: desc.Pixels}, nil
}
func (d *fakeDevice) UpdateTexture(t core.Texture, w, h int, pix []byte) error {
	d.updated++
	ft := t.(*fakeTex)
	ft.w, ft.h, ft.pix = w, h, pix
	return nil
}
func (d *fakeDevice) DeleteTexture(core.Texture)               { d.deleted++ }
func (d *fakeDevice) Draw(cmd core.DrawCmd)                    { d.draws = append(d.draws, cmd) }
func (d *fakeDevice) Resize(int, int)                          {}
func (d *fakeDevice) Clear(float32, float32, float32, float32) {}
func (d *fakeDevice) Info() core.DeviceInfo                    { return core.DeviceInfo{} }
func (d *fakeDevice) Shutdown()                                {}

func TestBatchQuads(t *testing.T) {
	dev := &fakeDevice{}
	rd, err := New(dev, "", "", 4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	rd.BeginScene(mgl32.Ident4())
	for i := 0; i < 6; i++ {
		rd.DrawQuad(float32(i), 0, 1, 1, colors.White)
	}
	rd.EndScene()

	st := rd.Stats()
	if st.QuadCount != 6 || st.DrawCalls != 2 {
		t.Errorf("Stats() = %+v, want 6 quads in 2 draws", st)
	}
	if got := dev.draws[1].IndexCount; got != 2*indsPerQuad {
		t.Errorf("second draw IndexCount = %d, want %d", got, 2*indsPerQuad)
	}
}

func TestQuadCornersTopLeft(t *testing.T) {
	dev := &fakeDevice{}
	rd, _ := New(dev, "", "", 0)
	rd.BeginScene(mgl32.Ident4())
	rd.DrawQuad(10, 20, 30, 40, colors.Black)
	rd.EndScene()
	// TL and BR positions with their UVs.
	tl := dev.verts[0:vStride]
	br := dev.verts[3*vStride : 4*vStride]
	if tl[0] != 10 || tl[1] != 20 || tl[6] != 0 || tl[7] != 0 {
		t.Errorf("top-left vertex = %v", tl)
	}
	if br[0] != 40 || br[1] != 60 || br[6] != 1 || br[7] != 1 {
		t.Errorf("bottom-right vertex = %v", br)
	}
}

func TestTextureSlotsFlush(t *testing.T) {
	dev := &fakeDevice{}
	rd, _ := New(dev, "", "", 0)
	rd.BeginScene(mgl32.Ident4())
	for i := 0; i < maxTexSlots+1; i++ {
		rd.DrawTexturedQuad(0, 0, 1, 1, &fakeTex{id: uint32(100 + i)}, colors.White)
	}
	rd.EndScene()
	if n := rd.Stats().DrawCalls; n != 2 {
		t.Errorf("DrawCalls = %d, want 2 (white + %d textures overflow one batch)", n, maxTexSlots+1)
	}
	if _, ok := dev.draws[0].Samplers["uTex[15]"]; !ok {
		t.Error("first batch did not bind all slots")
	}
}

func TestPresenterUploadsOnGeneration(t *testing.T) {
	dev := &fakeDevice{}
	rd, _ := New(dev, "", "", 0)
	p := NewPresenter(dev, rd)

	doc := surface.NewDocument()
	a := doc.CreateSurface(4, 4)
	b := doc.CreateSurface(0, 0)
	doc.Append(a)
	doc.Append(b)
	baseCreated := dev.created

	p.Present(doc, 100, 100)
	p.Present(doc, 100, 100)
	if dev.created-baseCreated != 1 || dev.updated != 0 {
		t.Fatalf("created = %d, updated = %d after two presents", dev.created-baseCreated, dev.updated)
	}
	a.SetSize(8, 8)
	p.Highlight = a
	p.Present(doc, 100, 100)
	if dev.updated != 1 {
		t.Errorf("updated = %d after SetSize, want 1", dev.updated)
	}
	// Texture quad plus four outline quads.
	if n := rd.Stats().QuadCount; n != 5 {
		t.Errorf("QuadCount = %d, want 5", n)
	}

	doc.RemoveChild(a)
	p.Present(doc, 100, 100)
	if dev.deleted != 1 {
		t.Errorf("deleted = %d after detach, want 1", dev.deleted)
	}
}

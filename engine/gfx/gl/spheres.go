package glbackend

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/atomview/engine/assets"
	"github.com/hubastard/atomview/engine/core"
	"github.com/hubastard/atomview/engine/gfx/spheres"
	"github.com/hubastard/atomview/engine/mesh"
)

// SphereSubdivisions is the icosphere level uploaded by NewSphereBackend.
const SphereSubdivisions = 3

// SphereBackend draws instanced spheres into an offscreen framebuffer.
type SphereBackend struct {
	prog uint32
	u    *uniforms

	vao, vbo, ebo         uint32
	offsets, colors, radi uint32
	indexCount            int32

	fbo, colorRB, depthRB uint32
	w, h                  int
	readBuf               []byte
}

var _ spheres.Backend = (*SphereBackend)(nil)

// NewSphereBackend compiles the sphere program and uploads the sphere mesh.
// The GL context must be current.
func NewSphereBackend() (*SphereBackend, error) {
	vs, fs, err := assets.LoadProgram("spheres")
	if err != nil {
		return nil, err
	}
	prog, err := makeProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("sphere program: %w", err)
	}
	b := &SphereBackend{prog: prog, u: newUniforms(prog)}

	s := mesh.Icosphere(SphereSubdivisions)
	b.indexCount = int32(len(s.Indices))

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	iv := s.Interleaved()
	gl.BufferData(gl.ARRAY_BUFFER, len(iv)*4, gl.Ptr(iv), gl.STATIC_DRAW)
	const stride = 6 * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(s.Indices)*4, gl.Ptr(s.Indices), gl.STATIC_DRAW)

	b.offsets = instanceBuffer(2, 3)
	b.colors = instanceBuffer(3, 3)
	b.radi = instanceBuffer(4, 1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.GenFramebuffers(1, &b.fbo)
	gl.GenRenderbuffers(1, &b.colorRB)
	gl.GenRenderbuffers(1, &b.depthRB)
	if err := b.Resize(1, 1); err != nil {
		b.Close()
		return nil, err
	}
	core.Logger().Info("gl: sphere backend ready",
		"vertices", s.VertexCount(), "triangles", s.TriangleCount())
	return b, nil
}

// instanceBuffer creates a per-instance attribute buffer of size floats at
// loc. The VAO must be bound.
func instanceBuffer(loc uint32, size int32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, size*4, 0)
	gl.VertexAttribDivisor(loc, 1)
	return vbo
}

// Resize reallocates the color and depth attachments.
func (b *SphereBackend) Resize(w, h int) error {
	w, h = max(w, 1), max(h, 1)
	prev := boundFramebuffer()
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, prev)

	gl.BindRenderbuffer(gl.RENDERBUFFER, b.colorRB)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(w), int32(h))
	gl.BindRenderbuffer(gl.RENDERBUFFER, b.depthRB)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(w), int32(h))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, b.colorRB)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, b.depthRB)
	if st := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); st != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("sphere framebuffer %dx%d incomplete: 0x%x", w, h, st)
	}
	b.w, b.h = w, h
	return nil
}

// Draw clears to transparent black and draws every instance of f.
func (b *SphereBackend) Draw(f *spheres.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if b.fbo == 0 {
		return errors.New("sphere backend closed")
	}

	var vp [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	prev := boundFramebuffer()
	depth, blend := gl.IsEnabled(gl.DEPTH_TEST), gl.IsEnabled(gl.BLEND)
	defer func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, prev)
		gl.Viewport(vp[0], vp[1], vp[2], vp[3])
		setEnabled(gl.DEPTH_TEST, depth)
		setEnabled(gl.BLEND, blend)
	}()

	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	gl.Viewport(0, 0, int32(b.w), int32(b.h))
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.BLEND)

	n := f.Count()
	if n == 0 {
		return nil
	}
	upload(b.offsets, f.Offsets)
	upload(b.colors, f.Colors)
	upload(b.radi, f.Radii)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.UseProgram(b.prog)
	b.u.set("uModel", f.Model)
	b.u.set("uView", f.View)
	b.u.set("uProjection", f.Projection())
	b.u.set("uRotation", f.NormalMatrix())
	b.u.set("uRadiusScale", float32(spheres.RadiusScale))
	b.u.set("uLightDir", spheres.LightDir)

	gl.BindVertexArray(b.vao)
	gl.DrawElementsInstancedWithOffset(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, 0, int32(n))
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	return nil
}

func upload(vbo uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
}

// ReadPixels copies the color attachment into dst, flipping GL's bottom-up
// rows.
func (b *SphereBackend) ReadPixels(dst *image.RGBA) error {
	w, h := min(b.w, dst.Rect.Dx()), min(b.h, dst.Rect.Dy())
	if w == 0 || h == 0 {
		return nil
	}
	if n := 4 * b.w * b.h; cap(b.readBuf) < n {
		b.readBuf = make([]byte, n)
	} else {
		b.readBuf = b.readBuf[:n]
	}

	prev := readFramebuffer()
	defer gl.BindFramebuffer(gl.READ_FRAMEBUFFER, prev)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(b.w), int32(b.h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(b.readBuf))

	row := 4 * b.w
	for y := 0; y < h; y++ {
		src := b.readBuf[(b.h-1-y)*row:]
		off := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		copy(dst.Pix[off:off+4*w], src[:4*w])
	}
	return nil
}

func (b *SphereBackend) Close() error {
	for _, buf := range []*uint32{&b.vbo, &b.ebo, &b.offsets, &b.colors, &b.radi} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	for _, rb := range []*uint32{&b.colorRB, &b.depthRB} {
		if *rb != 0 {
			gl.DeleteRenderbuffers(1, rb)
			*rb = 0
		}
	}
	if b.fbo != 0 {
		gl.DeleteFramebuffers(1, &b.fbo)
		b.fbo = 0
	}
	if b.prog != 0 {
		gl.DeleteProgram(b.prog)
		b.prog = 0
	}
	return nil
}

func boundFramebuffer() uint32 {
	var id int32
	gl.GetIntegerv(gl.DRAW_FRAMEBUFFER_BINDING, &id)
	return uint32(id)
}

func readFramebuffer() uint32 {
	var id int32
	gl.GetIntegerv(gl.READ_FRAMEBUFFER_BINDING, &id)
	return uint32(id)
}

func setEnabled(c uint32, on bool) {
	if on {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
}

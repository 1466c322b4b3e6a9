// Package glbackend implements the engine's GPU abstractions on OpenGL 3.3
// core. Every call must happen on the thread that owns the context.
package glbackend

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/atomview/engine/core"
)

type pipeline struct {
	prog      uint32
	depthTest bool
	blend     bool
	u         *uniforms
}

func (p *pipeline) PipelineID() uint32 { return p.prog }

type meshGL struct {
	vao, vbo, ebo uint32
	vboCap        int // floats
	eboCap        int // indices
	count         int
	usage         uint32
}

func (m *meshGL) MeshID() uint32 { return m.vao }

type texture struct {
	id   uint32
	w, h int
}

func (t *texture) TextureID() uint32 { return t.id }
func (t *texture) Size() (int, int)  { return t.w, t.h }

// DeviceGL implements core.Device.
type DeviceGL struct {
	win       core.Window
	pipelines []*pipeline
	meshes    []*meshGL
	textures  map[*texture]struct{}
	units     []string
}

var _ core.Device = (*DeviceGL)(nil)

// NewDeviceGL expects the window's context to be current and GL loaded.
func NewDeviceGL(win core.Window, _ core.Config) (*DeviceGL, error) {
	d := &DeviceGL{win: win, textures: make(map[*texture]struct{})}
	gl.Disable(gl.CULL_FACE)
	return d, nil
}

func (d *DeviceGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, err
	}
	p := &pipeline{prog: prog, depthTest: desc.DepthTest, blend: desc.Blend, u: newUniforms(prog)}
	d.pipelines = append(d.pipelines, p)
	return p, nil
}

func (d *DeviceGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if desc.Layout.Stride <= 0 {
		return nil, fmt.Errorf("create mesh: invalid stride %d", desc.Layout.Stride)
	}
	m := &meshGL{usage: gl.STATIC_DRAW}
	if desc.Dynamic {
		m.usage = gl.DYNAMIC_DRAW
	}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	bufferFloats(gl.ARRAY_BUFFER, desc.Vertices, m.usage)
	m.vboCap = len(desc.Vertices)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	bufferIndices(desc.Indices, m.usage)
	m.eboCap = len(desc.Indices)
	m.count = len(desc.Indices)

	for _, a := range desc.Layout.Attributes {
		loc := uint32(a.Location)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, int32(a.Size), gl.FLOAT, false, int32(desc.Layout.Stride), uintptr(a.Offset))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	d.meshes = append(d.meshes, m)
	return m, nil
}

func (d *DeviceGL) UpdateMesh(mh core.Mesh, vertices []float32, indices []uint32) error {
	m, ok := mh.(*meshGL)
	if !ok {
		return fmt.Errorf("update mesh: foreign mesh %T", mh)
	}
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > m.vboCap {
		bufferFloats(gl.ARRAY_BUFFER, vertices, m.usage)
		m.vboCap = len(vertices)
	} else if len(vertices) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(indices) > m.eboCap {
		bufferIndices(indices, m.usage)
		m.eboCap = len(indices)
	} else if len(indices) > 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
	}
	m.count = len(indices)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

func (d *DeviceGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Format != core.TextureRGBA8 {
		return nil, fmt.Errorf("create texture: unsupported format %d", desc.Format)
	}
	t := &texture{w: desc.Width, h: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(desc.WrapU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(desc.WrapV))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.w), int32(t.h), 0, gl.RGBA, gl.UNSIGNED_BYTE, pixelPtr(desc.Pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	d.textures[t] = struct{}{}
	return t, nil
}

func (d *DeviceGL) UpdateTexture(th core.Texture, w, h int, pixels []byte) error {
	t, ok := th.(*texture)
	if !ok {
		return fmt.Errorf("update texture: foreign texture %T", th)
	}
	if len(pixels) < 4*w*h {
		return fmt.Errorf("update texture: %d bytes for %dx%d", len(pixels), w, h)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if w == t.w && h == t.h {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, pixelPtr(pixels))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, pixelPtr(pixels))
		t.w, t.h = w, h
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (d *DeviceGL) DeleteTexture(th core.Texture) {
	t, ok := th.(*texture)
	if !ok {
		return
	}
	if _, live := d.textures[t]; !live {
		return
	}
	gl.DeleteTextures(1, &t.id)
	delete(d.textures, t)
}

func (d *DeviceGL) Draw(cmd core.DrawCmd) {
	p, ok := cmd.Pipe.(*pipeline)
	if !ok {
		return
	}
	m, ok := cmd.Mesh.(*meshGL)
	if !ok {
		return
	}
	count := cmd.IndexCount
	if count <= 0 || count > m.count {
		count = m.count
	}
	if count == 0 {
		return
	}

	if p.depthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if p.blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}

	gl.UseProgram(p.prog)
	for name, v := range cmd.Uniforms {
		p.u.set(name, v)
	}

	// Stable unit assignment keeps texture bindings identical across frames.
	d.units = d.units[:0]
	for name := range cmd.Samplers {
		d.units = append(d.units, name)
	}
	sort.Strings(d.units)
	for unit, name := range d.units {
		t, ok := cmd.Samplers[name].(*texture)
		if !ok {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, t.id)
		p.u.set(name, int32(unit))
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

func (d *DeviceGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (d *DeviceGL) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *DeviceGL) Info() core.DeviceInfo {
	return core.DeviceInfo{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
}

func (d *DeviceGL) Shutdown() {
	for t := range d.textures {
		gl.DeleteTextures(1, &t.id)
	}
	clear(d.textures)
	for _, m := range d.meshes {
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		gl.DeleteVertexArrays(1, &m.vao)
	}
	d.meshes = nil
	for _, p := range d.pipelines {
		gl.DeleteProgram(p.prog)
	}
	d.pipelines = nil
}

// --- helpers ---

func bufferFloats(target uint32, data []float32, usage uint32) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(target, len(data)*4, ptr, usage)
}

func bufferIndices(data []uint32, usage uint32) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, ptr, usage)
}

func pixelPtr(pix []byte) unsafe.Pointer {
	if len(pix) == 0 {
		return nil
	}
	return gl.Ptr(pix)
}

func filter(s string) int32 {
	if s == "linear" {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func wrap(s string) int32 {
	if s == "repeat" {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

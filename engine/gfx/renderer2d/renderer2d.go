// Package renderer2d batches screen-space quads. Hosts use it to present
// surface images as textured quads in the window.
package renderer2d

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/atomview/engine/colors"
	"github.com/hubastard/atomview/engine/core"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const vStride = 9
const vertsPerQuad = 4
const indsPerQuad = 6

var quadVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

type Renderer2D struct {
	r      core.Device
	pipe   core.Pipeline
	white  core.Texture // 1x1 white (slot 0)
	texArr [maxTexSlots]core.Texture
	texCnt int

	verts     []float32
	inds      []uint32
	quadCount int
	maxQuads  int

	mesh     core.Mesh
	samplers map[string]core.Texture
	uniforms map[string]any
	texNames [maxTexSlots]string

	vp            mgl32.Mat4
	stats         Statistics
	extraUniforms map[string]any
}

// New creates renderer and compiles the shader pipeline.
func New(r core.Device, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		DepthTest:      false,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}

	// build 1x1 white texture
	whitePix := []byte{255, 255, 255, 255}
	white, err := r.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    whitePix,
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, err
	}

	rd := &Renderer2D{
		r: r, pipe: pipe, white: white, maxQuads: maxQuads,
		verts: make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:  make([]uint32, 0, maxQuads*indsPerQuad),
	}

	// Create a reusable mesh large enough for the biggest batch.
	initialVerts := make([]float32, maxQuads*vertsPerQuad*vStride)
	initialInds := make([]uint32, maxQuads*indsPerQuad)
	mesh, err := r.CreateMesh(core.MeshDesc{
		Vertices: initialVerts,
		Indices:  initialInds,
		Layout:   quadVertexLayout,
		Dynamic:  true,
	})
	if err != nil {
		return nil, err
	}
	rd.mesh = mesh

	rd.samplers = make(map[string]core.Texture, maxTexSlots)
	rd.uniforms = make(map[string]any, 4)
	for i := 0; i < maxTexSlots; i++ {
		rd.texNames[i] = "uTex[" + strconv.Itoa(i) + "]"
	}

	return rd, nil
}

// BeginScene starts a frame with the given view-projection matrix.
func (rd *Renderer2D) BeginScene(vp mgl32.Mat4) {
	rd.vp = vp
	rd.stats = Statistics{}
	rd.resetBatch()
}

func (rd *Renderer2D) EndScene() { rd.flush() }

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// SetUniform queues an additional uniform to be sent on every draw call.
// The uniform persists until overwritten; call with nil to remove.
func (rd *Renderer2D) SetUniform(name string, value any) {
	if rd.extraUniforms == nil {
		rd.extraUniforms = make(map[string]any)
	}
	if value == nil {
		delete(rd.extraUniforms, name)
		return
	}
	rd.extraUniforms[name] = value
}

// DrawQuad draws a solid rectangle with its top-left corner at x, y.
func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color) {
	rd.ensureQuadCapacity()
	rd.drawQuadInternal(x, y, w, h, color, rd.texSlot(rd.white), 0, 0, 1, 1)
}

// DrawTexturedQuad draws the whole texture tinted by tint.
func (rd *Renderer2D) DrawTexturedQuad(x, y, w, h float32, tex core.Texture, tint colors.Color) {
	rd.DrawTexturedQuadUV(x, y, w, h, tex, tint, 0, 0, 1, 1)
}

// DrawTexturedQuadUV draws the texture sub-rect u0,v0 -> u1,v1, v growing
// downwards.
func (rd *Renderer2D) DrawTexturedQuadUV(x, y, w, h float32, tex core.Texture, tint colors.Color, u0, v0, u1, v1 float32) {
	rd.ensureQuadCapacity()
	slot := rd.texSlot(tex)
	rd.drawQuadInternal(x, y, w, h, tint, slot, u0, v0, u1, v1)
}

// DrawRect outlines a rectangle with lines of the given thickness.
func (rd *Renderer2D) DrawRect(x, y, w, h, thickness float32, color colors.Color) {
	t := thickness
	rd.DrawQuad(x, y, w, t, color)
	rd.DrawQuad(x, y+h-t, w, t, color)
	rd.DrawQuad(x, y+t, t, h-2*t, color)
	rd.DrawQuad(x+w-t, y+t, t, h-2*t, color)
}

// --- internals ---

func (rd *Renderer2D) texSlot(t core.Texture) float32 {
	// already in array?
	for i := 0; i < rd.texCnt; i++ {
		if rd.texArr[i] == t {
			return float32(i)
		}
	}
	// need a new slot
	if rd.texCnt >= maxTexSlots {
		// flush and reset texture bindings
		rd.flush()
	}
	rd.texArr[rd.texCnt] = t
	rd.texCnt++
	rd.stats.TextureCount = rd.texCnt
	return float32(rd.texCnt - 1)
}

func (rd *Renderer2D) drawQuadInternal(x, y, w, h float32, color colors.Color, texIndex float32, u0, v0, u1, v1 float32) {
	// corners (TL, TR, BL, BR) with UVs. Positive Y goes down.
	corners := [4][4]float32{
		{x, y, u0, v0},
		{x + w, y, u1, v0},
		{x, y + h, u0, v1},
		{x + w, y + h, u1, v1},
	}

	startVertex := uint32(len(rd.verts) / vStride)

	for _, p := range corners {
		rd.verts = append(rd.verts,
			p[0], p[1],
			color[0], color[1], color[2], color[3],
			p[2], p[3],
			texIndex,
		)
	}
	rd.inds = append(rd.inds,
		startVertex+0, startVertex+2, startVertex+1,
		startVertex+1, startVertex+2, startVertex+3,
	)
	rd.quadCount++
	rd.stats.QuadCount++
}

func (rd *Renderer2D) flush() {
	if rd.quadCount == 0 {
		return
	}

	if err := rd.r.UpdateMesh(rd.mesh, rd.verts, rd.inds); err != nil {
		core.Logger().Error("renderer2d: upload batch", "err", err, "quads", rd.quadCount)
		rd.resetBatch()
		return
	}

	for k := range rd.samplers {
		delete(rd.samplers, k)
	}
	for i := 0; i < rd.texCnt; i++ {
		rd.samplers[rd.texNames[i]] = rd.texArr[i]
	}

	for k := range rd.uniforms {
		delete(rd.uniforms, k)
	}
	rd.uniforms["uVP"] = rd.vp
	for k, v := range rd.extraUniforms {
		rd.uniforms[k] = v
	}

	rd.r.Draw(core.DrawCmd{
		Pipe:       rd.pipe,
		Mesh:       rd.mesh,
		IndexCount: len(rd.inds),
		Uniforms:   rd.uniforms,
		Samplers:   rd.samplers,
	})
	rd.stats.DrawCalls++

	rd.resetBatch()
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
	rd.quadCount = 0
	for i := range rd.texArr {
		rd.texArr[i] = nil
	}
	rd.texArr[0] = rd.white
	rd.texCnt = 1
}

func (rd *Renderer2D) ensureQuadCapacity() {
	if rd.quadCount >= rd.maxQuads {
		rd.flush()
	}
}

package core

// Device is the GPU abstraction used by the presenter. The GL backend
// implements it; tests use fakes.
type Device interface {
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error
	CreateTexture(desc TextureDesc) (Texture, error)
	UpdateTexture(t Texture, w, h int, pixels []byte) error
	DeleteTexture(t Texture)
	Draw(cmd DrawCmd)
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Info() DeviceInfo
	Shutdown()
}

// DeviceInfo reports the strings the driver gives back.
type DeviceInfo struct {
	Vendor   string
	Renderer string
	Version  string
}

// Opaque GPU handles.
type (
	Pipeline interface{ PipelineID() uint32 }
	Mesh     interface{ MeshID() uint32 }
	Texture  interface {
		TextureID() uint32
		Size() (w, h int)
	}
)

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location int
	Size     int // components
	Type     AttribType
	Offset   int // bytes
}

type VertexLayout struct {
	Stride     int // bytes
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
	Dynamic  bool
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

type TextureDesc struct {
	Width, Height        int
	Format               TextureFormat
	Pixels               []byte // tightly packed rows, top-left origin
	MinFilter, MagFilter string // "nearest" | "linear"
	WrapU, WrapV         string // "clamp" | "repeat"
}

// DrawCmd draws IndexCount indices of Mesh with Pipe. Zero IndexCount draws
// the whole index buffer.
type DrawCmd struct {
	Pipe       Pipeline
	Mesh       Mesh
	IndexCount int
	Uniforms   map[string]any
	Samplers   map[string]Texture
}

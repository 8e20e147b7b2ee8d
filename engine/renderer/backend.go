package renderer

import (
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

// ResourceFactory creates backend resources. It is the only component allowed
// to allocate them. Every call is synchronous and either returns a
// ready-to-use handle or fails with *core.ResourceCreationError; creation
// never touches the currently bound render target.
type ResourceFactory interface {
	CreateVertexBuffer(data []float32, layout *metadata.VertexLayout) (*metadata.Buffer, error)
	CreateIndexBuffer(indices []uint32) (*metadata.Buffer, error)
	// CreateIndexedSlice builds an index buffer for indices and returns a
	// slice drawing vertexBuffer through it. Every index must be a valid
	// offset into vertexBuffer.
	CreateIndexedSlice(vertexBuffer *metadata.Buffer, indices []uint32) (*metadata.Slice, error)
	CreatePipeline(config *metadata.PipelineConfig) (*metadata.Pipeline, error)
	CreateRenderTarget(width, height uint32, format metadata.TargetFormat) (*metadata.RenderTarget, error)

	DestroyBuffer(buffer *metadata.Buffer)
	DestroyPipeline(pipeline *metadata.Pipeline)
	DestroyRenderTarget(target *metadata.RenderTarget)
}

// Device executes frozen command sequences against the live backend context.
type Device interface {
	// Submit executes each command in encoded order. It returns before GPU
	// execution completes; *core.SubmissionError reports rejection.
	Submit(sequence *metadata.CommandSequence) error
	// Present makes the most recently submitted frame visible. Legal with no
	// prior submission in the frame (re-presents the previous contents).
	// *core.PresentationError reports a lost or stale surface.
	Present() error
	// WaitIdle blocks until all submitted work has completed on the GPU.
	// Required before destroying resources referenced by in-flight commands.
	WaitIdle() error
}

// Backend is one conforming graphics API implementation, selected at startup.
type Backend interface {
	ResourceFactory
	Device

	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	// Resized rebuilds the presentable targets for the new surface size.
	// Buffers and pipelines are untouched.
	Resized(width, height uint32) error
	// PresentableTarget returns the target draw commands should bind to reach
	// the screen (or the offscreen surface for headless backends).
	PresentableTarget() *metadata.RenderTarget
}

type BackendType uint8

const (
	BackendTypeSoft BackendType = iota
	BackendTypeVulkan
	BackendTypeOpenGL
	BackendTypeDirectX
	BackendTypeMetal
)

func (t BackendType) String() string {
	switch t {
	case BackendTypeSoft:
		return "soft"
	case BackendTypeVulkan:
		return "vulkan"
	case BackendTypeOpenGL:
		return "opengl"
	case BackendTypeDirectX:
		return "directx"
	case BackendTypeMetal:
		return "metal"
	}
	return "unknown"
}

// ParseBackendType maps a config string to a backend type.
func ParseBackendType(name string) (BackendType, bool) {
	switch name {
	case "soft":
		return BackendTypeSoft, true
	case "vulkan":
		return BackendTypeVulkan, true
	case "opengl":
		return BackendTypeOpenGL, true
	case "directx":
		return BackendTypeDirectX, true
	case "metal":
		return BackendTypeMetal, true
	}
	return 0, false
}

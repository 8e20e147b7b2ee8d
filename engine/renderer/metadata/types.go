package metadata

import (
	"fmt"

	"github.com/google/uuid"
)

// TargetFormat classifies what a render target stores and what a pipeline
// expects to write into.
type TargetFormat uint8

const (
	TargetFormatColorRGBA8 TargetFormat = iota
	TargetFormatDepth32
)

func (f TargetFormat) String() string {
	switch f {
	case TargetFormatColorRGBA8:
		return "color_rgba8"
	case TargetFormatDepth32:
		return "depth32"
	}
	return "unknown"
}

// Color is a normalized RGBA clear/output color.
type Color struct {
	R, G, B, A float32
}

var (
	ColorBlack = Color{0, 0, 0, 1}
	ColorWhite = Color{1, 1, 1, 1}
)

type BufferKind uint8

const (
	BufferKindVertex BufferKind = iota
	BufferKindIndex
)

// Buffer is an opaque, backend-owned allocation of vertex or index elements.
// Content is immutable after creation. The CPU-side copies are retained for
// encode-time validation and for backends without device memory.
type Buffer struct {
	ID           uuid.UUID
	Kind         BufferKind
	Layout       *VertexLayout // vertex buffers only
	ElementCount uint32
	VertexData   []float32 // vertex buffers only
	IndexData    []uint32  // index buffers only

	// Backend-specific allocation handle.
	InternalData interface{}

	destroyed bool
}

// MarkDestroyed flags the buffer so later submissions referencing it are
// rejected instead of touching freed backend memory.
func (b *Buffer) MarkDestroyed() { b.destroyed = true }

func (b *Buffer) IsDestroyed() bool { return b.destroyed }

// SizeBytes reports the backend allocation size.
func (b *Buffer) SizeBytes() uint64 {
	switch b.Kind {
	case BufferKindVertex:
		return uint64(len(b.VertexData)) * 4
	case BufferKindIndex:
		return uint64(len(b.IndexData)) * 4
	}
	return 0
}

// Slice is a non-owning view describing which elements of a vertex buffer
// (optionally through an index buffer) constitute one draw's input.
type Slice struct {
	VertexBuffer *Buffer
	IndexBuffer  *Buffer // nil for non-indexed draws
	First        uint32
	Count        uint32
}

// RenderTarget is a handle to a presentable or offscreen surface. It is owned
// by the window-system collaborator and only referenced here.
type RenderTarget struct {
	ID     uuid.UUID
	Width  uint32
	Height uint32
	Format TargetFormat

	InternalData interface{}

	destroyed bool
}

func (t *RenderTarget) MarkDestroyed() { t.destroyed = true }

func (t *RenderTarget) IsDestroyed() bool { return t.destroyed }

// PipelineConfig is the descriptor handed to the factory. Shader sources are
// opaque stage-specific text; the core only surfaces the backend compiler's
// pass/fail result.
type PipelineConfig struct {
	Name           string
	VertexShader   []byte
	FragmentShader []byte
	Layout         *VertexLayout
	TargetFormat   TargetFormat
}

// Pipeline is an immutable pipeline state object: compiled shader stages
// bound to a vertex layout and a target format. Target size is not part of
// pipeline identity, so pipelines survive resizes.
type Pipeline struct {
	ID           uuid.UUID
	Name         string
	Layout       *VertexLayout
	TargetFormat TargetFormat

	InternalData interface{}
}

func (p *Pipeline) String() string {
	return fmt.Sprintf("pipeline %q layout=%s target=%s", p.Name, p.Layout, p.TargetFormat)
}

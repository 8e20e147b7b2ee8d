package soft

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

func (b *Backend) CreateVertexBuffer(data []float32, layout *metadata.VertexLayout) (*metadata.Buffer, error) {
	if layout == nil || len(layout.Attributes) == 0 {
		return nil, &core.ResourceCreationError{
			Resource: "vertex buffer",
			Cause:    fmt.Errorf("no vertex layout"),
		}
	}
	if len(data) == 0 || uint32(len(data))%layout.Stride != 0 {
		return nil, &core.ResourceCreationError{
			Resource: "vertex buffer",
			Cause:    fmt.Errorf("data length %d is not a multiple of stride %d", len(data), layout.Stride),
		}
	}

	stored := make([]float32, len(data))
	copy(stored, data)

	return &metadata.Buffer{
		ID:           uuid.New(),
		Kind:         metadata.BufferKindVertex,
		Layout:       layout,
		ElementCount: uint32(len(data)) / layout.Stride,
		VertexData:   stored,
	}, nil
}

func (b *Backend) CreateIndexBuffer(indices []uint32) (*metadata.Buffer, error) {
	if len(indices) == 0 {
		return nil, &core.ResourceCreationError{
			Resource: "index buffer",
			Cause:    fmt.Errorf("no indices"),
		}
	}
	stored := make([]uint32, len(indices))
	copy(stored, indices)

	return &metadata.Buffer{
		ID:           uuid.New(),
		Kind:         metadata.BufferKindIndex,
		ElementCount: uint32(len(indices)),
		IndexData:    stored,
	}, nil
}

func (b *Backend) CreateIndexedSlice(vertexBuffer *metadata.Buffer, indices []uint32) (*metadata.Slice, error) {
	if vertexBuffer == nil || vertexBuffer.Kind != metadata.BufferKindVertex {
		return nil, &core.ResourceCreationError{
			Resource: "slice",
			Cause:    fmt.Errorf("not a vertex buffer"),
		}
	}
	for i, idx := range indices {
		if idx >= vertexBuffer.ElementCount {
			return nil, &core.ResourceCreationError{
				Resource: "slice",
				Cause: fmt.Errorf("index %d at position %d out of range for %d vertices",
					idx, i, vertexBuffer.ElementCount),
			}
		}
	}

	indexBuffer, err := b.CreateIndexBuffer(indices)
	if err != nil {
		return nil, err
	}

	return &metadata.Slice{
		VertexBuffer: vertexBuffer,
		IndexBuffer:  indexBuffer,
		First:        0,
		Count:        uint32(len(indices)),
	}, nil
}

// CreatePipeline "compiles" the passthrough stage pair. The soft backend does
// not parse shader text; it requires non-empty sources and a layout carrying
// a 2-component "position" attribute, which is the whole of its programmable
// surface. An optional "color" attribute is interpolated; output is white
// otherwise.
func (b *Backend) CreatePipeline(config *metadata.PipelineConfig) (*metadata.Pipeline, error) {
	if config.Layout == nil {
		return nil, &core.ResourceCreationError{
			Resource: "pipeline",
			Cause:    fmt.Errorf("no vertex layout"),
		}
	}
	if len(bytes.TrimSpace(config.VertexShader)) == 0 || len(bytes.TrimSpace(config.FragmentShader)) == 0 {
		return nil, &core.ResourceCreationError{
			Resource: "pipeline",
			Cause:    fmt.Errorf("empty shader stage source"),
		}
	}

	pos, ok := config.Layout.Attribute("position")
	if !ok || pos.Format != metadata.AttributeFormatFloat32x2 {
		return nil, &core.ResourceCreationError{
			Resource: "pipeline",
			Cause:    fmt.Errorf("layout %s lacks a float32x2 \"position\" attribute", config.Layout),
		}
	}

	sp := &softPipeline{position: pos}
	if col, ok := config.Layout.Attribute("color"); ok {
		c := col
		sp.color = &c
	}

	return &metadata.Pipeline{
		ID:           uuid.New(),
		Name:         config.Name,
		Layout:       config.Layout,
		TargetFormat: config.TargetFormat,
		InternalData: sp,
	}, nil
}

func (b *Backend) CreateRenderTarget(width, height uint32, format metadata.TargetFormat) (*metadata.RenderTarget, error) {
	if width == 0 || height == 0 {
		return nil, &core.ResourceCreationError{
			Resource: "render target",
			Cause:    fmt.Errorf("invalid size %dx%d", width, height),
		}
	}
	return &metadata.RenderTarget{
		ID:           uuid.New(),
		Width:        width,
		Height:       height,
		Format:       format,
		InternalData: newSoftTarget(width, height, format),
	}, nil
}

func (b *Backend) DestroyBuffer(buffer *metadata.Buffer) {
	if buffer == nil {
		return
	}
	buffer.MarkDestroyed()
	buffer.VertexData = nil
	buffer.IndexData = nil
}

func (b *Backend) DestroyPipeline(pipeline *metadata.Pipeline) {
	if pipeline == nil {
		return
	}
	pipeline.InternalData = nil
}

func (b *Backend) DestroyRenderTarget(target *metadata.RenderTarget) {
	if target == nil {
		return
	}
	target.MarkDestroyed()
	target.InternalData = nil
}

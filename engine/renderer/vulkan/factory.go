package vulkan

import (
	"bytes"
	"fmt"

	vk "github.com/goki/vulkan"
	"github.com/google/uuid"

	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

func (vr *Backend) CreateVertexBuffer(data []float32, layout *metadata.VertexLayout) (*metadata.Buffer, error) {
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

	deviceBuffer, err := BufferCreate(vr.context, vk.DeviceSize(len(data)*4), vk.BufferUsageVertexBufferBit)
	if err != nil {
		return nil, &core.ResourceCreationError{Resource: "vertex buffer", Cause: err}
	}
	if err := deviceBuffer.LoadData(vr.context, 0, float32SliceAsBytes(data)); err != nil {
		deviceBuffer.Destroy(vr.context)
		return nil, &core.ResourceCreationError{Resource: "vertex buffer", Cause: err}
	}

	stored := make([]float32, len(data))
	copy(stored, data)

	return &metadata.Buffer{
		ID:           uuid.New(),
		Kind:         metadata.BufferKindVertex,
		Layout:       layout,
		ElementCount: uint32(len(data)) / layout.Stride,
		VertexData:   stored,
		InternalData: deviceBuffer,
	}, nil
}

func (vr *Backend) CreateIndexBuffer(indices []uint32) (*metadata.Buffer, error) {
	if len(indices) == 0 {
		return nil, &core.ResourceCreationError{
			Resource: "index buffer",
			Cause:    fmt.Errorf("no indices"),
		}
	}

	deviceBuffer, err := BufferCreate(vr.context, vk.DeviceSize(len(indices)*4), vk.BufferUsageIndexBufferBit)
	if err != nil {
		return nil, &core.ResourceCreationError{Resource: "index buffer", Cause: err}
	}
	if err := deviceBuffer.LoadData(vr.context, 0, uint32SliceAsBytes(indices)); err != nil {
		deviceBuffer.Destroy(vr.context)
		return nil, &core.ResourceCreationError{Resource: "index buffer", Cause: err}
	}

	stored := make([]uint32, len(indices))
	copy(stored, indices)

	return &metadata.Buffer{
		ID:           uuid.New(),
		Kind:         metadata.BufferKindIndex,
		ElementCount: uint32(len(indices)),
		IndexData:    stored,
		InternalData: deviceBuffer,
	}, nil
}

func (vr *Backend) CreateIndexedSlice(vertexBuffer *metadata.Buffer, indices []uint32) (*metadata.Slice, error) {
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

	indexBuffer, err := vr.CreateIndexBuffer(indices)
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

// CreatePipeline compiles the SPIR-V stage pair into a graphics pipeline
// against the main renderpass. A broken vertex shader, fragment shader or
// layout surfaces here, never at draw time.
func (vr *Backend) CreatePipeline(config *metadata.PipelineConfig) (*metadata.Pipeline, error) {
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
	if config.TargetFormat != metadata.TargetFormatColorRGBA8 {
		return nil, &core.ResourceCreationError{
			Resource: "pipeline",
			Cause:    fmt.Errorf("target format %s is not renderable by this backend", config.TargetFormat),
		}
	}

	vulkanPipeline, err := NewGraphicsPipeline(vr.context, vr.context.MainRenderpass, *config)
	if err != nil {
		return nil, &core.ResourceCreationError{Resource: "pipeline", Cause: err}
	}

	return &metadata.Pipeline{
		ID:           uuid.New(),
		Name:         config.Name,
		Layout:       config.Layout,
		TargetFormat: config.TargetFormat,
		InternalData: vulkanPipeline,
	}, nil
}

// CreateRenderTarget only hands out the swapchain-backed presentable target.
// TODO: offscreen targets need a dedicated image, renderpass and framebuffer
// per target before they can be offered here.
func (vr *Backend) CreateRenderTarget(width, height uint32, format metadata.TargetFormat) (*metadata.RenderTarget, error) {
	return nil, &core.ResourceCreationError{
		Resource: "render target",
		Cause:    fmt.Errorf("offscreen targets are not supported by the vulkan backend"),
	}
}

func (vr *Backend) DestroyBuffer(buffer *metadata.Buffer) {
	if buffer == nil {
		return
	}
	if deviceBuffer, ok := buffer.InternalData.(*VulkanBuffer); ok {
		deviceBuffer.Destroy(vr.context)
	}
	buffer.MarkDestroyed()
	buffer.VertexData = nil
	buffer.IndexData = nil
	buffer.InternalData = nil
}

func (vr *Backend) DestroyPipeline(pipeline *metadata.Pipeline) {
	if pipeline == nil {
		return
	}
	if vulkanPipeline, ok := pipeline.InternalData.(*VulkanPipeline); ok {
		vulkanPipeline.Destroy(vr.context)
	}
	pipeline.InternalData = nil
}

func (vr *Backend) DestroyRenderTarget(target *metadata.RenderTarget) {
	if target == nil || target == vr.presentable {
		return
	}
	target.MarkDestroyed()
	target.InternalData = nil
}

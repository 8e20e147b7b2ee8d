package vulkan

import (
	"encoding/binary"
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

type VulkanPipeline struct {
	Handle         vk.Pipeline
	PipelineLayout vk.PipelineLayout
	VertexModule   vk.ShaderModule
	FragmentModule vk.ShaderModule
}

// attributeVkFormat maps a vertex attribute format to its Vulkan equivalent.
func attributeVkFormat(format metadata.AttributeFormat) (vk.Format, error) {
	switch format {
	case metadata.AttributeFormatFloat32x2:
		return vk.FormatR32g32Sfloat, nil
	case metadata.AttributeFormatFloat32x3:
		return vk.FormatR32g32b32Sfloat, nil
	case metadata.AttributeFormatFloat32x4:
		return vk.FormatR32g32b32a32Sfloat, nil
	default:
		return vk.FormatUndefined, fmt.Errorf("unsupported vertex attribute format %s", format)
	}
}

// createShaderModule wraps SPIR-V bytecode in a shader module. The byte length
// must be a multiple of four, as SPIR-V words are 32 bits wide.
func createShaderModule(context *VulkanContext, code []byte) (vk.ShaderModule, error) {
	if len(code) == 0 || len(code)%4 != 0 {
		return nil, fmt.Errorf("shader bytecode length %d is not a multiple of 4", len(code))
	}

	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}

	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(code)),
		PCode:    words,
	}

	var module vk.ShaderModule
	if res := vk.CreateShaderModule(context.Device.LogicalDevice, &createInfo, context.Allocator, &module); !VulkanResultIsSuccess(res) {
		return nil, fmt.Errorf("vkCreateShaderModule failed with %s", VulkanResultString(res, true))
	}
	return module, nil
}

// NewGraphicsPipeline builds a graphics pipeline for the given pipeline
// configuration against the main renderpass. Viewport and scissor are dynamic
// state so a resize does not force a pipeline rebuild.
func NewGraphicsPipeline(context *VulkanContext, renderpass *VulkanRenderPass, config metadata.PipelineConfig) (*VulkanPipeline, error) {
	outPipeline := &VulkanPipeline{}

	vertModule, err := createShaderModule(context, config.VertexShader)
	if err != nil {
		return nil, fmt.Errorf("vertex shader for pipeline %s: %w", config.Name, err)
	}
	outPipeline.VertexModule = vertModule

	fragModule, err := createShaderModule(context, config.FragmentShader)
	if err != nil {
		vk.DestroyShaderModule(context.Device.LogicalDevice, vertModule, context.Allocator)
		return nil, fmt.Errorf("fragment shader for pipeline %s: %w", config.Name, err)
	}
	outPipeline.FragmentModule = fragModule

	stages := []vk.PipelineShaderStageCreateInfo{
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageVertexBit,
			Module: vertModule,
			PName:  "main\x00",
		},
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFragmentBit,
			Module: fragModule,
			PName:  "main\x00",
		},
	}

	// Viewport state. The values themselves are dynamic, only the counts
	// matter here.
	viewport := vk.Viewport{
		X: 0, Y: float32(context.FramebufferHeight),
		Width:    float32(context.FramebufferWidth),
		Height:   -float32(context.FramebufferHeight),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}
	scissor := vk.Rect2D{
		Extent: vk.Extent2D{Width: context.FramebufferWidth, Height: context.FramebufferHeight},
	}
	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		PViewports:    []vk.Viewport{viewport},
		ScissorCount:  1,
		PScissors:     []vk.Rect2D{scissor},
	}
	viewportState.Deref()

	rasterizerCreateInfo := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             vk.PolygonModeFill,
		LineWidth:               1.0,
		CullMode:                vk.CullModeFlags(vk.CullModeNone),
		FrontFace:               vk.FrontFaceCounterClockwise,
		DepthBiasEnable:         vk.False,
	}
	rasterizerCreateInfo.Deref()

	multisamplingCreateInfo := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		SampleShadingEnable:  vk.False,
		RasterizationSamples: vk.SampleCount1Bit,
		MinSampleShading:     1.0,
	}
	multisamplingCreateInfo.Deref()

	colorBlendAttachmentState := vk.PipelineColorBlendAttachmentState{
		BlendEnable:         vk.True,
		SrcColorBlendFactor: vk.BlendFactorSrcAlpha,
		DstColorBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
		ColorBlendOp:        vk.BlendOpAdd,
		SrcAlphaBlendFactor: vk.BlendFactorSrcAlpha,
		DstAlphaBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
		AlphaBlendOp:        vk.BlendOpAdd,
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit) | vk.ColorComponentFlags(vk.ColorComponentGBit) |
			vk.ColorComponentFlags(vk.ColorComponentBBit) | vk.ColorComponentFlags(vk.ColorComponentABit),
	}
	colorBlendAttachmentState.Deref()

	colorBlendStateCreateInfo := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{colorBlendAttachmentState},
	}
	colorBlendStateCreateInfo.Deref()

	dynamicStates := []vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
	}
	dynamicStateCreateInfo := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    dynamicStates,
	}
	dynamicStateCreateInfo.Deref()

	// Vertex input from the declared layout. Layout offsets and strides are
	// counted in float32 elements, Vulkan wants bytes.
	bindingDescription := vk.VertexInputBindingDescription{
		Binding:   0,
		Stride:    config.Layout.Stride * 4,
		InputRate: vk.VertexInputRateVertex,
	}
	bindingDescription.Deref()

	attributes := make([]vk.VertexInputAttributeDescription, len(config.Layout.Attributes))
	for i, attr := range config.Layout.Attributes {
		format, err := attributeVkFormat(attr.Format)
		if err != nil {
			outPipeline.destroyModules(context)
			return nil, err
		}
		attributes[i] = vk.VertexInputAttributeDescription{
			Location: uint32(i),
			Binding:  0,
			Format:   format,
			Offset:   attr.Offset * 4,
		}
		attributes[i].Deref()
	}

	vertexInputInfo := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   1,
		PVertexBindingDescriptions:      []vk.VertexInputBindingDescription{bindingDescription},
		VertexAttributeDescriptionCount: uint32(len(attributes)),
		PVertexAttributeDescriptions:    attributes,
	}
	vertexInputInfo.Deref()

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
	}
	inputAssembly.Deref()

	pipelineLayoutCreateInfo := vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}
	pipelineLayoutCreateInfo.Deref()

	var pPipelineLayout vk.PipelineLayout
	if res := vk.CreatePipelineLayout(context.Device.LogicalDevice, &pipelineLayoutCreateInfo, context.Allocator, &pPipelineLayout); !VulkanResultIsSuccess(res) {
		outPipeline.destroyModules(context)
		return nil, fmt.Errorf("vkCreatePipelineLayout failed with %s", VulkanResultString(res, true))
	}
	outPipeline.PipelineLayout = pPipelineLayout

	pipelineCreateInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   &vertexInputInfo,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterizerCreateInfo,
		PMultisampleState:   &multisamplingCreateInfo,
		PColorBlendState:    &colorBlendStateCreateInfo,
		PDynamicState:       &dynamicStateCreateInfo,
		Layout:              outPipeline.PipelineLayout,
		RenderPass:          renderpass.Handle,
		Subpass:             0,
		BasePipelineHandle:  vk.NullPipeline,
		BasePipelineIndex:   -1,
	}
	pipelineCreateInfo.Deref()

	pPipelines := make([]vk.Pipeline, 1)
	result := vk.CreateGraphicsPipelines(
		context.Device.LogicalDevice,
		vk.NullPipelineCache,
		1,
		[]vk.GraphicsPipelineCreateInfo{pipelineCreateInfo},
		context.Allocator,
		pPipelines)
	if !VulkanResultIsSuccess(result) {
		outPipeline.Destroy(context)
		return nil, fmt.Errorf("vkCreateGraphicsPipelines failed with %s", VulkanResultString(result, true))
	}
	outPipeline.Handle = pPipelines[0]

	core.LogDebug("Graphics pipeline %s created", config.Name)
	return outPipeline, nil
}

func (pipeline *VulkanPipeline) destroyModules(context *VulkanContext) {
	if pipeline.VertexModule != nil {
		vk.DestroyShaderModule(context.Device.LogicalDevice, pipeline.VertexModule, context.Allocator)
		pipeline.VertexModule = nil
	}
	if pipeline.FragmentModule != nil {
		vk.DestroyShaderModule(context.Device.LogicalDevice, pipeline.FragmentModule, context.Allocator)
		pipeline.FragmentModule = nil
	}
}

func (pipeline *VulkanPipeline) Destroy(context *VulkanContext) {
	if pipeline.Handle != nil {
		vk.DestroyPipeline(context.Device.LogicalDevice, pipeline.Handle, context.Allocator)
		pipeline.Handle = nil
	}
	if pipeline.PipelineLayout != nil {
		vk.DestroyPipelineLayout(context.Device.LogicalDevice, pipeline.PipelineLayout, context.Allocator)
		pipeline.PipelineLayout = nil
	}
	pipeline.destroyModules(context)
}

func (pipeline *VulkanPipeline) Bind(commandBuffer *VulkanCommandBuffer, bindPoint vk.PipelineBindPoint) {
	vk.CmdBindPipeline(commandBuffer.Handle, bindPoint, pipeline.Handle)
}

package vulkan

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"github.com/google/uuid"

	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/platform"
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

// Backend renders through Vulkan. Geometry lives in host visible device
// buffers, pipelines are compiled against the main renderpass, and each
// Submit records and queues exactly one frame of commands.
type Backend struct {
	platform *platform.Platform
	context  *VulkanContext

	cachedFramebufferWidth  uint32
	cachedFramebufferHeight uint32

	presentable *metadata.RenderTarget

	// Set when a frame has been queued and not yet handed to the swapchain.
	frameSubmitted bool

	debug bool
}

func New(p *platform.Platform) *Backend {
	return &Backend{
		platform: p,
		context: &VulkanContext{
			Allocator: nil,
			Device:    &VulkanDevice{},
		},
		debug: true,
	}
}

func (vr *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return fmt.Errorf("vulkan loader not available")
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		return fmt.Errorf("failed to initialize vulkan: %w", err)
	}

	vr.context.FramebufferWidth = appWidth
	vr.context.FramebufferHeight = appHeight

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   VulkanSafeString(appName),
		PEngineName:        VulkanSafeString("Prism Engine"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	requiredExtensions := []string{"VK_KHR_surface"}
	requiredExtensions = append(requiredExtensions, vr.platform.GetRequiredExtensionNames()...)

	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
		createInfo.Flags |= 1
	}

	if vr.debug {
		requiredExtensions = append(requiredExtensions, vk.ExtDebugReportExtensionName)
	}

	createInfo.EnabledExtensionCount = uint32(len(requiredExtensions))
	createInfo.PpEnabledExtensionNames = VulkanSafeStrings(requiredExtensions)

	validationLayers := []string{}
	if vr.debug && validationLayersAvailable() {
		validationLayers = []string{"VK_LAYER_KHRONOS_validation"}
	}
	createInfo.EnabledLayerCount = uint32(len(validationLayers))
	createInfo.PpEnabledLayerNames = VulkanSafeStrings(validationLayers)

	if res := vk.CreateInstance(&createInfo, vr.context.Allocator, &vr.context.Instance); res != vk.Success {
		return fmt.Errorf("failed to create vulkan instance: %s", VulkanResultString(res, true))
	}
	if err := vk.InitInstance(vr.context.Instance); err != nil {
		return err
	}
	core.LogInfo("Vulkan instance created.")

	if vr.debug {
		debugCreateInfo := vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit),
			PfnCallback: dbgCallbackFunc,
		}
		var dbg vk.DebugReportCallback
		if res := vk.CreateDebugReportCallback(vr.context.Instance, &debugCreateInfo, nil, &dbg); res == vk.Success {
			vr.context.debugMessenger = dbg
		} else {
			core.LogWarn("Vulkan debug callback unavailable: %s", VulkanResultString(res, true))
		}
	}

	surface, err := vr.platform.CreateSurface(vr.context.Instance)
	if err != nil {
		return fmt.Errorf("failed to create surface: %w", err)
	}
	vr.context.Surface = vk.SurfaceFromPointer(surface)
	core.LogDebug("Vulkan surface created.")

	if err := DeviceCreate(vr.context); err != nil {
		return err
	}

	sc, err := SwapchainCreate(vr.context, vr.context.FramebufferWidth, vr.context.FramebufferHeight)
	if err != nil {
		return err
	}
	vr.context.Swapchain = sc

	rp, err := RenderPassCreate(vr.context,
		0, 0, float32(vr.context.FramebufferWidth), float32(vr.context.FramebufferHeight),
		metadata.ColorBlack)
	if err != nil {
		return err
	}
	vr.context.MainRenderpass = rp

	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, vr.context.Swapchain.ImageCount)
	if err := vr.regenerateFramebuffers(); err != nil {
		return err
	}

	if err := vr.createCommandBuffers(); err != nil {
		return err
	}

	if err := vr.createSyncObjects(); err != nil {
		return err
	}

	vr.presentable = &metadata.RenderTarget{
		ID:     uuid.New(),
		Width:  vr.context.FramebufferWidth,
		Height: vr.context.FramebufferHeight,
		Format: metadata.TargetFormatColorRGBA8,
	}

	core.LogInfo("Vulkan renderer initialized successfully.")
	return nil
}

func (vr *Backend) Shutdown() error {
	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	// Opposite order of creation.
	for i := 0; i < int(vr.context.Swapchain.MaxFramesInFlight); i++ {
		if vr.context.ImageAvailableSemaphores[i] != vk.NullSemaphore {
			vk.DestroySemaphore(vr.context.Device.LogicalDevice, vr.context.ImageAvailableSemaphores[i], vr.context.Allocator)
		}
		if vr.context.QueueCompleteSemaphores[i] != vk.NullSemaphore {
			vk.DestroySemaphore(vr.context.Device.LogicalDevice, vr.context.QueueCompleteSemaphores[i], vr.context.Allocator)
		}
		vr.context.InFlightFences[i].Destroy(vr.context)
	}
	vr.context.ImageAvailableSemaphores = nil
	vr.context.QueueCompleteSemaphores = nil
	vr.context.InFlightFences = nil
	vr.context.ImagesInFlight = nil

	for i := range vr.context.GraphicsCommandBuffers {
		if vr.context.GraphicsCommandBuffers[i].Handle != nil {
			vr.context.GraphicsCommandBuffers[i].Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
	}
	vr.context.GraphicsCommandBuffers = nil

	vr.context.MainRenderpass.Destroy(vr.context)
	vr.context.Swapchain.SwapchainDestroy(vr.context)

	core.LogDebug("Destroying Vulkan device...")
	DeviceDestroy(vr.context)

	if vr.context.Surface != vk.NullSurface {
		vk.DestroySurface(vr.context.Instance, vr.context.Surface, vr.context.Allocator)
		vr.context.Surface = vk.NullSurface
	}

	if vr.context.debugMessenger != vk.NullDebugReportCallback {
		vk.DestroyDebugReportCallback(vr.context.Instance, vr.context.debugMessenger, vr.context.Allocator)
	}

	core.LogDebug("Destroying Vulkan instance...")
	vk.DestroyInstance(vr.context.Instance, vr.context.Allocator)
	return nil
}

// Resized rebuilds the swapchain and its framebuffers at the new size.
// Buffers and pipelines survive untouched; pipelines use dynamic viewport
// state so they remain valid against the recreated chain.
func (vr *Backend) Resized(width, height uint32) error {
	vr.cachedFramebufferWidth = width
	vr.cachedFramebufferHeight = height
	vr.context.FramebufferSizeGeneration++
	core.LogDebug("Vulkan backend resized: %dx%d gen %d", width, height, vr.context.FramebufferSizeGeneration)
	return vr.recreateSwapchain()
}

func (vr *Backend) PresentableTarget() *metadata.RenderTarget {
	return vr.presentable
}

// Submit records the sequence into this frame's command buffer and queues it.
// The first clear of the presentable target becomes the renderpass clear
// color; later clears are recorded as attachment clears so ordering against
// surrounding draws is preserved.
func (vr *Backend) Submit(sequence *metadata.CommandSequence) error {
	if sequence == nil {
		return &core.SubmissionError{Command: -1, Cause: fmt.Errorf("nil command sequence")}
	}
	if vr.context.FramebufferWidth == 0 || vr.context.FramebufferHeight == 0 {
		return &core.SubmissionError{Command: -1, Cause: fmt.Errorf("surface has zero area")}
	}

	frameFence := vr.context.InFlightFences[vr.context.CurrentFrame]
	if err := frameFence.Wait(vr.context, math.MaxUint64); err != nil {
		return &core.SubmissionError{Command: -1, Cause: err}
	}

	imageIndex, err := vr.context.Swapchain.SwapchainAcquireNextImageIndex(
		vr.context, math.MaxUint64,
		vr.context.ImageAvailableSemaphores[vr.context.CurrentFrame], vk.NullFence)
	if err != nil {
		return &core.SubmissionError{Command: -1, Cause: err}
	}
	vr.context.ImageIndex = imageIndex

	commandBuffer := vr.context.GraphicsCommandBuffers[imageIndex]
	commandBuffer.Reset()
	if err := commandBuffer.Begin(false, false, false); err != nil {
		return &core.SubmissionError{Command: -1, Cause: err}
	}

	viewport := vk.Viewport{
		X:        0.0,
		Y:        float32(vr.context.FramebufferHeight),
		Width:    float32(vr.context.FramebufferWidth),
		Height:   -float32(vr.context.FramebufferHeight),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}
	scissor := vk.Rect2D{
		Extent: vk.Extent2D{Width: vr.context.FramebufferWidth, Height: vr.context.FramebufferHeight},
	}
	vk.CmdSetViewport(commandBuffer.Handle, 0, 1, []vk.Viewport{viewport})
	vk.CmdSetScissor(commandBuffer.Handle, 0, 1, []vk.Rect2D{scissor})

	vr.context.MainRenderpass.W = float32(vr.context.FramebufferWidth)
	vr.context.MainRenderpass.H = float32(vr.context.FramebufferHeight)

	// Fold a leading clear into the renderpass load op.
	vr.context.MainRenderpass.ClearColor = metadata.ColorBlack
	start := 0
	if len(sequence.Commands) > 0 && sequence.Commands[0].Type == metadata.CommandTypeClear {
		first := sequence.Commands[0].Clear
		if first.Target.IsDestroyed() {
			return &core.SubmissionError{Command: 0, Cause: fmt.Errorf("clear target destroyed")}
		}
		vr.context.MainRenderpass.ClearColor = first.Color
		start = 1
	}

	vr.context.MainRenderpass.Begin(commandBuffer, vr.context.Swapchain.Framebuffers[imageIndex].Handle)

	for i := start; i < len(sequence.Commands); i++ {
		cmd := sequence.Commands[i]
		var err error
		switch cmd.Type {
		case metadata.CommandTypeClear:
			err = vr.recordClear(commandBuffer, cmd.Clear)
		case metadata.CommandTypeDraw:
			err = vr.recordDraw(commandBuffer, cmd.Draw)
		default:
			err = fmt.Errorf("unknown command type %d", cmd.Type)
		}
		if err != nil {
			vr.context.MainRenderpass.End(commandBuffer)
			commandBuffer.End()
			return &core.SubmissionError{Command: i, Cause: err}
		}
	}

	vr.context.MainRenderpass.End(commandBuffer)
	if err := commandBuffer.End(); err != nil {
		return &core.SubmissionError{Command: -1, Cause: err}
	}

	// Make sure a previous frame is not still using this image.
	if vr.context.ImagesInFlight[imageIndex] != nil {
		if err := vr.context.ImagesInFlight[imageIndex].Wait(vr.context, math.MaxUint64); err != nil {
			return &core.SubmissionError{Command: -1, Cause: err}
		}
	}
	vr.context.ImagesInFlight[imageIndex] = frameFence

	if err := frameFence.Reset(vr.context); err != nil {
		return &core.SubmissionError{Command: -1, Cause: err}
	}

	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{commandBuffer.Handle},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{vr.context.QueueCompleteSemaphores[vr.context.CurrentFrame]},
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{vr.context.ImageAvailableSemaphores[vr.context.CurrentFrame]},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
	}

	if result := vk.QueueSubmit(vr.context.Device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, frameFence.Handle); result != vk.Success {
		return &core.SubmissionError{Command: -1, Cause: fmt.Errorf("vkQueueSubmit failed with %s", VulkanResultString(result, true))}
	}
	commandBuffer.UpdateSubmitted()
	vr.frameSubmitted = true

	return nil
}

// Present hands the queued frame back to the swapchain. With no submission
// this frame there is nothing new to hand over and the previous contents
// stay on screen.
func (vr *Backend) Present() error {
	if !vr.frameSubmitted {
		return nil
	}
	vr.frameSubmitted = false

	err := vr.context.Swapchain.SwapchainPresent(
		vr.context,
		vr.context.Device.PresentQueue,
		vr.context.QueueCompleteSemaphores[vr.context.CurrentFrame],
		vr.context.ImageIndex)
	if err != nil {
		return &core.PresentationError{Cause: err}
	}
	return nil
}

func (vr *Backend) WaitIdle() error {
	result := vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)
	switch result {
	case vk.Success:
		return nil
	case vk.ErrorDeviceLost:
		return core.ErrDeviceLost
	default:
		return fmt.Errorf("vkDeviceWaitIdle failed with %s", VulkanResultString(result, true))
	}
}

func (vr *Backend) recordClear(commandBuffer *VulkanCommandBuffer, cmd *metadata.ClearCommand) error {
	if cmd.Target.IsDestroyed() {
		return fmt.Errorf("clear target destroyed")
	}
	clearAttachment := vk.ClearAttachment{
		AspectMask:      vk.ImageAspectFlags(vk.ImageAspectColorBit),
		ColorAttachment: 0,
		ClearValue:      vk.NewClearValue([]float32{cmd.Color.R, cmd.Color.G, cmd.Color.B, cmd.Color.A}),
	}
	clearRect := vk.ClearRect{
		Rect: vk.Rect2D{
			Extent: vk.Extent2D{Width: vr.context.FramebufferWidth, Height: vr.context.FramebufferHeight},
		},
		BaseArrayLayer: 0,
		LayerCount:     1,
	}
	vk.CmdClearAttachments(commandBuffer.Handle, 1, []vk.ClearAttachment{clearAttachment}, 1, []vk.ClearRect{clearRect})
	return nil
}

func (vr *Backend) recordDraw(commandBuffer *VulkanCommandBuffer, cmd *metadata.DrawCommand) error {
	slice := cmd.Slice
	if slice.VertexBuffer.IsDestroyed() {
		return fmt.Errorf("vertex buffer %s destroyed before execution", slice.VertexBuffer.ID)
	}
	if slice.IndexBuffer != nil && slice.IndexBuffer.IsDestroyed() {
		return fmt.Errorf("index buffer %s destroyed before execution", slice.IndexBuffer.ID)
	}
	if cmd.Bindings.Target.IsDestroyed() {
		return fmt.Errorf("render target destroyed before execution")
	}

	// Phrased to avoid uint32 wraparound in First+Count.
	elementCount := slice.VertexBuffer.ElementCount
	if slice.IndexBuffer != nil {
		elementCount = slice.IndexBuffer.ElementCount
	}
	if slice.First > elementCount || slice.Count > elementCount-slice.First {
		return fmt.Errorf("slice first=%d count=%d exceeds element count %d",
			slice.First, slice.Count, elementCount)
	}

	pipeline, ok := cmd.Pipeline.InternalData.(*VulkanPipeline)
	if !ok {
		return fmt.Errorf("pipeline %q was not created by this backend", cmd.Pipeline.Name)
	}
	vertexBuffer, ok := slice.VertexBuffer.InternalData.(*VulkanBuffer)
	if !ok {
		return fmt.Errorf("vertex buffer %s has no device allocation", slice.VertexBuffer.ID)
	}

	pipeline.Bind(commandBuffer, vk.PipelineBindPointGraphics)
	vk.CmdBindVertexBuffers(commandBuffer.Handle, 0, 1, []vk.Buffer{vertexBuffer.Handle}, []vk.DeviceSize{0})

	if slice.IndexBuffer != nil {
		indexBuffer, ok := slice.IndexBuffer.InternalData.(*VulkanBuffer)
		if !ok {
			return fmt.Errorf("index buffer %s has no device allocation", slice.IndexBuffer.ID)
		}
		vk.CmdBindIndexBuffer(commandBuffer.Handle, indexBuffer.Handle, 0, vk.IndexTypeUint32)
		vk.CmdDrawIndexed(commandBuffer.Handle, slice.Count, 1, slice.First, 0, 0)
	} else {
		vk.CmdDraw(commandBuffer.Handle, slice.Count, 1, slice.First, 0)
	}
	return nil
}

func (vr *Backend) createCommandBuffers() error {
	if len(vr.context.GraphicsCommandBuffers) == 0 {
		vr.context.GraphicsCommandBuffers = make([]*VulkanCommandBuffer, vr.context.Swapchain.ImageCount)
	}
	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		if vr.context.GraphicsCommandBuffers[i] != nil && vr.context.GraphicsCommandBuffers[i].Handle != nil {
			vr.context.GraphicsCommandBuffers[i].Free(vr.context, vr.context.Device.GraphicsCommandPool)
		}
		cb, err := CommandBufferAllocate(vr.context, vr.context.Device.GraphicsCommandPool, true)
		if err != nil {
			return err
		}
		vr.context.GraphicsCommandBuffers[i] = cb
	}
	core.LogDebug("Vulkan command buffers created.")
	return nil
}

func (vr *Backend) createSyncObjects() error {
	framesInFlight := int(vr.context.Swapchain.MaxFramesInFlight)
	vr.context.ImageAvailableSemaphores = make([]vk.Semaphore, framesInFlight)
	vr.context.QueueCompleteSemaphores = make([]vk.Semaphore, framesInFlight)
	vr.context.InFlightFences = make([]*VulkanFence, framesInFlight)

	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	for i := 0; i < framesInFlight; i++ {
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.ImageAvailableSemaphores[i]); res != vk.Success {
			return fmt.Errorf("failed to create image available semaphore: %s", VulkanResultString(res, true))
		}
		if res := vk.CreateSemaphore(vr.context.Device.LogicalDevice, &semaphoreCreateInfo, vr.context.Allocator, &vr.context.QueueCompleteSemaphores[i]); res != vk.Success {
			return fmt.Errorf("failed to create queue complete semaphore: %s", VulkanResultString(res, true))
		}

		// Signaled, so the first frame does not wait on work that never ran.
		f, err := FenceCreate(vr.context, true)
		if err != nil {
			return err
		}
		vr.context.InFlightFences[i] = f
	}

	vr.context.ImagesInFlight = make([]*VulkanFence, vr.context.Swapchain.ImageCount)
	return nil
}

func (vr *Backend) regenerateFramebuffers() error {
	for i := 0; i < int(vr.context.Swapchain.ImageCount); i++ {
		attachments := []vk.ImageView{vr.context.Swapchain.Views[i]}
		fb, err := FramebufferCreate(vr.context, vr.context.MainRenderpass,
			vr.context.FramebufferWidth, vr.context.FramebufferHeight, attachments)
		if err != nil {
			return err
		}
		vr.context.Swapchain.Framebuffers[i] = fb
	}
	return nil
}

func (vr *Backend) recreateSwapchain() error {
	if vr.context.RecreatingSwapchain {
		return fmt.Errorf("swapchain recreation already in progress")
	}
	if vr.cachedFramebufferWidth == 0 || vr.cachedFramebufferHeight == 0 {
		return fmt.Errorf("surface has zero area, deferring swapchain recreation")
	}
	vr.context.RecreatingSwapchain = true

	vk.DeviceWaitIdle(vr.context.Device.LogicalDevice)

	for i := range vr.context.ImagesInFlight {
		vr.context.ImagesInFlight[i] = nil
	}

	if err := DeviceQuerySwapchainSupport(vr.context.Device.PhysicalDevice, vr.context.Surface, &vr.context.Device.SwapchainSupport); err != nil {
		vr.context.RecreatingSwapchain = false
		return err
	}

	sc, err := vr.context.Swapchain.SwapchainRecreate(vr.context, vr.cachedFramebufferWidth, vr.cachedFramebufferHeight)
	if err != nil {
		vr.context.RecreatingSwapchain = false
		return err
	}
	vr.context.Swapchain = sc

	vr.context.FramebufferWidth = vr.cachedFramebufferWidth
	vr.context.FramebufferHeight = vr.cachedFramebufferHeight
	vr.context.MainRenderpass.X = 0
	vr.context.MainRenderpass.Y = 0
	vr.context.MainRenderpass.W = float32(vr.context.FramebufferWidth)
	vr.context.MainRenderpass.H = float32(vr.context.FramebufferHeight)
	vr.cachedFramebufferWidth = 0
	vr.cachedFramebufferHeight = 0
	vr.context.FramebufferSizeLastGeneration = vr.context.FramebufferSizeGeneration

	vr.context.Swapchain.Framebuffers = make([]*VulkanFramebuffer, vr.context.Swapchain.ImageCount)
	if err := vr.regenerateFramebuffers(); err != nil {
		vr.context.RecreatingSwapchain = false
		return err
	}
	if err := vr.createCommandBuffers(); err != nil {
		vr.context.RecreatingSwapchain = false
		return err
	}
	if len(vr.context.ImagesInFlight) != int(vr.context.Swapchain.ImageCount) {
		vr.context.ImagesInFlight = make([]*VulkanFence, vr.context.Swapchain.ImageCount)
	}

	if vr.presentable != nil {
		vr.presentable.Width = vr.context.FramebufferWidth
		vr.presentable.Height = vr.context.FramebufferHeight
	}

	vr.frameSubmitted = false
	vr.context.RecreatingSwapchain = false
	return nil
}

func validationLayersAvailable() bool {
	var availableLayerCount uint32
	if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, nil); res != vk.Success {
		return false
	}
	availableLayers := make([]vk.LayerProperties, availableLayerCount)
	if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, availableLayers); res != vk.Success {
		return false
	}
	for i := range availableLayers {
		availableLayers[i].Deref()
		end := FindFirstZeroInByteArray(availableLayers[i].LayerName[:])
		if vk.ToString(availableLayers[i].LayerName[:end+1]) == "VK_LAYER_KHRONOS_validation" {
			return true
		}
	}
	return false
}

func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("[%s] Code %d: %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("[%s] Code %d: %s", pLayerPrefix, messageCode, pMessage)
	default:
		core.LogInfo("[%s] Code %d: %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}

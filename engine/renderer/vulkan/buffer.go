package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// VulkanBuffer is a device buffer backed by host visible, host coherent
// memory. Geometry in this engine is uploaded once at creation, so the
// simpler single-allocation path is used instead of a staging copy.
type VulkanBuffer struct {
	Handle      vk.Buffer
	Memory      vk.DeviceMemory
	TotalSize   vk.DeviceSize
	Usage       vk.BufferUsageFlagBits
	MemoryIndex uint32
}

func BufferCreate(context *VulkanContext, size vk.DeviceSize, usage vk.BufferUsageFlagBits) (*VulkanBuffer, error) {
	outBuffer := &VulkanBuffer{
		TotalSize: size,
		Usage:     usage,
	}

	bufferInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageFlags(usage),
		SharingMode: vk.SharingModeExclusive,
	}

	var handle vk.Buffer
	if res := vk.CreateBuffer(context.Device.LogicalDevice, &bufferInfo, context.Allocator, &handle); !VulkanResultIsSuccess(res) {
		return nil, fmt.Errorf("vkCreateBuffer failed with %s", VulkanResultString(res, true))
	}
	outBuffer.Handle = handle

	var memReqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(context.Device.LogicalDevice, outBuffer.Handle, &memReqs)
	memReqs.Deref()

	memoryIndex := context.FindMemoryIndex(memReqs.MemoryTypeBits, uint32(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if memoryIndex == -1 {
		outBuffer.Destroy(context)
		return nil, fmt.Errorf("required memory type not found")
	}
	outBuffer.MemoryIndex = uint32(memoryIndex)

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memReqs.Size,
		MemoryTypeIndex: outBuffer.MemoryIndex,
	}
	var memory vk.DeviceMemory
	if res := vk.AllocateMemory(context.Device.LogicalDevice, &allocateInfo, context.Allocator, &memory); !VulkanResultIsSuccess(res) {
		outBuffer.Destroy(context)
		return nil, fmt.Errorf("vkAllocateMemory failed with %s", VulkanResultString(res, true))
	}
	outBuffer.Memory = memory

	if res := vk.BindBufferMemory(context.Device.LogicalDevice, outBuffer.Handle, outBuffer.Memory, 0); !VulkanResultIsSuccess(res) {
		outBuffer.Destroy(context)
		return nil, fmt.Errorf("vkBindBufferMemory failed with %s", VulkanResultString(res, true))
	}

	return outBuffer, nil
}

func (vb *VulkanBuffer) Destroy(context *VulkanContext) {
	if vb.Memory != vk.NullDeviceMemory {
		vk.FreeMemory(context.Device.LogicalDevice, vb.Memory, context.Allocator)
		vb.Memory = vk.NullDeviceMemory
	}
	if vb.Handle != nil {
		vk.DestroyBuffer(context.Device.LogicalDevice, vb.Handle, context.Allocator)
		vb.Handle = nil
	}
	vb.TotalSize = 0
}

// LoadData maps the buffer memory and copies the given bytes at offset.
func (vb *VulkanBuffer) LoadData(context *VulkanContext, offset vk.DeviceSize, data []byte) error {
	var pData unsafe.Pointer
	if res := vk.MapMemory(context.Device.LogicalDevice, vb.Memory, offset, vk.DeviceSize(len(data)), 0, &pData); !VulkanResultIsSuccess(res) {
		return fmt.Errorf("vkMapMemory failed with %s", VulkanResultString(res, true))
	}
	vk.Memcopy(pData, data)
	vk.UnmapMemory(context.Device.LogicalDevice, vb.Memory)
	return nil
}

func float32SliceAsBytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
}

func uint32SliceAsBytes(data []uint32) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
}

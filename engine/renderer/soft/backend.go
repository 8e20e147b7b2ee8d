// Package soft is a CPU reference backend. It rasterizes draw commands into
// in-memory RGBA surfaces and "presents" by blitting the back image to the
// front one. It is the conforming implementation used by headless runs and
// the test suite.
package soft

import (
	"fmt"
	"image"

	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

// Backend implements the renderer's ResourceFactory and Device capabilities
// without any GPU. Submitted work executes synchronously, but the pending
// counter still models the submit/wait-idle contract so client code behaves
// the same against real backends.
type Backend struct {
	width  uint32
	height uint32

	presentable *metadata.RenderTarget

	// Sequences submitted since the last WaitIdle.
	pending int
}

type softTarget struct {
	back  *image.RGBA
	front *image.RGBA
	depth []float32
}

type softPipeline struct {
	position metadata.VertexAttribute
	color    *metadata.VertexAttribute
}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	if appWidth == 0 || appHeight == 0 {
		return fmt.Errorf("soft backend: invalid surface size %dx%d", appWidth, appHeight)
	}
	b.width = appWidth
	b.height = appHeight

	target, err := b.CreateRenderTarget(appWidth, appHeight, metadata.TargetFormatColorRGBA8)
	if err != nil {
		return err
	}
	b.presentable = target

	core.LogInfo("Soft renderer initialized (%dx%d).", appWidth, appHeight)
	return nil
}

func (b *Backend) Shutdown() error {
	b.presentable = nil
	b.pending = 0
	return nil
}

// Resized reconstructs the presentable target's surfaces at the new size.
// The handle itself is reused, so holders observe the new dimensions.
func (b *Backend) Resized(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("soft backend: invalid resize to %dx%d", width, height)
	}
	b.width = width
	b.height = height
	if b.presentable != nil {
		b.presentable.Width = width
		b.presentable.Height = height
		b.presentable.InternalData = newSoftTarget(width, height, b.presentable.Format)
	}
	core.LogDebug("soft backend resized to %dx%d", width, height)
	return nil
}

func (b *Backend) PresentableTarget() *metadata.RenderTarget {
	return b.presentable
}

// WaitIdle drains pending work. Execution is synchronous here, so this only
// clears the counter.
func (b *Backend) WaitIdle() error {
	b.pending = 0
	return nil
}

// Pending reports sequences submitted since the last WaitIdle.
func (b *Backend) Pending() int { return b.pending }

func newSoftTarget(width, height uint32, format metadata.TargetFormat) *softTarget {
	t := &softTarget{}
	rect := image.Rect(0, 0, int(width), int(height))
	switch format {
	case metadata.TargetFormatDepth32:
		t.depth = make([]float32, width*height)
	default:
		t.back = image.NewRGBA(rect)
		t.front = image.NewRGBA(rect)
	}
	return t
}

// FrontImage returns the last presented contents of a soft render target.
func FrontImage(target *metadata.RenderTarget) *image.RGBA {
	if st, ok := target.InternalData.(*softTarget); ok {
		return st.front
	}
	return nil
}

// BackImage returns the in-progress contents of a soft render target.
func BackImage(target *metadata.RenderTarget) *image.RGBA {
	if st, ok := target.InternalData.(*softTarget); ok {
		return st.back
	}
	return nil
}

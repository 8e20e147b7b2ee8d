package renderer

import (
	"errors"
	"fmt"

	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/platform"
	"github.com/prismgfx/prism/engine/renderer/metadata"
	"github.com/prismgfx/prism/engine/renderer/soft"
	"github.com/prismgfx/prism/engine/renderer/vulkan"
)

// Renderer is the frontend over the selected backend. A single goroutine
// drives it; encoding and submission are strictly sequential.
type Renderer struct {
	backend     Backend
	backendType BackendType
	width       uint32
	height      uint32
}

// New selects and initializes a backend. The platform is required for
// presenting backends and ignored by the headless soft backend.
func New(backendType BackendType, p *platform.Platform, appName string, width, height uint32) (*Renderer, error) {
	var backend Backend
	switch backendType {
	case BackendTypeSoft:
		backend = soft.New()
	case BackendTypeVulkan:
		backend = vulkan.New(p)
	default:
		return nil, fmt.Errorf("backend %s is not supported on this build", backendType)
	}

	if err := backend.Initialize(appName, width, height); err != nil {
		return nil, err
	}

	return &Renderer{
		backend:     backend,
		backendType: backendType,
		width:       width,
		height:      height,
	}, nil
}

func (r *Renderer) BackendType() BackendType { return r.backendType }

// Factory exposes resource creation. The factory is the only component
// allowed to allocate backend resources.
func (r *Renderer) Factory() ResourceFactory { return r.backend }

// PresentableTarget returns the surface draw commands must bind to be seen.
func (r *Renderer) PresentableTarget() *metadata.RenderTarget {
	return r.backend.PresentableTarget()
}

// Submit executes the sequence in encoded order. On *core.SubmissionError the
// caller may Recover once and retry; any other error is fatal.
func (r *Renderer) Submit(sequence *metadata.CommandSequence) error {
	return r.backend.Submit(sequence)
}

func (r *Renderer) Present() error {
	return r.backend.Present()
}

func (r *Renderer) WaitIdle() error {
	return r.backend.WaitIdle()
}

// OnResize rebuilds presentable targets for the new dimensions. Pipelines
// stay valid because target size is not part of pipeline identity.
func (r *Renderer) OnResize(width, height uint32) error {
	r.width = width
	r.height = height
	return r.backend.Resized(width, height)
}

// Recover waits for in-flight work and rebuilds the backend's presentable
// resources at the current size. Used once after a SubmissionError before
// treating it as fatal, and after a PresentationError.
func (r *Renderer) Recover() error {
	if err := r.backend.WaitIdle(); err != nil {
		return err
	}
	return r.backend.Resized(r.width, r.height)
}

// SubmitWithRecovery submits the sequence, attempting one rebuild-and-retry
// if the backend rejects it for a recoverable reason.
func (r *Renderer) SubmitWithRecovery(sequence *metadata.CommandSequence) error {
	err := r.backend.Submit(sequence)
	if err == nil {
		return nil
	}
	var subErr *core.SubmissionError
	if !errors.As(err, &subErr) {
		return err
	}
	core.LogWarn("submission rejected, rebuilding GPU resources and retrying: %v", err)
	if rerr := r.Recover(); rerr != nil {
		return fmt.Errorf("resource rebuild after failed submission: %w", rerr)
	}
	return r.backend.Submit(sequence)
}

func (r *Renderer) Shutdown() error {
	if err := r.backend.WaitIdle(); err != nil {
		core.LogWarn("wait-idle before shutdown: %v", err)
	}
	return r.backend.Shutdown()
}

package soft

import (
	"fmt"

	xdraw "golang.org/x/image/draw"

	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

// Submit executes each command in encoded order. Later draws composite over
// earlier ones; no reordering. Destroyed resources referenced by the sequence
// are detected here and rejected rather than read.
func (b *Backend) Submit(sequence *metadata.CommandSequence) error {
	if sequence == nil {
		return &core.SubmissionError{Command: -1, Cause: fmt.Errorf("nil command sequence")}
	}

	for i, cmd := range sequence.Commands {
		var err error
		switch cmd.Type {
		case metadata.CommandTypeClear:
			err = b.executeClear(cmd.Clear)
		case metadata.CommandTypeDraw:
			err = b.executeDraw(cmd.Draw)
		default:
			err = fmt.Errorf("unknown command type %d", cmd.Type)
		}
		if err != nil {
			return &core.SubmissionError{Command: i, Cause: err}
		}
	}

	b.pending++
	return nil
}

// Present blits the presentable target's back surface to its front surface,
// the soft equivalent of a buffer swap. With no submission this frame it
// re-presents the previous contents, which is legal.
func (b *Backend) Present() error {
	if b.presentable == nil {
		return &core.PresentationError{Cause: fmt.Errorf("no presentable target")}
	}
	st, ok := b.presentable.InternalData.(*softTarget)
	if !ok || st.back == nil {
		return &core.PresentationError{Cause: fmt.Errorf("presentable target lost")}
	}
	xdraw.Copy(st.front, st.front.Rect.Min, st.back, st.back.Rect, xdraw.Src, nil)
	return nil
}

func (b *Backend) executeClear(cmd *metadata.ClearCommand) error {
	if cmd.Target.IsDestroyed() {
		return fmt.Errorf("clear target destroyed")
	}
	st, ok := cmd.Target.InternalData.(*softTarget)
	if !ok {
		return fmt.Errorf("clear target is not a soft target")
	}
	if st.back != nil {
		fillRGBA(st.back, cmd.Color)
	}
	for i := range st.depth {
		st.depth[i] = 1.0
	}
	return nil
}

func (b *Backend) executeDraw(cmd *metadata.DrawCommand) error {
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

	sp, ok := cmd.Pipeline.InternalData.(*softPipeline)
	if !ok {
		return fmt.Errorf("pipeline %q was not created by this backend", cmd.Pipeline.Name)
	}
	st, ok := cmd.Bindings.Target.InternalData.(*softTarget)
	if !ok || st.back == nil {
		return fmt.Errorf("draw target is not a soft color target")
	}

	return rasterizeSlice(st.back, sp, slice)
}

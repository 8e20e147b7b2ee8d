package renderer

import (
	"fmt"

	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

// CommandEncoder accumulates an ordered clear/draw sequence against known
// resources, independent of any backend. Validation happens here, at encode
// time, so contract violations are attributable to the exact call site and no
// backend call is ever made for a bad command.
//
// A failed encoder keeps its previously recorded commands but refuses further
// recording; Finish returns the recording error until Reset is called.
type CommandEncoder struct {
	commands []metadata.Command
	err      error
}

func NewCommandEncoder() *CommandEncoder {
	return &CommandEncoder{}
}

// Reset clears recorded commands and any recording error so the encoder can
// be reused for the next frame.
func (e *CommandEncoder) Reset() {
	e.commands = e.commands[:0]
	e.err = nil
}

// Clear appends a clear command for the given target.
func (e *CommandEncoder) Clear(target *metadata.RenderTarget, color metadata.Color) error {
	if e.err != nil {
		return e.err
	}
	if target == nil {
		return e.fail(fmt.Errorf("clear: nil render target"))
	}
	if target.IsDestroyed() {
		return e.fail(fmt.Errorf("clear: render target destroyed"))
	}
	e.commands = append(e.commands, metadata.Command{
		Type: metadata.CommandTypeClear,
		Clear: &metadata.ClearCommand{
			Target: target,
			Color:  color,
		},
	})
	return nil
}

// Draw appends a draw command. The slice's vertex layout must structurally
// match the pipeline's and the bound target's format must match the
// pipeline's declared target format; either mismatch is a
// *core.PipelineMismatchError and the encoder's prior commands stay intact.
func (e *CommandEncoder) Draw(slice *metadata.Slice, pipeline *metadata.Pipeline, bindings metadata.DrawBindings) error {
	if e.err != nil {
		return e.err
	}
	if slice == nil || slice.VertexBuffer == nil {
		return e.fail(fmt.Errorf("draw: slice has no vertex buffer"))
	}
	if pipeline == nil {
		return e.fail(fmt.Errorf("draw: nil pipeline"))
	}
	if bindings.Target == nil {
		return e.fail(fmt.Errorf("draw: no render target bound"))
	}
	if slice.VertexBuffer.Kind != metadata.BufferKindVertex {
		return e.fail(fmt.Errorf("draw: slice vertex buffer is not a vertex buffer"))
	}
	if slice.VertexBuffer.IsDestroyed() {
		return e.fail(fmt.Errorf("draw: vertex buffer destroyed"))
	}
	if slice.IndexBuffer != nil && slice.IndexBuffer.IsDestroyed() {
		return e.fail(fmt.Errorf("draw: index buffer destroyed"))
	}
	if bindings.Target.IsDestroyed() {
		return e.fail(fmt.Errorf("draw: render target destroyed"))
	}

	if !pipeline.Layout.Equal(slice.VertexBuffer.Layout) {
		return e.fail(&core.PipelineMismatchError{
			Pipeline: pipeline.Name,
			Reason: fmt.Sprintf("vertex layout %s does not match buffer layout %s",
				pipeline.Layout, slice.VertexBuffer.Layout),
		})
	}
	if pipeline.TargetFormat != bindings.Target.Format {
		return e.fail(&core.PipelineMismatchError{
			Pipeline: pipeline.Name,
			Reason: fmt.Sprintf("target format %s does not match bound target %s",
				pipeline.TargetFormat, bindings.Target.Format),
		})
	}

	// Index range re-check. Slices are validated at creation, but the encoder
	// is the last point before backend work where both ends are known.
	if err := validateSliceRange(slice); err != nil {
		return e.fail(err)
	}

	e.commands = append(e.commands, metadata.Command{
		Type: metadata.CommandTypeDraw,
		Draw: &metadata.DrawCommand{
			Slice:    slice,
			Pipeline: pipeline,
			Bindings: bindings,
		},
	})
	return nil
}

// Finish freezes the recorded sequence for submission. An encoder that failed
// during recording never yields a usable sequence.
func (e *CommandEncoder) Finish() (*metadata.CommandSequence, error) {
	if e.err != nil {
		return nil, e.err
	}
	seq := &metadata.CommandSequence{
		Commands: make([]metadata.Command, len(e.commands)),
	}
	copy(seq.Commands, e.commands)
	return seq, nil
}

// Len reports the number of commands recorded so far.
func (e *CommandEncoder) Len() int { return len(e.commands) }

// Err reports the recording error, if any.
func (e *CommandEncoder) Err() error { return e.err }

func (e *CommandEncoder) fail(err error) error {
	e.err = err
	return err
}

func validateSliceRange(slice *metadata.Slice) error {
	vcount := slice.VertexBuffer.ElementCount
	if slice.IndexBuffer == nil {
		// Phrased to avoid uint32 wraparound in First+Count.
		if slice.First > vcount || slice.Count > vcount-slice.First {
			return fmt.Errorf("draw: slice first=%d count=%d exceeds vertex count %d",
				slice.First, slice.Count, vcount)
		}
		return nil
	}
	indices := slice.IndexBuffer.IndexData
	icount := uint32(len(indices))
	if slice.First > icount || slice.Count > icount-slice.First {
		return fmt.Errorf("draw: slice first=%d count=%d exceeds index count %d",
			slice.First, slice.Count, icount)
	}
	for _, idx := range indices[slice.First : slice.First+slice.Count] {
		if idx >= vcount {
			return fmt.Errorf("draw: index %d out of range for vertex count %d", idx, vcount)
		}
	}
	return nil
}

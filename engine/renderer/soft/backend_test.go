package soft

import (
	"errors"
	"image/color"
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

const testSize = 64

var (
	quadVertices = []float32{
		0.5, -0.5,
		-0.5, -0.5,
		-0.5, 0.5,
		0.5, 0.5,
	}
	quadIndices = []uint32{0, 1, 2, 2, 3, 0}
)

func newBackend(t *testing.T) *Backend {
	t.Helper()
	b := New()
	require.NoError(t, b.Initialize("soft-test", testSize, testSize))
	return b
}

func quadLayout(t *testing.T) *metadata.VertexLayout {
	t.Helper()
	layout, err := metadata.NewVertexLayout(
		metadata.VertexAttribute{Name: "position", Format: metadata.AttributeFormatFloat32x2},
	)
	require.NoError(t, err)
	return layout
}

func quadPipeline(t *testing.T, b *Backend, layout *metadata.VertexLayout) *metadata.Pipeline {
	t.Helper()
	pipeline, err := b.CreatePipeline(&metadata.PipelineConfig{
		Name:           "soft.quad",
		VertexShader:   []byte("vert"),
		FragmentShader: []byte("frag"),
		Layout:         layout,
		TargetFormat:   metadata.TargetFormatColorRGBA8,
	})
	require.NoError(t, err)
	return pipeline
}

func submitQuad(t *testing.T, b *Backend, slice *metadata.Slice, pipeline *metadata.Pipeline) {
	t.Helper()
	target := b.PresentableTarget()
	seq := &metadata.CommandSequence{Commands: []metadata.Command{
		{Type: metadata.CommandTypeClear, Clear: &metadata.ClearCommand{Target: target, Color: metadata.ColorBlack}},
		{Type: metadata.CommandTypeDraw, Draw: &metadata.DrawCommand{
			Slice:    slice,
			Pipeline: pipeline,
			Bindings: metadata.DrawBindings{Target: target},
		}},
	}}
	require.NoError(t, b.Submit(seq))
	require.NoError(t, b.Present())
}

// An indexed quad over a black clear fills the center of the target and
// leaves the border untouched.
func TestIndexedQuadFillsCenter(t *testing.T) {
	b := newBackend(t)
	layout := quadLayout(t)

	vb, err := b.CreateVertexBuffer(quadVertices, layout)
	require.NoError(t, err)
	slice, err := b.CreateIndexedSlice(vb, quadIndices)
	require.NoError(t, err)
	pipeline := quadPipeline(t, b, layout)

	submitQuad(t, b, slice, pipeline)

	front := FrontImage(b.PresentableTarget())
	require.NotNil(t, front)

	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}

	// Quad spans [-0.5, 0.5] in clip space, i.e. pixels [16, 48) at 64x64.
	assert.Equal(t, white, front.RGBAAt(32, 32), "center")
	assert.Equal(t, white, front.RGBAAt(17, 17), "inside top-left")
	assert.Equal(t, white, front.RGBAAt(46, 46), "inside bottom-right")
	assert.Equal(t, black, front.RGBAAt(1, 1), "corner")
	assert.Equal(t, black, front.RGBAAt(8, 32), "left of quad")
	assert.Equal(t, black, front.RGBAAt(32, 8), "above quad")
}

// The same quad drawn indexed and drawn with expanded vertices produces
// identical images.
func TestIndexedMatchesExpanded(t *testing.T) {
	layout := quadLayout(t)

	indexed := newBackend(t)
	vb, err := indexed.CreateVertexBuffer(quadVertices, layout)
	require.NoError(t, err)
	slice, err := indexed.CreateIndexedSlice(vb, quadIndices)
	require.NoError(t, err)
	submitQuad(t, indexed, slice, quadPipeline(t, indexed, layout))

	expanded := newBackend(t)
	var expandedVertices []float32
	for _, idx := range quadIndices {
		expandedVertices = append(expandedVertices, quadVertices[idx*2], quadVertices[idx*2+1])
	}
	evb, err := expanded.CreateVertexBuffer(expandedVertices, layout)
	require.NoError(t, err)
	eslice := &metadata.Slice{VertexBuffer: evb, First: 0, Count: 6}
	submitQuad(t, expanded, eslice, quadPipeline(t, expanded, layout))

	a := FrontImage(indexed.PresentableTarget())
	c := FrontImage(expanded.PresentableTarget())
	assert.Equal(t, a.Pix, c.Pix)
}

// Per-vertex colors are interpolated across the triangle.
func TestColorInterpolation(t *testing.T) {
	b := newBackend(t)
	layout, err := metadata.NewVertexLayout(
		metadata.VertexAttribute{Name: "position", Format: metadata.AttributeFormatFloat32x2},
		metadata.VertexAttribute{Name: "color", Format: metadata.AttributeFormatFloat32x3},
	)
	require.NoError(t, err)

	// A red fullscreen-ish triangle: every covered pixel blends the three
	// vertex colors, all red here, so coverage is exactly red.
	vb, err := b.CreateVertexBuffer([]float32{
		0.0, 0.9, 1, 0, 0,
		-0.9, -0.9, 1, 0, 0,
		0.9, -0.9, 1, 0, 0,
	}, layout)
	require.NoError(t, err)

	pipeline := quadPipeline(t, b, layout)
	slice := &metadata.Slice{VertexBuffer: vb, First: 0, Count: 3}
	submitQuad(t, b, slice, pipeline)

	front := FrontImage(b.PresentableTarget())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, front.RGBAAt(32, 40))
}

// Clearing twice with the same color is idempotent, and a repeated
// clear+draw+present cycle reproduces the same image.
func TestRepeatFrameIsStable(t *testing.T) {
	b := newBackend(t)
	layout := quadLayout(t)
	vb, err := b.CreateVertexBuffer(quadVertices, layout)
	require.NoError(t, err)
	slice, err := b.CreateIndexedSlice(vb, quadIndices)
	require.NoError(t, err)
	pipeline := quadPipeline(t, b, layout)

	submitQuad(t, b, slice, pipeline)
	first := make([]uint8, len(FrontImage(b.PresentableTarget()).Pix))
	copy(first, FrontImage(b.PresentableTarget()).Pix)

	submitQuad(t, b, slice, pipeline)
	assert.Equal(t, first, FrontImage(b.PresentableTarget()).Pix)
}

// Clearing twice with the same color in one sequence is pixel-identical to
// clearing once.
func TestDoubleClearEqualsSingleClear(t *testing.T) {
	clearSeq := func(target *metadata.RenderTarget, n int) *metadata.CommandSequence {
		seq := &metadata.CommandSequence{}
		for i := 0; i < n; i++ {
			seq.Commands = append(seq.Commands, metadata.Command{
				Type:  metadata.CommandTypeClear,
				Clear: &metadata.ClearCommand{Target: target, Color: metadata.ColorWhite},
			})
		}
		return seq
	}

	single := newBackend(t)
	require.NoError(t, single.Submit(clearSeq(single.PresentableTarget(), 1)))
	require.NoError(t, single.Present())

	double := newBackend(t)
	require.NoError(t, double.Submit(clearSeq(double.PresentableTarget(), 2)))
	require.NoError(t, double.Present())

	assert.Equal(t,
		FrontImage(single.PresentableTarget()).Pix,
		FrontImage(double.PresentableTarget()).Pix)
}

// Present with no submission re-presents, it does not fail.
func TestPresentWithoutSubmit(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Present())
}

// A buffer destroyed between encoding and submission is detected at
// submission and reported with the failing command's index.
func TestDestroyedBufferRejectedAtSubmit(t *testing.T) {
	b := newBackend(t)
	layout := quadLayout(t)
	vb, err := b.CreateVertexBuffer(quadVertices, layout)
	require.NoError(t, err)
	slice, err := b.CreateIndexedSlice(vb, quadIndices)
	require.NoError(t, err)
	pipeline := quadPipeline(t, b, layout)
	target := b.PresentableTarget()

	seq := &metadata.CommandSequence{Commands: []metadata.Command{
		{Type: metadata.CommandTypeClear, Clear: &metadata.ClearCommand{Target: target, Color: metadata.ColorBlack}},
		{Type: metadata.CommandTypeDraw, Draw: &metadata.DrawCommand{
			Slice:    slice,
			Pipeline: pipeline,
			Bindings: metadata.DrawBindings{Target: target},
		}},
	}}

	b.DestroyBuffer(vb)

	err = b.Submit(seq)
	require.Error(t, err)

	var subErr *core.SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, 1, subErr.Command)

	// The rejected draw left no pixels behind; only the preceding clear ran.
	back := BackImage(target)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, back.RGBAAt(32, 32))
}

// Sequences built without the encoder still get range-checked at submission;
// a First near MaxUint32 must fail cleanly instead of wrapping the bounds
// arithmetic and reading out of range.
func TestSubmitRejectsWrappingSliceRange(t *testing.T) {
	b := newBackend(t)
	layout := quadLayout(t)
	vb, err := b.CreateVertexBuffer(quadVertices, layout)
	require.NoError(t, err)
	pipeline := quadPipeline(t, b, layout)
	target := b.PresentableTarget()

	wrapped := &metadata.Slice{VertexBuffer: vb, First: gomath.MaxUint32 - 1, Count: 3}
	seq := &metadata.CommandSequence{Commands: []metadata.Command{
		{Type: metadata.CommandTypeDraw, Draw: &metadata.DrawCommand{
			Slice:    wrapped,
			Pipeline: pipeline,
			Bindings: metadata.DrawBindings{Target: target},
		}},
	}}

	err = b.Submit(seq)
	require.Error(t, err)

	var subErr *core.SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, 0, subErr.Command)
}

// Resizing rebuilds the presentable surfaces while keeping the handle, and
// existing pipelines keep working at the new size.
func TestResizeKeepsPipelinesUsable(t *testing.T) {
	b := newBackend(t)
	layout := quadLayout(t)
	vb, err := b.CreateVertexBuffer(quadVertices, layout)
	require.NoError(t, err)
	slice, err := b.CreateIndexedSlice(vb, quadIndices)
	require.NoError(t, err)
	pipeline := quadPipeline(t, b, layout)

	target := b.PresentableTarget()
	require.NoError(t, b.Resized(32, 32))

	assert.Same(t, target, b.PresentableTarget(), "handle survives resize")
	assert.Equal(t, uint32(32), target.Width)
	assert.Equal(t, uint32(32), target.Height)

	submitQuad(t, b, slice, pipeline)

	front := FrontImage(target)
	require.NotNil(t, front)
	assert.Equal(t, 32, front.Rect.Dx())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, front.RGBAAt(16, 16))
}

func TestWaitIdleDrainsPending(t *testing.T) {
	b := newBackend(t)
	target := b.PresentableTarget()

	seq := &metadata.CommandSequence{Commands: []metadata.Command{
		{Type: metadata.CommandTypeClear, Clear: &metadata.ClearCommand{Target: target, Color: metadata.ColorWhite}},
	}}
	require.NoError(t, b.Submit(seq))
	require.NoError(t, b.Submit(seq))
	assert.Equal(t, 2, b.Pending())

	require.NoError(t, b.WaitIdle())
	assert.Equal(t, 0, b.Pending())
}

func TestFactoryRejectsBadInput(t *testing.T) {
	b := newBackend(t)
	layout := quadLayout(t)

	var creationErr *core.ResourceCreationError

	_, err := b.CreateVertexBuffer([]float32{1, 2, 3}, layout)
	require.Error(t, err, "data not a multiple of stride")
	assert.True(t, errors.As(err, &creationErr))

	_, err = b.CreateVertexBuffer(nil, layout)
	require.Error(t, err)

	vb, err := b.CreateVertexBuffer(quadVertices, layout)
	require.NoError(t, err)

	_, err = b.CreateIndexedSlice(vb, []uint32{0, 1, 4})
	require.Error(t, err, "index out of range")
	assert.True(t, errors.As(err, &creationErr))

	_, err = b.CreatePipeline(&metadata.PipelineConfig{
		Name:           "empty.shader",
		VertexShader:   []byte("  "),
		FragmentShader: []byte("frag"),
		Layout:         layout,
		TargetFormat:   metadata.TargetFormatColorRGBA8,
	})
	require.Error(t, err, "blank shader stage")

	colorOnly, err := metadata.NewVertexLayout(
		metadata.VertexAttribute{Name: "color", Format: metadata.AttributeFormatFloat32x3},
	)
	require.NoError(t, err)
	_, err = b.CreatePipeline(&metadata.PipelineConfig{
		Name:           "no.position",
		VertexShader:   []byte("vert"),
		FragmentShader: []byte("frag"),
		Layout:         colorOnly,
		TargetFormat:   metadata.TargetFormatColorRGBA8,
	})
	require.Error(t, err, "layout without position")
}

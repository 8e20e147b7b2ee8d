package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/renderer/metadata"
	"github.com/prismgfx/prism/engine/renderer/soft"
)

func newTestBackend(t *testing.T) *soft.Backend {
	t.Helper()
	b := soft.New()
	require.NoError(t, b.Initialize("encoder-test", 16, 16))
	return b
}

func positionLayout(t *testing.T) *metadata.VertexLayout {
	t.Helper()
	layout, err := metadata.NewVertexLayout(
		metadata.VertexAttribute{Name: "position", Format: metadata.AttributeFormatFloat32x2},
	)
	require.NoError(t, err)
	return layout
}

func testTriangle(t *testing.T, b *soft.Backend) (*metadata.Slice, *metadata.Pipeline) {
	t.Helper()
	layout := positionLayout(t)

	vb, err := b.CreateVertexBuffer([]float32{
		0.0, 0.5,
		-0.5, -0.5,
		0.5, -0.5,
	}, layout)
	require.NoError(t, err)

	pipeline, err := b.CreatePipeline(&metadata.PipelineConfig{
		Name:           "test.tri",
		VertexShader:   []byte("vert"),
		FragmentShader: []byte("frag"),
		Layout:         layout,
		TargetFormat:   metadata.TargetFormatColorRGBA8,
	})
	require.NoError(t, err)

	return &metadata.Slice{VertexBuffer: vb, First: 0, Count: 3}, pipeline
}

func TestEncoderRecordsInOrder(t *testing.T) {
	b := newTestBackend(t)
	target := b.PresentableTarget()
	slice, pipeline := testTriangle(t, b)

	enc := NewCommandEncoder()
	require.NoError(t, enc.Clear(target, metadata.ColorBlack))
	require.NoError(t, enc.Draw(slice, pipeline, metadata.DrawBindings{Target: target}))
	require.NoError(t, enc.Clear(target, metadata.ColorWhite))

	seq, err := enc.Finish()
	require.NoError(t, err)
	require.Equal(t, 3, seq.Len())
	assert.Equal(t, metadata.CommandTypeClear, seq.Commands[0].Type)
	assert.Equal(t, metadata.CommandTypeDraw, seq.Commands[1].Type)
	assert.Equal(t, metadata.CommandTypeClear, seq.Commands[2].Type)
}

func TestEncoderLayoutMismatchFailsFast(t *testing.T) {
	b := newTestBackend(t)
	target := b.PresentableTarget()
	_, pipeline := testTriangle(t, b)

	otherLayout, err := metadata.NewVertexLayout(
		metadata.VertexAttribute{Name: "position", Format: metadata.AttributeFormatFloat32x2},
		metadata.VertexAttribute{Name: "color", Format: metadata.AttributeFormatFloat32x3},
	)
	require.NoError(t, err)
	vb, err := b.CreateVertexBuffer([]float32{
		0.0, 0.5, 1, 0, 0,
		-0.5, -0.5, 0, 1, 0,
		0.5, -0.5, 0, 0, 1,
	}, otherLayout)
	require.NoError(t, err)

	enc := NewCommandEncoder()
	require.NoError(t, enc.Clear(target, metadata.ColorBlack))

	err = enc.Draw(&metadata.Slice{VertexBuffer: vb, Count: 3}, pipeline, metadata.DrawBindings{Target: target})
	require.Error(t, err)

	var mismatch *core.PipelineMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "test.tri", mismatch.Pipeline)

	// Prior commands stay intact, but the encoder refuses to finish.
	assert.Equal(t, 1, enc.Len())
	_, err = enc.Finish()
	require.Error(t, err)
	assert.True(t, errors.As(err, &mismatch))
}

func TestEncoderTargetFormatMismatch(t *testing.T) {
	b := newTestBackend(t)
	slice, pipeline := testTriangle(t, b)

	depthTarget, err := b.CreateRenderTarget(16, 16, metadata.TargetFormatDepth32)
	require.NoError(t, err)

	enc := NewCommandEncoder()
	err = enc.Draw(slice, pipeline, metadata.DrawBindings{Target: depthTarget})
	require.Error(t, err)

	var mismatch *core.PipelineMismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestEncoderResetClearsFailure(t *testing.T) {
	b := newTestBackend(t)
	target := b.PresentableTarget()
	slice, pipeline := testTriangle(t, b)

	enc := NewCommandEncoder()
	require.Error(t, enc.Draw(nil, pipeline, metadata.DrawBindings{Target: target}))
	require.Error(t, enc.Err())

	enc.Reset()
	require.NoError(t, enc.Err())
	require.NoError(t, enc.Draw(slice, pipeline, metadata.DrawBindings{Target: target}))

	seq, err := enc.Finish()
	require.NoError(t, err)
	assert.Equal(t, 1, seq.Len())
}

func TestEncoderRejectsOutOfRangeSlice(t *testing.T) {
	b := newTestBackend(t)
	target := b.PresentableTarget()
	slice, pipeline := testTriangle(t, b)

	bad := &metadata.Slice{
		VertexBuffer: slice.VertexBuffer,
		First:        1,
		Count:        3,
	}

	enc := NewCommandEncoder()
	err := enc.Draw(bad, pipeline, metadata.DrawBindings{Target: target})
	require.Error(t, err)
}

// Slice ranges near MaxUint32 must not wrap around the bounds check.
func TestEncoderRejectsWrappingSliceRange(t *testing.T) {
	b := newTestBackend(t)
	target := b.PresentableTarget()
	slice, pipeline := testTriangle(t, b)

	wrapped := &metadata.Slice{
		VertexBuffer: slice.VertexBuffer,
		First:        math.MaxUint32 - 1,
		Count:        3,
	}
	enc := NewCommandEncoder()
	require.Error(t, enc.Draw(wrapped, pipeline, metadata.DrawBindings{Target: target}))

	indexed, err := b.CreateIndexedSlice(slice.VertexBuffer, []uint32{0, 1, 2})
	require.NoError(t, err)
	indexed.First = math.MaxUint32 - 1

	enc.Reset()
	require.Error(t, enc.Draw(indexed, pipeline, metadata.DrawBindings{Target: target}))
}

func TestEncoderRejectsDestroyedResources(t *testing.T) {
	b := newTestBackend(t)
	target := b.PresentableTarget()
	slice, pipeline := testTriangle(t, b)

	b.DestroyBuffer(slice.VertexBuffer)

	enc := NewCommandEncoder()
	err := enc.Draw(slice, pipeline, metadata.DrawBindings{Target: target})
	require.Error(t, err)
}

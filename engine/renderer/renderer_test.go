package renderer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

// flakyBackend rejects the first N submissions, recording recovery calls.
type flakyBackend struct {
	rejections int
	submits    int
	waitIdles  int
	resizes    int
}

func (f *flakyBackend) Initialize(appName string, appWidth, appHeight uint32) error { return nil }

func (f *flakyBackend) Shutdown() error { return nil }

func (f *flakyBackend) Resized(width, height uint32) error {
	f.resizes++
	return nil
}

func (f *flakyBackend) PresentableTarget() *metadata.RenderTarget { return nil }

func (f *flakyBackend) Submit(sequence *metadata.CommandSequence) error {
	f.submits++
	if f.rejections > 0 {
		f.rejections--
		return &core.SubmissionError{Command: 0, Cause: fmt.Errorf("stale resources")}
	}
	return nil
}

func (f *flakyBackend) Present() error { return nil }

func (f *flakyBackend) WaitIdle() error {
	f.waitIdles++
	return nil
}

func (f *flakyBackend) CreateVertexBuffer(data []float32, layout *metadata.VertexLayout) (*metadata.Buffer, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *flakyBackend) CreateIndexBuffer(indices []uint32) (*metadata.Buffer, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *flakyBackend) CreateIndexedSlice(vertexBuffer *metadata.Buffer, indices []uint32) (*metadata.Slice, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *flakyBackend) CreatePipeline(config *metadata.PipelineConfig) (*metadata.Pipeline, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *flakyBackend) CreateRenderTarget(width, height uint32, format metadata.TargetFormat) (*metadata.RenderTarget, error) {
	return nil, fmt.Errorf("not implemented")
}
func (f *flakyBackend) DestroyBuffer(buffer *metadata.Buffer) {}

func (f *flakyBackend) DestroyPipeline(pipeline *metadata.Pipeline) {}

func (f *flakyBackend) DestroyRenderTarget(target *metadata.RenderTarget) {}

func TestSubmitWithRecoveryRetriesOnce(t *testing.T) {
	backend := &flakyBackend{rejections: 1}
	r := &Renderer{backend: backend, width: 16, height: 16}

	require.NoError(t, r.SubmitWithRecovery(&metadata.CommandSequence{}))
	assert.Equal(t, 2, backend.submits, "one rejection, one retry")
	assert.Equal(t, 1, backend.waitIdles, "recovery drains in-flight work")
	assert.Equal(t, 1, backend.resizes, "recovery rebuilds presentable resources")
}

func TestSubmitWithRecoveryGivesUpAfterRetry(t *testing.T) {
	backend := &flakyBackend{rejections: 2}
	r := &Renderer{backend: backend, width: 16, height: 16}

	err := r.SubmitWithRecovery(&metadata.CommandSequence{})
	require.Error(t, err)
	assert.Equal(t, 2, backend.submits, "exactly one retry, then fatal")
}

func TestParseBackendType(t *testing.T) {
	bt, ok := ParseBackendType("soft")
	require.True(t, ok)
	assert.Equal(t, BackendTypeSoft, bt)

	bt, ok = ParseBackendType("vulkan")
	require.True(t, ok)
	assert.Equal(t, BackendTypeVulkan, bt)

	_, ok = ParseBackendType("d3d9")
	assert.False(t, ok)
}

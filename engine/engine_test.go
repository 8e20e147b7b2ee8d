package engine

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismgfx/prism/engine/config"
	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/renderer"
	"github.com/prismgfx/prism/engine/renderer/metadata"
	"github.com/prismgfx/prism/engine/renderer/soft"
)

type quadState struct {
	slice    *metadata.Slice
	pipeline *metadata.Pipeline
}

func headlessConfig(t *testing.T) *config.ApplicationConfig {
	t.Helper()
	cfg := config.Default()
	cfg.Name = "engine-test"
	cfg.Backend = "soft"
	cfg.Headless = true
	cfg.StartWidth = 64
	cfg.StartHeight = 64
	cfg.LogLevel = core.ErrorLevel
	cfg.ShaderDir = t.TempDir()
	return cfg
}

// newQuadGame builds a headless game that clears to black and draws a
// centered quad each frame.
func newQuadGame(t *testing.T) *Game {
	t.Helper()
	g := &Game{ApplicationConfig: headlessConfig(t)}

	g.FnInitialize = func(g *Game) error {
		factory := g.Renderer.Factory()
		layout, err := metadata.NewVertexLayout(
			metadata.VertexAttribute{Name: "position", Format: metadata.AttributeFormatFloat32x2},
		)
		if err != nil {
			return err
		}
		vb, err := factory.CreateVertexBuffer([]float32{
			0.5, -0.5,
			-0.5, -0.5,
			-0.5, 0.5,
			0.5, 0.5,
		}, layout)
		if err != nil {
			return err
		}
		slice, err := factory.CreateIndexedSlice(vb, []uint32{0, 1, 2, 2, 3, 0})
		if err != nil {
			return err
		}
		pipeline, err := factory.CreatePipeline(&metadata.PipelineConfig{
			Name:           "engine-test.quad",
			VertexShader:   []byte("vert"),
			FragmentShader: []byte("frag"),
			Layout:         layout,
			TargetFormat:   metadata.TargetFormatColorRGBA8,
		})
		if err != nil {
			return err
		}
		g.State = &quadState{slice: slice, pipeline: pipeline}
		return nil
	}

	g.FnRecord = func(g *Game, encoder *renderer.CommandEncoder, target *metadata.RenderTarget, deltaTime float64) error {
		st := g.State.(*quadState)
		if err := encoder.Clear(target, metadata.ColorBlack); err != nil {
			return err
		}
		return encoder.Draw(st.slice, st.pipeline, metadata.DrawBindings{Target: target})
	}

	return g
}

func newRunningEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(newQuadGame(t))
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { e.Shutdown() })
	return e
}

func TestHeadlessFrameRendersQuad(t *testing.T) {
	e := newRunningEngine(t)

	require.NoError(t, e.RunFrame(0.016))
	assert.Equal(t, LoopStateRunning, e.State())

	front := soft.FrontImage(e.Renderer().PresentableTarget())
	require.NotNil(t, front)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, front.RGBAAt(32, 32))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, front.RGBAAt(2, 2))
}

func TestResizeEventRebuildsAndResumes(t *testing.T) {
	e := newRunningEngine(t)
	require.NoError(t, e.RunFrame(0.016))

	target := e.Renderer().PresentableTarget()
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{WindowWidth: 32, WindowHeight: 32},
	})
	assert.Equal(t, LoopStateResizing, e.State())

	// One iteration applies the resize, the next renders at the new size.
	require.NoError(t, e.RunFrame(0.016))
	assert.Equal(t, LoopStateRunning, e.State())

	w, h := e.GetFramebufferSize()
	assert.Equal(t, uint32(32), w)
	assert.Equal(t, uint32(32), h)
	assert.Same(t, target, e.Renderer().PresentableTarget(), "presentable handle survives resize")

	require.NoError(t, e.RunFrame(0.016))
	front := soft.FrontImage(target)
	assert.Equal(t, 32, front.Rect.Dx())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, front.RGBAAt(16, 16))
}

func TestZeroSizeResizeSuspendsFrameProduction(t *testing.T) {
	e := newRunningEngine(t)

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{WindowWidth: 0, WindowHeight: 0},
	})
	require.Equal(t, LoopStateResizing, e.State())

	// A minimized surface keeps the loop parked in the resizing state.
	require.NoError(t, e.RunFrame(0.016))
	assert.Equal(t, LoopStateResizing, e.State())

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{WindowWidth: 48, WindowHeight: 48},
	})
	require.NoError(t, e.RunFrame(0.016))
	assert.Equal(t, LoopStateRunning, e.State())

	w, h := e.GetFramebufferSize()
	assert.Equal(t, uint32(48), w)
	assert.Equal(t, uint32(48), h)
}

// The full Run loop must work headless: no platform means no GLFW, so frame
// timing cannot touch the platform clock.
func TestHeadlessRunLoop(t *testing.T) {
	e := newRunningEngine(t)

	frames := 0
	e.gameInstance.FnUpdate = func(g *Game, deltaTime float64) error {
		frames++
		if frames >= 3 {
			e.Stop()
		}
		return nil
	}

	require.NoError(t, e.Run())
	assert.Equal(t, LoopStateExiting, e.State())
	assert.Equal(t, 3, frames)

	front := soft.FrontImage(e.Renderer().PresentableTarget())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, front.RGBAAt(32, 32))
}

func TestQuitEventStopsTheLoop(t *testing.T) {
	e := newRunningEngine(t)

	core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	assert.Equal(t, LoopStateExiting, e.State())

	// An exiting loop refuses further frames without error.
	require.NoError(t, e.RunFrame(0.016))
	assert.Equal(t, LoopStateExiting, e.State())
}

func TestEscapeKeyRequestsQuit(t *testing.T) {
	e := newRunningEngine(t)

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_KEY_PRESSED,
		Data: &core.KeyEvent{KeyCode: core.KEY_ESCAPE},
	})
	assert.Equal(t, LoopStateExiting, e.State())
}

func TestStopIsIdempotent(t *testing.T) {
	e := newRunningEngine(t)
	e.Stop()
	e.Stop()
	assert.Equal(t, LoopStateExiting, e.State())
}

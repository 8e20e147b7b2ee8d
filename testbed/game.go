package testbed

import (
	"os"
	"path/filepath"

	"github.com/prismgfx/prism/engine"
	"github.com/prismgfx/prism/engine/config"
	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/renderer"
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

// Quad geometry in clip space, drawn as two indexed triangles. Positions are
// interleaved with per-vertex colors.
var (
	quadVertices = []float32{
		// x, y, r, g, b
		0.5, -0.5, 1.0, 0.0, 0.0,
		-0.5, -0.5, 0.0, 1.0, 0.0,
		-0.5, 0.5, 0.0, 0.0, 1.0,
		0.5, 0.5, 1.0, 1.0, 1.0,
	}
	quadIndices = []uint32{0, 1, 2, 2, 3, 0}
)

type gameState struct {
	vertexBuffer *metadata.Buffer
	slice        *metadata.Slice
	pipeline     *metadata.Pipeline
	clearColor   metadata.Color

	elapsed float64
}

type TestGame struct {
	*engine.Game
}

func NewTestGame() (*TestGame, error) {
	cfg, err := config.Load("prism.toml")
	if err != nil {
		return nil, err
	}

	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: cfg,
			State: &gameState{
				clearColor: metadata.ColorBlack,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRecord = tg.Record
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (tg *TestGame) Initialize(g *engine.Game) error {
	state := g.State.(*gameState)
	factory := g.Renderer.Factory()

	layout, err := metadata.NewVertexLayout(
		metadata.VertexAttribute{Name: "position", Format: metadata.AttributeFormatFloat32x2},
		metadata.VertexAttribute{Name: "color", Format: metadata.AttributeFormatFloat32x3},
	)
	if err != nil {
		return err
	}

	vb, err := factory.CreateVertexBuffer(quadVertices, layout)
	if err != nil {
		return err
	}
	state.vertexBuffer = vb

	slice, err := factory.CreateIndexedSlice(vb, quadIndices)
	if err != nil {
		return err
	}
	state.slice = slice

	vert, frag, err := loadShaderPair(g)
	if err != nil {
		return err
	}

	pipeline, err := factory.CreatePipeline(&metadata.PipelineConfig{
		Name:           "testbed.quad",
		VertexShader:   vert,
		FragmentShader: frag,
		Layout:         layout,
		TargetFormat:   metadata.TargetFormatColorRGBA8,
	})
	if err != nil {
		return err
	}
	state.pipeline = pipeline

	core.LogInfo("Testbed initialized: quad pipeline ready.")
	return nil
}

func (tg *TestGame) Update(g *engine.Game, deltaTime float64) error {
	state := g.State.(*gameState)
	state.elapsed += deltaTime
	return nil
}

func (tg *TestGame) Record(g *engine.Game, encoder *renderer.CommandEncoder, target *metadata.RenderTarget, deltaTime float64) error {
	state := g.State.(*gameState)

	if err := encoder.Clear(target, state.clearColor); err != nil {
		return err
	}
	return encoder.Draw(state.slice, state.pipeline, metadata.DrawBindings{Target: target})
}

func (tg *TestGame) OnResize(g *engine.Game, width, height uint32) error {
	core.LogInfo("Testbed resized to %dx%d.", width, height)
	return nil
}

func (tg *TestGame) Shutdown(g *engine.Game) error {
	state := g.State.(*gameState)
	factory := g.Renderer.Factory()

	// In-flight work is drained by the renderer before backend teardown.
	if state.pipeline != nil {
		factory.DestroyPipeline(state.pipeline)
	}
	if state.slice != nil && state.slice.IndexBuffer != nil {
		factory.DestroyBuffer(state.slice.IndexBuffer)
	}
	if state.vertexBuffer != nil {
		factory.DestroyBuffer(state.vertexBuffer)
	}
	return nil
}

// loadShaderPair reads the quad's stage sources. The vulkan backend wants the
// precompiled SPIR-V next to the GLSL; the soft backend takes the GLSL text
// as-is.
func loadShaderPair(g *engine.Game) (vert, frag []byte, err error) {
	dir := g.ApplicationConfig.ShaderDir
	if g.ApplicationConfig.Backend == "vulkan" {
		vert, err = os.ReadFile(filepath.Join(dir, "quad.vert.spv"))
		if err != nil {
			return nil, nil, err
		}
		frag, err = os.ReadFile(filepath.Join(dir, "quad.frag.spv"))
		if err != nil {
			return nil, nil, err
		}
		return vert, frag, nil
	}

	vert, err = os.ReadFile(filepath.Join(dir, "quad.vert"))
	if err != nil {
		return nil, nil, err
	}
	frag, err = os.ReadFile(filepath.Join(dir, "quad.frag"))
	if err != nil {
		return nil, nil, err
	}
	return vert, frag, nil
}

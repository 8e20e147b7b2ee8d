package engine

import (
	"github.com/prismgfx/prism/engine/config"
	"github.com/prismgfx/prism/engine/renderer"
	"github.com/prismgfx/prism/engine/renderer/metadata"
)

// Game is the application-side contract. The engine owns the frame loop and
// the renderer; the game records what each frame should draw. The Renderer
// field is populated during engine initialization, before FnInitialize runs.
type Game struct {
	ApplicationConfig *config.ApplicationConfig
	Renderer          *renderer.Renderer
	State             interface{}

	FnInitialize Initialize
	FnUpdate     Update
	FnRecord     Record
	FnOnResize   OnResize
	FnShutdown   Shutdown
}

type Initialize func(g *Game) error
type Update func(g *Game, deltaTime float64) error

// Record encodes one frame of clear/draw commands against the presentable
// target. The encoder arrives reset; the engine finishes and submits it.
type Record func(g *Game, encoder *renderer.CommandEncoder, target *metadata.RenderTarget, deltaTime float64) error

type OnResize func(g *Game, width uint32, height uint32) error
type Shutdown func(g *Game) error

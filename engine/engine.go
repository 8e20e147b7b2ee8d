package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/prismgfx/prism/engine/assets"
	"github.com/prismgfx/prism/engine/core"
	"github.com/prismgfx/prism/engine/platform"
	"github.com/prismgfx/prism/engine/renderer"
)

// LoopState is the frame loop's current mode.
type LoopState uint8

const (
	// LoopStateRunning encodes, submits and presents a frame per iteration.
	LoopStateRunning LoopState = iota
	// LoopStateResizing pauses frame production until the presentable
	// surface has been rebuilt at its new size.
	LoopStateResizing
	// LoopStateExiting drains in-flight GPU work and tears down.
	LoopStateExiting
)

func (s LoopState) String() string {
	switch s {
	case LoopStateRunning:
		return "running"
	case LoopStateResizing:
		return "resizing"
	case LoopStateExiting:
		return "exiting"
	}
	return "unknown"
}

type Engine struct {
	state        LoopState
	gameInstance *Game
	platform     *platform.Platform
	assetManager *assets.Manager
	renderer     *renderer.Renderer
	encoder      *renderer.CommandEncoder

	width  uint32
	height uint32

	// Size reported by the window system while in LoopStateResizing.
	pendingWidth  uint32
	pendingHeight uint32

	suspended bool

	clock    *core.Clock
	lastTime float64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game has no application config")
	}
	cfg := g.ApplicationConfig

	var p *platform.Platform
	if !cfg.Headless {
		p = platform.New()
	}

	am, err := assets.NewManager()
	if err != nil {
		return nil, err
	}

	return &Engine{
		state:        LoopStateRunning,
		gameInstance: g,
		platform:     p,
		assetManager: am,
		encoder:      renderer.NewCommandEncoder(),
		clock:        core.NewClock(),
		width:        cfg.StartWidth,
		height:       cfg.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	cfg := e.gameInstance.ApplicationConfig
	core.SetLogLevel(cfg.LogLevel)

	if err := core.InputInitialize(); err != nil {
		return err
	}
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	if e.platform != nil {
		if err := e.platform.Startup(cfg.Name, cfg.StartPosX, cfg.StartPosY, cfg.StartWidth, cfg.StartHeight); err != nil {
			return err
		}
	}

	if err := e.assetManager.Initialize(cfg.ShaderDir); err != nil {
		// Shader hot reload is a convenience, not a requirement.
		core.LogWarn("shader watcher unavailable: %v", err)
	}

	backendType, ok := renderer.ParseBackendType(cfg.Backend)
	if !ok {
		return fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	r, err := renderer.New(backendType, e.platform, cfg.Name, e.width, e.height)
	if err != nil {
		return err
	}
	e.renderer = r
	e.gameInstance.Renderer = r

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e.gameInstance); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) Renderer() *renderer.Renderer { return e.renderer }

func (e *Engine) Assets() *assets.Manager { return e.assetManager }

func (e *Engine) State() LoopState { return e.state }

// Stop requests a clean exit at the next loop iteration.
func (e *Engine) Stop() { e.state = LoopStateExiting }

// Run drives the frame loop until the state machine reaches exiting. Encoding
// and submission happen on this goroutine only.
func (e *Engine) Run() error {
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.state != LoopStateExiting {
		if e.platform != nil && !e.platform.PumpMessages() {
			e.state = LoopStateExiting
			break
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := e.absoluteTime()

		if err := e.RunFrame(delta); err != nil {
			core.LogError("frame failed, shutting down: %v", err)
			e.state = LoopStateExiting
			return err
		}

		core.MetricsUpdate(e.absoluteTime() - frameStartTime)
		core.InputUpdate(delta)
		e.lastTime = currentTime
	}
	return nil
}

// absoluteTime reads the platform clock, or wall time when running headless
// (GLFW is never initialized then, so its timer must not be touched).
func (e *Engine) absoluteTime() float64 {
	if e.platform != nil {
		return platform.GetAbsoluteTime()
	}
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// RunFrame advances the state machine by one iteration. In the running state
// that is one encoded, submitted and presented frame; in the resizing state
// it is one rebuild attempt.
func (e *Engine) RunFrame(deltaTime float64) error {
	switch e.state {
	case LoopStateExiting:
		return nil
	case LoopStateResizing:
		return e.applyResize()
	}

	if e.suspended {
		return nil
	}

	g := e.gameInstance
	if g.FnUpdate != nil {
		if err := g.FnUpdate(g, deltaTime); err != nil {
			return fmt.Errorf("game update: %w", err)
		}
	}

	e.encoder.Reset()
	if g.FnRecord != nil {
		if err := g.FnRecord(g, e.encoder, e.renderer.PresentableTarget(), deltaTime); err != nil {
			return fmt.Errorf("frame recording: %w", err)
		}
	}

	sequence, err := e.encoder.Finish()
	if err != nil {
		return fmt.Errorf("frame encoding: %w", err)
	}

	if err := e.renderer.SubmitWithRecovery(sequence); err != nil {
		return fmt.Errorf("frame submission: %w", err)
	}

	if err := e.renderer.Present(); err != nil {
		var presErr *core.PresentationError
		if errors.As(err, &presErr) {
			// Stale surface. Rebuild at the current size on the next
			// iteration instead of dying.
			core.LogWarn("presentation failed, rebuilding surface: %v", err)
			e.pendingWidth = e.width
			e.pendingHeight = e.height
			e.state = LoopStateResizing
			return nil
		}
		return fmt.Errorf("frame presentation: %w", err)
	}
	return nil
}

// applyResize drains in-flight work and rebuilds presentable targets at the
// pending size. A zero-area surface (minimized window) keeps the loop in the
// resizing state with frame production suspended.
func (e *Engine) applyResize() error {
	if e.pendingWidth == 0 || e.pendingHeight == 0 {
		e.suspended = true
		return nil
	}
	e.suspended = false

	if err := e.renderer.WaitIdle(); err != nil {
		return fmt.Errorf("wait-idle before resize: %w", err)
	}
	if err := e.renderer.OnResize(e.pendingWidth, e.pendingHeight); err != nil {
		return fmt.Errorf("surface rebuild: %w", err)
	}

	e.width = e.pendingWidth
	e.height = e.pendingHeight

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.gameInstance, e.width, e.height); err != nil {
			return err
		}
	}

	e.state = LoopStateRunning
	return nil
}

// Shutdown tears everything down in reverse initialization order. Safe to
// call after Run returns, whatever state the loop ended in.
func (e *Engine) Shutdown() error {
	e.state = LoopStateExiting

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(e.gameInstance); err != nil {
			core.LogWarn("game shutdown: %v", err)
		}
	}

	if e.renderer != nil {
		if err := e.renderer.Shutdown(); err != nil {
			core.LogError("renderer shutdown: %v", err)
		}
	}

	e.assetManager.Shutdown()

	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	core.EventUnregister(core.EVENT_CODE_KEY_PRESSED, e)
	core.EventUnregister(core.EVENT_CODE_RESIZED, e)

	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	if e.platform != nil {
		if err := e.platform.Shutdown(); err != nil {
			return err
		}
	}
	return nil
}

// GetFramebufferSize returns the width and height (in this order) of the
// presentable surface.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.state = LoopStateExiting
	}
}

func (e *Engine) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event payload for event type `%d`", context.Type)
		return
	}

	if ke.KeyCode == core.KEY_ESCAPE {
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	}
}

func (e *Engine) onResized(context core.EventContext) {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event payload for event type `%d`", context.Type)
		return
	}

	if se.WindowWidth == e.width && se.WindowHeight == e.height && e.state == LoopStateRunning {
		return
	}

	e.pendingWidth = se.WindowWidth
	e.pendingHeight = se.WindowHeight
	if e.state == LoopStateRunning {
		core.LogDebug("Window resize: %d, %d", se.WindowWidth, se.WindowHeight)
		e.state = LoopStateResizing
	}
}

package orion

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/oliverbestmann/stride/gfx"
	"github.com/oliverbestmann/stride/glimpse"
)

//go:generate go tool stringer -type=State -trimprefix=State

// State is the lifecycle state of an Application.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateRunning
	StateTerminated
	StateReleased
)

// Application owns the window, the renderer and the active scene, and
// drives the scene from its frame loop.
type Application struct {
	// center of the window client area
	WindowMidX float32
	WindowMidY float32

	opts  Options
	state State

	window   glimpse.Window
	renderer gfx.Renderer
	scene    Scene

	timer       *Timer
	frameBudget time.Duration
	frames      FrameTimes
	profile     FrameProfile
}

func NewApplication(opts Options) *Application {
	opts = opts.withDefaults()

	return &Application{
		WindowMidX:  float32(opts.WindowWidth) / 2.0,
		WindowMidY:  float32(opts.WindowHeight) / 2.0,
		opts:        opts,
		timer:       NewTimer(opts.Clock),
		frameBudget: time.Second / time.Duration(opts.TargetFPS),
	}
}

func (a *Application) State() State {
	return a.state
}

// FrameBudget is the minimum duration of a single frame.
func (a *Application) FrameBudget() time.Duration {
	return a.frameBudget
}

// Frames returns statistics about the frames rendered so far.
func (a *Application) Frames() FrameTimes {
	return a.frames
}

// Profile returns the phase times of the most recent frames.
func (a *Application) Profile() *FrameProfile {
	return &a.profile
}

// Init opens the window, registers the input and resize callbacks and creates
// the renderer. Nothing is cleaned up if this fails, the caller is expected to
// terminate the process.
func (a *Application) Init() error {
	if a.state != StateUninitialized {
		return fmt.Errorf("%w: init in state %s", ErrInvalidState, a.state)
	}

	if a.opts.NewWindow == nil || a.opts.NewRenderer == nil {
		return ErrNoPlatform
	}

	win, err := a.opts.NewWindow(glimpse.WindowOptions{
		Width:               a.opts.WindowWidth,
		Height:              a.opts.WindowHeight,
		Title:               a.opts.WindowTitle,
		ContextVersionMajor: 3,
		ContextVersionMinor: 3,
		CoreProfile:         true,
		Samples:             a.opts.Samples,
		CPUProfile:          a.opts.CPUProfile,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	a.window = win
	win.SetKeyCallback(a.onKey)

	renderer, err := a.opts.NewRenderer()
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	a.renderer = renderer
	win.SetResizeCallback(a.onResize)

	a.state = StateInitialized

	slog.Info("Application initialized",
		slog.Int("width", a.opts.WindowWidth),
		slog.Int("height", a.opts.WindowHeight),
		slog.Duration("frameBudget", a.frameBudget),
	)

	return nil
}

// Run creates and initializes the scene and drives it until the window is
// requested to close or the interrupt key is pressed. The scene is exited
// before Run returns. Run must only be called once.
func (a *Application) Run() error {
	if a.state != StateInitialized {
		return fmt.Errorf("%w: run in state %s", ErrInvalidState, a.state)
	}

	if a.opts.NewScene == nil {
		return fmt.Errorf("%w: no scene factory configured", ErrNoScene)
	}

	width, height := a.window.GetSize()

	scene := a.opts.NewScene(Env{
		Renderer: a.renderer,
		Keyboard: a.window,
		Width:    width,
		Height:   height,
	})

	if scene == nil {
		a.state = StateTerminated
		return fmt.Errorf("%w: scene factory returned nil", ErrNoScene)
	}

	a.state = StateRunning

	if err := scene.Init(); err != nil {
		a.state = StateTerminated
		return fmt.Errorf("initialize scene: %w", err)
	}

	a.scene = scene

	a.timer.StartTimer()

	for !a.shouldTerminate() {
		a.loopOnce(scene)
	}

	scene.Exit()
	a.scene = nil

	a.state = StateTerminated

	slog.Info("Application terminated",
		slog.Uint64("frames", a.frames.FrameCount),
		slog.Duration("runtime", a.timer.Total()),
	)

	return nil
}

// Exit releases the renderer and destroys the window. It must be called
// exactly once after Run returned.
func (a *Application) Exit() error {
	if a.state != StateTerminated {
		return fmt.Errorf("%w: exit in state %s", ErrInvalidState, a.state)
	}

	a.renderer.Release()
	a.renderer = nil

	a.window.Terminate()
	a.window = nil

	a.state = StateReleased

	return nil
}

func (a *Application) shouldTerminate() bool {
	if a.window.ShouldClose() {
		slog.Debug("Window close requested")
		return true
	}

	// poll the key directly, even if no key event was dispatched
	if a.window.IsKeyPressed(a.opts.InterruptKey) {
		slog.Debug("Interrupt key is pressed", slog.String("key", a.opts.InterruptKey.String()))
		return true
	}

	return false
}

func (a *Application) onKey(key glimpse.Key, action glimpse.Action) {
	if key == a.opts.InterruptKey && action == glimpse.ActionPress {
		a.window.SetShouldClose(true)
	}
}

func (a *Application) onResize(width, height int) {
	a.renderer.Viewport(width, height)
}

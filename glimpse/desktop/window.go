package desktop

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/stride/glimpse"
	"github.com/pkg/profile"
)

func init() {
	// glfw event handling must run on the main thread
	runtime.LockOSThread()
}

type glfwWindow struct {
	win   *glfw.Window
	prof  interface{ Stop() }
	input glimpse.InputState

	onKey    glimpse.KeyCallback
	onResize glimpse.ResizeCallback
}

// NewWindow initializes glfw, opens a window and makes its opengl context current.
// A failing extension loader is only logged, the window is still returned.
func NewWindow(opts glimpse.WindowOptions) (glimpse.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", glimpse.ErrPlatformInit, err)
	}

	glfw.WindowHint(glfw.Samples, opts.Samples)
	glfw.WindowHint(glfw.ContextVersionMajor, opts.ContextVersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.ContextVersionMinor)

	if opts.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

		if runtime.GOOS == "darwin" {
			glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		}
	}

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %w", glimpse.ErrCreateWindow, err)
	}

	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		slog.Warn("Failed to initialize opengl extension loader", slog.String("error", err.Error()))
	} else {
		slog.Info("Opengl context created",
			slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
			slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		)
	}

	w := &glfwWindow{win: window}

	if opts.CPUProfile {
		w.prof = profile.Start(profile.CPUProfile, profile.NoShutdownHook)
	}

	configureInput(window, w)

	return w, nil
}

func (g *glfwWindow) ShouldClose() bool {
	return g.win.ShouldClose()
}

func (g *glfwWindow) SetShouldClose(value bool) {
	g.win.SetShouldClose(value)
}

func (g *glfwWindow) IsKeyPressed(key glimpse.Key) bool {
	glfwKey, ok := keyToGlfw[key]
	if !ok {
		return false
	}

	return g.win.GetKey(glfwKey) == glfw.Press
}

func (g *glfwWindow) IsKeyJustPressed(key glimpse.Key) bool {
	return g.input.IsKeyJustPressed(key)
}

func (g *glfwWindow) GetSize() (int, int) {
	return g.win.GetFramebufferSize()
}

func (g *glfwWindow) SwapBuffers() {
	g.win.SwapBuffers()
}

func (g *glfwWindow) PollEvents() {
	g.input.NextTick()
	glfw.PollEvents()
}

func (g *glfwWindow) SetKeyCallback(cb glimpse.KeyCallback) {
	g.onKey = cb
}

func (g *glfwWindow) SetResizeCallback(cb glimpse.ResizeCallback) {
	g.onResize = cb
}

func (g *glfwWindow) Terminate() {
	if g.prof != nil {
		g.prof.Stop()
	}

	g.win.Destroy()
	glfw.Terminate()
}

func configureInput(window *glfw.Window, w *glfwWindow) {
	window.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, glfwAction glfw.Action, mods glfw.ModifierKey) {
		key, ok := keyOf(glfwKey)
		if !ok {
			return
		}

		var action glimpse.Action
		switch glfwAction {
		case glfw.Press:
			action = glimpse.ActionPress
		case glfw.Release:
			action = glimpse.ActionRelease
		default:
			action = glimpse.ActionRepeat
		}

		w.input.Apply(key, action)

		if w.onKey != nil {
			w.onKey(key, action)
		}
	})

	window.SetFramebufferSizeCallback(func(_win *glfw.Window, width int, height int) {
		slog.Debug("Window resized",
			slog.Int("width", width),
			slog.Int("height", height),
		)

		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
}

var glfwToKey = map[glfw.Key]glimpse.Key{
	glfw.KeySpace:  glimpse.KeySpace,
	glfw.KeyEscape: glimpse.KeyEscape,
	glfw.KeyEnter:  glimpse.KeyEnter,
	glfw.KeyLeft:   glimpse.KeyLeft,
	glfw.KeyRight:  glimpse.KeyRight,
	glfw.KeyUp:     glimpse.KeyUp,
	glfw.KeyDown:   glimpse.KeyDown,
	glfw.KeyA:      glimpse.KeyA,
	glfw.KeyD:      glimpse.KeyD,
	glfw.KeyR:      glimpse.KeyR,
	glfw.KeyS:      glimpse.KeyS,
	glfw.KeyW:      glimpse.KeyW,
}

var keyToGlfw = invert(glfwToKey)

func keyOf(glfwKey glfw.Key) (key glimpse.Key, ok bool) {
	key, ok = glfwToKey[glfwKey]
	if !ok {
		slog.Debug(
			"Unknown key code",
			slog.Int("key", int(glfwKey)),
		)
	}

	return
}

func invert[K, V comparable](m map[K]V) map[V]K {
	result := make(map[V]K, len(m))
	for key, value := range m {
		result[value] = key
	}

	return result
}

package glimpse

import "errors"

var (
	ErrPlatformInit = errors.New("glimpse: platform layer failed to initialize")
	ErrCreateWindow = errors.New("glimpse: failed to open window")
)

type KeyCallback func(key Key, action Action)

type ResizeCallback func(width, height int)

// Window is the platform context: a single window together with its
// rendering context. All methods must be called from the main thread.
type Window interface {
	// ShouldClose reports whether closing the window was requested.
	ShouldClose() bool
	SetShouldClose(value bool)

	Keyboard

	GetSize() (width, height int)

	// SwapBuffers presents the frame that was rendered into the back buffer.
	SwapBuffers()

	// PollEvents processes all pending events. Registered callbacks are
	// invoked synchronously from within this call.
	PollEvents()

	SetKeyCallback(cb KeyCallback)
	SetResizeCallback(cb ResizeCallback)

	// Terminate destroys the window and shuts down the platform layer.
	Terminate()
}

type WindowOptions struct {
	Width  int
	Height int
	Title  string

	// requested opengl version
	ContextVersionMajor int
	ContextVersionMinor int
	CoreProfile         bool

	// number of msaa samples, zero disables anti aliasing
	Samples int

	// write a cpu profile while the window is open
	CPUProfile bool
}

// Keyboard gives access to the keyboard state.
type Keyboard interface {
	// IsKeyPressed polls the live state of a key. It does not depend
	// on any event having been processed.
	IsKeyPressed(key Key) bool

	// IsKeyJustPressed reports whether a press event for the key was
	// received during the last call to PollEvents.
	IsKeyJustPressed(key Key) bool
}

package orion

import (
	"github.com/oliverbestmann/stride/gfx"
	"github.com/oliverbestmann/stride/glimpse"
)

const (
	DefaultWindowWidth  = 1000
	DefaultWindowHeight = 800
	DefaultWindowTitle  = "Computer Graphics"

	// DefaultTargetFPS limits each frame to 5ms
	DefaultTargetFPS = 200

	DefaultSamples = 4
)

type Options struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	// upper bound for the frame rate
	TargetFPS int

	// pressing this key terminates the application, defaults to escape
	InterruptKey glimpse.Key

	// msaa samples requested for the default framebuffer
	Samples int

	CPUProfile bool

	// creates the window and its rendering context
	NewWindow func(opts glimpse.WindowOptions) (glimpse.Window, error)

	// creates the renderer, called after the window was created
	NewRenderer func() (gfx.Renderer, error)

	// creates the scene to run. This is required.
	NewScene SceneFactory

	// time source for frame pacing, defaults to SystemClock
	Clock Clock
}

func (opts Options) withDefaults() Options {
	if opts.WindowWidth == 0 {
		opts.WindowWidth = DefaultWindowWidth
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = DefaultWindowHeight
	}

	if opts.WindowTitle == "" {
		opts.WindowTitle = DefaultWindowTitle
	}

	if opts.TargetFPS <= 0 {
		opts.TargetFPS = DefaultTargetFPS
	}

	if opts.InterruptKey == glimpse.KeyUnknown {
		opts.InterruptKey = glimpse.KeyEscape
	}

	if opts.Samples == 0 {
		opts.Samples = DefaultSamples
	}

	if opts.Clock == nil {
		opts.Clock = SystemClock
	}

	return opts
}

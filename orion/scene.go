package orion

import (
	"time"

	"github.com/oliverbestmann/stride/gfx"
	"github.com/oliverbestmann/stride/glimpse"
)

// Scene is one screen or mode of the application. The Application calls
// Init exactly once, then Update and Render once per frame, and finally
// Exit exactly once. No method is called after Exit.
type Scene interface {
	// Init prepares simulation and render state. A returned error is fatal,
	// neither Update, Render nor Exit are called afterwards.
	Init() error

	// Update advances the simulation by exactly dt.
	Update(dt time.Duration)

	// Render draws the current state. It must not modify the simulation state.
	Render()

	// Exit releases everything that was acquired in Init.
	Exit()
}

// Env is handed to a SceneFactory and gives the scene access to
// rendering and input.
type Env struct {
	Renderer gfx.Renderer
	Keyboard glimpse.Keyboard

	// size of the window client area
	Width  int
	Height int
}

// SceneFactory constructs the scene that the application drives.
type SceneFactory func(env Env) Scene

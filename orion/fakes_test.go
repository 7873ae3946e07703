package orion

import (
	"time"

	"github.com/oliverbestmann/stride/gfx"
	"github.com/oliverbestmann/stride/glimpse"
)

type fakeWindow struct {
	log *[]string

	width, height int

	closed     bool
	terminated bool

	// close the window after this many calls to PollEvents, zero never closes.
	closeAfterPolls int
	polls           int

	// callbacks to fire during the given poll, one based
	onPoll map[int]func(w *fakeWindow)

	pressed map[glimpse.Key]bool

	onKey    glimpse.KeyCallback
	onResize glimpse.ResizeCallback
}

var _ glimpse.Window = (*fakeWindow)(nil)

func newFakeWindow(log *[]string) *fakeWindow {
	return &fakeWindow{
		log:     log,
		width:   DefaultWindowWidth,
		height:  DefaultWindowHeight,
		onPoll:  map[int]func(w *fakeWindow){},
		pressed: map[glimpse.Key]bool{},
	}
}

func (w *fakeWindow) ShouldClose() bool {
	return w.closed
}

func (w *fakeWindow) SetShouldClose(value bool) {
	w.closed = value
}

func (w *fakeWindow) IsKeyPressed(key glimpse.Key) bool {
	return w.pressed[key]
}

func (w *fakeWindow) IsKeyJustPressed(key glimpse.Key) bool {
	return false
}

func (w *fakeWindow) GetSize() (int, int) {
	return w.width, w.height
}

func (w *fakeWindow) SwapBuffers() {
	w.record("swap")
}

func (w *fakeWindow) PollEvents() {
	w.polls++
	w.record("poll")

	if fn := w.onPoll[w.polls]; fn != nil {
		fn(w)
	}

	if w.closeAfterPolls > 0 && w.polls >= w.closeAfterPolls {
		w.closed = true
	}
}

// key dispatches a key event like the platform layer would do during PollEvents.
func (w *fakeWindow) key(key glimpse.Key, action glimpse.Action) {
	switch action {
	case glimpse.ActionPress:
		w.pressed[key] = true
	case glimpse.ActionRelease:
		w.pressed[key] = false
	}

	if w.onKey != nil {
		w.onKey(key, action)
	}
}

func (w *fakeWindow) resize(width, height int) {
	w.width, w.height = width, height

	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *fakeWindow) SetKeyCallback(cb glimpse.KeyCallback) {
	w.onKey = cb
}

func (w *fakeWindow) SetResizeCallback(cb glimpse.ResizeCallback) {
	w.onResize = cb
}

func (w *fakeWindow) Terminate() {
	w.terminated = true
}

func (w *fakeWindow) record(event string) {
	if w.log != nil {
		*w.log = append(*w.log, event)
	}
}

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type countingScene struct {
	log *[]string

	env Env

	initErr error

	inits, updates, renders, exits int
	deltas                         []time.Duration

	// called at the start of every update
	work func()
}

func (s *countingScene) Init() error {
	s.inits++
	s.record("init")
	return s.initErr
}

func (s *countingScene) Update(dt time.Duration) {
	s.updates++
	s.deltas = append(s.deltas, dt)
	s.record("update")

	if s.work != nil {
		s.work()
	}
}

func (s *countingScene) Render() {
	s.renders++
	s.record("render")
	s.env.Renderer.Clear(gfx.Color{})
}

func (s *countingScene) Exit() {
	s.exits++
	s.record("exit")
}

func (s *countingScene) record(event string) {
	if s.log != nil {
		*s.log = append(*s.log, event)
	}
}

type harness struct {
	log []string

	app      *Application
	window   *fakeWindow
	renderer *gfx.Recorder
	scene    *countingScene
	clock    *fakeClock
}

func newHarness(opts Options) *harness {
	h := &harness{
		renderer: &gfx.Recorder{},
		clock:    newFakeClock(),
	}

	h.window = newFakeWindow(&h.log)
	h.scene = &countingScene{log: &h.log}

	opts.NewWindow = func(wopts glimpse.WindowOptions) (glimpse.Window, error) {
		h.window.width = wopts.Width
		h.window.height = wopts.Height
		return h.window, nil
	}

	opts.NewRenderer = func() (gfx.Renderer, error) {
		return h.renderer, nil
	}

	opts.NewScene = func(env Env) Scene {
		h.scene.env = env
		return h.scene
	}

	if opts.Clock == nil {
		opts.Clock = h.clock
	}

	h.app = NewApplication(opts)

	return h
}

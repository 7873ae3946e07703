package orion

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/oliverbestmann/stride/gfx"
	"github.com/oliverbestmann/stride/glimpse"
)

func TestWindowCenter(t *testing.T) {
	app := NewApplication(Options{})

	if app.WindowMidX != 500 || app.WindowMidY != 400 {
		t.Fatalf("expected center (500, 400), got (%v, %v)", app.WindowMidX, app.WindowMidY)
	}

	if app.FrameBudget() != 5*time.Millisecond {
		t.Fatalf("expected frame budget of 5ms, got %s", app.FrameBudget())
	}
}

func TestInitOpensWindow(t *testing.T) {
	var got glimpse.WindowOptions

	h := newHarness(Options{})
	h.app.opts.NewWindow = func(opts glimpse.WindowOptions) (glimpse.Window, error) {
		got = opts
		return h.window, nil
	}

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	want := glimpse.WindowOptions{
		Width:               1000,
		Height:              800,
		Title:               "Computer Graphics",
		ContextVersionMajor: 3,
		ContextVersionMinor: 3,
		CoreProfile:         true,
		Samples:             4,
	}

	if got != want {
		t.Fatalf("unexpected window options: %+v", got)
	}

	if h.app.State() != StateInitialized {
		t.Fatalf("expected state Initialized, got %s", h.app.State())
	}

	if h.window.onKey == nil || h.window.onResize == nil {
		t.Fatal("callbacks not registered")
	}
}

func TestCloseBeforeFirstFrame(t *testing.T) {
	h := newHarness(Options{})

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	h.window.closed = true

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	if h.scene.inits != 1 || h.scene.updates != 0 || h.scene.renders != 0 || h.scene.exits != 1 {
		t.Fatalf("unexpected calls: init=%d update=%d render=%d exit=%d",
			h.scene.inits, h.scene.updates, h.scene.renders, h.scene.exits)
	}
}

func TestRunOrder(t *testing.T) {
	h := newHarness(Options{})
	h.window.closeAfterPolls = 3

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"init",
		"update", "render", "swap", "poll",
		"update", "render", "swap", "poll",
		"update", "render", "swap", "poll",
		"exit",
	}

	if !slices.Equal(h.log, want) {
		t.Fatalf("unexpected call order:\n got %v\nwant %v", h.log, want)
	}

	if h.app.State() != StateTerminated {
		t.Fatalf("expected state Terminated, got %s", h.app.State())
	}

	if h.app.Frames().FrameCount != 3 {
		t.Fatalf("expected 3 frames, got %d", h.app.Frames().FrameCount)
	}
}

func TestInterruptKeyPolled(t *testing.T) {
	h := newHarness(Options{})

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	// the key is held down without an event being dispatched
	h.window.onPoll[2] = func(w *fakeWindow) {
		w.pressed[glimpse.KeyEscape] = true
	}

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	if h.scene.updates != 2 {
		t.Fatalf("expected 2 updates, got %d", h.scene.updates)
	}

	if h.window.closed {
		t.Fatal("close flag must not be set by polling")
	}
}

func TestInterruptKeyCallback(t *testing.T) {
	h := newHarness(Options{})

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	// press and release within the same poll, so only the callback sees it
	h.window.onPoll[1] = func(w *fakeWindow) {
		w.key(glimpse.KeyEscape, glimpse.ActionPress)
		w.key(glimpse.KeyEscape, glimpse.ActionRelease)
	}

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	if h.scene.updates != 1 {
		t.Fatalf("expected 1 update, got %d", h.scene.updates)
	}

	if !h.window.closed {
		t.Fatal("expected close flag to be set")
	}
}

func TestOtherKeysDoNotInterrupt(t *testing.T) {
	h := newHarness(Options{})
	h.window.closeAfterPolls = 4

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	h.window.onPoll[1] = func(w *fakeWindow) {
		w.key(glimpse.KeySpace, glimpse.ActionPress)
		w.key(glimpse.KeyEscape, glimpse.ActionRepeat)
	}

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	if h.scene.updates != 4 {
		t.Fatalf("expected 4 updates, got %d", h.scene.updates)
	}
}

func TestCustomInterruptKey(t *testing.T) {
	h := newHarness(Options{InterruptKey: glimpse.KeyEnter})

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	h.window.onPoll[1] = func(w *fakeWindow) {
		w.key(glimpse.KeyEscape, glimpse.ActionPress)
	}

	h.window.onPoll[2] = func(w *fakeWindow) {
		w.key(glimpse.KeyEnter, glimpse.ActionPress)
	}

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	if h.scene.updates != 2 {
		t.Fatalf("expected 2 updates, got %d", h.scene.updates)
	}
}

func TestResizeSetsViewport(t *testing.T) {
	h := newHarness(Options{})
	h.window.closeAfterPolls = 2

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	h.window.onPoll[1] = func(w *fakeWindow) {
		w.resize(640, 480)
	}

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	if h.renderer.Width != 640 || h.renderer.Height != 480 {
		t.Fatalf("expected viewport 640x480, got %dx%d", h.renderer.Width, h.renderer.Height)
	}

	if h.renderer.Count(gfx.OpViewport) != 1 {
		t.Fatalf("expected exactly one viewport call, got %d", h.renderer.Count(gfx.OpViewport))
	}
}

func TestFramePacing(t *testing.T) {
	h := newHarness(Options{})
	h.window.closeAfterPolls = 3

	// each frame takes 2ms of work
	h.scene.work = func() {
		h.clock.Advance(2 * time.Millisecond)
	}

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	wantSleeps := []time.Duration{3 * time.Millisecond, 3 * time.Millisecond, 3 * time.Millisecond}
	if !slices.Equal(h.clock.sleeps, wantSleeps) {
		t.Fatalf("unexpected sleeps: %v", h.clock.sleeps)
	}

	wantDeltas := []time.Duration{0, 5 * time.Millisecond, 5 * time.Millisecond}
	if !slices.Equal(h.scene.deltas, wantDeltas) {
		t.Fatalf("unexpected deltas: %v", h.scene.deltas)
	}

	want := PhaseTimes{Update: 2 * time.Millisecond, Wait: 3 * time.Millisecond}
	if got := h.app.Profile().Average(); got != want {
		t.Fatalf("unexpected phase times: %+v", got)
	}
}

func TestFrameStatisticsAreLogged(t *testing.T) {
	var buf bytes.Buffer

	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := newHarness(Options{})
	h.window.closeAfterPolls = 200

	h.scene.work = func() {
		h.clock.Advance(2 * time.Millisecond)
	}

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "Frame statistics") || !strings.Contains(out, "delta=5ms") {
		t.Fatalf("expected frame statistics with delta, got:\n%s", out)
	}
}

func TestFramePacingOverload(t *testing.T) {
	h := newHarness(Options{})
	h.window.closeAfterPolls = 3

	h.scene.work = func() {
		h.clock.Advance(8 * time.Millisecond)
	}

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	if len(h.clock.sleeps) != 0 {
		t.Fatalf("expected no sleeps, got %v", h.clock.sleeps)
	}

	// no catch up of missed time
	wantDeltas := []time.Duration{0, 8 * time.Millisecond, 8 * time.Millisecond}
	if !slices.Equal(h.scene.deltas, wantDeltas) {
		t.Fatalf("unexpected deltas: %v", h.scene.deltas)
	}
}

func TestSingleFrameTakesBudget(t *testing.T) {
	h := newHarness(Options{Clock: SystemClock})
	h.window.closeAfterPolls = 1

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	startTime := time.Now()

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	elapsed := time.Since(startTime)

	if elapsed < 5*time.Millisecond {
		t.Fatalf("frame finished too early after %s", elapsed)
	}

	if elapsed > 5*time.Millisecond+50*time.Millisecond {
		t.Fatalf("frame took too long: %s", elapsed)
	}
}

func TestExitReleasesResources(t *testing.T) {
	h := newHarness(Options{})
	h.window.closeAfterPolls = 1

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	if h.renderer.Released || h.window.terminated {
		t.Fatal("resources released before Exit")
	}

	if err := h.app.Exit(); err != nil {
		t.Fatal(err)
	}

	if !h.renderer.Released {
		t.Fatal("renderer not released")
	}

	if !h.window.terminated {
		t.Fatal("window not terminated")
	}

	if h.app.State() != StateReleased {
		t.Fatalf("expected state Released, got %s", h.app.State())
	}
}

func TestInvalidStateTransitions(t *testing.T) {
	h := newHarness(Options{})
	h.window.closeAfterPolls = 1

	if err := h.app.Run(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("run before init: expected ErrInvalidState, got %v", err)
	}

	if err := h.app.Exit(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("exit before init: expected ErrInvalidState, got %v", err)
	}

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	if err := h.app.Init(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second init: expected ErrInvalidState, got %v", err)
	}

	if err := h.app.Exit(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("exit before run: expected ErrInvalidState, got %v", err)
	}

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	if err := h.app.Run(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second run: expected ErrInvalidState, got %v", err)
	}

	if err := h.app.Exit(); err != nil {
		t.Fatal(err)
	}

	if err := h.app.Exit(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second exit: expected ErrInvalidState, got %v", err)
	}
}

func TestSceneInitFailure(t *testing.T) {
	errBoom := errors.New("boom")

	h := newHarness(Options{})
	h.scene.initErr = errBoom

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	if err := h.app.Run(); !errors.Is(err, errBoom) {
		t.Fatalf("expected scene error, got %v", err)
	}

	if h.scene.updates != 0 || h.scene.renders != 0 || h.scene.exits != 0 {
		t.Fatalf("scene used after failed init: update=%d render=%d exit=%d",
			h.scene.updates, h.scene.renders, h.scene.exits)
	}

	if err := h.app.Exit(); err != nil {
		t.Fatal(err)
	}

	if !h.renderer.Released || !h.window.terminated {
		t.Fatal("resources not released")
	}
}

func TestSceneFactoryReturnsNil(t *testing.T) {
	h := newHarness(Options{})
	h.app.opts.NewScene = func(env Env) Scene { return nil }

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	if err := h.app.Run(); !errors.Is(err, ErrNoScene) {
		t.Fatalf("expected ErrNoScene, got %v", err)
	}

	if h.app.State() != StateTerminated {
		t.Fatalf("expected state %s, got %s", StateTerminated, h.app.State())
	}

	if err := h.app.Exit(); err != nil {
		t.Fatal(err)
	}

	if !h.renderer.Released || !h.window.terminated {
		t.Fatal("resources not released")
	}
}

func TestMissingSceneFactory(t *testing.T) {
	h := newHarness(Options{})
	h.app.opts.NewScene = nil

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	if err := h.app.Run(); !errors.Is(err, ErrNoScene) {
		t.Fatalf("expected ErrNoScene, got %v", err)
	}
}

func TestPlatformFailures(t *testing.T) {
	app := NewApplication(Options{})
	if err := app.Init(); !errors.Is(err, ErrNoPlatform) {
		t.Fatalf("expected ErrNoPlatform, got %v", err)
	}

	h := newHarness(Options{})
	h.app.opts.NewWindow = func(glimpse.WindowOptions) (glimpse.Window, error) {
		return nil, glimpse.ErrPlatformInit
	}

	if err := h.app.Init(); !errors.Is(err, glimpse.ErrPlatformInit) {
		t.Fatalf("expected ErrPlatformInit, got %v", err)
	}

	if h.app.State() != StateUninitialized {
		t.Fatalf("expected state Uninitialized, got %s", h.app.State())
	}
}

func TestSceneEnv(t *testing.T) {
	h := newHarness(Options{WindowWidth: 320, WindowHeight: 200})
	h.window.closed = true

	if err := h.app.Init(); err != nil {
		t.Fatal(err)
	}

	if err := h.app.Run(); err != nil {
		t.Fatal(err)
	}

	env := h.scene.env
	if env.Width != 320 || env.Height != 200 {
		t.Fatalf("unexpected env size %dx%d", env.Width, env.Height)
	}

	if env.Renderer != h.renderer || env.Keyboard != h.window {
		t.Fatal("env does not carry renderer and keyboard")
	}
}

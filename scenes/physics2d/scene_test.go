package physics2d

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/oliverbestmann/stride/gfx"
	"github.com/oliverbestmann/stride/glimpse"
	"github.com/oliverbestmann/stride/orion"
)

type keys map[glimpse.Key]bool

func (k keys) IsKeyPressed(key glimpse.Key) bool {
	return k[key]
}

// a key counts as just pressed while it is held down
func (k keys) IsKeyJustPressed(key glimpse.Key) bool {
	return k[key]
}

func newScene(t *testing.T, keyboard keys) (*Scene, *gfx.Recorder) {
	t.Helper()

	rec := &gfx.Recorder{}

	scene := New(orion.Env{
		Renderer: rec,
		Keyboard: keyboard,
		Width:    1000,
		Height:   800,
	})

	if err := scene.Init(); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(scene.Exit)

	return scene, rec
}

func TestUpdateIsDeterministic(t *testing.T) {
	a, _ := newScene(t, keys{})
	b, _ := newScene(t, keys{})

	for idx := range 120 {
		dt := time.Duration(4+idx%3) * time.Millisecond
		a.Update(dt)
		b.Update(dt)
	}

	if diff := cmp.Diff(a.Snapshot(), b.Snapshot()); diff != "" {
		t.Fatalf("simulations diverged (-a +b):\n%s", diff)
	}
}

func TestBallsFall(t *testing.T) {
	scene, _ := newScene(t, keys{})

	before := scene.Snapshot()
	scene.Update(100 * time.Millisecond)
	after := scene.Snapshot()

	if after.Elapsed != 100*time.Millisecond {
		t.Fatalf("expected 100ms simulated, got %s", after.Elapsed)
	}

	for idx := range before.Balls {
		if after.Balls[idx].Position[1] >= before.Balls[idx].Position[1] {
			t.Fatalf("ball %d did not fall", idx)
		}
	}
}

func TestSpacePushesBallsUp(t *testing.T) {
	falling, _ := newScene(t, keys{})
	pushed, _ := newScene(t, keys{glimpse.KeySpace: true})

	falling.Update(50 * time.Millisecond)
	pushed.Update(50 * time.Millisecond)

	a := falling.Snapshot()
	b := pushed.Snapshot()

	if b.Balls[0].Velocity[1] <= a.Balls[0].Velocity[1] {
		t.Fatalf("expected pushed ball to be faster upwards: %v <= %v",
			b.Balls[0].Velocity[1], a.Balls[0].Velocity[1])
	}
}

func TestRenderDoesNotChangeState(t *testing.T) {
	scene, rec := newScene(t, keys{})

	scene.Update(20 * time.Millisecond)
	before := scene.Snapshot()

	for range 3 {
		scene.Render()
	}

	if diff := cmp.Diff(before, scene.Snapshot()); diff != "" {
		t.Fatalf("render changed the state:\n%s", diff)
	}

	// walls, crates and balls are drawn on every frame
	perFrame := len(scene.walls) + len(scene.crates) + len(scene.balls)
	if rec.Count(gfx.OpDrawTriangles) != 3*perFrame {
		t.Fatalf("expected %d draw calls, got %d", 3*perFrame, rec.Count(gfx.OpDrawTriangles))
	}

	if rec.Count(gfx.OpClear) != 3 {
		t.Fatalf("expected 3 clears, got %d", rec.Count(gfx.OpClear))
	}
}

func TestEnterDropsCrate(t *testing.T) {
	keyboard := keys{}
	scene, _ := newScene(t, keyboard)

	crates := len(scene.Snapshot().Crates)

	keyboard[glimpse.KeyEnter] = true
	scene.Update(5 * time.Millisecond)

	delete(keyboard, glimpse.KeyEnter)
	scene.Update(5 * time.Millisecond)

	if got := len(scene.Snapshot().Crates); got != crates+1 {
		t.Fatalf("expected %d crates, got %d", crates+1, got)
	}
}

func TestExitReleasesWorld(t *testing.T) {
	// box2d has a fixed number of world slots, leaking worlds exhausts them
	for range 300 {
		scene := New(orion.Env{
			Renderer: &gfx.Recorder{},
			Keyboard: keys{},
			Width:    1000,
			Height:   800,
		})

		if err := scene.Init(); err != nil {
			t.Fatal(err)
		}

		scene.Update(5 * time.Millisecond)
		scene.Exit()

		if len(scene.Snapshot().Balls) != 0 {
			t.Fatal("scene still holds bodies after exit")
		}
	}
}

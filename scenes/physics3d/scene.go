// Package physics3d simulates a bunch of spheres bouncing in a box.
package physics3d

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/oliverbestmann/stride/gfx"
	"github.com/oliverbestmann/stride/glimpse"
	"github.com/oliverbestmann/stride/glm"
	"github.com/oliverbestmann/stride/orion"
	"github.com/oliverbestmann/stride/scenes"
)

const (
	sphereCount = 24
	restitution = 0.8

	// camera rotation speed in radians per second
	orbitSpeed = 1.5
)

var (
	gravity    = glm.Vec3f{0, -9.81, 0}
	halfExtent = glm.Vec3f{4, 3, 4}
)

var (
	colorBackground = gfx.ColorSRGBA(0.05, 0.06, 0.08, 1)
	colorFloor      = gfx.ColorSRGBA(0.25, 0.27, 0.30, 1)
)

type Scene struct {
	renderer gfx.Renderer
	keyboard glimpse.Keyboard

	aspect float32
	seed   uint64

	camera  Camera
	spheres []Sphere
	colors  []gfx.Color

	sphereMesh gfx.Mesh
	floorMesh  gfx.Mesh

	elapsed time.Duration
}

var _ orion.Scene = (*Scene)(nil)

func New(env orion.Env) *Scene {
	aspect := float32(1)
	if env.Height > 0 {
		aspect = float32(env.Width) / float32(env.Height)
	}

	return &Scene{
		renderer: env.Renderer,
		keyboard: env.Keyboard,
		aspect:   aspect,
		seed:     1,
	}
}

func (s *Scene) Init() error {
	rng := rand.New(rand.NewPCG(s.seed, 3))

	s.camera = Camera{Yaw: 0.6, Pitch: 0.4, Distance: 14}

	for len(s.spheres) < sphereCount {
		radius := randf(rng, 0.25, 0.6)

		sphere := Sphere{
			Position: glm.Vec3f{
				randf(rng, -halfExtent[0]+radius, halfExtent[0]-radius),
				randf(rng, 0, halfExtent[1]-radius),
				randf(rng, -halfExtent[2]+radius, halfExtent[2]-radius),
			},
			Velocity: glm.Vec3f{randf(rng, -2, 2), 0, randf(rng, -2, 2)},
			Radius:   radius,

			// uniform density
			Mass: radius * radius * radius,
		}

		if s.overlapsAny(sphere) {
			continue
		}

		s.spheres = append(s.spheres, sphere)
		s.colors = append(s.colors, gfx.ColorSRGBA(randf(rng, 0.3, 1), randf(rng, 0.3, 1), randf(rng, 0.3, 1), 1))
	}

	var err error

	s.sphereMesh, err = s.renderer.CreateMesh(gfx.Sphere(12, 24))
	if err != nil {
		return fmt.Errorf("create sphere mesh: %w", err)
	}

	s.floorMesh, err = s.renderer.CreateMesh([]glm.Vec3f{
		{-1, 0, -1}, {1, 0, 1}, {1, 0, -1},
		{-1, 0, -1}, {-1, 0, 1}, {1, 0, 1},
	})
	if err != nil {
		s.renderer.ReleaseMesh(s.sphereMesh)
		return fmt.Errorf("create floor mesh: %w", err)
	}

	slog.Info("Spheres created", slog.Int("count", len(s.spheres)))

	return nil
}

func (s *Scene) overlapsAny(sphere Sphere) bool {
	for _, other := range s.spheres {
		if other.Position.Sub(sphere.Position).Length() < other.Radius+sphere.Radius {
			return true
		}
	}

	return false
}

func (s *Scene) Update(dt time.Duration) {
	seconds := scenes.Seconds(dt)

	var yaw, pitch float32
	if s.keyboard.IsKeyPressed(glimpse.KeyLeft) {
		yaw -= orbitSpeed * seconds
	}

	if s.keyboard.IsKeyPressed(glimpse.KeyRight) {
		yaw += orbitSpeed * seconds
	}

	if s.keyboard.IsKeyPressed(glimpse.KeyUp) {
		pitch += orbitSpeed * seconds
	}

	if s.keyboard.IsKeyPressed(glimpse.KeyDown) {
		pitch -= orbitSpeed * seconds
	}

	s.camera.Rotate(glm.Rad(yaw), glm.Rad(pitch))

	for step := range scenes.SubSteps(dt, scenes.MaxStep) {
		s.step(scenes.Seconds(step))
	}

	s.elapsed += dt
}

func (s *Scene) step(dt float32) {
	for idx := range s.spheres {
		s.spheres[idx].integrate(gravity, dt)
	}

	for i := range s.spheres {
		for j := i + 1; j < len(s.spheres); j++ {
			collide(&s.spheres[i], &s.spheres[j], restitution)
		}
	}

	// walls last, so no sphere is pushed out of the box by a collision
	for idx := range s.spheres {
		s.spheres[idx].bounce(halfExtent, restitution)
	}
}

func (s *Scene) Render() {
	s.renderer.Clear(colorBackground)

	projection := glm.Perspective(glm.DegToRad[float32](45), s.aspect, 0.1, 100)
	viewProjection := projection.Mul(s.camera.View())

	floor := glm.TranslationMat4(0, -halfExtent[1], 0).
		Mul(glm.ScaleMat4(halfExtent[0], 1, halfExtent[2]))

	s.renderer.DrawMesh(s.floorMesh, viewProjection.Mul(floor), colorFloor)

	for idx, sphere := range s.spheres {
		x, y, z := sphere.Position.XYZ()
		r := sphere.Radius

		model := glm.TranslationMat4(x, y, z).Mul(glm.ScaleMat4(r, r, r))
		s.renderer.DrawMesh(s.sphereMesh, viewProjection.Mul(model), s.colors[idx])
	}
}

func (s *Scene) Exit() {
	s.renderer.ReleaseMesh(s.sphereMesh)
	s.renderer.ReleaseMesh(s.floorMesh)

	s.sphereMesh = gfx.Mesh{}
	s.floorMesh = gfx.Mesh{}

	s.spheres = nil
	s.colors = nil
}

// Snapshot is the observable simulation state.
type Snapshot struct {
	Elapsed time.Duration
	Camera  Camera
	Spheres []Sphere
}

func (s *Scene) Snapshot() Snapshot {
	return Snapshot{
		Elapsed: s.elapsed,
		Camera:  s.camera,
		Spheres: append([]Sphere(nil), s.spheres...),
	}
}

func randf(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

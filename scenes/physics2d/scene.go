// Package physics2d is a scene of balls and crates tumbling through a box2d world.
package physics2d

import (
	"fmt"
	"log/slog"
	"time"

	b2 "github.com/oliverbestmann/box2d-go"
	"github.com/oliverbestmann/stride/gfx"
	"github.com/oliverbestmann/stride/glimpse"
	"github.com/oliverbestmann/stride/glm"
	"github.com/oliverbestmann/stride/orion"
	"github.com/oliverbestmann/stride/scenes"
)

// height of the visible area in meters
const viewHeight = 16

const (
	ballRadius = 0.35
	ballRows   = 6
	ballCols   = 8

	// upward force applied to every ball while space is held down
	pushForce = 12

	maxCrates = 32
)

var (
	colorBackground = gfx.ColorSRGBA(0.10, 0.11, 0.14, 1)
	colorWall       = gfx.ColorSRGBA(0.35, 0.37, 0.42, 1)
	colorCrate      = gfx.ColorSRGBA(0.80, 0.55, 0.25, 1)
)

type Wall struct {
	Body     b2.Body
	Vertices []glm.Vec2f
}

type Ball struct {
	Body  b2.Body
	Color gfx.Color
}

type Crate struct {
	Body b2.Body

	// triangles in body space
	Vertices []glm.Vec2f
}

type Scene struct {
	renderer gfx.Renderer
	keyboard glimpse.Keyboard

	projection glm.Mat3f

	world  b2.World
	walls  []Wall
	balls  []Ball
	crates []Crate

	ballVertices []glm.Vec2f

	elapsed time.Duration
	pushing bool
}

var _ orion.Scene = (*Scene)(nil)

func New(env orion.Env) *Scene {
	aspect := float32(1)
	if env.Height > 0 {
		aspect = float32(env.Width) / float32(env.Height)
	}

	viewWidth := viewHeight * aspect

	return &Scene{
		renderer: env.Renderer,
		keyboard: env.Keyboard,

		// maps the visible area around (0, 7) to normalized device coordinates
		projection: glm.ScaleMat3[float32](2/viewWidth, 2/viewHeight).Translate(0, -7),
	}
}

func (s *Scene) Init() error {
	worldDef := b2.DefaultWorldDef()
	worldDef.Gravity = b2.Vec2{X: 0, Y: -10}
	s.world = b2.CreateWorld(worldDef)

	walls := []glm.Rectangle2f{
		// ground
		glm.RectangleFromPoints(glm.Vec2f{-10, -1}, glm.Vec2f{10, 0}),

		// left and right border
		glm.RectangleFromPoints(glm.Vec2f{-11, -1}, glm.Vec2f{-10, 15}),
		glm.RectangleFromPoints(glm.Vec2f{10, -1}, glm.Vec2f{11, 15}),

		// a ramp in the middle
		glm.RectangleFromPoints(glm.Vec2f{-3, 3}, glm.Vec2f{3, 3.3}),
	}

	for _, rect := range walls {
		wall, err := s.createWall(rect)
		if err != nil {
			return err
		}

		s.walls = append(s.walls, wall)
	}

	for row := range ballRows {
		for col := range ballCols {
			position := glm.Vec2f{
				float32(col)*1.2 - float32(ballCols-1)*0.6,
				6 + float32(row)*1.0,
			}

			// balls of neighbouring columns are slightly offset so the grid collapses
			if col%2 == 1 {
				position[1] += 0.5
			}

			hue := float32(row*ballCols+col) / float32(ballRows*ballCols)
			s.balls = append(s.balls, s.createBall(position, hue))
		}
	}

	for idx := range 4 {
		position := glm.Vec2f{-7.5 + float32(idx)*5, 1.5}

		crate, err := s.createCrate(position, 0.6, glm.Rad(float32(idx)*0.3))
		if err != nil {
			return err
		}

		s.crates = append(s.crates, crate)
	}

	s.ballVertices = gfx.Circle(ballRadius, 24)

	slog.Info("Physics world created",
		slog.Int("balls", len(s.balls)),
		slog.Int("crates", len(s.crates)),
	)

	return nil
}

func (s *Scene) createWall(rect glm.Rectangle2f) (Wall, error) {
	center := rect.Center()
	halfSize := rect.Size().Scale(0.5)

	points := []glm.Vec2f{
		{-halfSize[0], -halfSize[1]},
		{halfSize[0], -halfSize[1]},
		{halfSize[0], halfSize[1]},
		{-halfSize[0], halfSize[1]},
	}

	hull, ok := b2.ComputeHull(b2Vecs(points))
	if !ok {
		return Wall{}, fmt.Errorf("compute hull of wall %v", rect)
	}

	def := b2.DefaultBodyDef()
	def.Type1 = b2.StaticBody
	def.Position = b2Vec(center)
	body := s.world.CreateBody(def)

	shape := b2.DefaultShapeDef()
	shape.Material.Restitution = 0.2
	body.CreatePolygonShape(shape, b2.MakePolygon(hull, 0))

	return Wall{Body: body, Vertices: gfx.Quad(rect)}, nil
}

func (s *Scene) createBall(position glm.Vec2f, hue float32) Ball {
	def := b2.DefaultBodyDef()
	def.Type1 = b2.DynamicBody
	def.Position = b2Vec(position)
	def.LinearDamping = 0.1
	body := s.world.CreateBody(def)

	shape := b2.DefaultShapeDef()
	shape.Density = 1
	shape.Material.Restitution = 0.5
	body.CreateCircleShape(shape, b2.Circle{Radius: ballRadius})

	return Ball{
		Body:  body,
		Color: gfx.ColorSRGBA(0.3+0.6*hue, 0.5, 0.9-0.6*hue, 1),
	}
}

func (s *Scene) createCrate(position glm.Vec2f, halfSize float32, angle glm.Rad) (Crate, error) {
	var points []glm.Vec2f
	for _, corner := range []glm.Vec2f{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		points = append(points, glm.RotationMat3[float32](angle).Transform2(corner.Scale(halfSize)))
	}

	hull, ok := b2.ComputeHull(b2Vecs(points))
	if !ok {
		return Crate{}, fmt.Errorf("compute hull of crate at %v", position)
	}

	def := b2.DefaultBodyDef()
	def.Type1 = b2.DynamicBody
	def.Position = b2Vec(position)
	body := s.world.CreateBody(def)

	shape := b2.DefaultShapeDef()
	shape.Density = 2
	shape.Material.Restitution = 0.1
	body.CreatePolygonShape(shape, b2.MakePolygon(hull, 0))

	return Crate{Body: body, Vertices: gfx.Fan(points)}, nil
}

func (s *Scene) Update(dt time.Duration) {
	s.pushing = s.keyboard.IsKeyPressed(glimpse.KeySpace)

	if s.keyboard.IsKeyJustPressed(glimpse.KeyEnter) && len(s.crates) < maxCrates {
		s.dropCrate()
	}

	for step := range scenes.SubSteps(dt, scenes.MaxStep) {
		if s.pushing {
			// forces are cleared after every step
			for _, ball := range s.balls {
				ball.Body.ApplyForceToCenter(b2.Vec2{X: 0, Y: pushForce}, 1)
			}
		}

		s.world.Step(scenes.Seconds(step), 4)
	}

	s.elapsed += dt
}

// dropCrate adds a crate above the ramp. Crates alternate between both sides.
func (s *Scene) dropCrate() {
	side := float32(1 - 2*(len(s.crates)%2))
	position := glm.Vec2f{side * 1.5, 13}

	crate, err := s.createCrate(position, 0.5, glm.Rad(float32(len(s.crates))*0.4))
	if err != nil {
		slog.Warn("Failed to drop crate", slog.String("error", err.Error()))
		return
	}

	s.crates = append(s.crates, crate)
}

func (s *Scene) Render() {
	s.renderer.Clear(colorBackground)

	for _, wall := range s.walls {
		s.renderer.DrawTriangles(wall.Vertices, s.projection, colorWall)
	}

	for _, crate := range s.crates {
		pos := toVec(crate.Body.GetPosition())
		angle := glm.Rad(crate.Body.GetRotation().Angle())

		transform := s.projection.
			Translate(pos[0], pos[1]).
			Mul(glm.RotationMat3[float32](angle))

		s.renderer.DrawTriangles(crate.Vertices, transform, colorCrate)
	}

	for _, ball := range s.balls {
		pos := toVec(ball.Body.GetPosition())
		s.renderer.DrawTriangles(s.ballVertices, s.projection.Translate(pos[0], pos[1]), ball.Color)
	}
}

func (s *Scene) Exit() {
	// destroys all bodies and shapes of the world
	s.world.DestroyWorld()

	var none b2.World
	s.world = none

	s.walls = nil
	s.balls = nil
	s.crates = nil
	s.ballVertices = nil

	slog.Info("Physics world released", slog.Duration("simulated", s.elapsed))
}

// Snapshot is the observable simulation state.
type Snapshot struct {
	Elapsed time.Duration

	Balls  []BodyState
	Crates []BodyState
}

type BodyState struct {
	Position glm.Vec2f
	Velocity glm.Vec2f
}

func (s *Scene) Snapshot() Snapshot {
	snapshot := Snapshot{Elapsed: s.elapsed}

	for _, ball := range s.balls {
		snapshot.Balls = append(snapshot.Balls, bodyStateOf(ball.Body))
	}

	for _, crate := range s.crates {
		snapshot.Crates = append(snapshot.Crates, bodyStateOf(crate.Body))
	}

	return snapshot
}

func bodyStateOf(body b2.Body) BodyState {
	return BodyState{
		Position: toVec(body.GetPosition()),
		Velocity: toVec(body.GetLinearVelocity()),
	}
}

func toVec(v b2.Vec2) glm.Vec2f {
	return glm.Vec2f{v.X, v.Y}
}

func b2Vec(v glm.Vec2f) b2.Vec2 {
	return b2.Vec2{X: v[0], Y: v[1]}
}

func b2Vecs(vecs []glm.Vec2f) []b2.Vec2 {
	points := make([]b2.Vec2, len(vecs))
	for idx, vec := range vecs {
		points[idx] = b2Vec(vec)
	}

	return points
}

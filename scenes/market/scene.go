// Package market is a top down supermarket. Shoppers arrive at a rate that
// follows a noise curve, pick items from the aisles and queue at the
// checkouts, while the player pushes a cart around.
package market

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/furui/fastnoiselite-go"
	"github.com/oliverbestmann/stride/gfx"
	"github.com/oliverbestmann/stride/gfx/vector"
	"github.com/oliverbestmann/stride/glimpse"
	"github.com/oliverbestmann/stride/glm"
	"github.com/oliverbestmann/stride/orion"
	"github.com/oliverbestmann/stride/scenes"
)

const (
	// mean number of shoppers arriving per second
	arrivalRate = 0.4

	maxShoppers = 60

	cartSpeed  = 4.0
	cartRadius = 0.5

	shopperRadius = 0.35
)

var (
	colorBackground = gfx.ColorSRGBA(0.08, 0.08, 0.09, 1)
	colorFloor      = gfx.ColorSRGBA(0.85, 0.84, 0.80, 1)
	colorShelf      = gfx.ColorSRGBA(0.45, 0.30, 0.20, 1)
	colorCounter    = gfx.ColorSRGBA(0.30, 0.35, 0.45, 1)
	colorCart       = gfx.ColorSRGBA(0.85, 0.15, 0.15, 1)
	colorWall       = gfx.ColorSRGBA(0.20, 0.20, 0.22, 1)
	colorMarking    = gfx.ColorSRGBA(0.95, 0.85, 0.20, 1)

	colorPhase = map[Phase]gfx.Color{
		PhaseShopping: gfx.ColorSRGBA(0.20, 0.55, 0.85, 1),
		PhaseQueueing: gfx.ColorSRGBA(0.95, 0.70, 0.15, 1),
		PhaseLeaving:  gfx.ColorSRGBA(0.30, 0.75, 0.35, 1),
	}
)

type Checkout struct {
	Queue []*Shopper

	// remaining service time of the first shopper in the queue,
	// negative while nobody is being served
	Remaining float32
}

type Stats struct {
	Arrived int
	Served  int
	Revenue float32
}

type Scene struct {
	renderer gfx.Renderer
	keyboard glimpse.Keyboard

	projection glm.Mat3f

	seed  uint64
	rng   *rand.Rand
	noise *fastnoiselite.FastNoiseLite

	store     Store
	checkouts []Checkout
	shoppers  []*Shopper
	player    glm.Vec2f

	// fractional shoppers accumulated until the next arrival
	pending float32
	nextID  int

	elapsed time.Duration
	stats   Stats

	// static geometry
	circle   []glm.Vec2f
	cart     []glm.Vec2f
	walls    []glm.Vec2f
	markings []glm.Vec2f
}

var _ orion.Scene = (*Scene)(nil)

func New(env orion.Env) *Scene {
	aspect := float32(1)
	if env.Height > 0 {
		aspect = float32(env.Width) / float32(env.Height)
	}

	store := NewStore()

	// fit the store into the window, keeping the aspect ratio
	viewWidth := max(store.Bounds.Width(), store.Bounds.Height()*aspect) + 2
	viewHeight := viewWidth / aspect
	center := store.Bounds.Center()

	return &Scene{
		renderer: env.Renderer,
		keyboard: env.Keyboard,
		store:    store,
		seed:     7,

		projection: glm.ScaleMat3(2/viewWidth, 2/viewHeight).Translate(-center[0], -center[1]),
	}
}

func (s *Scene) Init() error {
	s.rng = rand.New(rand.NewPCG(s.seed, 3))

	s.noise = fastnoiselite.NewNoise()
	s.noise.SetNoiseType(fastnoiselite.NoiseTypeOpenSimplex2)
	s.noise.FractalType = fastnoiselite.FractalTypeFBm
	s.noise.Frequency = 0.05
	s.noise.SetFractalOctaves(3)

	s.checkouts = make([]Checkout, len(s.store.Checkouts))
	for idx := range s.checkouts {
		s.checkouts[idx].Remaining = -1
	}

	s.player = s.startPosition()

	s.circle = gfx.Circle(1, 16)
	s.cart = vector.Fill(roundedSquare(cartRadius, 0.2))
	s.walls = vector.Stroke(outline(s.store.Bounds, 1.5), 0.3)
	s.markings = queueMarkings(&s.store)

	slog.Info("Supermarket opened",
		slog.Int("shelves", len(s.store.Shelves)),
		slog.Int("checkouts", len(s.store.Checkouts)),
	)

	return nil
}

// Intensity scales the arrival rate at the given point in time.
// It stays within [0, 2].
func (s *Scene) Intensity(t float32) float32 {
	value := float32(s.noise.GetNoise2D(fastnoiselite.FNLfloat(t), 0))
	return 1 + min(max(value, -1), 1)
}

func (s *Scene) startPosition() glm.Vec2f {
	return s.store.Entrance.Add(glm.Vec2f{2, 2})
}

func (s *Scene) Update(dt time.Duration) {
	if s.keyboard.IsKeyJustPressed(glimpse.KeyR) {
		s.player = s.startPosition()
	}

	var direction glm.Vec2f

	if s.keyboard.IsKeyPressed(glimpse.KeyW) {
		direction[1] += 1
	}

	if s.keyboard.IsKeyPressed(glimpse.KeyS) {
		direction[1] -= 1
	}

	if s.keyboard.IsKeyPressed(glimpse.KeyA) {
		direction[0] -= 1
	}

	if s.keyboard.IsKeyPressed(glimpse.KeyD) {
		direction[0] += 1
	}

	velocity := direction.Normalize().Scale(cartSpeed)

	for step := range scenes.SubSteps(dt, scenes.MaxStep) {
		s.elapsed += step
		s.step(scenes.Seconds(step), velocity)
	}
}

func (s *Scene) step(dt float32, velocity glm.Vec2f) {
	s.player = s.store.Resolve(s.player.Add(velocity.Scale(dt)), cartRadius)

	s.pending += arrivalRate * s.Intensity(float32(s.elapsed.Seconds())) * dt
	for s.pending >= 1 {
		s.pending -= 1

		if len(s.shoppers) < maxShoppers {
			s.spawn()
		}
	}

	for _, shopper := range s.shoppers {
		switch shopper.Phase {
		case PhaseShopping:
			if shopper.walk(dt) {
				s.enqueue(shopper)
			}

		case PhaseQueueing:
			queue := s.checkouts[shopper.Checkout].Queue
			slot := s.store.QueueSlot(shopper.Checkout, slices.Index(queue, shopper))
			shopper.Position, _, _ = moveTowards(shopper.Position, slot, shopper.Speed*dt)

		case PhaseLeaving:
			shopper.walk(dt)
		}
	}

	for idx := range s.checkouts {
		s.serve(idx, dt)
	}

	// shoppers that reached the exit leave the store
	s.shoppers = slices.DeleteFunc(s.shoppers, func(shopper *Shopper) bool {
		return shopper.Phase == PhaseLeaving && len(shopper.Waypoints) == 0
	})
}

func (s *Scene) spawn() {
	shopper := &Shopper{
		ID:       s.nextID,
		Phase:    PhaseShopping,
		Position: s.store.Entrance,
		Speed:    randf(s.rng, 1.2, 1.8),
		Items:    s.rng.IntN(4) + 1,
	}

	s.nextID++
	s.stats.Arrived++

	position := shopper.Position
	for range shopper.Items {
		aisle := s.store.Aisles[s.rng.IntN(len(s.store.Aisles))]
		target := glm.Vec2f{aisle, randf(s.rng, s.store.PickMin, s.store.PickMax)}

		shopper.Waypoints = append(shopper.Waypoints, s.store.Route(position, target)...)
		shopper.Basket += randf(s.rng, 1, 12)

		position = target
	}

	// back to the front of the store
	shopper.Waypoints = append(shopper.Waypoints, glm.Vec2f{position[0], s.store.FrontAisle})

	s.shoppers = append(s.shoppers, shopper)
}

// enqueue lines the shopper up at the checkout with the shortest queue.
func (s *Scene) enqueue(shopper *Shopper) {
	best := 0
	for idx := range s.checkouts {
		if len(s.checkouts[idx].Queue) < len(s.checkouts[best].Queue) {
			best = idx
		}
	}

	shopper.Phase = PhaseQueueing
	shopper.Checkout = best

	s.checkouts[best].Queue = append(s.checkouts[best].Queue, shopper)
}

func (s *Scene) serve(idx int, dt float32) {
	checkout := &s.checkouts[idx]
	if len(checkout.Queue) == 0 {
		return
	}

	head := checkout.Queue[0]

	if checkout.Remaining < 0 {
		// service starts once the shopper reached the counter
		if head.Position != s.store.QueueSlot(idx, 0) {
			return
		}

		checkout.Remaining = 1.5 + 0.4*float32(head.Items)
	}

	checkout.Remaining -= dt
	if checkout.Remaining > 0 {
		return
	}

	checkout.Remaining = -1
	checkout.Queue = checkout.Queue[1:]

	s.stats.Served++
	s.stats.Revenue += head.Basket

	head.Phase = PhaseLeaving
	head.Waypoints = []glm.Vec2f{
		{head.Position[0], s.store.Exit[1]},
		s.store.Exit,
	}

	slog.Debug("Shopper served",
		slog.Int("shopper", head.ID),
		slog.Int("checkout", idx),
		slog.Float64("basket", float64(head.Basket)),
	)
}

func (s *Scene) Render() {
	s.renderer.Clear(colorBackground)

	s.renderer.DrawTriangles(gfx.Quad(s.store.Bounds), s.projection, colorFloor)
	s.renderer.DrawTriangles(s.markings, s.projection, colorMarking)
	s.renderer.DrawTriangles(s.walls, s.projection, colorWall)

	for _, shelf := range s.store.Shelves {
		s.renderer.DrawTriangles(gfx.Quad(shelf), s.projection, colorShelf)
	}

	for idx := range s.store.Checkouts {
		s.renderer.DrawTriangles(gfx.Quad(s.store.CheckoutCounter(idx)), s.projection, colorCounter)
	}

	for _, shopper := range s.shoppers {
		transform := s.projection.
			Translate(shopper.Position[0], shopper.Position[1]).
			Scale(shopperRadius, shopperRadius)

		s.renderer.DrawTriangles(s.circle, transform, colorPhase[shopper.Phase])
	}

	s.renderer.DrawTriangles(s.cart, s.projection.Translate(s.player[0], s.player[1]), colorCart)
}

func (s *Scene) Exit() {
	slog.Info("Supermarket closed",
		slog.Int("arrived", s.stats.Arrived),
		slog.Int("served", s.stats.Served),
		slog.Float64("revenue", float64(s.stats.Revenue)),
	)

	s.shoppers = nil
	s.checkouts = nil
	s.noise = nil
	s.rng = nil
	s.circle = nil
	s.cart = nil
	s.walls = nil
	s.markings = nil
}

// outline builds the border of the rectangle with rounded corners.
func outline(rect glm.Rectangle2f, radius float32) *vector.Path {
	x0, y0 := rect.Min.XY()
	x1, y1 := rect.Max.XY()

	var path vector.Path
	path.MoveTo(glm.Vec2f{x0 + radius, y0})
	path.LineTo(glm.Vec2f{x1 - radius, y0})
	path.QuadTo(glm.Vec2f{x1, y0}, glm.Vec2f{x1, y0 + radius})
	path.LineTo(glm.Vec2f{x1, y1 - radius})
	path.QuadTo(glm.Vec2f{x1, y1}, glm.Vec2f{x1 - radius, y1})
	path.LineTo(glm.Vec2f{x0 + radius, y1})
	path.QuadTo(glm.Vec2f{x0, y1}, glm.Vec2f{x0, y1 - radius})
	path.LineTo(glm.Vec2f{x0, y0 + radius})
	path.QuadTo(glm.Vec2f{x0, y0}, glm.Vec2f{x0 + radius, y0})

	return &path
}

// roundedSquare builds a square around the origin. Corners are quarter circles
// approximated by cubic curves.
func roundedSquare(half, radius float32) *vector.Path {
	// control point distance for a quarter circle
	k := radius * 0.5523

	inner := half - radius

	path := vector.Path{Tolerance: 0.01}
	path.MoveTo(glm.Vec2f{-inner, -half})
	path.LineTo(glm.Vec2f{inner, -half})
	path.CubicTo(glm.Vec2f{inner + k, -half}, glm.Vec2f{half, -inner - k}, glm.Vec2f{half, -inner})
	path.LineTo(glm.Vec2f{half, inner})
	path.CubicTo(glm.Vec2f{half, inner + k}, glm.Vec2f{inner + k, half}, glm.Vec2f{inner, half})
	path.LineTo(glm.Vec2f{-inner, half})
	path.CubicTo(glm.Vec2f{-inner - k, half}, glm.Vec2f{-half, inner + k}, glm.Vec2f{-half, inner})
	path.LineTo(glm.Vec2f{-half, -inner})
	path.CubicTo(glm.Vec2f{-half, -inner - k}, glm.Vec2f{-inner - k, -half}, glm.Vec2f{-inner, -half})
	path.Close()

	return &path
}

// queueMarkings draws a line on the floor along which shoppers queue up.
func queueMarkings(store *Store) []glm.Vec2f {
	var vertices []glm.Vec2f

	for idx := range store.Checkouts {
		offset := glm.Vec2f{-0.5, 0}

		line := []glm.Vec2f{
			store.QueueSlot(idx, 0).Add(offset),
			store.QueueSlot(idx, 3).Add(offset),
		}

		vertices = vector.StrokeLine(vertices, line, 0.08)
	}

	return vertices
}

// Snapshot is the observable simulation state.
type Snapshot struct {
	Elapsed time.Duration
	Stats   Stats
	Player  glm.Vec2f

	Shoppers []Shopper

	// shopper ids per checkout
	Queues [][]int
}

func (s *Scene) Snapshot() Snapshot {
	snapshot := Snapshot{
		Elapsed: s.elapsed,
		Stats:   s.stats,
		Player:  s.player,
	}

	for _, shopper := range s.shoppers {
		copied := *shopper
		copied.Waypoints = slices.Clone(shopper.Waypoints)
		snapshot.Shoppers = append(snapshot.Shoppers, copied)
	}

	for _, checkout := range s.checkouts {
		var ids []int
		for _, shopper := range checkout.Queue {
			ids = append(ids, shopper.ID)
		}

		snapshot.Queues = append(snapshot.Queues, ids)
	}

	return snapshot
}

func randf(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

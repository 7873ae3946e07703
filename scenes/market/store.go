package market

import "github.com/oliverbestmann/stride/glm"

// Store is the static floor plan of the supermarket.
type Store struct {
	Bounds glm.Rectangle2f

	Shelves []glm.Rectangle2f

	// x coordinates of the aisles between the shelves
	Aisles []float32

	// y coordinate of the cross aisle in front of the shelves
	FrontAisle float32

	// vertical extent of the aisles in which products can be picked
	PickMin, PickMax float32

	Checkouts []glm.Vec2f

	Entrance glm.Vec2f
	Exit     glm.Vec2f
}

const queueSpacing = 1.0

func NewStore() Store {
	store := Store{
		Bounds:     glm.RectangleFromPoints(glm.Vec2f{0, 0}, glm.Vec2f{40, 30}),
		FrontAisle: 6,
		PickMin:    9,
		PickMax:    23,
		Entrance:   glm.Vec2f{2, 1},
		Exit:       glm.Vec2f{38, 1},
	}

	store.Aisles = append(store.Aisles, 3)

	for idx := range 5 {
		x := 6 + float32(idx)*6
		store.Shelves = append(store.Shelves, glm.RectangleFromPoints(glm.Vec2f{x, 8}, glm.Vec2f{x + 1.5, 24}))
		store.Aisles = append(store.Aisles, x+3.75)
	}

	for idx := range 4 {
		store.Checkouts = append(store.Checkouts, glm.Vec2f{8 + float32(idx)*8, 3})
	}

	return store
}

// Route returns the waypoints to walk from one point to another without
// crossing a shelf, using the front aisle when the aisle changes.
func (s *Store) Route(from, to glm.Vec2f) []glm.Vec2f {
	if from[0] == to[0] {
		return []glm.Vec2f{to}
	}

	return []glm.Vec2f{
		{from[0], s.FrontAisle},
		{to[0], s.FrontAisle},
		to,
	}
}

// QueueSlot is the position of the n-th shopper waiting at a checkout.
// Slot zero is at the counter.
func (s *Store) QueueSlot(checkout, slot int) glm.Vec2f {
	return s.Checkouts[checkout].Add(glm.Vec2f{0, queueSpacing * float32(slot+1)})
}

// CheckoutCounter is the area of the counter next to the checkout position.
func (s *Store) CheckoutCounter(checkout int) glm.Rectangle2f {
	pos := s.Checkouts[checkout]
	return glm.RectangleFromPoints(pos.Add(glm.Vec2f{0.6, -1}), pos.Add(glm.Vec2f{1.6, 1}))
}

// Resolve moves a circle of the given radius out of the shelves and into
// the store.
func (s *Store) Resolve(position glm.Vec2f, radius float32) glm.Vec2f {
	position = s.Bounds.Grow(-radius).Clamp(position)

	for _, shelf := range s.Shelves {
		position = pushOut(shelf.Grow(radius), position)
	}

	return position
}

// pushOut moves a point inside of the rectangle to the closest border.
func pushOut(rect glm.Rectangle2f, point glm.Vec2f) glm.Vec2f {
	if !rect.Contains(point) {
		return point
	}

	left := point[0] - rect.Min[0]
	right := rect.Max[0] - point[0]
	bottom := point[1] - rect.Min[1]
	top := rect.Max[1] - point[1]

	switch min(left, right, bottom, top) {
	case left:
		point[0] = rect.Min[0]
	case right:
		point[0] = rect.Max[0]
	case bottom:
		point[1] = rect.Min[1]
	default:
		point[1] = rect.Max[1]
	}

	return point
}

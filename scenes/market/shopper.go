package market

import "github.com/oliverbestmann/stride/glm"

//go:generate go tool stringer -type=Phase -trimprefix=Phase

type Phase int

const (
	PhaseShopping Phase = iota
	PhaseQueueing
	PhaseLeaving
)

type Shopper struct {
	ID    int
	Phase Phase

	Position glm.Vec2f
	Speed    float32

	// remaining points to walk to
	Waypoints []glm.Vec2f

	Items  int
	Basket float32

	// index of the checkout, valid while queueing
	Checkout int
}

// walk moves the shopper along its waypoints. Returns true once the last
// waypoint was reached.
func (s *Shopper) walk(dt float32) bool {
	budget := s.Speed * dt

	for len(s.Waypoints) > 0 {
		var arrived bool
		s.Position, budget, arrived = moveTowards(s.Position, s.Waypoints[0], budget)
		if !arrived {
			return false
		}

		s.Waypoints = s.Waypoints[1:]
	}

	return true
}

// moveTowards moves by at most distance towards the target and returns the
// distance that is left over once the target is reached.
func moveTowards(position, target glm.Vec2f, distance float32) (glm.Vec2f, float32, bool) {
	delta := target.Sub(position)

	length := delta.Length()
	if length <= distance {
		return target, distance - length, true
	}

	return position.Add(delta.Scale(distance / length)), 0, false
}

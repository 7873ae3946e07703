package physics3d

import "github.com/oliverbestmann/stride/glm"

type Sphere struct {
	Position glm.Vec3f
	Velocity glm.Vec3f

	Radius float32
	Mass   float32
}

// integrate advances the sphere using semi-implicit euler.
func (s *Sphere) integrate(gravity glm.Vec3f, dt float32) {
	s.Velocity = s.Velocity.Add(gravity.Scale(dt))
	s.Position = s.Position.Add(s.Velocity.Scale(dt))
}

// bounce keeps the sphere inside of a box centered at the origin.
func (s *Sphere) bounce(halfExtent glm.Vec3f, restitution float32) {
	for axis := range 3 {
		lower := -halfExtent[axis] + s.Radius
		upper := halfExtent[axis] - s.Radius

		if s.Position[axis] < lower {
			s.Position[axis] = lower
			if s.Velocity[axis] < 0 {
				s.Velocity[axis] = -s.Velocity[axis] * restitution
			}
		}

		if s.Position[axis] > upper {
			s.Position[axis] = upper
			if s.Velocity[axis] > 0 {
				s.Velocity[axis] = -s.Velocity[axis] * restitution
			}
		}
	}
}

// collide resolves an overlap between two spheres. Returns true if the
// spheres were in contact.
func collide(a, b *Sphere, restitution float32) bool {
	delta := b.Position.Sub(a.Position)

	distance := delta.Length()
	if distance == 0 || distance >= a.Radius+b.Radius {
		return false
	}

	normal := delta.Scale(1 / distance)

	invMassA := 1 / a.Mass
	invMassB := 1 / b.Mass
	invMassSum := invMassA + invMassB

	// move the spheres apart, the lighter one moves further
	overlap := a.Radius + b.Radius - distance
	a.Position = a.Position.Sub(normal.Scale(overlap * invMassA / invMassSum))
	b.Position = b.Position.Add(normal.Scale(overlap * invMassB / invMassSum))

	// only apply an impulse if the spheres move towards each other
	approach := b.Velocity.Sub(a.Velocity).Dot(normal)
	if approach >= 0 {
		return true
	}

	impulse := -(1 + restitution) * approach / invMassSum
	a.Velocity = a.Velocity.Sub(normal.Scale(impulse * invMassA))
	b.Velocity = b.Velocity.Add(normal.Scale(impulse * invMassB))

	return true
}

package physics3d

import (
	"math"

	"github.com/oliverbestmann/stride/glm"
)

// Camera orbits around the origin.
type Camera struct {
	Yaw      glm.Rad
	Pitch    glm.Rad
	Distance float32
}

const maxPitch = glm.Rad(math.Pi/2 - 0.1)

func (c *Camera) Rotate(yaw, pitch glm.Rad) {
	c.Yaw += yaw
	c.Pitch = min(max(c.Pitch+pitch, -maxPitch), maxPitch)
}

func (c Camera) Eye() glm.Vec3f {
	sinYaw, cosYaw := glm.Sincos(c.Yaw)
	sinPitch, cosPitch := glm.Sincos(c.Pitch)

	return glm.Vec3f{
		c.Distance * cosPitch * sinYaw,
		c.Distance * sinPitch,
		c.Distance * cosPitch * cosYaw,
	}
}

func (c Camera) View() glm.Mat4f {
	return glm.LookAt(c.Eye(), glm.Vec3f{0, 0, 0}, glm.Vec3f{0, 1, 0})
}

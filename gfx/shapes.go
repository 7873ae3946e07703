package gfx

import (
	"math"

	"github.com/oliverbestmann/stride/glm"
)

// Quad returns two triangles covering the rectangle.
func Quad(rect glm.Rectangle2f) []glm.Vec2f {
	x0, y0 := rect.Min.XY()
	x1, y1 := rect.Max.XY()

	return []glm.Vec2f{
		{x0, y0}, {x1, y0}, {x1, y1},
		{x0, y0}, {x1, y1}, {x0, y1},
	}
}

// Fan triangulates a convex polygon.
func Fan(points []glm.Vec2f) []glm.Vec2f {
	var vertices []glm.Vec2f
	for idx := 2; idx < len(points); idx++ {
		vertices = append(vertices, points[0], points[idx-1], points[idx])
	}

	return vertices
}

// Circle returns a triangle fan approximating a circle around the origin.
func Circle(radius float32, segments int) []glm.Vec2f {
	points := make([]glm.Vec2f, segments)
	for idx := range points {
		angle := glm.Rad(float32(idx) * 2 * math.Pi / float32(segments))
		s, c := glm.Sincos(angle)
		points[idx] = glm.Vec2f{c * radius, s * radius}
	}

	return Fan(points)
}

// Sphere returns the triangle list of a unit uv sphere.
func Sphere(rings, sectors int) []glm.Vec3f {
	pointAt := func(ring, sector int) glm.Vec3f {
		theta := glm.Rad(float32(ring) * math.Pi / float32(rings))
		phi := glm.Rad(float32(sector) * 2 * math.Pi / float32(sectors))

		sinTheta, cosTheta := glm.Sincos(theta)
		sinPhi, cosPhi := glm.Sincos(phi)

		return glm.Vec3f{sinTheta * cosPhi, cosTheta, sinTheta * sinPhi}
	}

	var vertices []glm.Vec3f
	for ring := range rings {
		for sector := range sectors {
			a := pointAt(ring, sector)
			b := pointAt(ring+1, sector)
			c := pointAt(ring+1, sector+1)
			d := pointAt(ring, sector+1)

			vertices = append(vertices, a, b, c, a, c, d)
		}
	}

	return vertices
}

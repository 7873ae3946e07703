package vector

import (
	"github.com/oliverbestmann/stride/gfx"
	"github.com/oliverbestmann/stride/glm"
)

// Fill triangulates the contours of the path. Every contour must be convex.
func Fill(path *Path) []glm.Vec2f {
	var vertices []glm.Vec2f
	for _, contour := range path.Contours() {
		if len(contour) > 1 && contour[0] == contour[len(contour)-1] {
			contour = contour[:len(contour)-1]
		}

		vertices = append(vertices, gfx.Fan(contour)...)
	}

	return vertices
}

// Stroke returns the triangles of all contours of the path drawn as lines
// of the given width.
func Stroke(path *Path, width float32) []glm.Vec2f {
	var vertices []glm.Vec2f
	for _, contour := range path.Contours() {
		vertices = StrokeLine(vertices, contour, width)
	}

	return vertices
}

// StrokeLine appends the triangles of a polyline to vertices. Segments are
// extended by half the width at both ends, so corners are closed.
func StrokeLine(vertices []glm.Vec2f, points []glm.Vec2f, width float32) []glm.Vec2f {
	half := width / 2

	for idx := 1; idx < len(points); idx++ {
		a, b := points[idx-1], points[idx]

		direction := b.Sub(a).Normalize()
		if direction == (glm.Vec2f{}) {
			continue
		}

		along := direction.Scale(half)
		normal := glm.Vec2f{-along[1], along[0]}

		a = a.Sub(along)
		b = b.Add(along)

		p0 := a.Add(normal)
		p1 := b.Add(normal)
		p2 := b.Sub(normal)
		p3 := a.Sub(normal)

		vertices = append(vertices, p0, p1, p2, p0, p2, p3)
	}

	return vertices
}

// Package vector turns 2d paths into triangle lists that can be drawn
// with gfx.Renderer.DrawTriangles.
package vector

import (
	"github.com/oliverbestmann/stride/glm"
)

// DefaultTolerance is the maximum distance of a flattened curve to the real curve.
const DefaultTolerance = 0.05

// Path is a sequence of contours. Curves are flattened into line segments
// while the path is built.
type Path struct {
	// Tolerance used to flatten curves, DefaultTolerance if zero.
	Tolerance float32

	contours [][]glm.Vec2f
}

func (p *Path) MoveTo(pos glm.Vec2f) {
	p.contours = append(p.contours, []glm.Vec2f{pos})
}

func (p *Path) LineTo(pos glm.Vec2f) {
	p.add(pos)
}

// QuadTo adds a quadratic bezier curve from the current point to end.
func (p *Path) QuadTo(control, end glm.Vec2f) {
	start := p.current()
	p.flattenQuad(start, control, end)
}

// CubicTo adds a cubic bezier curve from the current point to end.
func (p *Path) CubicTo(control1, control2, end glm.Vec2f) {
	start := p.current()
	p.flattenCubic(start, control1, control2, end)
}

// Close connects the current point with the start of the contour.
func (p *Path) Close() {
	if len(p.contours) == 0 {
		return
	}

	contour := p.contours[len(p.contours)-1]
	p.add(contour[0])
}

// Contours returns the flattened contours of the path.
// Consecutive duplicate points are removed.
func (p *Path) Contours() [][]glm.Vec2f {
	return p.contours
}

func (p *Path) current() glm.Vec2f {
	if len(p.contours) == 0 {
		p.MoveTo(glm.Vec2f{})
	}

	contour := p.contours[len(p.contours)-1]
	return contour[len(contour)-1]
}

func (p *Path) add(pos glm.Vec2f) {
	if len(p.contours) == 0 {
		p.MoveTo(pos)
		return
	}

	idx := len(p.contours) - 1
	if contour := p.contours[idx]; contour[len(contour)-1] == pos {
		return
	}

	p.contours[idx] = append(p.contours[idx], pos)
}

func (p *Path) tolerance() float32 {
	if p.Tolerance > 0 {
		return p.Tolerance
	}

	return DefaultTolerance
}

// flattenQuad subdivides the curve until its control point is close
// enough to the chord.
func (p *Path) flattenQuad(p0, p1, p2 glm.Vec2f) {
	if distanceToLine(p1, p0, p2) <= p.tolerance() {
		p.add(p2)
		return
	}

	q0 := mid(p0, p1)
	q1 := mid(p1, p2)
	m := mid(q0, q1)

	p.flattenQuad(p0, q0, m)
	p.flattenQuad(m, q1, p2)
}

func (p *Path) flattenCubic(p0, p1, p2, p3 glm.Vec2f) {
	tolerance := p.tolerance()
	if distanceToLine(p1, p0, p3) <= tolerance && distanceToLine(p2, p0, p3) <= tolerance {
		p.add(p3)
		return
	}

	q0 := mid(p0, p1)
	q1 := mid(p1, p2)
	q2 := mid(p2, p3)

	r0 := mid(q0, q1)
	r1 := mid(q1, q2)

	s := mid(r0, r1)

	p.flattenCubic(p0, q0, r0, s)
	p.flattenCubic(s, r1, q2, p3)
}

func mid(a, b glm.Vec2f) glm.Vec2f {
	return a.Add(b).Scale(0.5)
}

// distanceToLine returns the distance of point to the line through a and b.
func distanceToLine(point, a, b glm.Vec2f) float32 {
	ab := b.Sub(a)

	lengthSqr := ab.LengthSqr()
	if lengthSqr == 0 {
		return point.Sub(a).Length()
	}

	t := point.Sub(a).Dot(ab) / lengthSqr
	closest := a.Add(ab.Scale(t))

	return point.Sub(closest).Length()
}

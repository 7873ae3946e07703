package glm

type Rectangle2[T Numeric] struct {
	Min Vec2[T]
	Max Vec2[T]
}

func RectangleFromSize[T Numeric](pos Vec2[T], size Vec2[T]) Rectangle2[T] {
	return RectangleFromPoints[T](pos, pos.Add(size))
}

func RectangleFromPoints[T Numeric](a, b Vec2[T]) Rectangle2[T] {
	return Rectangle2[T]{
		Min: Vec2[T]{
			min(a[0], b[0]),
			min(a[1], b[1]),
		},
		Max: Vec2[T]{
			max(a[0], b[0]),
			max(a[1], b[1]),
		},
	}
}

func (r Rectangle2[T]) Center() Vec2[T] {
	return r.Min.Add(r.Max).Div(Vec2[T]{2, 2})
}

func (r Rectangle2[T]) Size() Vec2[T] {
	return r.Max.Sub(r.Min)
}

func (r Rectangle2[T]) Width() T {
	return r.Max[0] - r.Min[0]
}

func (r Rectangle2[T]) Height() T {
	return r.Max[1] - r.Min[1]
}

// Contains reports whether the point lies inside the rectangle, including its border.
func (r Rectangle2[T]) Contains(point Vec2[T]) bool {
	return point[0] >= r.Min[0] && point[0] <= r.Max[0] &&
		point[1] >= r.Min[1] && point[1] <= r.Max[1]
}

// Grow returns a rectangle that is extended by amount on every side.
func (r Rectangle2[T]) Grow(amount T) Rectangle2[T] {
	return Rectangle2[T]{
		Min: Vec2[T]{r.Min[0] - amount, r.Min[1] - amount},
		Max: Vec2[T]{r.Max[0] + amount, r.Max[1] + amount},
	}
}

// Clamp returns the point of the rectangle closest to the given point.
func (r Rectangle2[T]) Clamp(point Vec2[T]) Vec2[T] {
	return Vec2[T]{
		min(max(point[0], r.Min[0]), r.Max[0]),
		min(max(point[1], r.Min[1]), r.Max[1]),
	}
}

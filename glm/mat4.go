package glm

// Mat4 is a column major 4x4 matrix, laid out the way opengl expects it.
type Mat4[T Numeric] [16]T

func IdentityMat4[T Numeric]() Mat4[T] {
	return Mat4[T]{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Of builds a matrix from its columns.
func Mat4Of[T Numeric](columns [4][4]T) Mat4[T] {
	var m Mat4[T]
	for col := range 4 {
		copy(m[col*4:col*4+4], columns[col][:])
	}

	return m
}

func TranslationMat4[T Numeric](x, y, z T) Mat4[T] {
	return Mat4[T]{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func ScaleMat4[T Numeric](x, y, z T) Mat4[T] {
	return Mat4[T]{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

func (lhs Mat4[T]) Mul(rhs Mat4[T]) Mat4[T] {
	var result Mat4[T]

	for col := range 4 {
		for row := range 4 {
			var sum T
			for k := range 4 {
				sum += lhs[k*4+row] * rhs[col*4+k]
			}

			result[col*4+row] = sum
		}
	}

	return result
}

func (lhs Mat4[T]) Transform(rhs Vec4[T]) Vec4[T] {
	var result Vec4[T]
	for row := range 4 {
		result[row] = lhs[row]*rhs[0] + lhs[4+row]*rhs[1] + lhs[8+row]*rhs[2] + lhs[12+row]*rhs[3]
	}

	return result
}

package glm

type Mat3f = Mat3[float32]
type Mat4f = Mat4[float32]

type Vec2f = Vec2[float32]
type Vec3f = Vec3[float32]
type Vec4f = Vec4[float32]

type Vec2u = Vec2[uint32]
type Vec2i = Vec2[int]

type Rectangle2f = Rectangle2[float32]

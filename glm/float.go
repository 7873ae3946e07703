package glm

import "golang.org/x/exp/constraints"

type Float interface {
	constraints.Float
}

type Numeric interface {
	constraints.Integer | constraints.Float
}

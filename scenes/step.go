// Package scenes contains helpers shared by the scene implementations.
package scenes

import (
	"iter"
	"time"
)

// MaxStep is the largest time step a simulation is advanced by at once.
const MaxStep = time.Second / 120

// SubSteps splits dt into steps of at most maxStep. The steps add up to
// exactly dt, the last step carries the remainder.
func SubSteps(dt, maxStep time.Duration) iter.Seq[time.Duration] {
	return func(yield func(time.Duration) bool) {
		if maxStep <= 0 {
			panic("maxStep must be positive")
		}

		for dt > 0 {
			step := min(dt, maxStep)
			if !yield(step) {
				return
			}

			dt -= step
		}
	}
}

// Seconds converts a step to the float32 seconds used by the simulations.
func Seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}

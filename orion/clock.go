package orion

import (
	"runtime"
	"time"
)

// Clock is the time source of the Timer.
type Clock interface {
	// Now returns the current time. The time must carry a monotonic reading.
	Now() time.Time

	// Sleep blocks for at least the given duration.
	Sleep(d time.Duration)
}

// SystemClock uses the monotonic system clock. Sleep is precise up to the
// scheduler latency: it sleeps coarsely and spins for the last millisecond.
var SystemClock Clock = systemClock{spin: time.Millisecond}

type systemClock struct {
	spin time.Duration
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (c systemClock) Sleep(d time.Duration) {
	deadline := time.Now().Add(d)

	if coarse := d - c.spin; coarse > 0 {
		time.Sleep(coarse)
	}

	for time.Now().Before(deadline) {
		runtime.Gosched()
	}
}

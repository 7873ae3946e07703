package orion

import "time"

// Timer measures the time between frames and limits the frame rate.
type Timer struct {
	clock Clock

	start time.Time

	// the last sample point, this is the start of the current frame
	last time.Time
}

func NewTimer(clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock
	}

	return &Timer{clock: clock}
}

// StartTimer resets the reference point to now.
func (t *Timer) StartTimer() {
	now := t.clock.Now()
	t.start = now
	t.last = now
}

// ElapsedTime returns the time since the last sample point and records
// now as the new sample point.
func (t *Timer) ElapsedTime() time.Duration {
	now := t.clock.Now()

	elapsed := max(0, now.Sub(t.last))
	t.last = now

	return elapsed
}

// WaitUntil blocks until budget has passed since the last sample point.
// If the budget is already used up, it returns immediately. Missed time is
// not made up in later frames.
func (t *Timer) WaitUntil(budget time.Duration) {
	remaining := budget - t.clock.Now().Sub(t.last)
	if remaining > 0 {
		t.clock.Sleep(remaining)
	}
}

// Total returns the time since StartTimer was called.
func (t *Timer) Total() time.Duration {
	return t.clock.Now().Sub(t.start)
}

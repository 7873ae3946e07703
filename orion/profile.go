package orion

import (
	"log/slog"
	"runtime"
	"time"
)

// PhaseTimes is the time spent in the phases of a single frame.
type PhaseTimes struct {
	Update  time.Duration
	Render  time.Duration
	Present time.Duration
	Wait    time.Duration
}

func (p PhaseTimes) Total() time.Duration {
	return p.Update + p.Render + p.Present + p.Wait
}

// FrameProfile keeps the phase times of the most recent frames.
type FrameProfile struct {
	frames [200]PhaseTimes
	count  int
}

func (p *FrameProfile) record(phases PhaseTimes) {
	p.frames[p.count%len(p.frames)] = phases
	p.count += 1
}

// Average returns the average phase times of the recorded frames.
func (p *FrameProfile) Average() PhaseTimes {
	n := min(p.count, len(p.frames))
	if n == 0 {
		return PhaseTimes{}
	}

	var sum PhaseTimes
	for _, frame := range p.frames[:n] {
		sum.Update += frame.Update
		sum.Render += frame.Render
		sum.Present += frame.Present
		sum.Wait += frame.Wait
	}

	count := time.Duration(n)

	return PhaseTimes{
		Update:  sum.Update / count,
		Render:  sum.Render / count,
		Present: sum.Present / count,
		Wait:    sum.Wait / count,
	}
}

// LogValue reports the average phase times together with memory statistics.
func (p *FrameProfile) LogValue() slog.Value {
	avg := p.Average()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return slog.GroupValue(
		slog.Duration("update", avg.Update),
		slog.Duration("render", avg.Render),
		slog.Duration("present", avg.Present),
		slog.Duration("wait", avg.Wait),
		slog.Uint64("heapObjects", mem.HeapObjects),
		slog.Uint64("gcCycles", uint64(mem.NumGC)),
		slog.Float64("gcFraction", mem.GCCPUFraction),
	)
}

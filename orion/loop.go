package orion

import "log/slog"

// loopOnce runs a single frame. The order of the steps is significant:
// events polled in this frame are only seen by the next frame.
func (a *Application) loopOnce(scene Scene) {
	clock := a.opts.Clock

	startTime := clock.Now()

	scene.Update(a.timer.ElapsedTime())
	updateTime := clock.Now()

	scene.Render()
	renderTime := clock.Now()

	// present the rendered image
	a.window.SwapBuffers()

	// dispatches key and resize callbacks
	a.window.PollEvents()
	presentTime := clock.Now()

	// frame rate limiter
	a.timer.WaitUntil(a.frameBudget)
	endTime := clock.Now()

	a.profile.record(PhaseTimes{
		Update:  updateTime.Sub(startTime),
		Render:  renderTime.Sub(updateTime),
		Present: presentTime.Sub(renderTime),
		Wait:    endTime.Sub(presentTime),
	})

	if a.frames.Tick(endTime) {
		slog.Debug("Frame statistics",
			slog.Float64("fps", a.frames.FPS()),
			slog.Duration("average", a.frames.AverageDuration),
			slog.Duration("max", a.frames.MaxDuration),
			slog.Duration("delta", a.frames.Delta),
			slog.Any("phases", &a.profile),
		)
	}
}

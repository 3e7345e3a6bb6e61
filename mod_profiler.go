package particlefx

import "time"

// Profiler accumulates how long demos spend updating particles and drawing.
type Profiler struct {
	UpdateTime time.Duration
	DrawTime   time.Duration
	Frames     int

	interval time.Duration
	since    time.Time
}

func (p *Profiler) Record(update, draw time.Duration) {
	p.UpdateTime += update
	p.DrawTime += draw
	p.Frames++
}

func (p *Profiler) Reset(now time.Time) {
	p.UpdateTime = 0
	p.DrawTime = 0
	p.Frames = 0
	p.since = now
}

// ProfilerModule logs frame rate and average update/draw cost at debug
// level once per Interval.
type ProfilerModule struct {
	// Interval defaults to one second.
	Interval time.Duration
}

func (mod ProfilerModule) Install(app *App, cmd *Commands) {
	interval := mod.Interval
	if interval <= 0 {
		interval = time.Second
	}
	clock := ensureResource(app, func() *Time { return &Time{Time: time.Now()} })
	p := &Profiler{interval: interval}
	p.Reset(clock.Time)
	cmd.AddResources(p)
	cmd.UseSystem(
		System(profilerSystem).
			InStage(PostRender).
			RunAlways(),
	)
}

func profilerSystem(p *Profiler, t *Time, cmd *Commands) {
	window := t.Time.Sub(p.since)
	if window < p.interval {
		return
	}
	if p.Frames > 0 {
		n := time.Duration(p.Frames)
		cmd.Logger().Debugf("%.1f fps, update %v, draw %v",
			float64(p.Frames)/window.Seconds(), p.UpdateTime/n, p.DrawTime/n)
	}
	p.Reset(t.Time)
}

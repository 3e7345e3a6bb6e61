package particlefx

import (
	"time"
)

type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64
}

type TimeModule struct {
	// Clock defaults to time.Now.
	Clock func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	clock := mod.Clock
	if clock == nil {
		clock = time.Now
	}
	cmd.AddResources(&Time{
		Time: clock(),
		Dt:   0,
	})
	cmd.UseSystem(
		System(func(timeResource *Time) {
			timeSystem(timeResource, clock())
		}).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time, now time.Time) {
	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Frame++
}

package lightlab

import (
	"time"
)

type Time struct {
	Time  time.Time
	Dt    time.Duration
	Start time.Time
}

// Elapsed is the time since the module was installed.
func (t *Time) Elapsed() time.Duration {
	return t.Time.Sub(t.Start)
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{
		Time:  now,
		Dt:    0,
		Start: now,
	})
	app.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
}

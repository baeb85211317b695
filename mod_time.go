package regioncache

import (
	"time"
)

const DefaultTickRate = 20

// Time tracks frame time and a fixed-rate simulation tick. PartialTick is the
// fraction of the current tick that has elapsed, which renderers use to
// interpolate between tick states.
type Time struct {
	Time        time.Time
	Dt          time.Duration
	Tick        uint64
	PartialTick float32

	tickLength  time.Duration
	accumulated time.Duration
}

type TimeModule struct {
	TickRate int
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewTime(time.Now(), mod.TickRate))
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func NewTime(now time.Time, tickRate int) *Time {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Time{
		Time:       now,
		tickLength: time.Second / time.Duration(tickRate),
	}
}

// Advance moves the clock to now.
func (t *Time) Advance(now time.Time) {
	t.Dt = now.Sub(t.Time)
	if t.Dt < 0 {
		t.Dt = 0
	}
	t.Time = now

	t.accumulated += t.Dt
	for t.accumulated >= t.tickLength {
		t.accumulated -= t.tickLength
		t.Tick++
	}
	t.PartialTick = float32(t.accumulated) / float32(t.tickLength)
}

// Seconds is Dt in seconds.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}

func timeSystem(timeResource *Time) {
	timeResource.Advance(time.Now())
}

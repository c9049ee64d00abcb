package engine

import "time"

// Clock is the time source used for frame timing
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock
var SystemClock Clock = systemClock{}

// Timer measures time elapsed since its last Start
type Timer struct {
	clock   Clock
	started time.Time
}

// NewTimer creates a timer already started
func NewTimer(clock Clock) Timer {
	return Timer{clock: clock, started: clock.Now()}
}

func (t *Timer) Start() {
	t.started = t.clock.Now()
}

// ReadMs returns whole milliseconds since Start
func (t *Timer) ReadMs() int64 {
	return t.clock.Now().Sub(t.started).Milliseconds()
}

// ReadSec returns seconds since Start
func (t *Timer) ReadSec() float64 {
	return t.clock.Now().Sub(t.started).Seconds()
}

// FrameStats is the per-frame timing summary
type FrameStats struct {
	FrameCount    uint64
	LastSecFrames int     // Frames counted during the previous full second
	AverageFPS    float64 // Since startup
	LastFrameMs   int64   // Duration of the last frame before the cap sleep
	Dt            float64 // Seconds between the last two frame starts
	SinceStartup  float64
}

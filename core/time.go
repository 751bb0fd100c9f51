package core

import (
	"time"
)

const defaultFPSSampleWindow = 60

// NewFrameTimer creates a new frame timer service
func NewFrameTimer(cfg TimeConfiguration) *FrameTimer {
	window := cfg.FPSSampleWindow
	if window <= 0 {
		window = defaultFPSSampleWindow
	}
	return &FrameTimer{
		window: window,
		now:    time.Now,
	}
}

// FrameTimer measures frame pacing for an event loop that renders on
// every wake. It is sampled once per iteration with Tick and keeps a
// rolling FPS average over the configured window
type FrameTimer struct {
	now func() time.Time

	window int
	frames uint64

	last    time.Time
	started bool

	accum      time.Duration
	accumCount int
	fps        float64
}

// Tick records one frame and returns the wall-clock delta since the
// previous one. The first tick returns zero
func (t *FrameTimer) Tick() time.Duration {
	current := t.now()
	t.frames++
	if !t.started {
		t.started = true
		t.last = current
		return 0
	}

	delta := current.Sub(t.last)
	t.last = current

	t.accum += delta
	t.accumCount++
	if t.accumCount >= t.window {
		if t.accum > 0 {
			t.fps = float64(t.accumCount) / t.accum.Seconds()
		}
		t.accum = 0
		t.accumCount = 0
	}
	return delta
}

// FPS gets the rolling average of the last completed sample window.
// Zero until one full window has elapsed
func (t *FrameTimer) FPS() float64 {
	return t.fps
}

// Frames gets the total number of recorded frames
func (t *FrameTimer) Frames() uint64 {
	return t.frames
}

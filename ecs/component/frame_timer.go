package component

import "time"

// FrameTimer counts down the on-screen time of the current animation frame.
// Its Duration always mirrors the current frame; only the attach hook and the
// animation system touch it.
type FrameTimer struct {
	Duration time.Duration
	Elapsed  time.Duration

	finished     bool
	justFinished bool
}

func NewFrameTimer(d time.Duration) *FrameTimer {
	return &FrameTimer{Duration: d}
}

// Tick adds delta and latches JustFinished on the tick the interval elapses.
// Time past the interval is dropped.
func (t *FrameTimer) Tick(delta time.Duration) *FrameTimer {
	t.justFinished = false
	if t.finished {
		return t
	}
	t.Elapsed += delta
	if t.Elapsed >= t.Duration {
		t.Elapsed = t.Duration
		t.finished = true
		t.justFinished = true
	}
	return t
}

func (t *FrameTimer) JustFinished() bool {
	return t.justFinished
}

func (t *FrameTimer) Finished() bool {
	return t.finished
}

// Reset restarts the countdown with a new interval.
func (t *FrameTimer) Reset(d time.Duration) {
	t.Duration = d
	t.Elapsed = 0
	t.finished = false
	t.justFinished = false
}

// Remaining is the time left before the interval elapses.
func (t *FrameTimer) Remaining() time.Duration {
	return t.Duration - t.Elapsed
}

var FrameTimerComponent = NewComponent[FrameTimer]()

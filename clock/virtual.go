package clock

import "time"

// DefaultMaxDelta caps a single real-time step so a long stall (window drag,
// debugger break) does not fast-forward every animation.
const DefaultMaxDelta = 250 * time.Millisecond

// Tick is the slice of virtual time handed to systems for one update.
type Tick struct {
	Delta  time.Duration
	Paused bool
}

// Elapsed is the time systems should advance by. It is zero while paused.
func (t Tick) Elapsed() time.Duration {
	if t.Paused {
		return 0
	}
	return t.Delta
}

// Fixed returns an unpaused tick of d.
func Fixed(d time.Duration) Tick {
	return Tick{Delta: d}
}

// Virtual is a pausable, scalable game clock. It is owned by the game loop
// and read through the Tick it returns from Advance.
type Virtual struct {
	paused   bool
	speed    float64
	maxDelta time.Duration
	delta    time.Duration
	elapsed  time.Duration
}

func NewVirtual() *Virtual {
	return &Virtual{
		speed:    1,
		maxDelta: DefaultMaxDelta,
	}
}

// Advance moves virtual time forward by a real-time step and returns the
// resulting tick.
func (v *Virtual) Advance(real time.Duration) Tick {
	if v == nil {
		return Tick{}
	}
	if real < 0 {
		real = 0
	}
	if v.maxDelta > 0 && real > v.maxDelta {
		real = v.maxDelta
	}
	if v.paused {
		v.delta = 0
		return Tick{Paused: true}
	}
	v.delta = time.Duration(float64(real) * v.speed)
	v.elapsed += v.delta
	return Tick{Delta: v.delta}
}

func (v *Virtual) Pause() {
	v.paused = true
}

func (v *Virtual) Resume() {
	v.paused = false
}

// Toggle flips the pause state and reports whether the clock is now paused.
func (v *Virtual) Toggle() bool {
	v.paused = !v.paused
	return v.paused
}

func (v *Virtual) IsPaused() bool {
	return v.paused
}

// SetSpeed scales subsequent deltas. Negative speeds are treated as zero.
func (v *Virtual) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	v.speed = speed
}

func (v *Virtual) Speed() float64 {
	return v.speed
}

// SetMaxDelta changes the per-step clamp; zero disables it.
func (v *Virtual) SetMaxDelta(d time.Duration) {
	if d < 0 {
		d = 0
	}
	v.maxDelta = d
}

// Delta is the virtual time produced by the last Advance.
func (v *Virtual) Delta() time.Duration {
	return v.delta
}

// Elapsed is the total virtual time since creation.
func (v *Virtual) Elapsed() time.Duration {
	return v.elapsed
}

package component

import "time"

// Direction selects which end of the frame sequence playback walks toward.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

// Frame pairs an opaque render index with how long it stays on screen.
type Frame struct {
	Index    int
	Duration time.Duration
}

// NewFrame builds a frame from a duration given in seconds.
func NewFrame(index int, seconds float64) Frame {
	return Frame{
		Index:    index,
		Duration: time.Duration(seconds * float64(time.Second)),
	}
}

// AnimationOptions are the playback switches supplied when an animation is attached.
type AnimationOptions struct {
	Direction       Direction
	FlipX           bool
	PingPong        bool
	DespawnOnFinish bool
}

// SpriteAnimation holds an immutable frame sequence and a double-ended cursor
// over it. The cursor never wraps; looping is driven from outside via Reset.
type SpriteAnimation struct {
	Direction Direction
	FlipX     bool

	frames          []Frame
	front           int
	back            int
	current         int
	pingPong        bool
	despawnOnFinish bool
}

// NewSpriteAnimation copies frames and returns an unstarted animation.
func NewSpriteAnimation(frames []Frame, opts AnimationOptions) *SpriteAnimation {
	a := &SpriteAnimation{
		Direction:       opts.Direction,
		FlipX:           opts.FlipX,
		frames:          append([]Frame(nil), frames...),
		pingPong:        opts.PingPong,
		despawnOnFinish: opts.DespawnOnFinish,
	}
	a.Reset()
	return a
}

// Advance steps the cursor toward the end of the sequence. ok is false once
// the cursor is exhausted, in which case no frame is current.
func (a *SpriteAnimation) Advance() (pos int, frame Frame, ok bool) {
	if a.front >= a.back {
		a.current = -1
		return 0, Frame{}, false
	}
	pos = a.front
	a.front++
	a.current = pos
	return pos, a.frames[pos], true
}

// AdvanceBack steps the cursor toward the start of the sequence.
func (a *SpriteAnimation) AdvanceBack() (pos int, frame Frame, ok bool) {
	if a.front >= a.back {
		a.current = -1
		return 0, Frame{}, false
	}
	a.back--
	pos = a.back
	a.current = pos
	return pos, a.frames[pos], true
}

// Step advances in the stored Direction.
func (a *SpriteAnimation) Step() (int, Frame, bool) {
	if a.Direction == Backward {
		return a.AdvanceBack()
	}
	return a.Advance()
}

// Reset rewinds the cursor over the same frames. No frame is current afterwards.
func (a *SpriteAnimation) Reset() {
	a.front = 0
	a.back = len(a.frames)
	a.current = -1
}

// CurrentFrame returns the frame produced by the last step.
func (a *SpriteAnimation) CurrentFrame() (int, Frame, bool) {
	if a.current < 0 {
		return 0, Frame{}, false
	}
	return a.current, a.frames[a.current], true
}

// IsLastFrame reports whether the current frame is the trailing boundary for
// the current direction.
func (a *SpriteAnimation) IsLastFrame() bool {
	if a.current < 0 {
		return false
	}
	if a.Direction == Backward {
		return a.current == 0
	}
	return a.current == len(a.frames)-1
}

func (a *SpriteAnimation) DespawnOnFinish() bool {
	return a.despawnOnFinish
}

func (a *SpriteAnimation) PingPong() bool {
	return a.pingPong
}

// Frames returns a copy of the sequence.
func (a *SpriteAnimation) Frames() []Frame {
	return append([]Frame(nil), a.frames...)
}

func (a *SpriteAnimation) Len() int {
	return len(a.frames)
}

var SpriteAnimationComponent = NewComponent[SpriteAnimation]()

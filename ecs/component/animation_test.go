package component

import (
	"testing"
	"time"
)

func threeFrames() []Frame {
	return []Frame{NewFrame(0, 0.1), NewFrame(1, 0.1), NewFrame(2, 0.1)}
}

func TestSpriteAnimationVisitsEveryFrameOnce(t *testing.T) {
	cases := []struct {
		name string
		dir  Direction
		want []int
	}{
		{"forward", Forward, []int{0, 1, 2}},
		{"backward", Backward, []int{2, 1, 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewSpriteAnimation(threeFrames(), AnimationOptions{Direction: c.dir})
			for i, want := range c.want {
				pos, frame, ok := a.Step()
				if !ok {
					t.Fatalf("step %d: expected a frame", i)
				}
				if pos != want || frame.Index != want {
					t.Fatalf("step %d: expected %d, got pos=%d index=%d", i, want, pos, frame.Index)
				}
				last := i == len(c.want)-1
				if a.IsLastFrame() != last {
					t.Fatalf("step %d: IsLastFrame=%v, want %v", i, a.IsLastFrame(), last)
				}
			}
			if _, _, ok := a.Step(); ok {
				t.Fatalf("expected exhaustion after %d steps", len(c.want))
			}
			if _, _, ok := a.CurrentFrame(); ok {
				t.Fatalf("exhausted cursor should have no current frame")
			}
		})
	}
}

func TestSpriteAnimationDoubleEnded(t *testing.T) {
	a := NewSpriteAnimation(threeFrames(), AnimationOptions{})

	if pos, _, _ := a.Advance(); pos != 0 {
		t.Fatalf("expected front 0, got %d", pos)
	}
	if pos, _, _ := a.AdvanceBack(); pos != 2 {
		t.Fatalf("expected back 2, got %d", pos)
	}
	if pos, _, _ := a.Advance(); pos != 1 {
		t.Fatalf("expected front 1, got %d", pos)
	}
	if _, _, ok := a.AdvanceBack(); ok {
		t.Fatalf("ends met, expected exhaustion")
	}
}

func TestSpriteAnimationResetRestartsAtFirstFrame(t *testing.T) {
	a := NewSpriteAnimation(threeFrames(), AnimationOptions{})
	a.Advance()
	a.Advance()
	a.AdvanceBack()

	a.Reset()
	if _, _, ok := a.CurrentFrame(); ok {
		t.Fatalf("reset should clear the current frame")
	}
	if a.IsLastFrame() {
		t.Fatalf("reset animation is not on a terminal frame")
	}
	pos, frame, ok := a.Advance()
	if !ok || pos != 0 || frame.Index != 0 {
		t.Fatalf("expected first frame after reset, got pos=%d ok=%v", pos, ok)
	}
}

func TestSpriteAnimationOwnsItsFrames(t *testing.T) {
	frames := threeFrames()
	a := NewSpriteAnimation(frames, AnimationOptions{PingPong: true, DespawnOnFinish: true})
	frames[0].Index = 99

	if _, f, _ := a.Advance(); f.Index != 0 {
		t.Fatalf("animation should copy its frames, got index %d", f.Index)
	}
	if !a.PingPong() || !a.DespawnOnFinish() {
		t.Fatalf("options not stored")
	}
	if a.Len() != 3 {
		t.Fatalf("expected len 3, got %d", a.Len())
	}
}

func TestDirectionReverse(t *testing.T) {
	if Forward.Reverse() != Backward || Backward.Reverse() != Forward {
		t.Fatalf("reverse should swap directions")
	}
}

func TestNewFrameSeconds(t *testing.T) {
	f := NewFrame(3, 0.05)
	if f.Index != 3 || f.Duration != 50*time.Millisecond {
		t.Fatalf("unexpected frame %+v", f)
	}
}

func TestFrameTimer(t *testing.T) {
	timer := NewFrameTimer(100 * time.Millisecond)

	if timer.Tick(60 * time.Millisecond).JustFinished() {
		t.Fatalf("should not finish early")
	}
	if !timer.Tick(60 * time.Millisecond).JustFinished() {
		t.Fatalf("should finish once the interval elapses")
	}
	if timer.Elapsed != 100*time.Millisecond {
		t.Fatalf("overshoot should be dropped, elapsed=%v", timer.Elapsed)
	}
	if timer.Tick(time.Second).JustFinished() {
		t.Fatalf("JustFinished should only latch once")
	}

	timer.Reset(200 * time.Millisecond)
	if timer.Finished() || timer.Elapsed != 0 || timer.Duration != 200*time.Millisecond {
		t.Fatalf("reset did not restart the timer: %+v", timer)
	}
	if timer.Tick(0).JustFinished() {
		t.Fatalf("zero delta should not finish")
	}
	if timer.Remaining() != 200*time.Millisecond {
		t.Fatalf("unexpected remaining %v", timer.Remaining())
	}
}

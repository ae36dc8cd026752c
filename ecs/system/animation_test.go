package system

import (
	"fmt"
	"testing"
	"time"

	"github.com/milk9111/spriteanim/clock"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
)

// animHarness runs the animation system through a scheduler and records every
// notification it emits.
type animHarness struct {
	w      *ecs.World
	sched  *ecs.Scheduler
	events []string
}

func newAnimHarness() *animHarness {
	h := &animHarness{w: ecs.NewWorld()}
	h.sched = ecs.NewScheduler(NewAnimationSystem())
	ecs.Observe(h.w, ecs.EventFrameChanged, func(_ *ecs.World, evt ecs.FrameChangedEvent) {
		h.events = append(h.events, fmt.Sprintf("frame:%d", evt.Index))
	})
	ecs.Observe(h.w, ecs.EventAnimationEnded, func(_ *ecs.World, evt ecs.AnimationEndedEvent) {
		h.events = append(h.events, "end")
	})
	return h
}

func (h *animHarness) spawn(t *testing.T, frames []component.Frame, opts component.AnimationOptions, withEvents bool) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(h.w)
	if err := AttachAnimation(h.w, e, frames, opts); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if withEvents {
		if err := ecs.Add(h.w, e, component.AnimationEventsComponent.Kind(), &component.AnimationEvents{}); err != nil {
			t.Fatalf("add events capability: %v", err)
		}
	}
	return e
}

func (h *animHarness) tick(d time.Duration) {
	h.sched.Update(h.w, clock.Fixed(d))
}

func (h *animHarness) index(t *testing.T, e ecs.Entity) int {
	t.Helper()
	sprite, ok := ecs.Get(h.w, e, component.SpriteComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no sprite", e)
	}
	return sprite.Index
}

func (h *animHarness) takeEvents() []string {
	out := h.events
	h.events = nil
	return out
}

func sampleFrames() []component.Frame {
	return []component.Frame{
		component.NewFrame(0, 0.1),
		component.NewFrame(1, 0.1),
		component.NewFrame(2, 0.1),
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const step = 100 * time.Millisecond

func TestAnimationLoopsForward(t *testing.T) {
	h := newAnimHarness()
	e := h.spawn(t, sampleFrames(), component.AnimationOptions{}, true)

	// The third tick is the terminal-detection tick that rewinds the cursor.
	steps := []struct {
		index  int
		events []string
	}{
		{1, []string{"frame:1"}},
		{2, []string{"frame:2", "end"}},
		{2, nil},
		{0, []string{"frame:0"}},
		{1, []string{"frame:1"}},
	}

	for i, s := range steps {
		h.tick(step)
		if got := h.index(t, e); got != s.index {
			t.Fatalf("tick %d: expected index %d, got %d", i+1, s.index, got)
		}
		if got := h.takeEvents(); !equalStrings(got, s.events) {
			t.Fatalf("tick %d: expected events %v, got %v", i+1, s.events, got)
		}
	}
}

func TestAnimationPingPong(t *testing.T) {
	h := newAnimHarness()
	e := h.spawn(t, sampleFrames(), component.AnimationOptions{PingPong: true}, true)

	h.tick(step)
	h.tick(step)
	if got := h.takeEvents(); !equalStrings(got, []string{"frame:1", "frame:2", "end"}) {
		t.Fatalf("unexpected forward leg %v", got)
	}

	// terminal detected, direction flips
	h.tick(step)
	anim, _ := ecs.Get(h.w, e, component.SpriteAnimationComponent.Kind())
	if anim.Direction != component.Backward {
		t.Fatalf("expected direction to reverse, got %v", anim.Direction)
	}
	if got := h.takeEvents(); len(got) != 0 {
		t.Fatalf("terminal tick should be silent, got %v", got)
	}

	h.tick(step)
	if got := h.index(t, e); got != 1 {
		t.Fatalf("expected neighbour of terminal frame, got %d", got)
	}
	h.tick(step)
	if got := h.index(t, e); got != 0 {
		t.Fatalf("expected index 0, got %d", got)
	}
	if got := h.takeEvents(); !equalStrings(got, []string{"frame:1", "frame:0", "end"}) {
		t.Fatalf("unexpected backward leg %v", got)
	}

	h.tick(step)
	if anim.Direction != component.Forward {
		t.Fatalf("expected direction to flip back to forward")
	}
	h.tick(step)
	if got := h.takeEvents(); !equalStrings(got, []string{"frame:1"}) {
		t.Fatalf("expected forward leg to resume at 1, got %v", got)
	}
}

func TestAnimationPingPongNeverRepeatsTerminalFrame(t *testing.T) {
	h := newAnimHarness()
	h.spawn(t, sampleFrames(), component.AnimationOptions{PingPong: true}, true)

	var rendered []int
	ecs.Observe(h.w, ecs.EventFrameChanged, func(_ *ecs.World, evt ecs.FrameChangedEvent) {
		rendered = append(rendered, evt.Index)
	})
	for i := 0; i < 40; i++ {
		h.tick(step)
	}
	for i := 1; i < len(rendered); i++ {
		if rendered[i] == rendered[i-1] {
			t.Fatalf("frame %d rendered twice in a row: %v", rendered[i], rendered)
		}
	}
}

func TestAnimationDespawnOnFinish(t *testing.T) {
	h := newAnimHarness()
	e := h.spawn(t, sampleFrames(), component.AnimationOptions{DespawnOnFinish: true, PingPong: true}, true)

	h.tick(step)
	h.tick(step)
	if !ecs.IsAlive(h.w, e) {
		t.Fatalf("entity should survive until terminal state is detected")
	}
	if got := h.takeEvents(); !equalStrings(got, []string{"frame:1", "frame:2", "end"}) {
		t.Fatalf("unexpected events %v", got)
	}

	h.tick(step)
	if ecs.IsAlive(h.w, e) {
		t.Fatalf("entity should be despawned by the end of the tick")
	}
	if got := h.takeEvents(); len(got) != 0 {
		t.Fatalf("despawn tick should not emit, got %v", got)
	}

	h.tick(step)
	if h.w.Commands().Len() != 0 {
		t.Fatalf("no further requests expected")
	}
}

func TestAnimationDespawnCommandQueuedOnce(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	frames := []component.Frame{component.NewFrame(0, 0.1)}
	if err := AttachAnimation(w, e, frames, component.AnimationOptions{DespawnOnFinish: true}); err != nil {
		t.Fatal(err)
	}

	sys := NewAnimationSystem()
	sys.Update(w, clock.Fixed(step))
	if w.Commands().Len() != 1 {
		t.Fatalf("expected one removal request, got %d", w.Commands().Len())
	}
	if !ecs.IsAlive(w, e) {
		t.Fatalf("removal must wait for the apply phase")
	}
	ecs.ApplyCommands(w)
	if ecs.IsAlive(w, e) {
		t.Fatalf("entity should be removed after apply")
	}
	// a stale request is ignored
	w.Commands().Despawn(e)
	ecs.ApplyCommands(w)
}

func TestAnimationSingleFrameIsTerminalImmediately(t *testing.T) {
	h := newAnimHarness()
	e := h.spawn(t, []component.Frame{component.NewFrame(7, 0.1)}, component.AnimationOptions{}, true)

	timer, _ := ecs.Get(h.w, e, component.FrameTimerComponent.Kind())
	h.tick(step)
	if timer.Elapsed != 0 {
		t.Fatalf("terminal tick must not advance the timer, elapsed=%v", timer.Elapsed)
	}
	if got := h.takeEvents(); len(got) != 0 {
		t.Fatalf("expected no events, got %v", got)
	}

	h.tick(step)
	if got := h.takeEvents(); !equalStrings(got, []string{"frame:7", "end"}) {
		t.Fatalf("expected replay of the only frame, got %v", got)
	}
}

func TestAnimationSingleFramePingPongReplays(t *testing.T) {
	h := newAnimHarness()
	e := h.spawn(t, []component.Frame{component.NewFrame(7, 0.1)}, component.AnimationOptions{PingPong: true}, true)

	h.tick(step)
	if got := h.takeEvents(); len(got) != 0 {
		t.Fatalf("expected a silent terminal tick, got %v", got)
	}
	h.tick(step)
	if got := h.takeEvents(); !equalStrings(got, []string{"frame:7", "end"}) {
		t.Fatalf("expected replay of the only frame, got %v", got)
	}
	if got := h.index(t, e); got != 7 {
		t.Fatalf("expected index 7, got %d", got)
	}

	h.tick(step)
	h.tick(step)
	if got := h.takeEvents(); !equalStrings(got, []string{"frame:7", "end"}) {
		t.Fatalf("expected the frame to keep replaying, got %v", got)
	}
}

func TestAnimationPlaysBackward(t *testing.T) {
	h := newAnimHarness()
	e := h.spawn(t, sampleFrames(), component.AnimationOptions{Direction: component.Backward}, true)
	if got := h.index(t, e); got != 2 {
		t.Fatalf("expected seed index 2, got %d", got)
	}

	steps := []struct {
		index  int
		events []string
	}{
		{1, []string{"frame:1"}},
		{0, []string{"frame:0", "end"}},
		{0, nil},
		{2, []string{"frame:2"}},
		{1, []string{"frame:1"}},
	}

	for i, s := range steps {
		h.tick(step)
		if got := h.index(t, e); got != s.index {
			t.Fatalf("tick %d: expected index %d, got %d", i+1, s.index, got)
		}
		if got := h.takeEvents(); !equalStrings(got, s.events) {
			t.Fatalf("tick %d: expected events %v, got %v", i+1, s.events, got)
		}
	}
}

func TestAnimationWithoutSpriteKeepsTimer(t *testing.T) {
	h := newAnimHarness()
	e := h.spawn(t, sampleFrames(), component.AnimationOptions{}, true)
	sprite, _ := ecs.Get(h.w, e, component.SpriteComponent.Kind())
	saved := *sprite
	ecs.Remove(h.w, e, component.SpriteComponent.Kind())

	h.tick(step)
	h.tick(step)
	timer, _ := ecs.Get(h.w, e, component.FrameTimerComponent.Kind())
	if timer.Elapsed != 0 || timer.Finished() {
		t.Fatalf("timer should not run without a sprite, got %+v", timer)
	}

	if err := ecs.Add(h.w, e, component.SpriteComponent.Kind(), &saved); err != nil {
		t.Fatal(err)
	}
	h.tick(step)
	if got := h.index(t, e); got != 1 {
		t.Fatalf("playback should resume once the sprite is back, got index %d", got)
	}
	if got := h.takeEvents(); !equalStrings(got, []string{"frame:1"}) {
		t.Fatalf("unexpected events %v", got)
	}
}

func TestAnimationEventsRequireCapability(t *testing.T) {
	h := newAnimHarness()
	e := h.spawn(t, sampleFrames(), component.AnimationOptions{}, false)

	h.tick(step)
	h.tick(step)
	if got := h.index(t, e); got != 2 {
		t.Fatalf("expected playback without events, index=%d", got)
	}
	if got := h.takeEvents(); len(got) != 0 {
		t.Fatalf("expected no events without capability, got %v", got)
	}
}

func TestAnimationPausedClockFreezes(t *testing.T) {
	h := newAnimHarness()
	e := h.spawn(t, sampleFrames(), component.AnimationOptions{}, true)

	for i := 0; i < 5; i++ {
		h.sched.Update(h.w, clock.Tick{Delta: time.Second, Paused: true})
	}
	if got := h.index(t, e); got != 0 {
		t.Fatalf("paused clock should freeze playback, index=%d", got)
	}
	timer, _ := ecs.Get(h.w, e, component.FrameTimerComponent.Kind())
	if timer.Elapsed != 0 {
		t.Fatalf("paused ticks should deliver zero, elapsed=%v", timer.Elapsed)
	}
}

func TestAnimationStoppedMarker(t *testing.T) {
	h := newAnimHarness()
	e := h.spawn(t, sampleFrames(), component.AnimationOptions{}, true)

	if err := ecs.Add(h.w, e, component.AnimationStoppedComponent.Kind(), &component.AnimationStopped{}); err != nil {
		t.Fatal(err)
	}
	h.tick(step)
	h.tick(step)
	if got := h.index(t, e); got != 0 {
		t.Fatalf("stopped animation should not advance, index=%d", got)
	}

	ecs.Remove(h.w, e, component.AnimationStoppedComponent.Kind())
	h.tick(step)
	if got := h.index(t, e); got != 1 {
		t.Fatalf("expected playback to resume, index=%d", got)
	}
}

func TestAnimationDiscardsOvershoot(t *testing.T) {
	h := newAnimHarness()
	e := h.spawn(t, sampleFrames(), component.AnimationOptions{}, false)

	h.tick(150 * time.Millisecond)
	if got := h.index(t, e); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	h.tick(50 * time.Millisecond)
	if got := h.index(t, e); got != 1 {
		t.Fatalf("overshoot must not carry into the next frame, index=%d", got)
	}
	h.tick(50 * time.Millisecond)
	if got := h.index(t, e); got != 2 {
		t.Fatalf("expected index 2, got %d", got)
	}
}

func TestAnimationTimerFollowsFrameDuration(t *testing.T) {
	h := newAnimHarness()
	frames := []component.Frame{
		component.NewFrame(0, 0.1),
		component.NewFrame(1, 0.3),
		component.NewFrame(2, 0.1),
	}
	e := h.spawn(t, frames, component.AnimationOptions{}, false)
	timer, _ := ecs.Get(h.w, e, component.FrameTimerComponent.Kind())

	h.tick(step)
	if timer.Duration != 300*time.Millisecond {
		t.Fatalf("timer should adopt the new frame's duration, got %v", timer.Duration)
	}
	h.tick(step)
	h.tick(step)
	if got := h.index(t, e); got != 1 {
		t.Fatalf("long frame should still be showing, index=%d", got)
	}
	h.tick(step)
	if got := h.index(t, e); got != 2 {
		t.Fatalf("expected index 2, got %d", got)
	}
}

func TestAnimationWritesFlip(t *testing.T) {
	h := newAnimHarness()
	e := h.spawn(t, sampleFrames(), component.AnimationOptions{FlipX: true}, false)

	sprite, _ := ecs.Get(h.w, e, component.SpriteComponent.Kind())
	sprite.FlipX = false
	anim, _ := ecs.Get(h.w, e, component.SpriteAnimationComponent.Kind())

	h.tick(50 * time.Millisecond)
	if sprite.FlipX {
		t.Fatalf("flip is only written when an interval completes")
	}
	h.tick(50 * time.Millisecond)
	if !sprite.FlipX {
		t.Fatalf("expected flip to be written")
	}

	anim.FlipX = false
	h.tick(step)
	if sprite.FlipX {
		t.Fatalf("expected flip to follow the animation")
	}
}

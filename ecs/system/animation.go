package system

import (
	"github.com/milk9111/spriteanim/clock"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
)

// AnimationSystem advances every running sprite animation by the tick's
// virtual time and writes the resulting frame to the entity's sprite.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World, tick clock.Tick) {
	if w == nil {
		return
	}

	delta := tick.Elapsed()
	ecs.ForEach2(w, component.SpriteAnimationComponent.Kind(), component.FrameTimerComponent.Kind(), func(e ecs.Entity, anim *component.SpriteAnimation, timer *component.FrameTimer) {
		if ecs.Has(w, e, component.AnimationStoppedComponent.Kind()) {
			return
		}

		// Terminal handling happens before the timer is consulted; the tick
		// that detects it never advances the timer.
		if anim.IsLastFrame() {
			if anim.DespawnOnFinish() {
				w.Commands().Despawn(e)
				return
			}
			if anim.PingPong() {
				anim.Direction = anim.Direction.Reverse()
				anim.Reset()
				// The boundary frame is already on screen; consume it so the
				// next step lands on its neighbour. A single frame has none.
				if anim.Len() > 1 {
					anim.Step()
				}
				return
			}
			anim.Reset()
			return
		}

		sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			return
		}
		if !timer.Tick(delta).JustFinished() {
			return
		}

		sprite.FlipX = anim.FlipX

		_, frame, ok := anim.Step()
		if !ok {
			return
		}
		sprite.Index = frame.Index
		timer.Reset(frame.Duration)

		if !ecs.Has(w, e, component.AnimationEventsComponent.Kind()) {
			return
		}
		w.Emit(ecs.Event{
			Type: ecs.EventFrameChanged,
			Data: ecs.FrameChangedEvent{Entity: e, Index: frame.Index},
		})
		if anim.IsLastFrame() {
			w.Emit(ecs.Event{
				Type: ecs.EventAnimationEnded,
				Data: ecs.AnimationEndedEvent{Entity: e},
			})
		}
	})
}

package system

import (
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
)

// AttachAnimation gives e a sprite animation and its frame timer. The first
// frame in the configured direction is written to the entity's sprite right
// away; no events are emitted. Attaching again replaces the animation.
//
// frames must not be empty.
func AttachAnimation(w *ecs.World, e ecs.Entity, frames []component.Frame, opts component.AnimationOptions) error {
	if !ecs.IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}

	anim := component.NewSpriteAnimation(frames, opts)
	_, seed, _ := anim.Step()

	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok {
		sprite = &component.Sprite{}
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
			return err
		}
	}

	if err := ecs.Add(w, e, component.SpriteAnimationComponent.Kind(), anim); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.FrameTimerComponent.Kind(), component.NewFrameTimer(seed.Duration)); err != nil {
		return err
	}

	sprite.Index = seed.Index
	sprite.FlipX = anim.FlipX
	return nil
}

// DetachAnimation removes the animation and its timer from e. It reports
// whether an animation was attached.
func DetachAnimation(w *ecs.World, e ecs.Entity) bool {
	_ = ecs.Remove(w, e, component.FrameTimerComponent.Kind())
	return ecs.Remove(w, e, component.SpriteAnimationComponent.Kind())
}

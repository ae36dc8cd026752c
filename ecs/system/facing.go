package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spriteanim/clock"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
)

// minFacingSpeed keeps jitter around zero velocity from spinning the facing.
const minFacingSpeed = 1e-3

// FacingSystem derives an 8-way facing from velocity and, when requested,
// mirrors the entity's animation to match it.
type FacingSystem struct{}

func NewFacingSystem() *FacingSystem {
	return &FacingSystem{}
}

func (s *FacingSystem) Update(w *ecs.World, _ clock.Tick) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.SpriteFacingComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, facing *component.SpriteFacing, vel *component.Velocity) {
		if vel.Length() < minFacingSpeed {
			return
		}
		// velocity is screen space; facing math is y-up
		facing.Facing = component.FacingFromVector(cp.Vector{X: vel.X, Y: -vel.Y})

		if !facing.FlipAnimation {
			return
		}
		if anim, ok := ecs.Get(w, e, component.SpriteAnimationComponent.Kind()); ok {
			anim.FlipX = !facing.Facing.IsWestward()
		}
	})
}

// MotionSystem moves transforms along their velocity.
type MotionSystem struct{}

func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

func (s *MotionSystem) Update(w *ecs.World, tick clock.Tick) {
	if w == nil {
		return
	}

	dt := tick.Elapsed().Seconds()
	if dt == 0 {
		return
	}
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.VelocityComponent.Kind(), func(_ ecs.Entity, t *component.Transform, vel *component.Velocity) {
		pos := cp.Vector{X: t.X, Y: t.Y}.Add(vel.Mult(dt))
		t.X, t.Y = pos.X, pos.Y
	})
}

package system

import (
	"github.com/milk9111/spriteanim/clock"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
)

// TTLSystem counts TTL components down by virtual time and despawns entities
// whose TTL ran out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World, tick clock.Tick) {
	if w == nil {
		return
	}

	dt := tick.Elapsed()
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Remaining -= dt
		if ttl.Remaining > 0 {
			return
		}
		w.Commands().Despawn(e)
	})
}

package ecs

import "github.com/milk9111/spriteanim/clock"

type System interface {
	Update(w *World, tick clock.Tick)
}

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system once. Commands queued by a system are applied
// right after it returns; the event queue is flushed at the end.
func (s *Scheduler) Update(w *World, tick clock.Tick) {
	for _, system := range s.systems {
		system.Update(w, tick)
		ApplyCommands(w)
	}
	w.Events().flush()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

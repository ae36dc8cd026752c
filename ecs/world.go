package ecs

import "github.com/milk9111/spriteanim/ecs/component"

// World owns entities, their components, the event bus and the deferred
// command queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
	events   EventQueue
	commands Commands
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]componentStore)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
// It reports false when e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, st := range w.stores {
		st.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Events returns the world event bus.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Commands returns the deferred command queue.
func (w *World) Commands() *Commands {
	if w == nil {
		return nil
	}
	return &w.commands
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *SparseSet[T] {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	if st, ok := w.stores[kind.ID()]; ok {
		return st.(*SparseSet[T])
	}
	if !create {
		return nil
	}
	st := newSparseSet[T]()
	w.stores[kind.ID()] = st
	return st
}

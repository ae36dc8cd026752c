package ecs

import "github.com/milk9111/spriteanim/ecs/component"

// Query returns the live entities that have every listed kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]componentStore, 0, len(kinds))
	for _, k := range kinds {
		st, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, st)
	}

	// iterate smallest set
	smallest := stores[0]
	for _, st := range stores[1:] {
		if st.len() < smallest.len() {
			smallest = st
		}
	}

	out := make([]Entity, 0, smallest.len())
	for _, id := range smallest.ids() {
		matched := true
		for _, st := range stores {
			if !st.has(id) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if e, ok := w.entities.entity(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns any live entity with the given kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

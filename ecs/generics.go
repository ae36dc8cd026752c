package ecs

import "github.com/milk9111/spriteanim/ecs/component"

// Add attaches value to e, replacing any previous component of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, kind, true).set(e.id(), value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	st := storeFor(w, kind, false)
	if st == nil {
		return false
	}
	return st.remove(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	st := storeFor(w, kind, false)
	return st != nil && st.has(e.id())
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	st := storeFor(w, kind, false)
	if st == nil {
		return nil, false
	}
	return st.get(e.id())
}

// ForEach calls fn for every live entity holding kind. The entity set is
// snapshotted first; components removed during the walk are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	st := storeFor(w, kind, false)
	if st == nil {
		return
	}
	ids := append([]entityID(nil), st.ids()...)
	for _, id := range ids {
		v, ok := st.get(id)
		if !ok {
			continue
		}
		e, ok := w.entities.entity(id)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 calls fn for every live entity holding both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	if sa == nil || sb == nil {
		return
	}
	var ids []entityID
	if sa.len() <= sb.len() {
		ids = append(ids, sa.ids()...)
	} else {
		ids = append(ids, sb.ids()...)
	}
	for _, id := range ids {
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		b, ok := sb.get(id)
		if !ok {
			continue
		}
		e, ok := w.entities.entity(id)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
	"github.com/milk9111/spriteanim/ecs/system"
	"github.com/milk9111/spriteanim/prefabs"
)

// ReloadAnimation re-reads the prefab that built e and attaches its current
// animation, restarting playback from the first frame. Everything else on the
// entity is left as is.
func ReloadAnimation(w *ecs.World, e ecs.Entity) error {
	src, ok := ecs.Get(w, e, component.PrefabSourceComponent.Kind())
	if !ok {
		return fmt.Errorf("reload animation: entity %d has no prefab source", e)
	}
	spec, err := prefabs.LoadEntityBuildSpec(src.Path)
	if err != nil {
		return fmt.Errorf("reload animation: %w", err)
	}

	raw, ok := spec.Components[prefabs.AnimationKey]
	if !ok {
		system.DetachAnimation(w, e)
		return nil
	}
	if err := addAnimation(w, e, raw); err != nil {
		return fmt.Errorf("reload animation: %q: %w", src.Path, err)
	}

	if raw, ok := spec.Components[prefabs.AnimationScriptKey]; ok {
		if err := addAnimationScript(w, e, raw); err != nil {
			return fmt.Errorf("reload animation: %q: %w", src.Path, err)
		}
	} else {
		ecs.Remove(w, e, component.AnimationScriptComponent.Kind())
	}
	return nil
}

// ReloadPrefab reloads the animation of every entity built from the prefab
// at path and returns how many were reloaded.
func ReloadPrefab(w *ecs.World, path string) (int, error) {
	key := prefabs.Key(path)
	var errs []error
	n := 0
	ecs.ForEach(w, component.PrefabSourceComponent.Kind(), func(e ecs.Entity, src *component.PrefabSource) {
		if prefabs.Key(src.Path) != key {
			return
		}
		if err := ReloadAnimation(w, e); err != nil {
			errs = append(errs, err)
			return
		}
		n++
	})
	return n, errors.Join(errs...)
}

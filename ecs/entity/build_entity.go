package entity

import (
	"fmt"
	"sort"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
	"github.com/milk9111/spriteanim/ecs/system"
	"github.com/milk9111/spriteanim/prefabs"
	"github.com/milk9111/spriteanim/render"
)

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any) error

// loadImage is swapped out by tests that run without a graphics context.
var loadImage = render.LoadImage

var componentRegistry = map[string]componentBuildFn{
	prefabs.TransformKey:        addTransform,
	prefabs.SpriteKey:           addSprite,
	prefabs.RenderLayerKey:      addRenderLayer,
	prefabs.VelocityKey:         addVelocity,
	prefabs.FacingKey:           addFacing,
	prefabs.AnimationKey:        addAnimation,
	prefabs.AnimationEventsKey:  addAnimationEvents,
	prefabs.AnimationScriptKey:  addAnimationScript,
	prefabs.AnimationStoppedKey: addAnimationStopped,
	prefabs.TTLKey:              addTTL,
}

// The sprite must exist before the animation so attaching keeps its image
// and atlas.
var componentBuildOrder = []string{
	prefabs.TransformKey,
	prefabs.SpriteKey,
	prefabs.RenderLayerKey,
	prefabs.VelocityKey,
	prefabs.FacingKey,
	prefabs.AnimationKey,
	prefabs.AnimationEventsKey,
	prefabs.AnimationScriptKey,
	prefabs.AnimationStoppedKey,
	prefabs.TTLKey,
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	if err := ecs.Add(w, e, component.PrefabSourceComponent.Kind(), &component.PrefabSource{Path: prefabPath}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: %w", prefabPath, err)
	}
	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addTransform(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	if spec.Image != "" {
		img, err := loadImage(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}
	if spec.Atlas != nil {
		sprite.Atlas = spec.Atlas.TextureAtlas()
	}
	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addVelocity(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.VelocityComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode velocity spec: %w", err)
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{Vector: cp.Vector{X: spec.X, Y: spec.Y}})
}

func addFacing(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FacingComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode facing spec: %w", err)
	}
	facing, err := prefabs.ParseFacing(spec.Facing)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpriteFacingComponent.Kind(), &component.SpriteFacing{
		Facing:        facing,
		FlipAnimation: spec.FlipAnimation,
	})
}

func addAnimation(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	frames, err := spec.BuildFrames()
	if err != nil {
		return err
	}
	return system.AttachAnimation(w, e, frames, spec.Options())
}

func addAnimationEvents(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.AnimationEventsComponent.Kind(), &component.AnimationEvents{})
}

func addAnimationScript(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationScriptComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation script spec: %w", err)
	}
	if spec.Path == "" {
		return fmt.Errorf("animation script path is empty")
	}
	return ecs.Add(w, e, component.AnimationScriptComponent.Kind(), &component.AnimationScript{Path: spec.Path})
}

func addAnimationStopped(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.AnimationStoppedComponent.Kind(), &component.AnimationStopped{})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	if spec.Seconds <= 0 {
		return fmt.Errorf("ttl must be positive, got %v", spec.Seconds)
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{
		Remaining: time.Duration(spec.Seconds * float64(time.Second)),
	})
}

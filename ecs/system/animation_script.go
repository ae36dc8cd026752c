package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
)

// Values of the `event` variable seen by animation scripts.
const (
	ScriptEventFrameChanged = "frame_changed"
	ScriptEventEnded        = "ended"
)

// AnimationScriptObserver runs an entity's tengo script whenever it emits an
// animation event. Scripts read `event`, `entity` and `index` and may set
// `stop`, `despawn` or `flip`; those requests are queued as commands.
type AnimationScriptObserver struct {
	load     func(path string) ([]byte, error)
	compiled map[string]*tengo.Compiled
	unsubs   []func()
}

func NewAnimationScriptObserver(load func(path string) ([]byte, error)) *AnimationScriptObserver {
	return &AnimationScriptObserver{
		load:     load,
		compiled: make(map[string]*tengo.Compiled),
	}
}

// Register subscribes the observer to w's animation events.
func (o *AnimationScriptObserver) Register(w *ecs.World) {
	if o == nil || w == nil {
		return
	}
	o.unsubs = append(o.unsubs,
		ecs.Observe(w, ecs.EventFrameChanged, func(w *ecs.World, evt ecs.FrameChangedEvent) {
			o.run(w, evt.Entity, ScriptEventFrameChanged, evt.Index)
		}),
		ecs.Observe(w, ecs.EventAnimationEnded, func(w *ecs.World, evt ecs.AnimationEndedEvent) {
			index := 0
			if sprite, ok := ecs.Get(w, evt.Entity, component.SpriteComponent.Kind()); ok {
				index = sprite.Index
			}
			o.run(w, evt.Entity, ScriptEventEnded, index)
		}),
	)
}

// Close removes every subscription made by Register.
func (o *AnimationScriptObserver) Close() {
	if o == nil {
		return
	}
	for _, unsub := range o.unsubs {
		unsub()
	}
	o.unsubs = nil
}

// Invalidate drops the compiled copy of path so the next event recompiles it.
func (o *AnimationScriptObserver) Invalidate(path string) {
	if o == nil {
		return
	}
	delete(o.compiled, path)
}

func (o *AnimationScriptObserver) run(w *ecs.World, e ecs.Entity, event string, index int) {
	script, ok := ecs.Get(w, e, component.AnimationScriptComponent.Kind())
	if !ok || script.Path == "" {
		return
	}

	compiled, err := o.compile(script.Path)
	if err != nil {
		log.Printf("animation script: entity=%d compile %s: %v", e, script.Path, err)
		return
	}

	c := compiled.Clone()
	inputs := map[string]any{
		"event":  event,
		"entity": int64(e),
		"index":  index,
	}
	for name, value := range inputs {
		if err := c.Set(name, value); err != nil {
			log.Printf("animation script: entity=%d set %s: %v", e, name, err)
			return
		}
	}
	if err := c.Run(); err != nil {
		log.Printf("animation script: entity=%d run %s: %v", e, script.Path, err)
		return
	}

	if c.Get("stop").Bool() {
		w.Commands().Run(func(w *ecs.World) {
			_ = ecs.Add(w, e, component.AnimationStoppedComponent.Kind(), &component.AnimationStopped{})
		})
	}
	if c.Get("flip").Bool() {
		w.Commands().Run(func(w *ecs.World) {
			if anim, ok := ecs.Get(w, e, component.SpriteAnimationComponent.Kind()); ok {
				anim.FlipX = !anim.FlipX
			}
		})
	}
	if c.Get("despawn").Bool() {
		w.Commands().Despawn(e)
	}
}

func (o *AnimationScriptObserver) compile(path string) (*tengo.Compiled, error) {
	if c, ok := o.compiled[path]; ok {
		return c, nil
	}
	if o.load == nil {
		return nil, fmt.Errorf("no script loader")
	}
	src, err := o.load(path)
	if err != nil {
		return nil, err
	}

	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap("fmt", "math", "text"))
	vars := map[string]any{
		"event":   "",
		"entity":  int64(0),
		"index":   0,
		"stop":    false,
		"despawn": false,
		"flip":    false,
	}
	for name, value := range vars {
		if err := s.Add(name, value); err != nil {
			return nil, fmt.Errorf("declare %s: %w", name, err)
		}
	}
	c, err := s.Compile()
	if err != nil {
		return nil, err
	}
	o.compiled[path] = c
	return c, nil
}

package system

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
)

type RenderSystem struct {
	// Debug prints each animated sprite's frame index next to it.
	Debug bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// DrawOrder returns the drawable entities sorted by render layer, then by
// entity id.
func DrawOrder(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	return entities
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	for _, e := range DrawOrder(w) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}
		src, ok := s.Source()
		if !ok {
			continue
		}
		img, ok := s.Image.SubImage(src).(*ebiten.Image)
		if !ok {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		if s.FlipX {
			sx = -sx
			op.GeoM.Translate(float64(-img.Bounds().Dx()), 0)
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Translate(t.X, t.Y)
		screen.DrawImage(img, op)

		if r.Debug && ecs.Has(w, e, component.SpriteAnimationComponent.Kind()) {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", s.Index), int(t.X), int(t.Y)+src.Dy())
		}
	}
}

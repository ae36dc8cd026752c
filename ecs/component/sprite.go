package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is the render target of the animation system. Index selects a tile
// of Atlas; the animation core writes only Index and FlipX.
type Sprite struct {
	Image   *ebiten.Image
	Atlas   *TextureAtlas
	Index   int
	FlipX   bool
	OriginX float64
	OriginY float64
}

// Source returns the sub-rectangle of Image to draw for the current index.
func (s *Sprite) Source() (image.Rectangle, bool) {
	if s == nil || s.Image == nil {
		return image.Rectangle{}, false
	}
	if s.Atlas == nil {
		return s.Image.Bounds(), true
	}
	return s.Atlas.Rect(s.Index)
}

var SpriteComponent = NewComponent[Sprite]()

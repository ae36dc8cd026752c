package render

import (
	"image"
	"image/color"
	"strconv"

	"github.com/milk9111/spriteanim/ecs/component"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PlaceholderKey is the image key prefabs use when no sheet exists on disk.
const PlaceholderKey = "placeholder"

// PlaceholderSpec describes a generated grid of numbered tiles.
type PlaceholderSpec struct {
	TileW   int
	TileH   int
	Columns int
	Rows    int
}

var DefaultPlaceholder = PlaceholderSpec{TileW: 32, TileH: 32, Columns: 8, Rows: 2}

var (
	placeholderBorder = color.RGBA{R: 24, G: 24, B: 32, A: 255}
	placeholderText   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Atlas returns the atlas that addresses the tiles of the sheet.
func (s PlaceholderSpec) Atlas() *component.TextureAtlas {
	return &component.TextureAtlas{TileW: s.TileW, TileH: s.TileH, Columns: s.Columns, Rows: s.Rows}
}

// PlaceholderSheet draws spec.Columns*spec.Rows tiles, each labelled with its
// atlas index on a background shade derived from that index.
func PlaceholderSheet(spec PlaceholderSpec) *image.RGBA {
	if spec.TileW <= 0 || spec.TileH <= 0 || spec.Columns <= 0 || spec.Rows <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	sheet := image.NewRGBA(image.Rect(0, 0, spec.TileW*spec.Columns, spec.TileH*spec.Rows))
	atlas := spec.Atlas()
	d := &font.Drawer{
		Dst:  sheet,
		Src:  image.NewUniform(placeholderText),
		Face: basicfont.Face7x13,
	}

	for i := 0; i < atlas.Len(); i++ {
		r, _ := atlas.Rect(i)
		draw.Draw(sheet, r, image.NewUniform(placeholderBorder), image.Point{}, draw.Src)
		inner := r.Inset(1)
		draw.Draw(sheet, inner, image.NewUniform(tileColor(i)), image.Point{}, draw.Src)

		d.Dot = fixed.P(r.Min.X+4, r.Min.Y+spec.TileH/2+4)
		d.DrawString(strconv.Itoa(i))
	}
	return sheet
}

func tileColor(i int) color.RGBA {
	return color.RGBA{
		R: uint8(64 + (i*37)%128),
		G: uint8(64 + (i*71)%128),
		B: uint8(96 + (i*23)%128),
		A: 255,
	}
}

package component

import "image"

// TextureAtlas is a grid layout over a sprite sheet. Tiles are numbered
// left-to-right, top-to-bottom starting at zero.
type TextureAtlas struct {
	TileW    int
	TileH    int
	Columns  int
	Rows     int
	PaddingX int
	PaddingY int
	OffsetX  int
	OffsetY  int
}

// Len is the number of tiles in the grid.
func (a *TextureAtlas) Len() int {
	if a == nil || a.Columns <= 0 || a.Rows <= 0 {
		return 0
	}
	return a.Columns * a.Rows
}

// Rect returns the pixel bounds of tile index. ok is false when the index is
// outside the grid; callers decide what to draw in that case.
func (a *TextureAtlas) Rect(index int) (image.Rectangle, bool) {
	if a == nil || index < 0 || index >= a.Len() || a.TileW <= 0 || a.TileH <= 0 {
		return image.Rectangle{}, false
	}
	col := index % a.Columns
	row := index / a.Columns
	x := a.OffsetX + col*(a.TileW+a.PaddingX)
	y := a.OffsetY + row*(a.TileH+a.PaddingY)
	return image.Rect(x, y, x+a.TileW, y+a.TileH), true
}

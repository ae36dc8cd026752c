package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Facing is one of eight compass directions a sprite can face.
type Facing uint8

const (
	FacingWest Facing = iota
	FacingEast
	FacingNorth
	FacingNorthEast
	FacingNorthWest
	FacingSouth
	FacingSouthEast
	FacingSouthWest
)

// octants maps the counter-clockwise octant index (0 = east) to a facing.
var octants = [8]Facing{
	FacingEast,
	FacingNorthEast,
	FacingNorth,
	FacingNorthWest,
	FacingWest,
	FacingSouthWest,
	FacingSouth,
	FacingSouthEast,
}

// FacingFromVector picks the octant nearest to v. v uses a y-up convention;
// a zero vector faces east.
func FacingFromVector(v cp.Vector) Facing {
	angle := math.Atan2(v.Y, v.X)
	idx := int(math.Round(angle / (math.Pi / 4)))
	idx = ((idx % 8) + 8) % 8
	return octants[idx]
}

func (f Facing) IsNorthward() bool {
	return f == FacingNorth || f == FacingNorthWest || f == FacingNorthEast
}

func (f Facing) IsWestward() bool {
	return f == FacingWest || f == FacingNorthWest || f == FacingSouthWest
}

func (f Facing) String() string {
	switch f {
	case FacingWest:
		return "west"
	case FacingEast:
		return "east"
	case FacingNorth:
		return "north"
	case FacingNorthEast:
		return "north_east"
	case FacingNorthWest:
		return "north_west"
	case FacingSouth:
		return "south"
	case FacingSouthEast:
		return "south_east"
	case FacingSouthWest:
		return "south_west"
	default:
		return "unknown"
	}
}

// SpriteFacing tracks where an entity is looking. When FlipAnimation is set
// the facing system mirrors the animation for east-facing movement, since
// sheets are drawn facing west.
type SpriteFacing struct {
	Facing        Facing
	FlipAnimation bool
}

var SpriteFacingComponent = NewComponent[SpriteFacing]()

package component

import "github.com/jakecoffman/cp"

// Velocity is in screen space (pixels per second, y grows downward).
type Velocity struct {
	cp.Vector
}

var VelocityComponent = NewComponent[Velocity]()

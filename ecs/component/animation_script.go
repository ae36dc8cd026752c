package component

// AnimationScript names a tengo script run whenever the entity emits an
// animation event.
type AnimationScript struct {
	Path string
}

var AnimationScriptComponent = NewComponent[AnimationScript]()

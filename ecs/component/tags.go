package component

// AnimationStopped freezes playback on the current frame while present.
type AnimationStopped struct{}

var AnimationStoppedComponent = NewComponent[AnimationStopped]()

// AnimationEvents opts an entity into frame-change and end-of-animation
// notifications.
type AnimationEvents struct{}

var AnimationEventsComponent = NewComponent[AnimationEvents]()

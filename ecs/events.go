package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventFrameChanged   = "sprite_animation.frame_changed"
	EventAnimationEnded = "sprite_animation.ended"
)

// FrameChangedEvent is emitted when an animation renders a new frame.
type FrameChangedEvent struct {
	Entity Entity
	Index  int
}

// AnimationEndedEvent is emitted when an animation renders its terminal frame.
type AnimationEndedEvent struct {
	Entity Entity
}

// EventHandler observes events as they are emitted.
type EventHandler func(w *World, evt Event)

type subscription struct {
	id      int
	handler EventHandler
}

// EventQueue delivers events synchronously to subscribers and keeps a FIFO
// copy that later systems in the same tick can drain.
type EventQueue struct {
	items    []Event
	handlers map[string][]subscription
	nextID   int
}

// Push adds an event without notifying subscribers.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

// Subscribe registers h for events of type typ. The returned func removes it.
func (w *World) Subscribe(typ string, h EventHandler) func() {
	if w == nil || h == nil {
		return func() {}
	}
	q := &w.events
	if q.handlers == nil {
		q.handlers = make(map[string][]subscription)
	}
	q.nextID++
	id := q.nextID
	q.handlers[typ] = append(q.handlers[typ], subscription{id: id, handler: h})
	return func() {
		subs := q.handlers[typ]
		for i, s := range subs {
			if s.id == id {
				q.handlers[typ] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Emit notifies subscribers of evt in registration order, then queues it.
func (w *World) Emit(evt Event) {
	if w == nil {
		return
	}
	subs := append([]subscription(nil), w.events.handlers[evt.Type]...)
	for _, s := range subs {
		s.handler(w, evt)
	}
	w.events.Push(evt)
}

// Observe subscribes a typed handler. Events whose Data is not a T are ignored.
func Observe[T any](w *World, typ string, fn func(w *World, evt T)) func() {
	return w.Subscribe(typ, func(w *World, evt Event) {
		if data, ok := evt.Data.(T); ok {
			fn(w, data)
		}
	})
}

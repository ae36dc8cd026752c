package ecs

// Commands queues structural changes requested while systems iterate. The
// scheduler applies them once the running system returns.
type Commands struct {
	queue []func(w *World)
}

// Despawn requests destruction of e. Requests for entities that are gone by
// the time the queue is applied are ignored.
func (c *Commands) Despawn(e Entity) {
	c.Run(func(w *World) {
		DestroyEntity(w, e)
	})
}

// Run defers fn until the queue is applied.
func (c *Commands) Run(fn func(w *World)) {
	if c == nil || fn == nil {
		return
	}
	c.queue = append(c.queue, fn)
}

// Len is the number of pending commands.
func (c *Commands) Len() int {
	if c == nil {
		return 0
	}
	return len(c.queue)
}

// ApplyCommands runs queued commands in order, including any they enqueue,
// and returns how many ran.
func ApplyCommands(w *World) int {
	if w == nil {
		return 0
	}
	n := 0
	for len(w.commands.queue) > 0 {
		pending := w.commands.queue
		w.commands.queue = nil
		for _, fn := range pending {
			fn(w)
			n++
		}
	}
	return n
}

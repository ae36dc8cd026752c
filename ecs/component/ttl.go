package component

import "time"

// TTL despawns its entity once Remaining virtual time has elapsed.
type TTL struct {
	Remaining time.Duration
}

var TTLComponent = NewComponent[TTL]()

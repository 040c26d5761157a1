package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake so server-assigned
// timestamps are deterministic.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for record construction. Pass nil to reset
// to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the domain clock.
func Now() time.Time { return clock.Now() }

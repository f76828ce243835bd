package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is the package-level time source for windowed queries and report
// timestamps. Production code uses the real clock; tests freeze time via
// SetClock for deterministic windows.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the injectable clock, in UTC.
func Now() time.Time {
	return clock.Now().UTC()
}

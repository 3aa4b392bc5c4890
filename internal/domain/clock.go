package domain

import "github.com/jonboulle/clockwork"

// clock backs the "now" fallback for truncated synoptic times.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used while parsing. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Package repository orchestrates the online/offline decision for chat
// and quiz operations: live gateway calls when connected, locally
// persisted placeholders when not. Raw gateway errors never escape to
// the presentation layer undecorated; cache writes that only optimize
// later reads are logged and swallowed.
package repository

import (
	"errors"
	"sync"
)

// ErrOffline is returned when an operation needs connectivity and the
// monitor reports none.
var ErrOffline = errors.New("no internet connection, please try again when online")

// SubmitGuard makes a timed quiz submission idempotent: whichever of
// manual submission and timer expiry fires first wins, the other is a
// no-op. Once a submission starts, cancelling the timer is
// unconditional.
type SubmitGuard struct {
	once sync.Once
}

// Do runs submit if no submission has started yet and reports whether
// this call was the one that ran it.
func (g *SubmitGuard) Do(submit func()) bool {
	ran := false
	g.once.Do(func() {
		ran = true
		submit()
	})
	return ran
}

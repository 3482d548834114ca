// Package schedule provides the deferred-callback primitives the focus
// tracker is built on: a Clock abstraction with a real event loop and a
// manual test clock, a leading/trailing edge Throttler, cancellable
// fixed-interval polling, and a Group that owns timers so they can be torn
// down together.
//
// Nothing in this package blocks. All waiting is expressed as callbacks
// that a Clock runs later, and every Clock in this package runs callbacks
// one at a time, so callers can treat them as running on a single thread.
package schedule

import "time"

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// call stopped the timer, false if it already ran or was stopped.
	Stop() bool
}

// Clock is a time source that can run callbacks later.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// stoppedTimer is returned when nothing was scheduled.
type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return false }

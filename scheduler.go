package sertty

import "time"

// Scheduler abstracts the host event framework an Endpoint runs
// inside: a one-shot runner (dispatch a completion off the caller's
// goroutine) and a one-shot timer (prime the modem-state poller). Both
// are requested fresh each time they're needed rather than held as
// long-lived repeating timers.
//
// The default implementation below is goroutine- and time.Timer-backed;
// Endpoint's own mutex and state flags do the bookkeeping.
type Scheduler interface {
	// Run dispatches fn exactly once, off the caller's goroutine.
	Run(fn func())
	// AfterFunc schedules fn to run once after d elapses, returning a
	// Timer that can cancel it.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is the handle returned by Scheduler.AfterFunc.
type Timer interface {
	// Stop cancels the timer. It reports true if the cancellation
	// happened before fn started running (matching time.Timer.Stop).
	Stop() bool
}

type goScheduler struct{}

// defaultScheduler is used when an Endpoint is constructed without an
// explicit Scheduler, so a caller with no host event loop of its own
// still gets a working Endpoint.
var defaultScheduler Scheduler = goScheduler{}

func (goScheduler) Run(fn func()) {
	go fn()
}

func (goScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

//go:build linux

package sertty

import (
	"encoding/binary"
	"time"
)

// Modem-state poller. Polls TIOCMGET on a timer, masks off the level
// bits the consumer doesn't care about, ORs in edge bits for anything
// that changed since the last report, and dispatches a SerModemState
// event when there's something to say — or unconditionally on the first
// sample after each Open, so the consumer always gets an initial
// snapshot. A later Subscribe does not force another one.
//
// Re-entrancy is guarded by handlingModemstate: if a tick is still running
// (slow event sink, or a get that blocked) when the timer fires again,
// the new firing is a no-op rather than a second concurrent sample.

const (
	modemBitCAR = 0x80
	modemBitRNG = 0x40
	modemBitDSR = 0x20
	modemBitCTS = 0x10
)

// Subscribe sets which top-nibble signals are worth reporting and
// (re)starts the poller. A zero mask cancels polling outright. Write-only
// endpoints never poll.
func (ep *Endpoint) Subscribe(mask byte) {
	if ep.writeOnly {
		return
	}
	ep.mu.Lock()
	ep.modemstateMask = mask
	if mask == 0 {
		if ep.pollerTimer != nil {
			ep.pollerTimer.Stop()
			ep.pollerTimer = nil
		}
		if !ep.handlingModemstate {
			ep.pollerStopped = true
		}
		ep.mu.Unlock()
		return
	}
	ep.pollerStopRequested = false
	ep.pollerStopped = false
	if ep.pollerTimer == nil && !ep.handlingModemstate {
		ep.pollerTimer = ep.scheduler.AfterFunc(time.Millisecond, ep.pollerTick)
	}
	ep.mu.Unlock()
}

// requestPollerStop is called from the close sequence. It asks the
// poller to stop and reports, via pollerHasStopped, once that's
// actually guaranteed — which may lag a little if a tick is in flight
// when this is called.
func (ep *Endpoint) requestPollerStop() {
	ep.mu.Lock()
	ep.pollerStopRequested = true
	if ep.pollerTimer != nil {
		stoppedBeforeFire := ep.pollerTimer.Stop()
		ep.pollerTimer = nil
		if stoppedBeforeFire && !ep.handlingModemstate {
			ep.pollerStopped = true
		}
	} else if !ep.handlingModemstate {
		ep.pollerStopped = true
	}
	ep.mu.Unlock()
}

func (ep *Endpoint) pollerHasStopped() bool {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return ep.pollerStopped
}

func (ep *Endpoint) pollerTick() {
	ep.mu.Lock()
	if ep.handlingModemstate {
		ep.mu.Unlock()
		return
	}
	ep.handlingModemstate = true
	ep.pollerTimer = nil
	fd := ep.fd
	ep.mu.Unlock()

	cur, err := ioctlGetModemLines(fd)

	ep.mu.Lock()
	if err != nil {
		// A failed sample drops the whole tick: no event, no reschedule.
		// The next Subscribe call re-primes the timer.
		ep.handlingModemstate = false
		if ep.pollerStopRequested {
			ep.pollerStopped = true
		}
		ep.mu.Unlock()
		return
	}

	word := modemLineToWord(cur)
	newState, dispatch := ep.processModemSample(word)
	sink := ep.events
	if dispatch && sink != nil {
		// handlingModemstate stays set across the callback, so a timer
		// firing mid-dispatch is a no-op rather than a second sample.
		ep.mu.Unlock()
		dispatchModemState(sink, newState)
		ep.mu.Lock()
	}
	ep.handlingModemstate = false

	if ep.modemstateMask != 0 && !ep.pollerStopRequested {
		ep.pollerTimer = ep.scheduler.AfterFunc(time.Second, ep.pollerTick)
	} else {
		ep.pollerStopped = true
	}
	ep.mu.Unlock()
}

// modemLineToWord composes the top-nibble level byte from a raw
// TIOCMGET sample.
func modemLineToWord(cur ModemLine) byte {
	var word byte
	if cur&TIOCM_CAR != 0 {
		word |= modemBitCAR
	}
	if cur&TIOCM_RNG != 0 {
		word |= modemBitRNG
	}
	if cur&TIOCM_DSR != 0 {
		word |= modemBitDSR
	}
	if cur&TIOCM_CTS != 0 {
		word |= modemBitCTS
	}
	return word
}

// processModemSample applies the edge-detection/masking arithmetic to one
// raw sample and updates lastModemstate/sentFirstModemstate. Called with
// ep.mu held. Returns the masked state to dispatch and whether a dispatch
// is actually warranted (first sample, or a masked edge occurred).
func (ep *Endpoint) processModemSample(word byte) (newState byte, dispatch bool) {
	edges := (word ^ ep.lastModemstate) >> 4
	newState = (word | edges) & ep.modemstateMask
	ep.lastModemstate = newState
	forceSend := !ep.sentFirstModemstate
	ep.sentFirstModemstate = true
	dispatch = forceSend || newState&0x0F != 0
	return newState, dispatch
}

// dispatchModemState hands the consumer a SerModemState event carrying
// the masked modem-state word as a 4-byte native-endian unsigned
// integer. Called with the endpoint lock released; the sink may
// re-enter the endpoint.
func dispatchModemState(sink EventSink, word byte) {
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], uint32(word))
	sink.OnEvent(Event{Kind: SerModemState, Data: buf[:]})
}

//go:build linux

package sertty

import (
	"syscall"
	"time"
)

// Lifecycle: closed -> locking -> opening -> open -> draining ->
// closed. Open acquires the UUCP lock, opens the device non-blocking so
// a missing carrier doesn't hang the caller, applies the default
// termios, clears any stale BREAK condition, and starts the modem-state
// poller subscribed to everything. Close drains the OS output queue
// (bounded by drainBudget 10ms polls) before releasing the fd and the
// lock.

// Open transitions a closed Endpoint to open. It is not safe to call
// concurrently with itself or Close on the same Endpoint.
func (ep *Endpoint) Open() error {
	ep.mu.Lock()
	if ep.state != stateClosed {
		ep.mu.Unlock()
		return ErrBusy
	}
	ep.state = stateLocking
	ep.mu.Unlock()

	if err := ep.locker.TryAcquire(); err != nil {
		ep.mu.Lock()
		ep.state = stateClosed
		ep.mu.Unlock()
		return wrapErr("acquire lock", err)
	}

	ep.mu.Lock()
	ep.state = stateOpening
	ep.mu.Unlock()

	mode := syscall.O_NONBLOCK | syscall.O_NOCTTY
	if ep.writeOnly {
		mode |= syscall.O_WRONLY
	} else {
		mode |= syscall.O_RDWR
	}
	fd, err := syscall.Open(ep.devicePath, mode, 0)
	if err != nil {
		ep.locker.Release()
		ep.mu.Lock()
		ep.state = stateClosed
		ep.mu.Unlock()
		return wrapErr("open "+ep.devicePath, err)
	}

	if !ep.writeOnly {
		if err := ioctlSetTermios2(fd, &ep.defaultTermios); err != nil {
			syscall.Close(fd)
			ep.locker.Release()
			ep.mu.Lock()
			ep.state = stateClosed
			ep.mu.Unlock()
			return wrapErr("apply default termios", err)
		}
	}
	ioctlClearBreak(fd)

	ep.mu.Lock()
	ep.fd = fd
	ep.open = true
	ep.breakSet = false
	ep.sentFirstModemstate = false
	ep.lastModemstate = 0
	ep.state = stateOpen
	ep.mu.Unlock()

	if !ep.writeOnly {
		ep.Subscribe(0xFF)
	}
	return nil
}

// Close drains pending output, stops the poller, releases the fd and
// the UUCP lock, and returns the Endpoint to the closed state. It
// blocks for at most drainBudget*10ms waiting for the drain conditions.
func (ep *Endpoint) Close() error {
	ep.mu.Lock()
	if ep.state != stateOpen {
		ep.mu.Unlock()
		return ErrClosed
	}
	ep.state = stateDraining
	ep.open = false
	ep.closeTimeoutsLeft = ep.drainBudget
	fd := ep.fd
	ep.mu.Unlock()

	ep.requestPollerStop()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		ep.mu.Lock()
		queueEmpty := len(ep.queue) == 0 && !ep.deferredPending
		ep.mu.Unlock()

		outq, _ := outputQueueLen(fd)
		pollerDone := ep.pollerHasStopped()

		if (queueEmpty && pollerDone && outq == 0) || ep.closeTimeoutsLeft <= 0 {
			break
		}
		ep.closeTimeoutsLeft--
		<-ticker.C
	}

	err := syscall.Close(fd)
	lockErr := ep.locker.Release()

	ep.mu.Lock()
	ep.fd = -1
	ep.state = stateClosed
	ep.mu.Unlock()

	if err != nil {
		return wrapErr("close", err)
	}
	if lockErr != nil {
		return wrapErr("release lock", lockErr)
	}
	return nil
}

// IsOpen reports whether the endpoint is in the open state. It is false
// while Close is draining, even though the fd is still held then.
func (ep *Endpoint) IsOpen() bool {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return ep.state == stateOpen
}

//go:build linux

package sertty

// Synchronous, non-queued control operations that don't fit the
// set-then-readback shape of queue.go.

// HoldOutput pauses or resumes output flow via tcflow(TCOOFF/TCOON).
func (ep *Endpoint) HoldOutput(hold bool) error {
	if ep.writeOnly {
		return ErrUnsupported
	}
	ep.mu.Lock()
	defer ep.mu.Unlock()
	if !ep.open {
		return ErrBusy
	}
	f := TCOON
	if hold {
		f = TCOOFF
	}
	if err := ioctlFlow(ep.fd, f); err != nil {
		return wrapErr("tcflow", err)
	}
	return nil
}

// Flush discards buffered data in the given queue(s).
func (ep *Endpoint) Flush(q Queue) error {
	if ep.writeOnly {
		return ErrUnsupported
	}
	switch q {
	case TCIFLUSH, TCOFLUSH, TCIOFLUSH:
	default:
		return ErrInvalidArgument
	}
	ep.mu.Lock()
	defer ep.mu.Unlock()
	if !ep.open {
		return ErrBusy
	}
	if err := ioctlFlush(ep.fd, q); err != nil {
		return wrapErr("tcflush", err)
	}
	return nil
}

// SendBreak issues a transient ~0.25-0.5s BREAK (tcsendbreak(fd, 0)),
// distinct from SetBreak, which latches the line.
func (ep *Endpoint) SendBreak() error {
	if ep.writeOnly {
		return ErrUnsupported
	}
	ep.mu.Lock()
	defer ep.mu.Unlock()
	if !ep.open {
		return ErrBusy
	}
	if err := ioctlSendBreak(ep.fd, 0); err != nil {
		return wrapErr("tcsendbreak", err)
	}
	return nil
}

// RemoteID returns the numeric file descriptor, for diagnostics only.
func (ep *Endpoint) RemoteID() int {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	if !ep.open {
		return -1
	}
	return ep.fd
}

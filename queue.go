//go:build linux

package sertty

// Operation queue. submit() performs a synchronous OS write for a
// "set" (non-zero value) on the caller's own goroutine, then — if a
// completion was supplied — appends a queue entry and lets the deferred
// runner (runDeferred) read the effective value back and invoke the
// completion with the endpoint lock released, so completions may safely
// re-enter the endpoint (e.g. submit another operation).

// OpKind tags which of the three accessor shapes a queue entry carries.
type OpKind int

const (
	OpTermios OpKind = iota
	OpModemCtl
	OpBreak
)

// Completion is invoked once per submitted operation, with the endpoint
// lock released, carrying the effective value re-read from the OS (or the
// error from the read-back). A failed synchronous set is returned by the
// submitting call itself and its completion is never invoked.
type Completion func(ep *Endpoint, err error, val int, ctx any)

type opEntry struct {
	kind       OpKind
	termiosFn  termiosAccessor
	modemFn    modemAccessor
	completion Completion
	ctx        any
}

// submit queues one get/set operation. termiosFn is used when kind ==
// OpTermios, modemFn when kind == OpModemCtl; both are nil for OpBreak,
// whose get/set path is fixed (TIOCSBRK/TIOCCBRK, and breakSet for the
// read-back).
func (ep *Endpoint) submit(kind OpKind, val int, termiosFn termiosAccessor, modemFn modemAccessor, completion Completion, ctx any) error {
	if ep.writeOnly {
		return ErrUnsupported
	}

	ep.mu.Lock()
	if !ep.open {
		ep.mu.Unlock()
		return ErrBusy
	}

	if val != 0 {
		if err := ep.syncSet(kind, val, termiosFn, modemFn); err != nil {
			ep.mu.Unlock()
			return err
		}
	}

	if completion != nil {
		entry := &opEntry{kind: kind, termiosFn: termiosFn, modemFn: modemFn, completion: completion, ctx: ctx}
		wasEmpty := len(ep.queue) == 0
		ep.queue = append(ep.queue, entry)
		if wasEmpty && !ep.deferredPending {
			ep.deferredPending = true
			ep.scheduler.Run(ep.runDeferred)
		}
	}
	ep.mu.Unlock()
	return nil
}

// syncSet performs the immediate OS write for a "set". Called with
// ep.mu held.
func (ep *Endpoint) syncSet(kind OpKind, val int, termiosFn termiosAccessor, modemFn modemAccessor) error {
	switch kind {
	case OpTermios:
		t, err := ioctlGetTermios2(ep.fd)
		if err != nil {
			return wrapErr("get termios", err)
		}
		v := val
		if err := termiosFn(t, &v); err != nil {
			return ErrInvalidArgument
		}
		if err := ioctlSetTermios2(ep.fd, t); err != nil {
			return wrapErr("set termios", err)
		}
		return nil
	case OpModemCtl:
		m, err := ioctlGetModemLines(ep.fd)
		if err != nil {
			return wrapErr("get modem lines", err)
		}
		v := val
		if err := modemFn(&m, &v); err != nil {
			return ErrInvalidArgument
		}
		if err := ioctlSetModemLines(ep.fd, m); err != nil {
			return wrapErr("set modem lines", err)
		}
		return nil
	case OpBreak:
		switch LineState(val) {
		case LineOn:
			if err := ioctlSetBreak(ep.fd); err != nil {
				return wrapErr("set break", err)
			}
			ep.breakSet = true
		case LineOff:
			if err := ioctlClearBreak(ep.fd); err != nil {
				return wrapErr("clear break", err)
			}
			ep.breakSet = false
		default:
			return ErrInvalidArgument
		}
		return nil
	default:
		return ErrInvalidArgument
	}
}

// readBack re-reads the current value for a queue entry. Called with
// ep.mu held; the result is returned for the caller to deliver with the
// lock released.
func (ep *Endpoint) readBack(qe *opEntry) (int, error) {
	switch qe.kind {
	case OpTermios:
		t, err := ioctlGetTermios2(ep.fd)
		if err != nil {
			return 0, wrapErr("get termios", err)
		}
		var val int
		if err := qe.termiosFn(t, &val); err != nil {
			return 0, ErrInvalidArgument
		}
		return val, nil
	case OpModemCtl:
		m, err := ioctlGetModemLines(ep.fd)
		if err != nil {
			return 0, wrapErr("get modem lines", err)
		}
		var val int
		if err := qe.modemFn(&m, &val); err != nil {
			return 0, ErrInvalidArgument
		}
		return val, nil
	case OpBreak:
		if ep.breakSet {
			return int(LineOn), nil
		}
		return int(LineOff), nil
	default:
		return 0, ErrInvalidArgument
	}
}

// runDeferred drains the queue in FIFO order, calling each entry's
// completion with the lock released, and re-scans for entries appended
// during a completion before clearing deferredPending.
func (ep *Endpoint) runDeferred() {
	ep.mu.Lock()
	for len(ep.queue) > 0 {
		qe := ep.queue[0]
		ep.queue = ep.queue[1:]
		val, err := ep.readBack(qe)
		ep.mu.Unlock()
		qe.completion(ep, err, val, qe.ctx)
		ep.mu.Lock()
	}
	ep.deferredPending = false
	ep.mu.Unlock()
}

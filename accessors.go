//go:build linux

package sertty

// Public accessors. Each pair submits a queued
// operation: Set performs the OS write synchronously and, if completion
// is non-nil, also arranges a deferred read-back; Get only schedules the
// read-back. completion and ctx may both be nil for a Set whose
// effective value the caller doesn't need reported back.

// SetBaud requests a new baud rate. bps may be any positive rate; the
// driver may snap it to the nearest supported value, which is what the
// read-back (via completion) reports.
func (ep *Endpoint) SetBaud(bps int, completion Completion, ctx any) error {
	return ep.submit(OpTermios, bps, accessBaud, nil, completion, ctx)
}

// GetBaud schedules a read of the current effective baud rate.
func (ep *Endpoint) GetBaud(completion Completion, ctx any) error {
	return ep.submit(OpTermios, 0, accessBaud, nil, completion, ctx)
}

func (ep *Endpoint) SetDataSize(bits int, completion Completion, ctx any) error {
	return ep.submit(OpTermios, bits, accessDataSize, nil, completion, ctx)
}

func (ep *Endpoint) GetDataSize(completion Completion, ctx any) error {
	return ep.submit(OpTermios, 0, accessDataSize, nil, completion, ctx)
}

func (ep *Endpoint) SetParity(p Parity, completion Completion, ctx any) error {
	return ep.submit(OpTermios, int(p), accessParity, nil, completion, ctx)
}

func (ep *Endpoint) GetParity(completion Completion, ctx any) error {
	return ep.submit(OpTermios, 0, accessParity, nil, completion, ctx)
}

func (ep *Endpoint) SetStopBits(bits int, completion Completion, ctx any) error {
	return ep.submit(OpTermios, bits, accessStopBits, nil, completion, ctx)
}

func (ep *Endpoint) GetStopBits(completion Completion, ctx any) error {
	return ep.submit(OpTermios, 0, accessStopBits, nil, completion, ctx)
}

func (ep *Endpoint) SetFlowControl(fc FlowControl, completion Completion, ctx any) error {
	return ep.submit(OpTermios, int(fc), accessFlowControl, nil, completion, ctx)
}

func (ep *Endpoint) GetFlowControl(completion Completion, ctx any) error {
	return ep.submit(OpTermios, 0, accessFlowControl, nil, completion, ctx)
}

func (ep *Endpoint) SetIFlowControl(fc FlowControl, completion Completion, ctx any) error {
	return ep.submit(OpTermios, int(fc), accessIFlowControl, nil, completion, ctx)
}

func (ep *Endpoint) GetIFlowControl(completion Completion, ctx any) error {
	return ep.submit(OpTermios, 0, accessIFlowControl, nil, completion, ctx)
}

func (ep *Endpoint) SetDTR(state LineState, completion Completion, ctx any) error {
	return ep.submit(OpModemCtl, int(state), nil, accessDTR, completion, ctx)
}

func (ep *Endpoint) GetDTR(completion Completion, ctx any) error {
	return ep.submit(OpModemCtl, 0, nil, accessDTR, completion, ctx)
}

func (ep *Endpoint) SetRTS(state LineState, completion Completion, ctx any) error {
	return ep.submit(OpModemCtl, int(state), nil, accessRTS, completion, ctx)
}

func (ep *Endpoint) GetRTS(completion Completion, ctx any) error {
	return ep.submit(OpModemCtl, 0, nil, accessRTS, completion, ctx)
}

// SetBreak latches or clears the BREAK condition (distinct from the
// transient SendBreak in controlops.go).
func (ep *Endpoint) SetBreak(state LineState, completion Completion, ctx any) error {
	return ep.submit(OpBreak, int(state), nil, nil, completion, ctx)
}

func (ep *Endpoint) GetBreak(completion Completion, ctx any) error {
	return ep.submit(OpBreak, 0, nil, nil, completion, ctx)
}

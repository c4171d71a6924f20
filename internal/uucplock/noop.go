package uucplock

// Noop is a Locker that always succeeds, for endpoints backed by a pty
// rather than a real spool-locked tty device.
type Noop struct{}

func (Noop) TryAcquire() error { return nil }
func (Noop) Release() error    { return nil }

//go:build linux

package sertty

import (
	"sync"

	"github.com/go-sertty/sertty/internal/uucplock"
)

// lifecycleState tracks the endpoint through
// closed -> locking -> opening -> open -> draining -> closed.
type lifecycleState int

const (
	stateClosed lifecycleState = iota
	stateLocking
	stateOpening
	stateOpen
	stateDraining
)

// defaultDrainBudget is the number of 10ms polls the close sequence
// waits for the OS output queue to empty before giving up.
const defaultDrainBudget = 200

// Endpoint wraps one serial (tty) device as an asynchronous byte-stream
// endpoint with out-of-band wire-parameter control: the single object a
// consumer holds, combining the lifecycle controller, the
// termios/modem adapter, the operation queue and the modem-state poller
// around one open file descriptor.
type Endpoint struct {
	mu sync.Mutex

	devicePath     string
	writeOnly      bool
	defaultTermios Termios2
	readBufSize    int
	drainBudget    int

	scheduler Scheduler
	events    EventSink
	locker    uucplock.Locker

	state lifecycleState
	fd    int
	open  bool

	queue           []*opEntry
	deferredPending bool
	breakSet        bool

	modemstateMask      byte
	lastModemstate      byte
	sentFirstModemstate bool
	handlingModemstate  bool
	pollerTimer         Timer
	pollerStopRequested bool
	pollerStopped       bool

	closeTimeoutsLeft int
}

// Option customizes an Endpoint at construction time.
type Option func(*Endpoint)

// WithScheduler supplies the host's own event-loop integration instead of
// the default goroutine/time.Timer scheduler.
func WithScheduler(s Scheduler) Option {
	return func(ep *Endpoint) { ep.scheduler = s }
}

// WithEventSink registers the consumer that receives dispatched events
// (currently only SerModemState).
func WithEventSink(sink EventSink) Option {
	return func(ep *Endpoint) { ep.events = sink }
}

// WithDrainBudget overrides the number of 10ms polls Close waits for the
// output queue to drain before giving up (default 200, i.e. ~2s).
func WithDrainBudget(n int) Option {
	return func(ep *Endpoint) {
		if n > 0 {
			ep.drainBudget = n
		}
	}
}

// WithLocker overrides the UUCP-style exclusive-open lock, mainly so
// tests can substitute a no-op locker when exercising a pty pair that
// isn't in the lock spool's naming scheme.
func WithLocker(l uucplock.Locker) Option {
	return func(ep *Endpoint) { ep.locker = l }
}

// New parses a device specification string and returns a closed
// Endpoint ready for Open. The string's first token is the device path;
// subsequent comma/whitespace-separated tokens configure the default
// termios applied on open (baud, parity, data bits, stop bits, flow
// control, WRONLY) per parser.go.
func New(spec string, opts ...Option) (*Endpoint, error) {
	ep := &Endpoint{
		scheduler:   defaultScheduler,
		drainBudget: defaultDrainBudget,
		readBufSize: 4096,
	}
	ep.defaultTermios.MakeRawDefaults()

	if err := parseDeviceSpec(spec, ep); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(ep)
	}
	if ep.locker == nil {
		ep.locker = uucplock.New(ep.devicePath)
	}
	return ep, nil
}

// MakeRawDefaults seeds a Termios2 with the raw-mode 9600-8N1 baseline
// applied before any user-supplied overrides: cfmakeraw-equivalent
// flags plus CREAD and IGNBRK, with DC1/DC3 as the start/stop
// characters.
func (t *Termios2) MakeRawDefaults() {
	var base Termios
	base.MakeRaw()
	t.Iflag = base.Iflag | IGNBRK
	t.Oflag = base.Oflag
	t.Cflag = base.Cflag | CREAD
	t.Lflag = base.Lflag
	t.Line = N_TTY
	t.Cc[VSTART] = 0x11
	t.Cc[VSTOP] = 0x13
	t.Cc[VMIN] = 1
	t.Cc[VTIME] = 0
	setBaud(t, 9600)
}

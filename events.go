package sertty

// EventKind identifies a dispatched event.
type EventKind int

// SerModemState is the only event kind this core emits: a masked
// modem-state word, emitted at least once after open and thereafter on
// every masked edge.
const SerModemState EventKind = 0

// Event is handed to the consumer's EventSink. For SerModemState
// events, Data is a 4-byte native-endian unsigned integer whose low 8
// bits are the modem-state word.
type Event struct {
	Kind EventKind
	Data []byte
}

// EventSink is the stream consumer the Endpoint dispatches events to.
// It is the only surface this package needs from the byte-stream layer:
// events are handed over, read/write scheduling stays with the consumer.
type EventSink interface {
	OnEvent(ev Event)
}

// EventSinkFunc adapts a plain function to an EventSink.
type EventSinkFunc func(ev Event)

func (f EventSinkFunc) OnEvent(ev Event) { f(ev) }

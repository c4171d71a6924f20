//go:build linux

package sertty

import (
	"testing"
	"time"

	"github.com/go-sertty/sertty/internal/uucplock"
)

func TestProcessModemSampleForceSendsFirst(t *testing.T) {
	ep := newTestEndpoint()
	ep.modemstateMask = 0xFF

	_, dispatch := ep.processModemSample(0)
	if !dispatch {
		t.Error("first sample should always dispatch")
	}
	if !ep.sentFirstModemstate {
		t.Error("sentFirstModemstate not set")
	}
}

func TestProcessModemSampleEdgeDetection(t *testing.T) {
	ep := newTestEndpoint()
	ep.modemstateMask = 0xFF
	ep.sentFirstModemstate = true
	ep.lastModemstate = modemBitCTS // CTS was up

	// CTS drops: word no longer has modemBitCTS set.
	newState, dispatch := ep.processModemSample(0)
	if !dispatch {
		t.Fatal("expected dispatch on CTS edge")
	}
	wantEdge := byte(modemBitCTS >> 4)
	if newState&0x0F != wantEdge {
		t.Errorf("edge bits = %#x, want %#x", newState&0x0F, wantEdge)
	}
}

func TestProcessModemSampleNoEdgeNoDispatch(t *testing.T) {
	ep := newTestEndpoint()
	ep.modemstateMask = 0xFF
	ep.sentFirstModemstate = true
	ep.lastModemstate = modemBitCTS

	_, dispatch := ep.processModemSample(modemBitCTS)
	if dispatch {
		t.Error("unchanged state should not dispatch")
	}
}

func TestProcessModemSampleMaskSuppressesUnwantedEdges(t *testing.T) {
	ep := newTestEndpoint()
	ep.modemstateMask = modemBitCTS // only care about CTS
	ep.sentFirstModemstate = true
	ep.lastModemstate = 0

	// CD (CAR) goes high; caller doesn't care about CD.
	_, dispatch := ep.processModemSample(modemBitCAR)
	if dispatch {
		t.Error("masked-out edge should not dispatch")
	}
}

func TestModemLineToWord(t *testing.T) {
	cur := TIOCM_CAR | TIOCM_CTS
	word := modemLineToWord(cur)
	if word != modemBitCAR|modemBitCTS {
		t.Errorf("word = %#x, want %#x", word, modemBitCAR|modemBitCTS)
	}
}

func TestDispatchModemStatePayload(t *testing.T) {
	var got Event
	sink := EventSinkFunc(func(ev Event) { got = ev })
	dispatchModemState(sink, 0xA0)

	if got.Kind != SerModemState {
		t.Errorf("Kind = %v, want SerModemState", got.Kind)
	}
	if len(got.Data) != 4 {
		t.Fatalf("Data len = %d, want 4", len(got.Data))
	}
	if got.Data[0] != 0xA0 && got.Data[3] != 0xA0 {
		t.Errorf("Data = %v, want low byte 0xA0 (either endianness)", got.Data)
	}
}

func TestInitialModemstateEventOverPTY(t *testing.T) {
	_, slavePath, err := OpenPTYPair()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}

	events := make(chan Event, 8)
	ep, err := New(slavePath,
		WithLocker(uucplock.Noop{}),
		WithEventSink(EventSinkFunc(func(ev Event) { events <- ev })))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ep.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ep.Close()

	select {
	case ev := <-events:
		if ev.Kind != SerModemState {
			t.Errorf("Kind = %v, want SerModemState", ev.Kind)
		}
		if len(ev.Data) != 4 {
			t.Errorf("Data len = %d, want 4", len(ev.Data))
		}
	case <-time.After(time.Second):
		t.Fatal("no initial modem-state event after open")
	}
}

func TestSubscribeZeroStopsPoller(t *testing.T) {
	_, slavePath, err := OpenPTYPair()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	ep, err := New(slavePath, WithLocker(uucplock.Noop{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ep.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ep.Close()

	ep.Subscribe(0)

	deadline := time.Now().Add(time.Second)
	for !ep.pollerHasStopped() {
		if time.Now().After(deadline) {
			t.Fatal("poller never stopped after Subscribe(0)")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

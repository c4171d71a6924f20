//go:build linux

package sertty

import "testing"

func TestBaudStandardRoundTrip(t *testing.T) {
	for bps := range standardBauds {
		var term Termios2
		if err := setBaud(&term, bps); err != nil {
			t.Fatalf("setBaud(%d): %v", bps, err)
		}
		got := getBaud(&term)
		if got != bps {
			t.Errorf("getBaud after setBaud(%d) = %d", bps, got)
		}
		if term.ISpeed != 0 || term.OSpeed != 0 {
			t.Errorf("standard rate %d left ISpeed/OSpeed set: %d/%d", bps, term.ISpeed, term.OSpeed)
		}
	}
}

func TestBaudCustomRateUsesBOTHER(t *testing.T) {
	var term Termios2
	if err := setBaud(&term, 123456); err != nil {
		t.Fatalf("setBaud(123456): %v", err)
	}
	if term.Cflag&(CBAUD|CBAUDEX) != BOTHER {
		t.Errorf("custom rate did not set BOTHER, Cflag=%v", term.Cflag)
	}
	if term.ISpeed != 123456 || term.OSpeed != 123456 {
		t.Errorf("ISpeed/OSpeed = %d/%d, want 123456", term.ISpeed, term.OSpeed)
	}
	if got := getBaud(&term); got != 123456 {
		t.Errorf("getBaud = %d, want 123456", got)
	}
}

func TestBaudInvalid(t *testing.T) {
	var term Termios2
	if err := setBaud(&term, 0); err != ErrInvalidArgument {
		t.Errorf("setBaud(0) error = %v, want ErrInvalidArgument", err)
	}
	if err := setBaud(&term, -1); err != ErrInvalidArgument {
		t.Errorf("setBaud(-1) error = %v, want ErrInvalidArgument", err)
	}
}

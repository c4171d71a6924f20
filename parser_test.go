//go:build linux

package sertty

import "testing"

func newTestEndpoint() *Endpoint {
	ep := &Endpoint{scheduler: defaultScheduler, drainBudget: defaultDrainBudget, readBufSize: 4096}
	ep.defaultTermios.MakeRawDefaults()
	return ep
}

func TestParseDeviceSpecBasic(t *testing.T) {
	ep := newTestEndpoint()
	if err := parseDeviceSpec("/dev/ttyUSB0,9600,8,N,1STOPBITS", ep); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ep.devicePath != "/dev/ttyUSB0" {
		t.Errorf("devicePath = %q", ep.devicePath)
	}
	if got := getBaud(&ep.defaultTermios); got != 9600 {
		t.Errorf("baud = %d, want 9600", got)
	}
}

func TestParseDeviceSpecWronly(t *testing.T) {
	ep := newTestEndpoint()
	if err := parseDeviceSpec("/dev/ttyUSB0 WRONLY", ep); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !ep.writeOnly {
		t.Error("writeOnly not set")
	}
}

func TestParseDeviceSpecFlowControl(t *testing.T) {
	ep := newTestEndpoint()
	if err := parseDeviceSpec("/dev/ttyUSB0,RTSCTS", ep); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ep.defaultTermios.Cflag&CRTSCTS == 0 {
		t.Error("RTSCTS token did not set CRTSCTS")
	}
}

func TestParseDeviceSpecReadBuf(t *testing.T) {
	ep := newTestEndpoint()
	if err := parseDeviceSpec("/dev/ttyUSB0,readbuf=8192", ep); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ep.readBufSize != 8192 {
		t.Errorf("readBufSize = %d, want 8192", ep.readBufSize)
	}
}

func TestParseDeviceSpecUnknownToken(t *testing.T) {
	ep := newTestEndpoint()
	if err := parseDeviceSpec("/dev/ttyUSB0,bogus", ep); err != ErrInvalidArgument {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestParseDeviceSpecEmpty(t *testing.T) {
	ep := newTestEndpoint()
	if err := parseDeviceSpec("", ep); err != ErrInvalidArgument {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestParseDeviceSpecCombinedSpeedToken(t *testing.T) {
	ep := newTestEndpoint()
	if err := parseDeviceSpec("/dev/ttyS0,115200E71", ep); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := getBaud(&ep.defaultTermios); got != 115200 {
		t.Errorf("baud = %d, want 115200", got)
	}
	if ep.defaultTermios.Cflag&PARENB == 0 || ep.defaultTermios.Cflag&PARODD != 0 {
		t.Error("E did not select even parity")
	}
	if ep.defaultTermios.Cflag&CSIZE != CS7 {
		t.Error("7 did not select CS7")
	}
	if ep.defaultTermios.Cflag&CSTOPB != 0 {
		t.Error("1 did not select one stop bit")
	}
}

func TestParseDeviceSpecCombinedSpeedN81(t *testing.T) {
	ep := newTestEndpoint()
	if err := parseDeviceSpec("/dev/ttyS0,9600N81", ep); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := getBaud(&ep.defaultTermios); got != 9600 {
		t.Errorf("baud = %d, want 9600", got)
	}
	if got := cpsCode(&ep.defaultTermios); got != "N81" {
		t.Errorf("cps = %q, want N81", got)
	}
}

func TestParseDeviceSpecCaseSensitive(t *testing.T) {
	ep := newTestEndpoint()
	if err := parseDeviceSpec("/dev/ttyS0,wronly", ep); err != ErrInvalidArgument {
		t.Errorf("lowercase token error = %v, want ErrInvalidArgument", err)
	}
}

func TestParseDeviceSpecNegatedTokens(t *testing.T) {
	ep := newTestEndpoint()
	if err := parseDeviceSpec("/dev/ttyS0,XONXOFF,-XONXOFF,CLOCAL,-CLOCAL", ep); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ep.defaultTermios.Iflag&(IXON|IXOFF) != 0 {
		t.Error("-XONXOFF did not clear IXON/IXOFF")
	}
	if ep.defaultTermios.Cflag&CLOCAL != 0 {
		t.Error("-CLOCAL did not clear CLOCAL")
	}
}

func TestParseDeviceSpecBadCombinedSuffix(t *testing.T) {
	ep := newTestEndpoint()
	if err := parseDeviceSpec("/dev/ttyS0,9600X81", ep); err != ErrInvalidArgument {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestParseDeviceSpecDefaultTermios(t *testing.T) {
	ep := newTestEndpoint()
	if err := parseDeviceSpec("/dev/ttyS0", ep); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ep.defaultTermios.Iflag&IGNBRK == 0 {
		t.Error("default termios missing IGNBRK")
	}
	if ep.defaultTermios.Cflag&CREAD == 0 {
		t.Error("default termios missing CREAD")
	}
	if got := getBaud(&ep.defaultTermios); got != 9600 {
		t.Errorf("default baud = %d, want 9600", got)
	}
	if ep.defaultTermios.Cc[VSTART] != 0x11 || ep.defaultTermios.Cc[VSTOP] != 0x13 {
		t.Error("default VSTART/VSTOP not 0x11/0x13")
	}
}

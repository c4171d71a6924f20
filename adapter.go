//go:build linux

package sertty

// Accessors mapping abstract line parameters onto termios/modem-control
// bits. Each accessor is bidirectional: *val == 0 means "read back the
// current setting into *val"; *val != 0 means "apply *val to
// termio/mctl".
//
// The enums below reserve the zero value as "no value supplied" so a
// legitimate setting (e.g. ParityNone, LineOff) is never confused with a
// get request.

type Parity int

const (
	_ Parity = iota
	ParityNone
	ParityOdd
	ParityEven
	ParityMark
	ParitySpace
)

type FlowControl int

const (
	_ FlowControl = iota
	FlowControlNone
	FlowControlXONXOFF
	FlowControlRTSCTS
)

// LineState is the set-value encoding for BREAK, DTR and RTS: the zero
// value means "get", so On/Off are both non-zero.
type LineState int

const (
	_ LineState = iota
	LineOff
	LineOn
)

// cmsparSupported reports whether the running kernel/arch understands
// CMSPAR (stick parity). Linux has carried CMSPAR since 2.6.4 on every
// architecture this module targets, so it is a compile-time constant
// here rather than a runtime probe.
const cmsparSupported = true

// termiosAccessor reads or sets one termios-backed parameter.
type termiosAccessor func(t *Termios2, val *int) error

// modemAccessor reads or sets one modem-control-line parameter.
type modemAccessor func(m *ModemLine, val *int) error

func accessBaud(t *Termios2, val *int) error {
	if *val != 0 {
		if err := setBaud(t, *val); err != nil {
			return err
		}
		return nil
	}
	*val = getBaud(t)
	return nil
}

func accessDataSize(t *Termios2, val *int) error {
	if *val != 0 {
		var bits CFlag
		switch *val {
		case 5:
			bits = CS5
		case 6:
			bits = CS6
		case 7:
			bits = CS7
		case 8:
			bits = CS8
		default:
			return ErrInvalidArgument
		}
		t.Cflag &^= CSIZE
		t.Cflag |= bits
		return nil
	}
	switch t.Cflag & CSIZE {
	case CS5:
		*val = 5
	case CS6:
		*val = 6
	case CS7:
		*val = 7
	case CS8:
		*val = 8
	default:
		return ErrInvalidArgument
	}
	return nil
}

func accessParity(t *Termios2, val *int) error {
	if *val != 0 {
		var bits CFlag
		switch Parity(*val) {
		case ParityNone:
			bits = 0
		case ParityOdd:
			bits = PARENB | PARODD
		case ParityEven:
			bits = PARENB
		case ParityMark:
			if !cmsparSupported {
				return ErrInvalidArgument
			}
			bits = PARENB | PARODD | CMSPAR
		case ParitySpace:
			if !cmsparSupported {
				return ErrInvalidArgument
			}
			bits = PARENB | CMSPAR
		default:
			return ErrInvalidArgument
		}
		t.Cflag &^= PARENB | PARODD | CMSPAR
		t.Cflag |= bits
		return nil
	}
	switch {
	case t.Cflag&PARENB == 0:
		*val = int(ParityNone)
	case t.Cflag&PARODD != 0:
		if cmsparSupported && t.Cflag&CMSPAR != 0 {
			*val = int(ParityMark)
		} else {
			*val = int(ParityOdd)
		}
	default:
		if cmsparSupported && t.Cflag&CMSPAR != 0 {
			*val = int(ParitySpace)
		} else {
			*val = int(ParityEven)
		}
	}
	return nil
}

func accessStopBits(t *Termios2, val *int) error {
	if *val != 0 {
		switch *val {
		case 1:
			t.Cflag &^= CSTOPB
		case 2:
			t.Cflag |= CSTOPB
		default:
			return ErrInvalidArgument
		}
		return nil
	}
	if t.Cflag&CSTOPB != 0 {
		*val = 2
	} else {
		*val = 1
	}
	return nil
}

func accessFlowControl(t *Termios2, val *int) error {
	if *val != 0 {
		var bits CFlag
		var iflag IFlag
		switch FlowControl(*val) {
		case FlowControlNone:
		case FlowControlXONXOFF:
			iflag = IXON | IXOFF
		case FlowControlRTSCTS:
			bits = CRTSCTS
		default:
			return ErrInvalidArgument
		}
		t.Iflag &^= IXON | IXOFF
		t.Cflag &^= CRTSCTS
		t.Iflag |= iflag
		t.Cflag |= bits
		return nil
	}
	switch {
	case t.Cflag&CRTSCTS != 0:
		*val = int(FlowControlRTSCTS)
	case t.Iflag&(IXON|IXOFF) != 0:
		*val = int(FlowControlXONXOFF)
	default:
		*val = int(FlowControlNone)
	}
	return nil
}

// accessIFlowControl sets/reads only the input side; IXOFF is the only
// independently settable input flow bit.
func accessIFlowControl(t *Termios2, val *int) error {
	if *val != 0 {
		switch FlowControl(*val) {
		case FlowControlNone:
			t.Iflag &^= IXOFF
		case FlowControlXONXOFF:
			t.Iflag |= IXOFF
		default:
			return ErrInvalidArgument
		}
		return nil
	}
	if t.Iflag&IXOFF != 0 {
		*val = int(FlowControlXONXOFF)
	} else {
		*val = int(FlowControlNone)
	}
	return nil
}

func accessDTR(m *ModemLine, val *int) error {
	if *val != 0 {
		switch LineState(*val) {
		case LineOn:
			*m |= TIOCM_DTR
		case LineOff:
			// AND-NOT, not AND: a plain &= here would zero every
			// other modem bit.
			*m &^= TIOCM_DTR
		default:
			return ErrInvalidArgument
		}
		return nil
	}
	if *m&TIOCM_DTR != 0 {
		*val = int(LineOn)
	} else {
		*val = int(LineOff)
	}
	return nil
}

func accessRTS(m *ModemLine, val *int) error {
	if *val != 0 {
		switch LineState(*val) {
		case LineOn:
			*m |= TIOCM_RTS
		case LineOff:
			*m &^= TIOCM_RTS // AND-NOT, see accessDTR
		default:
			return ErrInvalidArgument
		}
		return nil
	}
	if *m&TIOCM_RTS != 0 {
		*val = int(LineOn)
	} else {
		*val = int(LineOff)
	}
	return nil
}

//go:build linux

package sertty

import (
	"fmt"
	"strings"
)

// Address renders a human-readable summary of
// the endpoint's device and current (or default) termios/modem state,
// in the same key-ordering the device spec parser accepts tokens in.
func (ep *Endpoint) Address() string {
	ep.mu.Lock()
	defer ep.mu.Unlock()

	if ep.writeOnly {
		return fmt.Sprintf("%s offline", ep.devicePath)
	}

	t := ep.defaultTermios
	var modemline ModemLine
	offline := true
	if ep.open {
		if live, err := ioctlGetTermios2(ep.fd); err == nil {
			t = *live
		}
		if m, err := ioctlGetModemLines(ep.fd); err == nil {
			modemline = m
			offline = false
		}
	}

	var b strings.Builder
	b.WriteString(ep.devicePath)

	bps := getBaud(&t)
	b.WriteString(fmt.Sprintf(",%d%s", bps, cpsCode(&t)))

	if t.Iflag&IXON != 0 && t.Iflag&IXOFF != 0 {
		b.WriteString(",XONXOFF")
	}
	if t.Cflag&CRTSCTS != 0 {
		b.WriteString(",RTSCTS")
	}
	if t.Cflag&CLOCAL != 0 {
		b.WriteString(",CLOCAL")
	}
	if t.Cflag&HUPCL != 0 {
		b.WriteString(",HANGUP_WHEN_DONE")
	}

	if offline {
		b.WriteString(" offline")
		return b.String()
	}

	if modemline&TIOCM_RTS != 0 {
		b.WriteString(" RTSHI")
	} else {
		b.WriteString(" RTSLO")
	}
	if modemline&TIOCM_DTR != 0 {
		b.WriteString(" DTRHI")
	} else {
		b.WriteString(" DTRLO")
	}
	return b.String()
}

// cpsCode renders the 3-character parity/data/stop code, e.g. "N81".
func cpsCode(t *Termios2) string {
	var parityChar byte = 'N'
	switch {
	case t.Cflag&PARENB == 0:
		parityChar = 'N'
	case t.Cflag&PARODD != 0:
		parityChar = 'O'
	default:
		parityChar = 'E'
	}
	if cmsparSupported && t.Cflag&CMSPAR != 0 {
		if t.Cflag&PARODD != 0 {
			parityChar = 'M'
		} else {
			parityChar = 'S'
		}
	}

	var dataChar byte
	switch t.Cflag & CSIZE {
	case CS5:
		dataChar = '5'
	case CS6:
		dataChar = '6'
	case CS7:
		dataChar = '7'
	default:
		dataChar = '8'
	}

	stopChar := byte('1')
	if t.Cflag&CSTOPB != 0 {
		stopChar = '2'
	}

	return string([]byte{parityChar, dataChar, stopChar})
}

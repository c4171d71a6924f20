//go:build linux

package sertty

import (
	"strconv"
	"strings"
)

// The device spec is a comma- or whitespace-separated token list: the
// first token is the device path, the rest configure the default
// termios applied on open. Tokens are case-sensitive; the first
// unrecognized token rejects the whole string with ErrInvalidArgument.
func parseDeviceSpec(spec string, ep *Endpoint) error {
	fields := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
	})
	if len(fields) == 0 {
		return ErrInvalidArgument
	}

	ep.devicePath = fields[0]

	for _, tok := range fields[1:] {
		if err := applyToken(ep, tok); err != nil {
			return err
		}
	}
	return nil
}

func applyToken(ep *Endpoint, tok string) error {
	switch tok {
	case "WRONLY":
		ep.writeOnly = true
		return nil
	case "XONXOFF":
		v := int(FlowControlXONXOFF)
		return accessFlowControl(&ep.defaultTermios, &v)
	case "-XONXOFF":
		ep.defaultTermios.Iflag &^= IXON | IXOFF
		return nil
	case "RTSCTS":
		v := int(FlowControlRTSCTS)
		return accessFlowControl(&ep.defaultTermios, &v)
	case "-RTSCTS":
		ep.defaultTermios.Cflag &^= CRTSCTS
		return nil
	case "CLOCAL":
		ep.defaultTermios.Cflag |= CLOCAL
		return nil
	case "-CLOCAL":
		ep.defaultTermios.Cflag &^= CLOCAL
		return nil
	case "HUPCL", "HANGUP_WHEN_DONE":
		ep.defaultTermios.Cflag |= HUPCL
		return nil
	case "-HUPCL", "-HANGUP_WHEN_DONE":
		ep.defaultTermios.Cflag &^= HUPCL
		return nil
	case "NONE", "EVEN", "ODD", "MARK", "SPACE", "N", "E", "O", "M", "S":
		return applyParityToken(ep, tok)
	case "1STOPBITS", "2STOPBITS":
		n := int(tok[0] - '0')
		return accessStopBits(&ep.defaultTermios, &n)
	case "5", "6", "7", "8":
		n := int(tok[0] - '0')
		return accessDataSize(&ep.defaultTermios, &n)
	}
	if strings.HasPrefix(tok, "readbuf=") {
		n, err := strconv.Atoi(strings.TrimPrefix(tok, "readbuf="))
		if err != nil || n <= 0 {
			return ErrInvalidArgument
		}
		ep.readBufSize = n
		return nil
	}
	if tok != "" && tok[0] >= '0' && tok[0] <= '9' {
		return applySpeedToken(ep, tok)
	}
	return ErrInvalidArgument
}

// applySpeedToken parses a combined baud spec: decimal bps optionally
// followed by a parity letter, data bits, and stop bits, e.g. "9600",
// "9600N81" or "115200E71".
func applySpeedToken(ep *Endpoint, tok string) error {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	bps, err := strconv.Atoi(tok[:i])
	if err != nil {
		return ErrInvalidArgument
	}
	if err := accessBaud(&ep.defaultTermios, &bps); err != nil {
		return err
	}
	rest := tok[i:]
	if rest == "" {
		return nil
	}

	if err := applyParityToken(ep, rest[:1]); err != nil {
		return err
	}
	rest = rest[1:]
	if rest == "" {
		return nil
	}

	bits := int(rest[0] - '0')
	if err := accessDataSize(&ep.defaultTermios, &bits); err != nil {
		return err
	}
	rest = rest[1:]
	if rest == "" {
		return nil
	}

	stop := int(rest[0] - '0')
	if len(rest) > 1 {
		return ErrInvalidArgument
	}
	return accessStopBits(&ep.defaultTermios, &stop)
}

func applyParityToken(ep *Endpoint, tok string) error {
	var p Parity
	switch tok {
	case "NONE", "N":
		p = ParityNone
	case "EVEN", "E":
		p = ParityEven
	case "ODD", "O":
		p = ParityOdd
	case "MARK", "M":
		p = ParityMark
	case "SPACE", "S":
		p = ParitySpace
	default:
		return ErrInvalidArgument
	}
	v := int(p)
	return accessParity(&ep.defaultTermios, &v)
}

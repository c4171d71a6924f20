//go:build linux

package sertty

import "golang.org/x/sys/unix"

// standardBauds maps a bps value to the CBAUD-range CFlag bits cfsetispeed
// would set.
var standardBauds = map[int]CFlag{
	50:      CFlag(unix.B50),
	75:      CFlag(unix.B75),
	110:     CFlag(unix.B110),
	134:     CFlag(unix.B134),
	150:     CFlag(unix.B150),
	200:     CFlag(unix.B200),
	300:     CFlag(unix.B300),
	600:     CFlag(unix.B600),
	1200:    CFlag(unix.B1200),
	1800:    CFlag(unix.B1800),
	2400:    CFlag(unix.B2400),
	4800:    CFlag(unix.B4800),
	9600:    CFlag(unix.B9600),
	19200:   CFlag(unix.B19200),
	38400:   CFlag(unix.B38400),
	57600:   CFlag(unix.B57600),
	115200:  CFlag(unix.B115200),
	230400:  CFlag(unix.B230400),
	460800:  CFlag(unix.B460800),
	500000:  CFlag(unix.B500000),
	576000:  CFlag(unix.B576000),
	921600:  CFlag(unix.B921600),
	1000000: CFlag(unix.B1000000),
	1152000: CFlag(unix.B1152000),
	1500000: CFlag(unix.B1500000),
	2000000: CFlag(unix.B2000000),
	2500000: CFlag(unix.B2500000),
	3000000: CFlag(unix.B3000000),
	3500000: CFlag(unix.B3500000),
	4000000: CFlag(unix.B4000000),
}

var bauds = func() map[CFlag]int {
	m := make(map[CFlag]int, len(standardBauds))
	for bps, flag := range standardBauds {
		m[flag] = bps
	}
	return m
}()

// setBaud sets termio to request bps. Standard rates go through the
// CBAUD bit table; anything else falls back to BOTHER custom speed via
// Termios2, so arbitrary bps values are representable (the corresponding
// get-back always uses the Termios2 path too, so a requested custom rate
// and its readback stay consistent).
func setBaud(termio *Termios2, bps int) error {
	if bps <= 0 {
		return ErrInvalidArgument
	}
	if flag, ok := standardBauds[bps]; ok {
		termio.Cflag &^= CBAUD | CBAUDEX
		termio.Cflag |= flag
		termio.ISpeed = 0
		termio.OSpeed = 0
		return nil
	}
	termio.Cflag &^= CBAUD | CBAUDEX
	termio.Cflag |= BOTHER
	termio.ISpeed = uint32(bps)
	termio.OSpeed = uint32(bps)
	return nil
}

// getBaud reads back the effective bps from termio. The driver may have
// snapped a requested rate to the nearest supported one, so this always
// reflects what the OS actually holds.
func getBaud(termio *Termios2) int {
	if termio.Cflag&(CBAUD|CBAUDEX) == BOTHER {
		return int(termio.OSpeed)
	}
	if bps, ok := bauds[termio.Cflag&(CBAUD|CBAUDEX)]; ok {
		return bps
	}
	return 0
}

//go:build linux

package sertty

import (
	"unsafe"

	ioctl "github.com/daedaluz/goioctl"
	"golang.org/x/sys/unix"
)

// Numeric ioctl request codes. Requests go through goioctl.Ioctl; the
// request numbers come from golang.org/x/sys/unix where it names them.
var (
	tcgets2 = ioctl.IOR('T', 0x2A, sizeofTermios2())
	tcsets2 = ioctl.IOW('T', 0x2B, sizeofTermios2())

	tcsbrk = uintptr(unix.TCSBRK)

	tiocsbrk = uintptr(unix.TIOCSBRK)
	tioccbrk = uintptr(unix.TIOCCBRK)

	tcflsh = uintptr(unix.TCFLSH)
	tcxonc = uintptr(unix.TCXONC)

	tiocmget = uintptr(unix.TIOCMGET)
	tiocmset = uintptr(unix.TIOCMSET)

	tiocoutq = uintptr(unix.TIOCOUTQ)
)

func ioctlGetTermios2(fd int) (*Termios2, error) {
	t := &Termios2{}
	if err := ioctl.Ioctl(uintptr(fd), tcgets2, uintptr(unsafe.Pointer(t))); err != nil {
		return nil, err
	}
	return t, nil
}

func ioctlSetTermios2(fd int, t *Termios2) error {
	return ioctl.Ioctl(uintptr(fd), tcsets2, uintptr(unsafe.Pointer(t)))
}

func ioctlGetModemLines(fd int) (ModemLine, error) {
	var line int32
	err := ioctl.Ioctl(uintptr(fd), tiocmget, uintptr(unsafe.Pointer(&line)))
	return ModemLine(line), err
}

func ioctlSetModemLines(fd int, line ModemLine) error {
	l := int32(line)
	return ioctl.Ioctl(uintptr(fd), tiocmset, uintptr(unsafe.Pointer(&l)))
}

func ioctlSetBreak(fd int) error {
	return ioctl.Ioctl(uintptr(fd), tiocsbrk, 0)
}

func ioctlClearBreak(fd int) error {
	return ioctl.Ioctl(uintptr(fd), tioccbrk, 0)
}

func ioctlSendBreak(fd int, arg int) error {
	return ioctl.Ioctl(uintptr(fd), tcsbrk, uintptr(arg))
}

func ioctlFlush(fd int, q Queue) error {
	return ioctl.Ioctl(uintptr(fd), tcflsh, uintptr(q))
}

func ioctlFlow(fd int, f Flow) error {
	return ioctl.Ioctl(uintptr(fd), tcxonc, uintptr(f))
}

// outputQueueLen reports the number of bytes still pending in the OS
// output queue (TIOCOUTQ), used by the drain-on-close loop.
func outputQueueLen(fd int) (int, error) {
	var n int32
	err := ioctl.Ioctl(uintptr(fd), tiocoutq, uintptr(unsafe.Pointer(&n)))
	return int(n), err
}

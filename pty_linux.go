//go:build linux

package sertty

import (
	"fmt"
	"syscall"
	"unsafe"

	ioctl "github.com/daedaluz/goioctl"
)

// Loopback pty pair, used by tests as a stand-in serial device: the
// slave side is opened through an ordinary Endpoint while the master fd
// plays the remote end.
var (
	tiocsptlck = ioctl.IOW('T', 0x31, unsafe.Sizeof(int32(0)))
	tiocgptn   = ioctl.IOR('T', 0x30, unsafe.Sizeof(uint32(0)))
)

// OpenPTYPair opens /dev/ptmx, unlocks the slave end, and returns the
// master fd and the slave's device path (e.g. "/dev/pts/3").
func OpenPTYPair() (masterFd int, slavePath string, err error) {
	fd, err := syscall.Open("/dev/ptmx", syscall.O_RDWR|syscall.O_NOCTTY, 0)
	if err != nil {
		return -1, "", fmt.Errorf("open /dev/ptmx: %w", err)
	}

	var lock int32
	if err := ioctl.Ioctl(uintptr(fd), tiocsptlck, uintptr(unsafe.Pointer(&lock))); err != nil {
		syscall.Close(fd)
		return -1, "", fmt.Errorf("unlock pty: %w", err)
	}

	var n uint32
	if err := ioctl.Ioctl(uintptr(fd), tiocgptn, uintptr(unsafe.Pointer(&n))); err != nil {
		syscall.Close(fd)
		return -1, "", fmt.Errorf("get pty number: %w", err)
	}

	return fd, fmt.Sprintf("/dev/pts/%d", n), nil
}

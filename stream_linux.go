//go:build linux

package sertty

import (
	"syscall"
	"time"

	"github.com/daedaluz/fdev/poll"
)

// Byte-stream surface: plain reads and writes on the underlying fd,
// which is opened O_NONBLOCK, with a poll-gated variant that waits a
// bounded time for input before reading.

// Write writes to the device. It fails with ErrClosed if not open.
func (ep *Endpoint) Write(data []byte) (int, error) {
	ep.mu.Lock()
	if ep.state != stateOpen {
		ep.mu.Unlock()
		return 0, ErrClosed
	}
	fd := ep.fd
	ep.mu.Unlock()
	n, err := syscall.Write(fd, data)
	if err != nil {
		return n, wrapErr("write", err)
	}
	return n, nil
}

// Read reads from the device without waiting: the fd is non-blocking, so
// with no input pending it returns the wrapped EAGAIN error.
func (ep *Endpoint) Read(data []byte) (int, error) {
	return ep.ReadTimeout(data, -1)
}

// ReadTimeout reads from the device, waiting at most timeout for data to
// become available. A negative timeout skips the wait and reads at once.
// It reads up to len(data) bytes; readBufSize is not consulted.
func (ep *Endpoint) ReadTimeout(data []byte, timeout time.Duration) (int, error) {
	ep.mu.Lock()
	if ep.state != stateOpen {
		ep.mu.Unlock()
		return 0, ErrClosed
	}
	fd := ep.fd
	ep.mu.Unlock()

	if timeout >= 0 {
		if err := poll.WaitInput(fd, timeout); err != nil {
			return 0, wrapErr("wait input", err)
		}
	}
	n, err := syscall.Read(fd, data)
	if err != nil {
		return n, wrapErr("read", err)
	}
	return n, nil
}

// Fd returns the underlying file descriptor, or -1 if not open.
func (ep *Endpoint) Fd() int {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	if ep.state != stateOpen {
		return -1
	}
	return ep.fd
}

// ReadBufSize returns the readbuf construction option, for a
// byte-stream layer that wants to size its own buffers.
func (ep *Endpoint) ReadBufSize() int {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return ep.readBufSize
}

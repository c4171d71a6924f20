package sertty

import (
	"errors"
	"syscall"
	"testing"
)

func TestWrapErrNilPassesThrough(t *testing.T) {
	if err := wrapErr("open", nil); err != nil {
		t.Errorf("wrapErr(msg, nil) = %v, want nil", err)
	}
}

func TestWrapErrUnwrapsToUnderlying(t *testing.T) {
	err := wrapErr("open device", syscall.EBUSY)
	if !errors.Is(err, syscall.EBUSY) {
		t.Errorf("errors.Is(err, EBUSY) = false, want true")
	}
	var asErrno syscall.Errno
	if !errors.As(err, &asErrno) {
		t.Errorf("errors.As into syscall.Errno failed")
	}
	if asErrno != syscall.EBUSY {
		t.Errorf("asErrno = %v, want EBUSY", asErrno)
	}
}

func TestWrapErrMessage(t *testing.T) {
	err := wrapErr("open device", syscall.ENOENT)
	want := "open device: " + syscall.ENOENT.Error()
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

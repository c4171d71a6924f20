// Package uucplock implements the traditional UUCP-style exclusive-open
// lock for serial devices: a text file under a spool directory, named
// after the device's base name, holding the locking process's PID. The
// format (LCK..<base> containing a decimal PID, stale-lock reclaim via
// kill(pid, 0)) is the one tty tools like getty, minicom and uucp
// itself have used for decades.
package uucplock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ErrLocked is returned by TryAcquire when another live process holds
// the lock.
var ErrLocked = errors.New("uucplock: device locked by another process")

// Locker acquires and releases the exclusive-open lock for one device.
type Locker interface {
	TryAcquire() error
	Release() error
}

// DefaultSpoolDir is where Linux distributions conventionally keep UUCP
// lock files.
const DefaultSpoolDir = "/var/lock"

type fileLocker struct {
	path string // full lock file path
	held bool
}

// New returns a Locker for devicePath using DefaultSpoolDir.
func New(devicePath string) Locker {
	return NewInDir(DefaultSpoolDir, devicePath)
}

// NewInDir returns a Locker for devicePath using an explicit spool
// directory, mainly so tests don't need root to write into /var/lock.
func NewInDir(spoolDir, devicePath string) Locker {
	base := filepath.Base(devicePath)
	return &fileLocker{path: filepath.Join(spoolDir, "LCK.."+base)}
}

// TryAcquire creates the lock file if absent, or reclaims it if the PID
// recorded inside no longer corresponds to a live process. It returns
// ErrLocked if a live process holds it.
func (l *fileLocker) TryAcquire() error {
	for {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			fmt.Fprintf(f, "%10d\n", os.Getpid())
			f.Close()
			l.held = true
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("uucplock: create %s: %w", l.path, err)
		}

		pid, rerr := readLockPID(l.path)
		if rerr != nil {
			// Unreadable or malformed: treat as stale and reclaim.
			if rmErr := os.Remove(l.path); rmErr != nil && !os.IsNotExist(rmErr) {
				return fmt.Errorf("uucplock: remove stale lock %s: %w", l.path, rmErr)
			}
			continue
		}
		if processAlive(pid) {
			return ErrLocked
		}
		if rmErr := os.Remove(l.path); rmErr != nil && !os.IsNotExist(rmErr) {
			return fmt.Errorf("uucplock: remove stale lock %s: %w", l.path, rmErr)
		}
	}
}

// Release removes the lock file if this Locker holds it.
func (l *fileLocker) Release() error {
	if !l.held {
		return nil
	}
	l.held = false
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("uucplock: remove %s: %w", l.path, err)
	}
	return nil
}

func readLockPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, err
	}
	return pid, nil
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return !errors.Is(err, syscall.ESRCH)
}

package uucplock

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestTryAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	l := NewInDir(dir, "/dev/ttyUSB0")

	if err := l.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire: %v", err)
	}

	path := filepath.Join(dir, "LCK..ttyUSB0")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read lock file: %v", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		t.Fatalf("lock file does not contain a PID: %q", data)
	}
	if pid != os.Getpid() {
		t.Errorf("lock file pid = %d, want %d", pid, os.Getpid())
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("lock file still exists after Release: %v", err)
	}
}

func TestTryAcquireHeldByLiveProcess(t *testing.T) {
	dir := t.TempDir()

	first := NewInDir(dir, "/dev/ttyUSB0")
	if err := first.TryAcquire(); err != nil {
		t.Fatalf("first TryAcquire: %v", err)
	}
	defer first.Release()

	second := NewInDir(dir, "/dev/ttyUSB0")
	if err := second.TryAcquire(); err != ErrLocked {
		t.Errorf("second TryAcquire error = %v, want ErrLocked", err)
	}
}

func TestTryAcquireReclaimsStaleLock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "LCK..ttyUSB0")

	// A PID that is vanishingly unlikely to be alive (PID 1 is always
	// alive on any real system running this test, so use a value
	// comfortably past any realistic pid_max instead).
	if err := os.WriteFile(path, []byte("999999999\n"), 0644); err != nil {
		t.Fatalf("seed stale lock: %v", err)
	}

	l := NewInDir(dir, "/dev/ttyUSB0")
	if err := l.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire over stale lock: %v", err)
	}
	defer l.Release()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read reclaimed lock: %v", err)
	}
	if strings.TrimSpace(string(data)) != strconv.Itoa(os.Getpid()) {
		t.Errorf("reclaimed lock file not rewritten with our pid: %q", data)
	}
}

func TestReleaseWithoutAcquireNoop(t *testing.T) {
	dir := t.TempDir()
	l := NewInDir(dir, "/dev/ttyUSB0")
	if err := l.Release(); err != nil {
		t.Errorf("Release without TryAcquire: %v", err)
	}
}

func TestNoop(t *testing.T) {
	var n Noop
	if err := n.TryAcquire(); err != nil {
		t.Errorf("Noop.TryAcquire: %v", err)
	}
	if err := n.Release(); err != nil {
		t.Errorf("Noop.Release: %v", err)
	}
}

package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestDaemon(t *testing.T) (*Daemon, string) {
	t.Helper()
	pidFile := filepath.Join(t.TempDir(), "tracker.pid")
	return New(pidFile), pidFile
}

func TestWriteReadRemovePID(t *testing.T) {
	d, _ := newTestDaemon(t)

	if err := d.WritePID(); err != nil {
		t.Fatalf("WritePID() error: %v", err)
	}

	pid, err := d.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() error: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("ReadPID() = %d, want %d", pid, os.Getpid())
	}

	if err := d.RemovePID(); err != nil {
		t.Fatalf("RemovePID() error: %v", err)
	}

	pid, err = d.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() after remove error: %v", err)
	}
	if pid != 0 {
		t.Errorf("ReadPID() after remove = %d, want 0", pid)
	}
}

func TestReadPIDInvalid(t *testing.T) {
	d, pidFile := newTestDaemon(t)

	if err := os.WriteFile(pidFile, []byte("not a pid"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := d.ReadPID(); err == nil {
		t.Error("ReadPID() with garbage content should fail")
	}
}

func TestRemovePIDMissing(t *testing.T) {
	d, _ := newTestDaemon(t)

	if err := d.RemovePID(); err != nil {
		t.Errorf("RemovePID() without a file returned error: %v", err)
	}
}

func TestIsRunningOwnPID(t *testing.T) {
	d, _ := newTestDaemon(t)

	if err := d.WritePID(); err != nil {
		t.Fatalf("WritePID() error: %v", err)
	}

	running, pid, err := d.IsRunning()
	if err != nil {
		t.Fatalf("IsRunning() error: %v", err)
	}
	if !running {
		t.Error("IsRunning() = false for the test process")
	}
	if pid != os.Getpid() {
		t.Errorf("IsRunning() pid = %d, want %d", pid, os.Getpid())
	}
}

func TestIsRunningStalePID(t *testing.T) {
	d, pidFile := newTestDaemon(t)

	// A PID far above the kernel maximum cannot be alive
	if err := os.WriteFile(pidFile, []byte("99999999"), 0644); err != nil {
		t.Fatal(err)
	}

	running, _, err := d.IsRunning()
	if err != nil {
		t.Fatalf("IsRunning() error: %v", err)
	}
	if running {
		t.Error("IsRunning() = true for a stale PID")
	}

	// The stale file is cleaned up on the way
	if _, err := os.Stat(pidFile); !os.IsNotExist(err) {
		t.Error("stale PID file was not removed")
	}
}

func TestStopNotRunning(t *testing.T) {
	d, _ := newTestDaemon(t)

	if err := d.Stop(); err == nil {
		t.Error("Stop() without a running daemon should fail")
	}
}

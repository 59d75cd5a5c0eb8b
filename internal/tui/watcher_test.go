package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_SignalsOnSnapshotWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "snapshot-work.json"), []byte("{}"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	select {
	case <-w.changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no change signal after a snapshot write")
	}
}

func TestWatcher_IgnoresNonJSONFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "register.db-wal"), []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	select {
	case <-w.changes:
		t.Fatal("change signal raised for a non-json file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "snapshot.json")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
	}

	select {
	case <-w.changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no change signal after a write burst")
	}

	// The burst collapses into one signal.
	select {
	case <-w.changes:
		t.Error("burst produced more than one change signal")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Error("NewWatcher() on a missing directory should fail")
	}
}

package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireRelease(t *testing.T) {
	dir := t.TempDir()
	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, lockFileName)); err != nil {
		t.Fatalf("lock file not written: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, lockFileName)); !os.IsNotExist(err) {
		t.Fatalf("lock file still present after Release")
	}
}

func TestReleaseAfterLockStolenReturnsLockLost(t *testing.T) {
	dir := t.TempDir()
	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	if _, err := Acquire(dir); err != nil {
		t.Fatalf("second Acquire: %v", err)
	}

	err = lock.Release()
	if err == nil {
		t.Fatal("expected a *LockLost error when the lock file was overwritten")
	}
	if _, ok := err.(*LockLost); !ok {
		t.Fatalf("expected *LockLost, got %T", err)
	}
}

func TestReleaseAfterLockFileRemovedReturnsLockLost(t *testing.T) {
	dir := t.TempDir()
	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := os.Remove(filepath.Join(dir, lockFileName)); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	err = lock.Release()
	if _, ok := err.(*LockLost); !ok {
		t.Fatalf("expected *LockLost, got %T (%v)", err, err)
	}
}

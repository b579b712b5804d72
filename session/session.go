// Package session guards a World directory with a simple filesystem lock
// file stamped with a per-open session token, so two processes opening the
// same directory at once can detect the collision.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const lockFileName = "session.lock"

// LockLost reports that the lock file no longer carries this session's
// token by the time Release ran — another process may have removed or
// reclaimed it. Package world swallows this error on Close, per §5.
type LockLost struct {
	Path string
}

func (e *LockLost) Error() string {
	return fmt.Sprintf("session lock lost for %s", e.Path)
}

// Lock is an acquired session lock for one World directory.
type Lock struct {
	path  string // the lock file's path
	token string
}

// Acquire writes a fresh session token into dir's lock file. It does not
// attempt to detect or break another process's lock — the source this
// engine is modeled on treats the lock as advisory, and so does this
// package; Acquire always succeeds unless the directory is unwritable.
func Acquire(dir string) (*Lock, error) {
	token := uuid.NewString()
	path := filepath.Join(dir, lockFileName)
	if err := os.WriteFile(path, []byte(token), 0o644); err != nil {
		return nil, fmt.Errorf("session: acquiring lock at %s: %w", path, err)
	}
	return &Lock{path: path, token: token}, nil
}

// Release removes the lock file if it still carries this session's token.
// If the file is missing or holds a different token, Release returns
// *LockLost instead of treating it as success or a hard failure — the
// caller decides whether that's fatal.
func (l *Lock) Release() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return &LockLost{Path: l.path}
	}
	if string(data) != l.token {
		return &LockLost{Path: l.path}
	}
	if err := os.Remove(l.path); err != nil {
		return &LockLost{Path: l.path}
	}
	return nil
}

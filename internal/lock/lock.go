// Package lock implements the per-user critical section: an exclusive
// advisory file lock guaranteeing that only one caller at a time runs the
// observe-then-act provisioning protocol for a given uid.
package lock

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/uberspace/pam-isolate/internal/diag"
)

// Dir is the directory the per-user lock files live under.
var Dir = "/var/run/pam_isolate"

// setDir overrides Dir, for tests.
func setDir(dir string) { Dir = dir }

// Lock is a held exclusive advisory lock on a uid's lock file. It is never
// deleted; only its hold is released.
type Lock struct {
	file *os.File
}

// Acquire ensures Dir exists, opens (creating if necessary, never
// truncating) the lock file for uid, and blocks until it can take an
// exclusive advisory lock on it.
func Acquire(uid int) (*Lock, error) {
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		return nil, diag.New(diag.KindFilesystem, "lock.Acquire: mkdir", err)
	}

	path := filepath.Join(Dir, fmt.Sprintf("lock_%d", uid))
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, diag.New(diag.KindFilesystem, "lock.Acquire: open", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, diag.New(diag.KindFilesystem, "lock.Acquire: flock", err)
	}

	return &Lock{file: f}, nil
}

// Release drops the advisory lock and closes the file descriptor. It does
// not remove the lock file. Safe to call exactly once per Lock.
func (l *Lock) Release() error {
	err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	if err != nil {
		return diag.New(diag.KindFilesystem, "lock.Release: funlock", err)
	}
	if closeErr != nil {
		return diag.New(diag.KindFilesystem, "lock.Release: close", closeErr)
	}
	return nil
}

// Package mount implements the mount-namespace probe (C3) and the fresh
// scratch tmpfs setup (C4): deciding whether an existing user process's
// mount namespace should be adopted, and if not, creating one.
package mount

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"

	"github.com/uberspace/pam-isolate/internal/diag"
)

const systemdExe = "/usr/lib/systemd/systemd"

// FindAdoptablePID scans /proc for a live process whose mount namespace
// should be adopted for uid, identified either by owning uid directly (and
// not being the session-manager's systemd helper), or by being uid 0 with
// an environment marker "<marker>=<uid>" — the pre-setuid race window.
//
// Returns 0, nil if no process matches. Per-entry read failures are
// swallowed; only a failure to read /proc itself is returned as an error.
func FindAdoptablePID(uid int, marker string) (int, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return 0, diag.New(diag.KindProc, "mount.FindAdoptablePID: readdir", err)
	}

	markerKey := []byte(marker)
	uidBytes := []byte(strconv.Itoa(uid))

	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}

		procDir := filepath.Join("/proc", entry.Name())
		info, err := os.Stat(filepath.Join(procDir, "status"))
		if err != nil {
			continue
		}
		ownerUID, ok := fileOwnerUID(info)
		if !ok {
			continue
		}

		if ownerUID == uid {
			exe, err := os.Readlink(filepath.Join(procDir, "exe"))
			if err != nil {
				continue
			}
			if exe == systemdExe {
				// systemd's PAM helper processes live outside the user namespace.
				continue
			}
			return pid, nil
		}

		if ownerUID == 0 {
			if environHasMarker(filepath.Join(procDir, "environ"), markerKey, uidBytes) {
				return pid, nil
			}
		}
	}

	return 0, nil
}

// environHasMarker scans a NUL-delimited /proc/<pid>/environ file for an
// exact "key=value" record. A final record without its terminating NUL is
// treated as incomplete and never matches.
func environHasMarker(path string, key, value []byte) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		record, err := r.ReadBytes(0)
		if err != nil {
			return false
		}
		record = record[:len(record)-1] // drop trailing NUL
		k, v, ok := bytes.Cut(record, []byte{'='})
		if ok && bytes.Equal(k, key) && bytes.Equal(v, value) {
			return true
		}
	}
}

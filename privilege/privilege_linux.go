//go:build linux

// Package privilege sequences the identity switches around a setuid-root
// re-exec wrapper's provisioning call, mirroring wrapns's getuid/geteuid
// drop-after pattern: escalate to root for the duration of namespace setup,
// then permanently drop back to the invoking user before exec'ing their
// command.
package privilege

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// SwitchTo sets the process's real, effective, and saved uid/gid to uid and
// gid in one step. Called by a setuid-root binary both to fully become
// root (uid=0) before provisioning and to permanently drop back to the
// original caller (uid=<invoking user>) afterward; Linux's setuid/setgid
// behave identically in both directions when called with root privilege.
func SwitchTo(uid, gid int) error {
	if err := unix.Setgid(gid); err != nil {
		return fmt.Errorf("setgid(%d): %w", gid, err)
	}
	if err := unix.Setuid(uid); err != nil {
		return fmt.Errorf("setuid(%d): %w", uid, err)
	}
	return nil
}

//go:build !linux

package mount

import (
	"fmt"
	"runtime"
)

// Scratch describes the per-user tmpfs to mount when C3 finds no adoptable
// process.
type Scratch struct {
	Path string
	Size string
	UID  int
	GID  int
}

// SetupFresh is unsupported outside Linux.
func SetupFresh(s Scratch) error {
	return fmt.Errorf("mount.SetupFresh: unsupported on %s", runtime.GOOS)
}

// AdoptPID is unsupported outside Linux.
func AdoptPID(pid int) error {
	return fmt.Errorf("mount.AdoptPID: unsupported on %s", runtime.GOOS)
}

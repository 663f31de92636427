//go:build linux

package mount

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/uberspace/pam-isolate/internal/diag"
)

// Scratch describes the per-user tmpfs to mount when C3 finds no adoptable
// process.
type Scratch struct {
	Path string
	Size string
	UID  int
	GID  int
}

// SetupFresh unshares the calling process's mount namespace and (re)mounts
// the scratch path as a tmpfs with NOEXEC|NOSUID|NODEV and
// size/uid/gid/mode=777 options. Called only when FindAdoptablePID found
// nothing.
func SetupFresh(s Scratch) error {
	if err := unix.Unshare(unix.CLONE_NEWNS); err != nil {
		return diag.New(diag.KindNamespace, "mount.SetupFresh: unshare", err)
	}

	if err := unix.Unmount(s.Path, 0); err != nil && err != unix.EINVAL && err != unix.ENOENT {
		return diag.New(diag.KindMount, "mount.SetupFresh: umount", err)
	}

	opts := fmt.Sprintf("size=%s,uid=%d,gid=%d,mode=777", s.Size, s.UID, s.GID)
	flags := uintptr(unix.MS_NOEXEC | unix.MS_NOSUID | unix.MS_NODEV)
	if err := unix.Mount("tmpfs", s.Path, "tmpfs", flags, opts); err != nil {
		return diag.New(diag.KindMount, "mount.SetupFresh: mount", err)
	}
	return nil
}

// AdoptPID enters the mount namespace of pid, as found by FindAdoptablePID.
func AdoptPID(pid int) error {
	path := fmt.Sprintf("/proc/%d/ns/mnt", pid)
	fd, err := os.Open(path)
	if err != nil {
		return diag.New(diag.KindNamespace, "mount.AdoptPID: open", err)
	}
	defer fd.Close()

	if err := unix.Setns(int(fd.Fd()), unix.CLONE_NEWNS); err != nil {
		return diag.New(diag.KindNamespace, "mount.AdoptPID: setns", err)
	}
	return nil
}

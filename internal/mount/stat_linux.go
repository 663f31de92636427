//go:build linux

package mount

import (
	"os"
	"syscall"
)

// fileOwnerUID extracts the owning uid from a stat result on Linux.
func fileOwnerUID(info os.FileInfo) (int, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return int(st.Uid), true
}

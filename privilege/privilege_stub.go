//go:build !linux

package privilege

import (
	"fmt"
	"runtime"
)

// SwitchTo is unsupported on non-Linux platforms.
func SwitchTo(uid, gid int) error {
	return fmt.Errorf("pam-isolate is only supported on Linux, current platform: %s", runtime.GOOS)
}

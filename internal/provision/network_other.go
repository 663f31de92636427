//go:build !linux

package provision

import (
	"fmt"
	"runtime"
)

func provisionNetwork(user Identity, cfg netConfig) error {
	return fmt.Errorf("provision: network provisioning is unsupported on %s", runtime.GOOS)
}

//go:build !linux

package netlinkclient

import (
	"fmt"
	"net"
	"runtime"
)

// NsHandle stands in for netns.NsHandle on platforms without network
// namespace support.
type NsHandle int

var unsupported = fmt.Errorf("netlinkclient: unsupported on %s", runtime.GOOS)

type EnsureResult struct {
	Created bool
	Handle  NsHandle
}

func EnsureNamespace(name string) (EnsureResult, error)                    { return EnsureResult{}, unsupported }
func CreateVethPair(outsideName, insideName string, insideNS NsHandle) error { return unsupported }
func AssignAddress(linkName string, v4, v6 *net.IPNet) error               { return unsupported }
func LinkUp(linkName string) error                                        { return unsupported }
func DefaultRoutes(gatewayV4, gatewayV6 net.IP, insideLinkName string) error {
	return unsupported
}
func Enter(ns NsHandle) error { return unsupported }
func Current() (NsHandle, error)             { return 0, unsupported }

//go:build linux

// Package netlinkclient drives the route-netlink conversations behind the
// network-namespace provisioning step: ensuring the namespace exists (or
// joining it), creating the veth pair, assigning addresses, bringing links
// up, and installing default routes.
//
// A netlink socket is bound to the namespace in which it was opened, so the
// host-side and namespace-side operations always go through two
// independent handles rather than one migrated connection.
package netlinkclient

import (
	"fmt"
	"net"
	"os"

	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"

	"github.com/uberspace/pam-isolate/internal/diag"
)

// ErrLinkNotFound is returned by lookups that the caller may treat as "skip
// this side", per the spec's no-match-is-not-an-error rule for address
// assignment.
var ErrLinkNotFound = fmt.Errorf("link not found")

// EnsureResult reports whether EnsureNamespace created a new namespace or
// joined an existing one.
type EnsureResult struct {
	Created bool
	Handle  netns.NsHandle
}

// netnsPath returns the bind-mount anchor path for a named network
// namespace, matching iproute2's own /run/netns/<name> convention.
func netnsPath(name string) string {
	return "/run/netns/" + name
}

// EnsureNamespace checks whether the named namespace already exists; if so
// it joins it (moving the calling, OS-thread-locked goroutine into it). If
// not, it creates it and enters it in one step. The caller must have
// already called runtime.LockOSThread.
func EnsureNamespace(name string) (EnsureResult, error) {
	if _, err := os.Stat(netnsPath(name)); err == nil {
		handle, err := netns.GetFromName(name)
		if err != nil {
			return EnsureResult{}, diag.New(diag.KindNamespace, "netlinkclient.EnsureNamespace: getfromname", err)
		}
		if err := netns.Set(handle); err != nil {
			return EnsureResult{}, diag.New(diag.KindNamespace, "netlinkclient.EnsureNamespace: set", err)
		}
		return EnsureResult{Created: false, Handle: handle}, nil
	}

	handle, err := netns.NewNamed(name)
	if err != nil {
		return EnsureResult{}, diag.New(diag.KindNamespace, "netlinkclient.EnsureNamespace: newnamed", err)
	}
	return EnsureResult{Created: true, Handle: handle}, nil
}

// CreateVethPair creates a veth pair in a single atomic netlink request:
// outsideName stays in the caller's current namespace, insideName is
// attached directly into insideNS via its namespace file descriptor. Must
// be run from the host namespace, before the calling thread moves into
// insideNS for the remaining steps.
func CreateVethPair(outsideName, insideName string, insideNS netns.NsHandle) error {
	veth := &netlink.Veth{
		LinkAttrs:     netlink.LinkAttrs{Name: outsideName},
		PeerName:      insideName,
		PeerNamespace: netlink.NsFd(int(insideNS)),
	}
	if err := netlink.LinkAdd(veth); err != nil {
		return diag.Netlink("netlinkclient.CreateVethPair", err, os.IsExist(err))
	}
	return nil
}

// linkByName looks up a link, translating "not found" into ErrLinkNotFound
// so callers can treat it as a non-fatal skip per the spec's
// list-match-drain contract.
func linkByName(name string) (netlink.Link, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		if _, ok := err.(netlink.LinkNotFoundError); ok {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return link, nil
}

// AssignAddress adds v4 then v6 to the named link. A missing link is not
// an error: assignment is simply skipped for that side.
func AssignAddress(linkName string, v4, v6 *net.IPNet) error {
	link, err := linkByName(linkName)
	if err == ErrLinkNotFound {
		return nil
	}
	if err != nil {
		return diag.New(diag.KindNetlink, "netlinkclient.AssignAddress: lookup", err)
	}

	if v4 != nil {
		if err := netlink.AddrAdd(link, &netlink.Addr{IPNet: v4}); err != nil && !os.IsExist(err) {
			return diag.Netlink("netlinkclient.AssignAddress: addr4", err, os.IsExist(err))
		}
	}
	if v6 != nil {
		if err := netlink.AddrAdd(link, &netlink.Addr{IPNet: v6}); err != nil && !os.IsExist(err) {
			return diag.Netlink("netlinkclient.AssignAddress: addr6", err, os.IsExist(err))
		}
	}
	return nil
}

// LinkUp sets a named link administratively up. A missing link is skipped,
// matching the same no-match-is-not-an-error rule.
func LinkUp(linkName string) error {
	link, err := linkByName(linkName)
	if err == ErrLinkNotFound {
		return nil
	}
	if err != nil {
		return diag.New(diag.KindNetlink, "netlinkclient.LinkUp: lookup", err)
	}
	if err := netlink.LinkSetUp(link); err != nil {
		return diag.New(diag.KindNetlink, "netlinkclient.LinkUp: setup", err)
	}
	return nil
}

// DefaultRoutes installs (replacing, so re-provisioning is idempotent) a
// default IPv4 route via gatewayV4 and a default IPv6 route via gatewayV6,
// both with output interface insideLinkName. Must run inside the user
// namespace.
func DefaultRoutes(gatewayV4, gatewayV6 net.IP, insideLinkName string) error {
	link, err := linkByName(insideLinkName)
	if err == ErrLinkNotFound {
		return nil
	}
	if err != nil {
		return diag.New(diag.KindNetlink, "netlinkclient.DefaultRoutes: lookup", err)
	}
	idx := link.Attrs().Index

	if gatewayV4 != nil {
		route := &netlink.Route{
			LinkIndex: idx,
			Dst:       &net.IPNet{IP: net.IPv4zero, Mask: net.CIDRMask(0, 32)},
			Gw:        gatewayV4,
		}
		if err := netlink.RouteReplace(route); err != nil {
			return diag.New(diag.KindNetlink, "netlinkclient.DefaultRoutes: v4", err)
		}
	}
	if gatewayV6 != nil {
		route := &netlink.Route{
			LinkIndex: idx,
			Dst:       &net.IPNet{IP: net.IPv6zero, Mask: net.CIDRMask(0, 128)},
			Gw:        gatewayV6,
		}
		if err := netlink.RouteReplace(route); err != nil {
			return diag.New(diag.KindNetlink, "netlinkclient.DefaultRoutes: v6", err)
		}
	}
	return nil
}

// Enter moves the calling (already OS-thread-locked) goroutine into ns.
func Enter(ns netns.NsHandle) error {
	if err := netns.Set(ns); err != nil {
		return diag.New(diag.KindNamespace, "netlinkclient.Enter", err)
	}
	return nil
}

// Current returns a handle to the calling thread's current namespace, so
// callers can return to it after finishing namespace-side work.
func Current() (netns.NsHandle, error) {
	ns, err := netns.Get()
	if err != nil {
		return 0, diag.New(diag.KindNamespace, "netlinkclient.Current", err)
	}
	return ns, nil
}

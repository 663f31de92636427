//go:build linux

package provision

import (
	"runtime"
	"strconv"

	"github.com/uberspace/pam-isolate/internal/address"
	"github.com/uberspace/pam-isolate/internal/netlinkclient"
)

// provisionNetwork runs C2's ensure/create-or-join protocol. On the create
// path it builds the veth pair, assigns addresses, brings links up, and
// installs default routes; on the join path it only enters the existing
// namespace, per the idempotence rule in spec.md §4.7 (veth creation is
// attempted only on the create path).
//
// On return the calling goroutine's OS thread is a member of the user's
// network namespace, and stays locked to that goroutine deliberately:
// unlocking here would let the scheduler migrate the goroutine onto a
// different, never-namespaced thread on its next scheduling point while the
// namespaced thread goes back to the idle pool for reuse by someone else.
// Unlike the host-namespace round trip in grimm-is-glacic's netns_linux.go
// (which unlocks only after calling netns.Set back to the host namespace),
// this function must leave the thread inside the new namespace for the
// remainder of the process, so it never unlocks.
func provisionNetwork(user Identity, cfg netConfig) error {
	runtime.LockOSThread()

	origNS, err := netlinkclient.Current()
	if err != nil {
		return err
	}
	defer origNS.Close()

	netnsName := user.Name + "_ns"
	result, err := netlinkclient.EnsureNamespace(netnsName)
	if err != nil {
		return err
	}
	defer result.Handle.Close()

	if !result.Created {
		// Joined an existing namespace: already configured by whoever
		// created it. The calling thread now lives inside it.
		return nil
	}

	outside, inside, err := address.Derive(user.UID)
	if err != nil {
		return err
	}

	outsideName := vethOutsideName(user.UID)
	insideName := vethInsideName(user.UID)

	// Veth creation and outside-side configuration happen with the calling
	// thread back in the host namespace: the netlink socket for each call
	// below is bound to whatever namespace is current at call time, and the
	// inside end is attached into result.Handle atomically at creation.
	if err := netlinkclient.Enter(origNS); err != nil {
		return err
	}

	if err := netlinkclient.CreateVethPair(outsideName, insideName, result.Handle); err != nil {
		return err
	}
	if err := netlinkclient.AssignAddress(outsideName, outside.IPNet4(), outside.IPNet6()); err != nil {
		return err
	}
	if err := netlinkclient.LinkUp(outsideName); err != nil {
		return err
	}

	if err := netlinkclient.Enter(result.Handle); err != nil {
		return err
	}

	if err := netlinkclient.LinkUp(cfg.Loopback); err != nil {
		return err
	}
	if err := netlinkclient.AssignAddress(insideName, inside.IPNet4(), inside.IPNet6()); err != nil {
		return err
	}
	if err := netlinkclient.LinkUp(insideName); err != nil {
		return err
	}
	if err := netlinkclient.DefaultRoutes(outside.V4, outside.V6, insideName); err != nil {
		return err
	}

	return nil
}

func vethOutsideName(uid int) string { return veth("out", uid) }
func vethInsideName(uid int) string  { return veth("in", uid) }

func veth(side string, uid int) string {
	return "veth_" + strconv.Itoa(uid) + "_" + side
}

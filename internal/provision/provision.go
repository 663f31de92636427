// Package provision implements the top-level provisioning coordinator
// (C7): the state machine that acquires the per-user lock, publishes the
// environment marker, drives network-namespace provisioning, resolves the
// mount-namespace decision, and unlocks on every exit path.
package provision

import (
	"github.com/uberspace/pam-isolate/internal/config"
	"github.com/uberspace/pam-isolate/internal/lock"
	"github.com/uberspace/pam-isolate/internal/mount"
	"github.com/uberspace/pam-isolate/internal/userenv"
)

// Identity is the (name, uid, gid) triple the coordinator provisions for.
type Identity struct {
	Name string
	UID  int
	GID  int
}

// Provision runs the C1-C5 protocol for user once, inside the per-user
// critical section, and releases the lock before returning regardless of
// outcome. The sysctl pass (C6) is not run here; callers run it after
// Provision returns.
//
// On success the calling OS thread has been moved into the user's network
// namespace (and, if mount is configured, its mount namespace); this is a
// one-way transition the caller must be aware of.
func Provision(user Identity, cfg config.AppConfig, setEnv userenv.Mutator) error {
	if err := userenv.ValidateName(cfg.UserEnv); err != nil {
		return err
	}

	l, err := lock.Acquire(user.UID)
	if err != nil {
		return err
	}

	setEnv(cfg.UserEnv, userenv.Value(user.UID))

	provisionErr := provisionLocked(user, cfg)
	unlockErr := l.Release()

	if provisionErr != nil {
		return provisionErr
	}
	return unlockErr
}

// netConfig is the slice of AppConfig the network phase needs.
type netConfig struct {
	Loopback string
}

// provisionLocked runs net-provision then mount-provision. Called with the
// per-user lock already held.
func provisionLocked(user Identity, cfg config.AppConfig) error {
	if err := provisionNetwork(user, netConfig{Loopback: cfg.Net.Loopback}); err != nil {
		return err
	}

	if cfg.Mount == nil {
		return nil
	}
	return provisionMount(user, *cfg.Mount, cfg.UserEnv)
}

// provisionMount runs C3 then, on no match, C4.
func provisionMount(user Identity, m config.Mount, marker string) error {
	pid, err := mount.FindAdoptablePID(user.UID, marker)
	if err != nil {
		return err
	}
	if pid != 0 {
		return mount.AdoptPID(pid)
	}
	return mount.SetupFresh(mount.Scratch{
		Path: m.Tmp,
		Size: m.Size,
		UID:  user.UID,
		GID:  user.GID,
	})
}

// Package environment resolves the real/effective uid and gid pair of the
// calling process, the identity distinction the setuid-root re-exec
// wrapper needs to escalate then drop privileges.
package environment

import "golang.org/x/sys/unix"

// IDs holds a process's real and effective identity.
type IDs struct {
	RealUID, EffectiveUID int
	RealGID, EffectiveGID int
}

// Current reads the calling process's real and effective uid/gid, as seen
// by a setuid-root binary before it has switched identity: RealUID is the
// invoking user, EffectiveUID is 0.
func Current() IDs {
	return IDs{
		RealUID:      unix.Getuid(),
		EffectiveUID: unix.Geteuid(),
		RealGID:      unix.Getgid(),
		EffectiveGID: unix.Getegid(),
	}
}

// Package util resolves system user identity for the command-line tools
// that drive the provisioning coordinator.
package util

import (
	"fmt"
	"os/user"
	"strconv"
)

// Identity is a resolved (name, uid, gid) triple.
type Identity struct {
	Name string
	UID  int
	GID  int
}

// LookupUID resolves the passwd entry for uid.
func LookupUID(uid int) (Identity, error) {
	u, err := user.LookupId(strconv.Itoa(uid))
	if err != nil {
		return Identity{}, fmt.Errorf("lookup uid %d: %w", uid, err)
	}
	return fromOSUser(u)
}

// LookupName resolves the passwd entry for username.
func LookupName(name string) (Identity, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return Identity{}, fmt.Errorf("lookup user %q: %w", name, err)
	}
	return fromOSUser(u)
}

func fromOSUser(u *user.User) (Identity, error) {
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return Identity{}, fmt.Errorf("parse uid %q: %w", u.Uid, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return Identity{}, fmt.Errorf("parse gid %q: %w", u.Gid, err)
	}
	return Identity{Name: u.Username, UID: uid, GID: gid}, nil
}

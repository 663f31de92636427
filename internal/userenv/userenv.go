// Package userenv implements the user-environment marker contract: the
// "<NAME>=<uid>" binding a provisioning caller publishes into its own
// environment so that a concurrent session's C3 probe can identify it
// across the privilege-transition race window described in spec.md §9.
package userenv

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/uberspace/pam-isolate/internal/diag"
)

// Mutator publishes a single environment binding visible to future
// /proc/<pid>/environ readers. The coordinator invokes it exactly once per
// provisioning, inside the lock, before any namespace work.
type Mutator func(name, value string)

// OSMutator calls os.Setenv, for callers (the re-exec wrapper, test
// harnesses) that have no PAM loader to hand the binding to instead.
func OSMutator(name, value string) {
	os.Setenv(name, value)
}

// ValidateName rejects a marker name containing "=", per the marker
// contract: the key may not contain the separator used to encode it.
func ValidateName(name string) error {
	if strings.Contains(name, "=") {
		return diag.New(diag.KindBadInput, "userenv.ValidateName",
			fmt.Errorf("user-environment marker name %q must not contain '='", name))
	}
	return nil
}

// Value formats uid as the marker's decimal value.
func Value(uid int) string {
	return strconv.Itoa(uid)
}

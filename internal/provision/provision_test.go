package provision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uberspace/pam-isolate/internal/config"
)

func TestProvision_RejectsBadMarkerName(t *testing.T) {
	cfg := config.Default()
	cfg.UserEnv = "BAD=NAME"

	err := Provision(Identity{Name: "alice", UID: 1000, GID: 1000}, cfg, func(string, string) {})
	require.Error(t, err)
}

package userenv

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	require.NoError(t, ValidateName("PAM_NETNS_USER"))
	require.Error(t, ValidateName("BAD=NAME"))
}

func TestValue(t *testing.T) {
	require.Equal(t, "1000", Value(1000))
}

func TestOSMutator(t *testing.T) {
	t.Setenv("PAM_ISOLATE_TEST_MARKER", "")
	OSMutator("PAM_ISOLATE_TEST_MARKER", "1234")
	require.Equal(t, "1234", os.Getenv("PAM_ISOLATE_TEST_MARKER"))
}

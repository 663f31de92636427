package mount

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvironHasMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environ")
	content := "PATH=/usr/bin\x00PAM_NETNS_USER=1000\x00HOME=/root\x00"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.True(t, environHasMarker(path, []byte("PAM_NETNS_USER"), []byte("1000")))
	require.False(t, environHasMarker(path, []byte("PAM_NETNS_USER"), []byte("1001")))
	require.False(t, environHasMarker(path, []byte("NONEXISTENT_VAR"), []byte("1000")))
}

func TestEnvironHasMarker_NoTrailingNUL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environ")
	// A record with no trailing NUL (truncated read) must not false-positive.
	content := "PAM_NETNS_USER=100"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.False(t, environHasMarker(path, []byte("PAM_NETNS_USER"), []byte("100")))
}

func TestFindAdoptablePID_NoMatch(t *testing.T) {
	// No real process runs as this made-up uid, and this test process is
	// not owned by uid 0, so neither branch should match.
	pid, err := FindAdoptablePID(999999999, "PAM_NETNS_USER_TEST_MARKER_XYZ")
	require.NoError(t, err)
	require.Equal(t, 0, pid)
}

func TestFindAdoptablePID_AdoptsOwnProcess(t *testing.T) {
	uid := os.Getuid()
	if uid == 0 {
		t.Skip("test assumes a non-root, non-systemd-exe test process")
	}

	pid, err := FindAdoptablePID(uid, "PAM_NETNS_USER_TEST_MARKER_XYZ")
	require.NoError(t, err)
	require.NotZero(t, pid, "uid %s owns at least this test process, so some pid should match", strconv.Itoa(uid))
}

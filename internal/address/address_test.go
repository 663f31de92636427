package address

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerive_BadInput(t *testing.T) {
	for _, uid := range []int{0, 999, 16385, 100000} {
		_, _, err := Derive(uid)
		require.Error(t, err, "uid %d should be rejected", uid)
	}
}

func TestDerive_UID1000(t *testing.T) {
	outside, inside, err := Derive(1000)
	require.NoError(t, err)
	require.Equal(t, net.IPv4(100, 64, 0, 1).To4(), outside.V4)
	require.Equal(t, 24, outside.V4Prefix)
	require.Equal(t, net.ParseIP("fd75:6272:7370::1"), outside.V6)
	require.Equal(t, net.IPv4(100, 64, 0, 2).To4(), inside.V4)
	require.Equal(t, net.ParseIP("fd75:6272:7370::2"), inside.V6)
}

func TestDerive_UID1256(t *testing.T) {
	outside, inside, err := Derive(1256)
	require.NoError(t, err)
	require.Equal(t, net.IPv4(100, 65, 0, 1).To4(), outside.V4)
	require.Equal(t, net.IPv4(100, 65, 0, 2).To4(), inside.V4)
	require.Equal(t, net.ParseIP("fd75:6272:7370:0100::1"), outside.V6)
}

func TestDerive_UID16384(t *testing.T) {
	outside, _, err := Derive(16384)
	require.NoError(t, err)
	require.Equal(t, net.IPv4(100, 124, 24, 1).To4(), outside.V4)
}

func TestDerive_UID16385(t *testing.T) {
	_, _, err := Derive(16385)
	require.Error(t, err)
}

func TestDerive_DisjointSubnets(t *testing.T) {
	seen := map[string]int{}
	for uid := 1000; uid <= 16384; uid += 37 {
		outside, _, err := Derive(uid)
		require.NoError(t, err)
		key := outside.IPNet4().String()
		if prior, ok := seen[key]; ok {
			t.Fatalf("uid %d and uid %d share subnet %s", uid, prior, key)
		}
		seen[key] = uid
	}
}

func TestDerive_OutsideInsideShareSubnet(t *testing.T) {
	for _, uid := range []int{1000, 1256, 2000, 16384} {
		outside, inside, err := Derive(uid)
		require.NoError(t, err)

		require.True(t, outside.IPNet4().Contains(inside.V4))
		require.True(t, outside.IPNet6().Contains(inside.V6))

		require.Equal(t, byte(1), outside.V4[3])
		require.Equal(t, byte(2), inside.V4[3])
		require.Equal(t, byte(1), outside.V6[15])
		require.Equal(t, byte(2), inside.V6[15])
	}
}

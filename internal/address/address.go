// Package address derives the deterministic IPv4/IPv6 address pair assigned
// to a user's veth pair from their numeric uid. It has no I/O and no
// dependency on the netlink client: the mapping is a pure function of uid.
package address

import (
	"fmt"
	"net"

	"github.com/uberspace/pam-isolate/internal/diag"
)

const (
	minUID = 1000
	maxUID = 16384
)

// Pair is one side (outside or inside) of a veth's addressing.
type Pair struct {
	V4       net.IP
	V4Prefix int
	V6       net.IP
	V6Prefix int
}

// IPNet4 returns the IPv4 address as a *net.IPNet using V4Prefix.
func (p Pair) IPNet4() *net.IPNet {
	return &net.IPNet{IP: p.V4, Mask: net.CIDRMask(p.V4Prefix, 32)}
}

// IPNet6 returns the IPv6 address as a *net.IPNet using V6Prefix.
func (p Pair) IPNet6() *net.IPNet {
	return &net.IPNet{IP: p.V6, Mask: net.CIDRMask(p.V6Prefix, 128)}
}

// Derive computes the outside/inside address pair for uid.
//
// outside and inside share a /24 IPv4 subnet and a /64 IPv6 subnet, and
// differ only in the last IPv4 octet (.1 vs .2) and last IPv6 hextet (::1
// vs ::2). Distinct uids in [1000, 16384] yield disjoint subnets.
func Derive(uid int) (outside, inside Pair, err error) {
	if uid < minUID || uid > maxUID {
		return Pair{}, Pair{}, diag.New(diag.KindBadInput, "address.Derive",
			fmt.Errorf("uid %d out of range [%d, %d]", uid, minUID, maxUID))
	}

	i := uid - minUID
	hi := byte(i >> 8)
	lo := byte(i & 0xff)

	v4Outside := net.IPv4(100, 64+hi, lo, 1).To4()
	v4Inside := net.IPv4(100, 64+hi, lo, 2).To4()

	v6Outside := v6Address(i, 1)
	v6Inside := v6Address(i, 2)

	outside = Pair{V4: v4Outside, V4Prefix: 24, V6: v6Outside, V6Prefix: 64}
	inside = Pair{V4: v4Inside, V4Prefix: 24, V6: v6Inside, V6Prefix: 64}
	return outside, inside, nil
}

// v6Address builds fd75:6272:7370:<i>::<last> as a 16-byte IPv6 address.
func v6Address(i int, last byte) net.IP {
	ip := make(net.IP, 16)
	ip[0], ip[1] = 0xfd, 0x75
	ip[2], ip[3] = 0x62, 0x72
	ip[4], ip[5] = 0x73, 0x70
	ip[6] = byte(i >> 8)
	ip[7] = byte(i & 0xff)
	// bytes 8..14 stay zero
	ip[15] = last
	return ip
}

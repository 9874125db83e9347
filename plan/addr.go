// Package plan computes VLSM subnet layouts: it partitions an IPv4
// network into child subnets sized to per-department host requirements.
//
// Addresses are plain uint32 values in host byte order. All address
// arithmetic is exact and deterministic; the package performs no I/O.
package plan

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"inet.af/netaddr"
)

// ParseAddr parses dotted-decimal IPv4 address text. It rejects
// anything that is not exactly four dot-separated octets in [0,255].
func ParseAddr(s string) (uint32, error) {
	ip, err := netaddr.ParseIP(s)
	if err != nil || !ip.Is4() {
		return 0, fmt.Errorf("parse %q: %w", s, ErrBadAddress)
	}
	b := ip.As4()
	return binary.BigEndian.Uint32(b[:]), nil
}

// FormatAddr renders a as dotted-decimal text. It is the exact inverse
// of ParseAddr.
func FormatAddr(a uint32) string {
	return netaddr.IPv4(byte(a>>24), byte(a>>16), byte(a>>8), byte(a)).String()
}

// MaskFor returns the netmask with the top bits bits set.
func MaskFor(bits int) (uint32, error) {
	if bits < 0 || bits > 32 {
		return 0, fmt.Errorf("/%d: %w", bits, ErrBadPrefix)
	}
	return mask(bits), nil
}

// mask is MaskFor without the range check. Callers must pass a prefix
// length in [0,32].
func mask(bits int) uint32 {
	if bits == 0 {
		return 0
	}
	return ^uint32(0) << (32 - bits)
}

// NetworkOf returns the network address of the block containing addr.
// bits must be in [0,32].
func NetworkOf(addr uint32, bits int) uint32 {
	return addr & mask(bits)
}

// BroadcastOf returns the last address of the block starting at
// network. bits must be in [0,32].
func BroadcastOf(network uint32, bits int) uint32 {
	return network | ^mask(bits)
}

// A Network is the major network that subnets are carved from. Addr is
// the canonical network address: its low 32-Bits bits are zero.
type Network struct {
	Addr uint32
	Bits int
}

// ParseNetwork parses CIDR notation ("192.168.10.0/24") into a Network.
// The address part must be the block's network address; text like
// 192.168.10.1/24 is rejected rather than silently masked.
func ParseNetwork(s string) (Network, error) {
	i := strings.LastIndexByte(s, '/')
	if i < 0 {
		return Network{}, fmt.Errorf("parse %q: missing prefix length: %w", s, ErrBadAddress)
	}
	addr, err := ParseAddr(s[:i])
	if err != nil {
		return Network{}, err
	}
	bits, err := strconv.Atoi(s[i+1:])
	if err != nil || bits < 0 || bits > 32 {
		return Network{}, fmt.Errorf("parse %q: %w", s, ErrBadPrefix)
	}
	if NetworkOf(addr, bits) != addr {
		return Network{}, fmt.Errorf("parse %q: host bits not zero: %w", s, ErrBadAddress)
	}
	return Network{Addr: addr, Bits: bits}, nil
}

// String renders n in CIDR notation.
func (n Network) String() string {
	return fmt.Sprintf("%s/%d", FormatAddr(n.Addr), n.Bits)
}

// blockSize returns the number of addresses in a block of the given
// prefix length. The result is a uint64 since a /0 holds 2^32.
func blockSize(bits int) uint64 {
	return 1 << (32 - uint(bits))
}

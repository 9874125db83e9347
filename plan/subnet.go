package plan

import "fmt"

// A Subnet is one allocated block within the major network. Base and
// Bits fully determine the block; everything else is derived.
type Subnet struct {
	Name  string // copied from the request
	Hosts int    // host count the request asked for
	Base  uint32 // network address, aligned to the block's own boundary
	Bits  int    // prefix length
}

// Broadcast returns the last address of the block. For a /31 or /32
// there is no reserved broadcast, but the value still marks the block's
// upper bound.
func (s *Subnet) Broadcast() uint32 {
	return BroadcastOf(s.Base, s.Bits)
}

// FirstUsable returns the first assignable address. The network address
// itself is usable only in /31 and /32 blocks.
func (s *Subnet) FirstUsable() uint32 {
	if s.Bits >= 31 {
		return s.Base
	}
	return s.Base + 1
}

// LastUsable returns the last assignable address.
func (s *Subnet) LastUsable() uint32 {
	if s.Bits == 32 {
		return s.Base
	}
	if s.Bits == 31 {
		return s.Broadcast()
	}
	return s.Broadcast() - 1
}

// UsableHosts returns how many addresses the block can assign.
func (s *Subnet) UsableHosts() int64 {
	return usableHosts(s.Bits)
}

// Mask returns the block's netmask in dotted-decimal form.
func (s *Subnet) Mask() string {
	return FormatAddr(mask(s.Bits))
}

// CIDR returns the block in CIDR notation.
func (s *Subnet) CIDR() string {
	return fmt.Sprintf("%s/%d", FormatAddr(s.Base), s.Bits)
}

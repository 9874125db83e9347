package plan

import (
	"fmt"
	"sort"
)

// A Request asks for one subnet able to hold Hosts end devices. Name
// identifies the subnet in the resulting plan; the engine does not
// require names to be unique, though distinct names make the output far
// easier to consume.
type Request struct {
	Name  string
	Hosts int
}

// A Plan is the result of a successful allocation run. Subnets appear
// in placement order, largest block first; it is not the caller's input
// order. Callers wanting a different presentation re-sort themselves
// (see SortByName).
type Plan struct {
	Network Network
	Subnets []Subnet
}

// Allocate carves a subnet out of n for every request, or fails as a
// whole: no partial plans are returned.
//
// Requests are placed largest first (ties keep their input order),
// which minimizes alignment waste: big blocks have the strictest
// boundary constraints and must go in before the pool gets fragmented
// by small ones. Each block starts on its natural boundary, so network
// and broadcast derivation stay valid. Identical request sets yield
// identical plans regardless of input order, modulo tie order.
func Allocate(n Network, reqs []Request) (*Plan, error) {
	ordered := make([]Request, len(reqs))
	copy(ordered, reqs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Hosts > ordered[j].Hosts
	})

	// Cursor arithmetic is done in uint64: the end of a pool that
	// touches 255.255.255.255 is 2^32, which wraps a uint32.
	cursor := uint64(n.Addr)
	end := uint64(n.Addr) + blockSize(n.Bits)

	subnets := make([]Subnet, 0, len(ordered))
	for _, req := range ordered {
		bits, err := prefixForHosts(req.Hosts, n.Bits)
		if err != nil {
			return nil, fmt.Errorf("request %s: %w", req.Name, err)
		}
		size := blockSize(bits)
		base := alignUp(cursor, size)
		if base+size > end {
			return nil, fmt.Errorf(
				"request %s: no room for a /%d block in %s: %w",
				req.Name, bits, n, ErrExhausted)
		}
		subnets = append(subnets, Subnet{
			Name:  req.Name,
			Hosts: req.Hosts,
			Base:  uint32(base),
			Bits:  bits,
		})
		cursor = base + size
	}

	return &Plan{Network: n, Subnets: subnets}, nil
}

// alignUp rounds x up to the next multiple of size. size must be a
// power of two.
func alignUp(x, size uint64) uint64 {
	return (x + size - 1) &^ (size - 1)
}

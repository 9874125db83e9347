package plan

import "fmt"

// usableHosts returns the number of assignable addresses in a block of
// the given prefix length. A /31 is point-to-point: both addresses are
// usable, there is no broadcast reservation (RFC 3021). A /32 is a
// single host route.
func usableHosts(bits int) int64 {
	switch {
	case bits >= 32:
		return 1
	case bits == 31:
		return 2
	default:
		return int64(blockSize(bits)) - 2
	}
}

// prefixForHosts returns the longest prefix (smallest block) whose
// usable capacity covers hosts. limitBits is the major network's own
// prefix length: no block larger than the pool itself is considered.
func prefixForHosts(hosts int, limitBits int) (int, error) {
	if hosts <= 0 {
		return 0, fmt.Errorf("%d hosts: %w", hosts, ErrUnsatisfiable)
	}
	for bits := 32; bits >= limitBits; bits-- {
		if usableHosts(bits) >= int64(hosts) {
			return bits, nil
		}
	}
	return 0, fmt.Errorf("%d hosts exceed capacity of a /%d pool: %w",
		hosts, limitBits, ErrUnsatisfiable)
}

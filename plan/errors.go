package plan

import "errors"

// Error kinds reported by the engine. They are wrapped with request and
// parse context; match them with errors.Is.
var (
	// ErrBadAddress indicates malformed dotted-decimal address text or
	// a network whose host bits are not zero.
	ErrBadAddress = errors.New("malformed IPv4 address")

	// ErrBadPrefix indicates a prefix length outside [0,32].
	ErrBadPrefix = errors.New("prefix length out of range")

	// ErrUnsatisfiable indicates a request that no block within the
	// major network could ever satisfy (non-positive host count, or a
	// count beyond the pool's own capacity).
	ErrUnsatisfiable = errors.New("request can never be satisfied")

	// ErrExhausted indicates that the requests, though individually
	// satisfiable, do not fit together in the major network.
	ErrExhausted = errors.New("address space exhausted")
)

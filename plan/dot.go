package plan

import (
	"fmt"
	"io/ioutil"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding/dot"
)

// A File is the planning input read from a DOT network diagram. Nodes
// carrying a hosts attribute become subnet requests; routers, switches
// and other plain nodes are tolerated and skipped. A graph-level
// network attribute, when present, names the major network to carve.
type File struct {
	Network    Network
	HasNetwork bool
	Requests   []Request
}

// Parse unmarshals a DOT graph and extracts the subnet requests it
// describes, in file order.
func Parse(dotBytes []byte) (*File, error) {
	g := newDotGraph()
	// dotGraph is a multigraph (diagrams may have parallel links
	// between two devices), so the multi variant is required here.
	if err := dot.UnmarshalMulti(dotBytes, g); err != nil {
		return nil, fmt.Errorf("Parse: %w", err)
	}

	f := new(File)
	if s := g.attrs["network"]; s != "" {
		n, err := ParseNetwork(s)
		if err != nil {
			return nil, fmt.Errorf("graph attr network: %w", err)
		}
		f.Network = n
		f.HasNetwork = true
	}

	// Node iteration order is unspecified; node IDs are assigned in
	// file order during unmarshaling, so sort on those.
	nodes := graph.NodesOf(g.Nodes())
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID() < nodes[j].ID()
	})
	for _, n := range nodes {
		n := n.(*dotNode)
		s := n.attrs["hosts"]
		if s == "" {
			continue
		}
		if !ValidName(n.dotID) {
			return nil, fmt.Errorf("invalid subnet name: %q", n.dotID)
		}
		hosts, err := strconv.Atoi(s)
		if err != nil || hosts <= 0 {
			return nil, fmt.Errorf("node %s: bad hosts attr %q", n.dotID, s)
		}
		f.Requests = append(f.Requests, Request{
			Name:  n.dotID,
			Hosts: hosts,
		})
	}

	return f, nil
}

// ParseFile is like Parse but reads the DOT graph description from the
// file located by path.
func ParseFile(path string) (*File, error) {
	p, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ParseFile: %w", err)
	}
	return Parse(p)
}

package query

import (
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
)

// Depth bounds how far below the queried root a match may start.
type Depth int

const (
	// Unbounded accepts matches anywhere in the subtree.
	Unbounded Depth = -1
	// Children accepts matches anchored at the root or one of its children.
	Children Depth = 1
	// Grandchildren additionally accepts matches anchored one level deeper.
	Grandchildren Depth = 2
)

func (d Depth) String() string {
	switch d {
	case Unbounded:
		return "unbounded"
	case Children:
		return "children"
	case Grandchildren:
		return "grandchildren"
	}
	return "depth(" + strconv.Itoa(int(d)) + ")"
}

// Match is one raw pattern match: capture name to the nodes it bound, in
// capture order. Quantified captures can bind several nodes; Node returns the
// first.
type Match struct {
	Pattern  uint16
	captures map[string][]*sitter.Node
}

// Node returns the first node bound to name.
func (m Match) Node(name string) (*sitter.Node, bool) {
	nodes := m.captures[name]
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

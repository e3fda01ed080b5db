package trie

// Node is a single trie vertex. Children are kept in the order their symbols were
// first inserted so every traversal is reproducible.
type Node[S comparable, P any] struct {
	symbols  []S
	children map[S]*Node[S, P]
	terminal bool

	// Payload holds the variant data for this node (frequency, route label, positions, counters).
	Payload P
}

func newNode[S comparable, P any]() *Node[S, P] {
	return &Node[S, P]{}
}

// Child returns the child reached by symbol s.
func (n *Node[S, P]) Child(s S) (*Node[S, P], bool) {
	if n == nil || n.children == nil {
		return nil, false
	}
	child, ok := n.children[s]
	return child, ok
}

// Terminal reports whether a full sequence ends at this node.
func (n *Node[S, P]) Terminal() bool {
	return n != nil && n.terminal
}

// Symbols returns the child symbols in insertion order.
func (n *Node[S, P]) Symbols() []S {
	if n == nil {
		return nil
	}
	out := make([]S, len(n.symbols))
	copy(out, n.symbols)
	return out
}

// Len returns the number of direct children.
func (n *Node[S, P]) Len() int {
	if n == nil {
		return 0
	}
	return len(n.symbols)
}

// Each calls fn for every direct child in insertion order.
func (n *Node[S, P]) Each(fn func(s S, child *Node[S, P])) {
	if n == nil {
		return
	}
	for _, s := range n.symbols {
		fn(s, n.children[s])
	}
}

// childOrCreate returns the child for s, creating it (append-only) when missing.
func (n *Node[S, P]) childOrCreate(s S) (*Node[S, P], bool) {
	if n.children == nil {
		n.children = make(map[S]*Node[S, P])
	}
	if child, ok := n.children[s]; ok {
		return child, false
	}
	child := newNode[S, P]()
	n.children[s] = child
	n.symbols = append(n.symbols, s)
	return child, true
}

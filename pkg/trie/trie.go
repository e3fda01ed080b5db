// Package trie is the shared prefix-tree engine behind every query front-end:
// suggestions, routing, spell correction, scanners and the opening book.
//
// A Trie is keyed by any comparable symbol type (runes, bits, nucleotides, move tokens)
// and stores one payload per node. Nodes are never removed, and children keep their
// insertion order so enumeration results are deterministic.
package trie

import "errors"

// SkipSubtree can be returned by a VisitorFunc to skip the children of the current node.
var SkipSubtree = errors.New("skip this subtree")

// VisitorFunc is called for each node during a traversal. seq is the path from the
// trie root to n and must not be retained past the call without copying.
type VisitorFunc[S comparable, P any] func(seq []S, n *Node[S, P]) error

// Entry is a terminal sequence together with its payload.
type Entry[S comparable, P any] struct {
	Sequence []S
	Payload  P
}

// Trie owns a root node and every node reachable from it.
type Trie[S comparable, P any] struct {
	root      *Node[S, P]
	terminals int
	nodes     int
}

// New returns an empty trie.
func New[S comparable, P any]() *Trie[S, P] {
	return &Trie[S, P]{root: newNode[S, P](), nodes: 1}
}

// Root returns the root node.
func (t *Trie[S, P]) Root() *Node[S, P] {
	return t.root
}

// Insert walks seq from the root, creating missing children, marks the last node as
// terminal and applies update to its payload. update may be nil.
func (t *Trie[S, P]) Insert(seq []S, update func(*P)) *Node[S, P] {
	node := t.walkCreate(seq)
	if !node.terminal {
		node.terminal = true
		t.terminals++
	}
	if update != nil {
		update(&node.Payload)
	}
	return node
}

// InsertPrefix walks the first n symbols of seq and applies update at the node reached,
// without touching its terminal flag. n is clamped to [0, len(seq)].
func (t *Trie[S, P]) InsertPrefix(seq []S, n int, update func(*P)) *Node[S, P] {
	if n < 0 {
		n = 0
	}
	if n > len(seq) {
		n = len(seq)
	}
	node := t.walkCreate(seq[:n])
	if update != nil {
		update(&node.Payload)
	}
	return node
}

func (t *Trie[S, P]) walkCreate(seq []S) *Node[S, P] {
	node := t.root
	for _, s := range seq {
		var created bool
		node, created = node.childOrCreate(s)
		if created {
			t.nodes++
		}
	}
	return node
}

// Find returns the node at the end of seq, or false when any symbol has no child.
func (t *Trie[S, P]) Find(seq []S) (*Node[S, P], bool) {
	node := t.root
	for _, s := range seq {
		child, ok := node.Child(s)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// ExactMatch reports whether seq was inserted as a full sequence.
func (t *Trie[S, P]) ExactMatch(seq []S) bool {
	node, ok := t.Find(seq)
	return ok && node.terminal
}

// Len returns the number of distinct terminal sequences.
func (t *Trie[S, P]) Len() int {
	return t.terminals
}

// Nodes returns the number of nodes, root included.
func (t *Trie[S, P]) Nodes() int {
	return t.nodes
}

// CollectTerminals returns every terminal beneath from (from included) in depth-first
// pre-order, siblings in insertion order. Each Sequence is prefix followed by the path
// below from.
func CollectTerminals[S comparable, P any](from *Node[S, P], prefix []S) []Entry[S, P] {
	var entries []Entry[S, P]
	_ = walk(from, prefix, func(seq []S, n *Node[S, P]) error {
		if n.terminal {
			entries = append(entries, Entry[S, P]{Sequence: clone(seq), Payload: n.Payload})
		}
		return nil
	})
	return entries
}

// CollectTerminals enumerates every terminal below the node for prefix.
// It returns nil when the prefix path is absent.
func (t *Trie[S, P]) CollectTerminals(prefix []S) []Entry[S, P] {
	node, ok := t.Find(prefix)
	if !ok {
		return nil
	}
	return CollectTerminals(node, prefix)
}

// Visit walks every node of the trie, root first.
func (t *Trie[S, P]) Visit(fn VisitorFunc[S, P]) error {
	return walk(t.root, nil, fn)
}

// VisitSubtree walks every node at or below the node for prefix. Nothing is visited
// when the prefix path is absent.
func (t *Trie[S, P]) VisitSubtree(prefix []S, fn VisitorFunc[S, P]) error {
	node, ok := t.Find(prefix)
	if !ok {
		return nil
	}
	return walk(node, prefix, fn)
}

type frame[S comparable, P any] struct {
	node  *Node[S, P]
	depth int
	sym   S
	root  bool
}

// walk is an explicit-stack pre-order traversal sharing one path buffer, so long
// genome paths cost neither goroutine stack depth nor per-node path copies.
func walk[S comparable, P any](from *Node[S, P], prefix []S, fn VisitorFunc[S, P]) error {
	if from == nil {
		return nil
	}
	path := clone(prefix)
	base := len(path)
	stack := []frame[S, P]{{node: from, depth: base, root: true}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.root {
			path = path[:base]
		} else {
			path = append(path[:top.depth], top.sym)
		}

		if err := fn(path, top.node); err != nil {
			if errors.Is(err, SkipSubtree) {
				continue
			}
			return err
		}

		// push in reverse so the first inserted child is popped first
		for i := len(top.node.symbols) - 1; i >= 0; i-- {
			s := top.node.symbols[i]
			stack = append(stack, frame[S, P]{node: top.node.children[s], depth: len(path), sym: s})
		}
	}
	return nil
}

func clone[S any](seq []S) []S {
	out := make([]S, len(seq))
	copy(out, seq)
	return out
}

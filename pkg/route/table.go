// Package route implements longest-prefix-match lookup over a bit-keyed trie.
//
// Prefixes are strings of '0' and '1'. A label attached after exactly n bits marks
// a route; lookups return the label of the most specific route on the path, with a
// label on the root acting as the default route.
package route

import (
	"github.com/bastiangx/trielab/pkg/trie"
	"github.com/charmbracelet/log"
)

// Route is a labelled prefix.
type Route struct {
	Bits  string
	Label string
}

// Length returns the prefix length in bits.
func (r Route) Length() int {
	return len(r.Bits)
}

// Table is a longest-prefix-match routing table.
type Table struct {
	trie   *trie.Trie[byte, string]
	routes int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{trie: trie.New[byte, string]()}
}

// InsertPrefix attaches label to the first length bits of bits. Inserting the same
// prefix again overwrites its label.
func (t *Table) InsertPrefix(bits string, length int, label string) {
	t.trie.InsertPrefix([]byte(bits), length, func(l *string) {
		switch {
		case *l == "" && label != "":
			t.routes++
		case *l != "" && label == "":
			t.routes--
		}
		*l = label
	})
	log.Debugf("Route %s/%d -> %s", bits, length, label)
}

// Lookup walks bits from the root and returns the label of the longest labelled
// prefix. Symbols other than '0' and '1' simply end the walk.
func (t *Table) Lookup(bits string) (string, bool) {
	node := t.trie.Root()
	best := node.Payload
	for i := 0; i < len(bits); i++ {
		child, ok := node.Child(bits[i])
		if !ok {
			break
		}
		node = child
		if node.Payload != "" {
			best = node.Payload
		}
	}
	return best, best != ""
}

// Routes lists every labelled prefix, shortest paths first along each branch and
// siblings in insertion order.
func (t *Table) Routes() []Route {
	var routes []Route
	_ = t.trie.Visit(func(seq []byte, n *trie.Node[byte, string]) error {
		if n.Payload != "" {
			routes = append(routes, Route{Bits: string(seq), Label: n.Payload})
		}
		return nil
	})
	return routes
}

// Len returns the number of labelled prefixes.
func (t *Table) Len() int {
	return t.routes
}

// Package openings indexes move sequences with per-line result counters and opening
// labels: an opening book answering "what was played next, and how did it go".
package openings

import (
	"strings"

	"github.com/bastiangx/trielab/pkg/trie"
	"github.com/charmbracelet/log"
)

type position struct {
	counters Counters
	label    string
}

// Continuation is one move played from a position, with the statistics and label
// recorded at the resulting line.
type Continuation struct {
	Move     string   `msgpack:"m"`
	Counters Counters `msgpack:"c"`
	Label    string   `msgpack:"o,omitempty"`
}

// Opening is a labelled roll-up of counters.
type Opening struct {
	Label    string   `msgpack:"o"`
	Counters Counters `msgpack:"c"`
}

// Book is a trie keyed by move tokens.
type Book struct {
	name  string
	trie  *trie.Trie[string, position]
	games int
}

// NewBook returns an empty book. name identifies the perspective ("white", "black").
func NewBook(name string) *Book {
	return &Book{name: name, trie: trie.New[string, position]()}
}

// Name returns the book's perspective.
func (b *Book) Name() string {
	return b.name
}

// ParseMoves splits space-separated move text into tokens.
func ParseMoves(s string) []string {
	return strings.Fields(s)
}

// Insert counts one game that followed moves and ended with result. A non-empty label
// names the line, replacing any previous label at that exact position.
func (b *Book) Insert(moves []string, result Result, label string) {
	b.trie.Insert(moves, func(p *position) {
		p.counters.Add(result)
		if label != "" {
			p.label = label
		}
	})
	b.games++
}

// Record adds pre-aggregated counters to a line, for seeding a book from summary tables.
func (b *Book) Record(moves []string, c Counters, label string) {
	b.trie.Insert(moves, func(p *position) {
		p.counters = p.counters.Merge(c)
		if label != "" {
			p.label = label
		}
	})
	b.games += c.Total()
	log.Debugf("Book %s: %s +%d games (%s)", b.name, strings.Join(moves, " "), c.Total(), label)
}

// Lookup returns the counters and label recorded at exactly moves.
func (b *Book) Lookup(moves []string) (Counters, string, bool) {
	node, ok := b.trie.Find(moves)
	if !ok {
		return Counters{}, "", false
	}
	return node.Payload.counters, node.Payload.label, true
}

// Continuations lists the moves played after moves, in the order first recorded.
// It is empty when the line is unknown.
func (b *Book) Continuations(moves []string) []Continuation {
	node, ok := b.trie.Find(moves)
	if !ok {
		return []Continuation{}
	}
	out := make([]Continuation, 0, node.Len())
	node.Each(func(move string, child *trie.Node[string, position]) {
		out = append(out, Continuation{
			Move:     move,
			Counters: child.Payload.counters,
			Label:    child.Payload.label,
		})
	})
	return out
}

// AggregateByLabel sums the counters of every labelled position with at least one
// recorded game, keyed by label.
func (b *Book) AggregateByLabel() map[string]Counters {
	agg := make(map[string]Counters)
	for _, o := range b.Openings() {
		agg[o.Label] = o.Counters
	}
	return agg
}

// Openings is AggregateByLabel as a slice ordered by first appearance in a
// depth-first walk of the book.
func (b *Book) Openings() []Opening {
	index := make(map[string]int)
	var out []Opening
	_ = b.trie.Visit(func(_ []string, n *trie.Node[string, position]) error {
		p := n.Payload
		if p.label == "" || p.counters.Total() == 0 {
			return nil
		}
		if i, ok := index[p.label]; ok {
			out[i].Counters = out[i].Counters.Merge(p.counters)
			return nil
		}
		index[p.label] = len(out)
		out = append(out, Opening{Label: p.label, Counters: p.counters})
		return nil
	})
	if out == nil {
		out = []Opening{}
	}
	return out
}

// Games returns the number of games counted across all lines.
func (b *Book) Games() int {
	return b.games
}

// Lines returns the number of distinct recorded move sequences.
func (b *Book) Lines() int {
	return b.trie.Len()
}

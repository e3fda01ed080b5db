package scan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/trielab/pkg/trie"
	"github.com/charmbracelet/log"
)

// ErrInvalidNucleotide is returned when a sequence holds symbols outside A, C, G, T.
var ErrInvalidNucleotide = errors.New("invalid nucleotide")

// ErrInvalidWindow is returned for a k-mer size below 1.
var ErrInvalidWindow = errors.New("invalid k-mer size")

// Occurrence is one recorded position of a sequence with its note.
type Occurrence struct {
	Position int
	Note     string
}

// Pattern is an indexed sequence with every position it was recorded at.
type Pattern struct {
	Sequence  string
	Positions []int
	Count     int
}

// GenomeIndex is a nucleotide trie whose terminals carry position lists.
type GenomeIndex struct {
	trie         *trie.Trie[byte, []Occurrence]
	genomeLength int
	k            int
}

// NewGenomeIndex returns an empty index.
func NewGenomeIndex() *GenomeIndex {
	return &GenomeIndex{trie: trie.New[byte, []Occurrence]()}
}

// normalizeSequence upper-cases and trims seq and rejects non-ACGT symbols.
func normalizeSequence(seq string) (string, error) {
	seq = strings.ToUpper(strings.TrimSpace(seq))
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return "", fmt.Errorf("%w: %q at offset %d", ErrInvalidNucleotide, seq[i], i)
		}
	}
	return seq, nil
}

// InsertSequence records seq at position. Positions are appended, never deduplicated.
func (g *GenomeIndex) InsertSequence(seq string, position int, note string) error {
	seq, err := normalizeSequence(seq)
	if err != nil {
		return err
	}
	g.insert(seq, position, note)
	return nil
}

func (g *GenomeIndex) insert(seq string, position int, note string) {
	g.trie.Insert([]byte(seq), func(occ *[]Occurrence) {
		*occ = append(*occ, Occurrence{Position: position, Note: note})
	})
}

// IndexKmers inserts every window genome[i:i+k] at position i. A genome shorter than
// k indexes nothing.
func (g *GenomeIndex) IndexKmers(genome string, k int) error {
	if k < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWindow, k)
	}
	genome, err := normalizeSequence(genome)
	if err != nil {
		return err
	}

	g.genomeLength = len(genome)
	g.k = k
	windows := 0
	for i := 0; i+k <= len(genome); i++ {
		g.insert(genome[i:i+k], i, fmt.Sprintf("k-mer at position %d", i))
		windows++
	}
	log.Debugf("Indexed %d %d-mers over %d nucleotides (distinct=%d)", windows, k, len(genome), g.trie.Len())
	return nil
}

// Search returns the positions recorded for exactly seq; empty when absent.
func (g *GenomeIndex) Search(seq string) []int {
	node, ok := g.trie.Find([]byte(strings.ToUpper(strings.TrimSpace(seq))))
	if !ok || !node.Terminal() {
		return []int{}
	}
	return positions(node.Payload)
}

// Occurrences returns the full records for exactly seq.
func (g *GenomeIndex) Occurrences(seq string) []Occurrence {
	node, ok := g.trie.Find([]byte(strings.ToUpper(strings.TrimSpace(seq))))
	if !ok || !node.Terminal() {
		return []Occurrence{}
	}
	out := make([]Occurrence, len(node.Payload))
	copy(out, node.Payload)
	return out
}

// FindPatterns returns every indexed sequence starting with prefix, in depth-first
// order with nucleotides in first-seen order.
func (g *GenomeIndex) FindPatterns(prefix string) []Pattern {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	entries := g.trie.CollectTerminals([]byte(prefix))
	patterns := make([]Pattern, 0, len(entries))
	for _, e := range entries {
		pos := positions(e.Payload)
		patterns = append(patterns, Pattern{
			Sequence:  string(e.Sequence),
			Positions: pos,
			Count:     len(pos),
		})
	}
	return patterns
}

// Stats returns the indexed genome length, window size and distinct sequence count.
func (g *GenomeIndex) Stats() map[string]int {
	return map[string]int{
		"genomeLength": g.genomeLength,
		"k":            g.k,
		"sequences":    g.trie.Len(),
		"nodes":        g.trie.Nodes(),
	}
}

func positions(occ []Occurrence) []int {
	out := make([]int, len(occ))
	for i, o := range occ {
		out[i] = o.Position
	}
	return out
}

// Composition summarizes a genome's nucleotide content.
type Composition struct {
	Length    int
	Counts    map[byte]int
	GCContent float64
}

// Compose counts nucleotides in genome and computes its GC percentage.
func Compose(genome string) (Composition, error) {
	genome, err := normalizeSequence(genome)
	if err != nil {
		return Composition{}, err
	}
	c := Composition{
		Length: len(genome),
		Counts: map[byte]int{'A': 0, 'C': 0, 'G': 0, 'T': 0},
	}
	for i := 0; i < len(genome); i++ {
		c.Counts[genome[i]]++
	}
	if c.Length > 0 {
		c.GCContent = float64(c.Counts['G']+c.Counts['C']) / float64(c.Length) * 100
	}
	return c, nil
}
